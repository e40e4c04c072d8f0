package service

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/Moxxcompany/lockbay/internal/core/domain"
	"github.com/Moxxcompany/lockbay/internal/core/ports"
	"github.com/Moxxcompany/lockbay/pkg/apperror"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// AdminServiceImpl implements ports.AdminVerifier. IsAdminSecure always
// hits the admin table: tokens prove who is calling, the table decides
// whether they may still release funds. A deactivated admin with a valid
// token gets rejected.
type AdminServiceImpl struct {
	adminRepo ports.AdminRepository
	hashSvc   ports.HashService
	auditSvc  ports.AuditService
	secret    []byte
	expiry    time.Duration
	issuer    string
	log       zerolog.Logger
}

// NewAdminService creates a new AdminServiceImpl.
func NewAdminService(
	adminRepo ports.AdminRepository,
	hashSvc ports.HashService,
	auditSvc ports.AuditService,
	secret string,
	expiry time.Duration,
	issuer string,
	log zerolog.Logger,
) *AdminServiceImpl {
	return &AdminServiceImpl{
		adminRepo: adminRepo,
		hashSvc:   hashSvc,
		auditSvc:  auditSvc,
		secret:    []byte(secret),
		expiry:    expiry,
		issuer:    issuer,
		log:       log,
	}
}

// IsAdminSecure reports whether adminID is an active admin, checked against
// the database on every call.
func (s *AdminServiceImpl) IsAdminSecure(ctx context.Context, adminID int64) (bool, error) {
	admin, err := s.adminRepo.GetByID(ctx, adminID)
	if err != nil {
		return false, fmt.Errorf("lookup admin %d: %w", adminID, err)
	}
	return admin != nil && admin.Active, nil
}

// Login validates credentials and returns a signed JWT.
func (s *AdminServiceImpl) Login(ctx context.Context, username, password string) (string, time.Time, error) {
	admin, err := s.adminRepo.GetByUsername(ctx, username)
	if err != nil {
		return "", time.Time{}, apperror.InternalError(fmt.Errorf("find admin: %w", err))
	}
	if admin == nil || !admin.Active {
		return "", time.Time{}, apperror.ErrInvalidCredentials()
	}

	valid, err := s.hashSvc.Verify(password, admin.PasswordHash)
	if err != nil {
		return "", time.Time{}, apperror.InternalError(fmt.Errorf("verify password: %w", err))
	}
	if !valid {
		s.log.Warn().Str("username", username).Msg("admin login failed: bad password")
		return "", time.Time{}, apperror.ErrInvalidCredentials()
	}

	now := time.Now()
	expiresAt := now.Add(s.expiry)
	claims := jwt.MapClaims{
		"sub":      strconv.FormatInt(admin.ID, 10),
		"username": admin.Username,
		"iat":      now.Unix(),
		"exp":      expiresAt.Unix(),
		"iss":      s.issuer,
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, apperror.InternalError(fmt.Errorf("signing token: %w", err))
	}

	if s.auditSvc != nil {
		s.auditSvc.Record(ctx, &domain.AuditLog{
			ID:           uuid.New(),
			ActorID:      &admin.ID,
			Action:       domain.AuditActionAdminLogin,
			ResourceType: "admin",
			ResourceID:   strconv.FormatInt(admin.ID, 10),
			CreatedAt:    time.Now().UTC(),
		})
	}
	s.log.Info().Int64("admin_id", admin.ID).Msg("admin logged in")
	return token, expiresAt, nil
}

// VerifyToken parses and validates a JWT, returning the AdminActor
// capability. The admin must still be active.
func (s *AdminServiceImpl) VerifyToken(ctx context.Context, tokenString string) (*domain.AdminActor, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, apperror.ErrInvalidToken()
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, apperror.ErrInvalidToken()
	}
	sub, ok := claims["sub"].(string)
	if !ok {
		return nil, apperror.ErrInvalidToken()
	}
	adminID, err := strconv.ParseInt(sub, 10, 64)
	if err != nil {
		return nil, apperror.ErrInvalidToken()
	}

	active, err := s.IsAdminSecure(ctx, adminID)
	if err != nil {
		return nil, apperror.InternalError(err)
	}
	if !active {
		return nil, apperror.ErrInvalidToken()
	}

	username, _ := claims["username"].(string)
	return &domain.AdminActor{AdminID: adminID, Username: username}, nil
}
