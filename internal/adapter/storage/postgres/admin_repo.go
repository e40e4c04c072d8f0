package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/Moxxcompany/lockbay/internal/core/domain"

	"github.com/jackc/pgx/v5"
)

// AdminRepo implements ports.AdminRepository.
type AdminRepo struct {
	pool Pool
}

// NewAdminRepo creates a new AdminRepo.
func NewAdminRepo(pool Pool) *AdminRepo {
	return &AdminRepo{pool: pool}
}

const adminSelect = `SELECT id, username, password_hash, active, created_at FROM admins`

// GetByID fetches an admin account. Returns nil, nil when absent.
func (r *AdminRepo) GetByID(ctx context.Context, id int64) (*domain.Admin, error) {
	a := &domain.Admin{}
	err := r.pool.QueryRow(ctx, adminSelect+` WHERE id = $1`, id).
		Scan(&a.ID, &a.Username, &a.PasswordHash, &a.Active, &a.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get admin by id: %w", err)
	}
	return a, nil
}

// GetByUsername fetches an admin account by username.
func (r *AdminRepo) GetByUsername(ctx context.Context, username string) (*domain.Admin, error) {
	a := &domain.Admin{}
	err := r.pool.QueryRow(ctx, adminSelect+` WHERE username = $1`, username).
		Scan(&a.ID, &a.Username, &a.PasswordHash, &a.Active, &a.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get admin by username: %w", err)
	}
	return a, nil
}
