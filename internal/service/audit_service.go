package service

import (
	"context"

	"github.com/Moxxcompany/lockbay/internal/core/domain"
	"github.com/Moxxcompany/lockbay/internal/core/ports"

	"github.com/rs/zerolog"
)

type auditService struct {
	repo ports.AuditRepository
	log  zerolog.Logger
}

// NewAuditService creates a new audit service.
// If repo is nil, audit records are only written to the logger.
func NewAuditService(repo ports.AuditRepository, log zerolog.Logger) ports.AuditService {
	return &auditService{repo: repo, log: log}
}

// Record persists an audit entry asynchronously (fire-and-forget).
func (s *auditService) Record(ctx context.Context, entry *domain.AuditLog) {
	go func() {
		actorID := int64(0)
		if entry.ActorID != nil {
			actorID = *entry.ActorID
		}
		s.log.Info().
			Str("action", string(entry.Action)).
			Int64("actor_id", actorID).
			Str("resource_type", entry.ResourceType).
			Str("resource_id", entry.ResourceID).
			Msg("audit")

		if s.repo != nil {
			if err := s.repo.Create(context.Background(), entry); err != nil {
				s.log.Warn().Err(err).Str("action", string(entry.Action)).Msg("failed to persist audit log")
			}
		}
	}()
}
