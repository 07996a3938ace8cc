package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/tecnorev/commerce-api/internal/core/domain"
	"github.com/tecnorev/commerce-api/internal/core/ports"
)

// AuditService persists auth audit events delivered by the dispatcher.
type AuditService struct {
	repo ports.AuditRepository
	log  zerolog.Logger
}

func NewAuditService(repo ports.AuditRepository, log zerolog.Logger) *AuditService {
	return &AuditService{repo: repo, log: log}
}

// Record writes one audit event. Failures are surfaced to the dispatcher for
// logging; they never fail the request that produced the event.
func (s *AuditService) Record(ctx context.Context, ev domain.AuditEvent) error {
	if ev.At.IsZero() {
		ev.At = time.Now().UTC()
	}
	if err := s.repo.Insert(ctx, &ev); err != nil {
		return fmt.Errorf("record audit event: %w", err)
	}

	s.log.Debug().
		Str("action", ev.Action).
		Str("email", ev.Email).
		Msg("audit event recorded")
	return nil
}
