package ports

import (
	"context"

	"github.com/tecnorev/commerce-api/internal/core/domain"
)

// AuditRepository persists auth audit events.
type AuditRepository interface {
	Insert(ctx context.Context, ev *domain.AuditEvent) error
}

// AuditRecorder consumes audit events from the dispatcher.
type AuditRecorder interface {
	Record(ctx context.Context, ev domain.AuditEvent) error
}
