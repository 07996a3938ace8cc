package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/tecnorev/commerce-api/internal/core/domain"
	"github.com/tecnorev/commerce-api/internal/core/ports"
)

const auditCollection = "auth_events"

// AuditRepository implements ports.AuditRepository using MongoDB.
type AuditRepository struct {
	coll *mongo.Collection
}

func NewAuditRepository(db *mongo.Database) ports.AuditRepository {
	return &AuditRepository{coll: db.Collection(auditCollection)}
}

// Insert persists one auth audit event.
func (r *AuditRepository) Insert(ctx context.Context, ev *domain.AuditEvent) error {
	doc := bson.M{
		"email":       ev.Email,
		"action":      ev.Action,
		"at":          ev.At.UTC(),
		"recorded_at": time.Now().UTC(),
	}
	if ev.ActorID != 0 {
		doc["actor_id"] = ev.ActorID
	}
	if ev.RequestID != "" {
		doc["request_id"] = ev.RequestID
	}

	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert audit event: %w", err)
	}
	return nil
}
