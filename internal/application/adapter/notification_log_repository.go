package adapter

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/payontime/backend/internal/domain/entity"
)

// NotificationLogRepository records reminder deliveries keyed by entity.NotificationKey.
type NotificationLogRepository interface {
	// Claim atomically inserts a queued row for every key that has no row yet, and requeues keys
	// whose row is failed. It returns only the rows claimed by this call; keys held by a queued or
	// sent row are left untouched and omitted.
	Claim(ctx context.Context, keys []entity.NotificationKey, scheduledFor time.Time) ([]*entity.NotificationLogEntry, error)

	// MarkSent transitions the given rows to sent.
	MarkSent(ctx context.Context, ids []uuid.UUID, sentAt time.Time) error

	// MarkFailed transitions the given rows to failed with an error message.
	MarkFailed(ctx context.Context, ids []uuid.UUID, message string) error

	// FindByUserID lists the user's log rows, most recent first.
	FindByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.NotificationLogEntry, error)
}
