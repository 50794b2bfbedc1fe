package persistence

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/payontime/backend/internal/application/adapter"
	"github.com/payontime/backend/internal/domain/entity"
	"github.com/payontime/backend/internal/integration/persistence/model"
)

// notificationLogRepository implements the adapter.NotificationLogRepository interface.
type notificationLogRepository struct {
	db *gorm.DB
}

// NewNotificationLogRepository creates a new notification log repository instance.
func NewNotificationLogRepository(db *gorm.DB) adapter.NotificationLogRepository {
	return &notificationLogRepository{
		db: db,
	}
}

var notificationKeyColumns = []clause.Column{
	{Name: "user_id"},
	{Name: "payment_id"},
	{Name: "due_date"},
	{Name: "offset_days"},
	{Name: "channel"},
}

// Claim inserts one row per key with
//
//	INSERT ... ON CONFLICT (key) DO UPDATE SET status = 'queued', ... WHERE status = 'failed'
//
// Each statement is atomic per key, so concurrent runs racing for the same key see exactly one
// affected row between them. Keys whose row is queued or sent affect no rows and are skipped.
func (r *notificationLogRepository) Claim(
	ctx context.Context,
	keys []entity.NotificationKey,
	scheduledFor time.Time,
) ([]*entity.NotificationLogEntry, error) {
	claimed := make([]*entity.NotificationLogEntry, 0, len(keys))

	for _, key := range keys {
		entry := entity.NewNotificationLogEntry(key, scheduledFor)
		logModel := model.NotificationLogFromEntity(entry)

		result := r.db.WithContext(ctx).Clauses(clause.OnConflict{
			Columns: notificationKeyColumns,
			DoUpdates: clause.Assignments(map[string]interface{}{
				"status":        string(entity.NotificationStatusQueued),
				"error":         nil,
				"sent_at":       nil,
				"scheduled_for": scheduledFor,
				"updated_at":    entry.UpdatedAt,
			}),
			Where: clause.Where{Exprs: []clause.Expression{
				clause.Expr{
					SQL:  "notification_log.status = ?",
					Vars: []interface{}{string(entity.NotificationStatusFailed)},
				},
			}},
		}).Create(logModel)
		if result.Error != nil {
			return claimed, fmt.Errorf("failed to claim notification %s/%s/%s/%d: %w",
				key.UserID, key.PaymentID, key.DueDate, key.OffsetDays, result.Error)
		}
		if result.RowsAffected == 0 {
			continue
		}

		// A requeued failed row keeps its original id.
		stored, err := r.findByKey(ctx, key)
		if err != nil {
			return claimed, err
		}
		claimed = append(claimed, stored)
	}

	return claimed, nil
}

// MarkSent transitions the given rows to sent.
func (r *notificationLogRepository) MarkSent(ctx context.Context, ids []uuid.UUID, sentAt time.Time) error {
	if len(ids) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Model(&model.NotificationLogModel{}).
		Where("id IN ?", ids).
		Updates(map[string]interface{}{
			"status":     string(entity.NotificationStatusSent),
			"sent_at":    sentAt,
			"error":      nil,
			"updated_at": time.Now().UTC(),
		}).Error
}

// MarkFailed transitions the given rows to failed.
func (r *notificationLogRepository) MarkFailed(ctx context.Context, ids []uuid.UUID, message string) error {
	if len(ids) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Model(&model.NotificationLogModel{}).
		Where("id IN ?", ids).
		Updates(map[string]interface{}{
			"status":     string(entity.NotificationStatusFailed),
			"error":      message,
			"updated_at": time.Now().UTC(),
		}).Error
}

// FindByUserID lists the user's log rows, most recent first.
func (r *notificationLogRepository) FindByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.NotificationLogEntry, error) {
	var logModels []model.NotificationLogModel
	result := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Order("offset_days").
		Find(&logModels)
	if result.Error != nil {
		return nil, result.Error
	}

	entries := make([]*entity.NotificationLogEntry, len(logModels))
	for i := range logModels {
		entries[i] = logModels[i].ToEntity()
	}
	return entries, nil
}

func (r *notificationLogRepository) findByKey(ctx context.Context, key entity.NotificationKey) (*entity.NotificationLogEntry, error) {
	var logModel model.NotificationLogModel
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND payment_id = ? AND due_date = ? AND offset_days = ? AND channel = ?",
			key.UserID, key.PaymentID, key.DueDate.Time(), key.OffsetDays, string(key.Channel)).
		First(&logModel).Error
	if err != nil {
		return nil, fmt.Errorf("failed to read claimed notification: %w", err)
	}
	return logModel.ToEntity(), nil
}
