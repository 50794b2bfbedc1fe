package model

import (
	"time"

	"github.com/google/uuid"

	"github.com/payontime/backend/internal/domain/entity"
	"github.com/payontime/backend/internal/domain/valueobject"
)

// NotificationLogModel represents the notification_log table in the database.
// The composite unique index is the deduplication key of reminder delivery.
type NotificationLogModel struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID       uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_notification_log_key,priority:1"`
	PaymentID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_notification_log_key,priority:2"`
	DueDate      time.Time `gorm:"type:date;not null;uniqueIndex:idx_notification_log_key,priority:3"`
	OffsetDays   int       `gorm:"not null;uniqueIndex:idx_notification_log_key,priority:4"`
	Channel      string    `gorm:"type:varchar(20);not null;uniqueIndex:idx_notification_log_key,priority:5"`
	Status       string    `gorm:"type:varchar(20);not null;index"`
	Error        *string   `gorm:"type:text"`
	ScheduledFor time.Time `gorm:"not null"`
	SentAt       *time.Time
	CreatedAt    time.Time `gorm:"not null"`
	UpdatedAt    time.Time `gorm:"not null"`
}

// TableName returns the table name for the NotificationLogModel.
func (NotificationLogModel) TableName() string {
	return "notification_log"
}

// ToEntity converts a NotificationLogModel to a domain NotificationLogEntry entity.
func (m *NotificationLogModel) ToEntity() *entity.NotificationLogEntry {
	return &entity.NotificationLogEntry{
		ID: m.ID,
		Key: entity.NotificationKey{
			UserID:     m.UserID,
			PaymentID:  m.PaymentID,
			DueDate:    valueobject.DateFromTime(m.DueDate.UTC()),
			OffsetDays: m.OffsetDays,
			Channel:    entity.NotificationChannel(m.Channel),
		},
		Status:       entity.NotificationStatus(m.Status),
		Error:        m.Error,
		ScheduledFor: m.ScheduledFor,
		SentAt:       m.SentAt,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

// NotificationLogFromEntity creates a NotificationLogModel from a domain NotificationLogEntry entity.
func NotificationLogFromEntity(e *entity.NotificationLogEntry) *NotificationLogModel {
	return &NotificationLogModel{
		ID:           e.ID,
		UserID:       e.Key.UserID,
		PaymentID:    e.Key.PaymentID,
		DueDate:      e.Key.DueDate.Time(),
		OffsetDays:   e.Key.OffsetDays,
		Channel:      string(e.Key.Channel),
		Status:       string(e.Status),
		Error:        e.Error,
		ScheduledFor: e.ScheduledFor,
		SentAt:       e.SentAt,
		CreatedAt:    e.CreatedAt,
		UpdatedAt:    e.UpdatedAt,
	}
}
