package entity

import (
	"time"

	"github.com/google/uuid"

	"github.com/payontime/backend/internal/domain/valueobject"
)

// NotificationStatus is the delivery state of one reminder instance.
type NotificationStatus string

const (
	NotificationStatusQueued NotificationStatus = "queued"
	NotificationStatusSent   NotificationStatus = "sent"
	NotificationStatusFailed NotificationStatus = "failed"
)

// NotificationChannel identifies how a reminder is delivered.
type NotificationChannel string

const (
	NotificationChannelEmail NotificationChannel = "email"
)

// NotificationKey is the deduplication unit of reminder delivery.
type NotificationKey struct {
	UserID     uuid.UUID
	PaymentID  uuid.UUID
	DueDate    valueobject.Date
	OffsetDays int
	Channel    NotificationChannel
}

// NotificationLogEntry records the delivery of one reminder instance.
type NotificationLogEntry struct {
	ID           uuid.UUID
	Key          NotificationKey
	Status       NotificationStatus
	Error        *string
	ScheduledFor time.Time
	SentAt       *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// NewNotificationLogEntry creates a queued entry for the given key.
func NewNotificationLogEntry(key NotificationKey, scheduledFor time.Time) *NotificationLogEntry {
	now := time.Now().UTC()
	return &NotificationLogEntry{
		ID:           uuid.New(),
		Key:          key,
		Status:       NotificationStatusQueued,
		ScheduledFor: scheduledFor,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// BlocksRedelivery reports whether the entry prevents the same key from being claimed again.
// Failed attempts stay eligible for the next run.
func (e *NotificationLogEntry) BlocksRedelivery() bool {
	return e.Status == NotificationStatusQueued || e.Status == NotificationStatusSent
}
