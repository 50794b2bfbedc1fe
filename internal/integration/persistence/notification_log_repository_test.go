package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/payontime/backend/internal/domain/entity"
	"github.com/payontime/backend/internal/domain/valueobject"
)

func reminderKeys(userID, paymentID uuid.UUID, due string, offsets ...int) []entity.NotificationKey {
	keys := make([]entity.NotificationKey, len(offsets))
	for i, offset := range offsets {
		keys[i] = entity.NotificationKey{
			UserID:     userID,
			PaymentID:  paymentID,
			DueDate:    valueobject.MustParseDate(due),
			OffsetDays: offset,
			Channel:    entity.NotificationChannelEmail,
		}
	}
	return keys
}

func TestNotificationLogRepository_ClaimIsIdempotent(t *testing.T) {
	ctx := context.Background()
	repo := NewNotificationLogRepository(newTestDB(t))
	keys := reminderKeys(uuid.New(), uuid.New(), "2024-05-10", -3, 0)
	now := time.Now().UTC()

	first, err := repo.Claim(ctx, keys, now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(first) != 2 {
		t.Fatalf("expected 2 claimed rows, got %d", len(first))
	}
	for _, entry := range first {
		if entry.Status != entity.NotificationStatusQueued {
			t.Errorf("expected queued, got %s", entry.Status)
		}
		if entry.Key.DueDate.String() != "2024-05-10" {
			t.Errorf("expected due date 2024-05-10, got %s", entry.Key.DueDate)
		}
	}

	second, err := repo.Claim(ctx, keys, now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(second) != 0 {
		t.Errorf("expected queued rows to block a second claim, got %d", len(second))
	}
}

func TestNotificationLogRepository_FailedRowsAreRetryable(t *testing.T) {
	ctx := context.Background()
	repo := NewNotificationLogRepository(newTestDB(t))
	keys := reminderKeys(uuid.New(), uuid.New(), "2024-05-10", 0)
	now := time.Now().UTC()

	claimed, err := repo.Claim(ctx, keys, now)
	if err != nil || len(claimed) != 1 {
		t.Fatalf("expected one claimed row, got %d (err %v)", len(claimed), err)
	}
	originalID := claimed[0].ID

	if err := repo.MarkFailed(ctx, []uuid.UUID{originalID}, "smtp timeout"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	retried, err := repo.Claim(ctx, keys, now.Add(24*time.Hour))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(retried) != 1 {
		t.Fatalf("expected failed row to be reclaimed, got %d", len(retried))
	}
	if retried[0].ID != originalID {
		t.Errorf("expected reclaimed row to keep id %s, got %s", originalID, retried[0].ID)
	}
	if retried[0].Status != entity.NotificationStatusQueued || retried[0].Error != nil {
		t.Errorf("expected queued without error, got %s / %v", retried[0].Status, retried[0].Error)
	}

	if err := repo.MarkSent(ctx, []uuid.UUID{originalID}, now); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	blocked, err := repo.Claim(ctx, keys, now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(blocked) != 0 {
		t.Errorf("expected sent row to block, got %d", len(blocked))
	}
}

func TestNotificationLogRepository_MarkTransitions(t *testing.T) {
	ctx := context.Background()
	repo := NewNotificationLogRepository(newTestDB(t))
	userID := uuid.New()
	keys := reminderKeys(userID, uuid.New(), "2024-02-29", -1, 0)
	now := time.Now().UTC()

	claimed, err := repo.Claim(ctx, keys, now)
	if err != nil || len(claimed) != 2 {
		t.Fatalf("expected two claimed rows, got %d (err %v)", len(claimed), err)
	}

	if err := repo.MarkSent(ctx, []uuid.UUID{claimed[0].ID}, now); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := repo.MarkFailed(ctx, []uuid.UUID{claimed[1].ID}, "missing user email"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := repo.MarkSent(ctx, nil, now); err != nil {
		t.Errorf("expected no-op for empty id list, got %v", err)
	}

	entries, err := repo.FindByUserID(ctx, userID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	statuses := make(map[uuid.UUID]*entity.NotificationLogEntry)
	for _, e := range entries {
		statuses[e.ID] = e
	}

	sent := statuses[claimed[0].ID]
	if sent == nil || sent.Status != entity.NotificationStatusSent || sent.SentAt == nil {
		t.Errorf("expected first row sent with timestamp, got %+v", sent)
	}
	failed := statuses[claimed[1].ID]
	if failed == nil || failed.Status != entity.NotificationStatusFailed || failed.Error == nil || *failed.Error != "missing user email" {
		t.Errorf("expected second row failed with message, got %+v", failed)
	}
}

func TestNotificationLogRepository_DistinctKeysDoNotCollide(t *testing.T) {
	ctx := context.Background()
	repo := NewNotificationLogRepository(newTestDB(t))
	userID, paymentID := uuid.New(), uuid.New()
	now := time.Now().UTC()

	if _, err := repo.Claim(ctx, reminderKeys(userID, paymentID, "2024-05-10", 0), now); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	next, err := repo.Claim(ctx, reminderKeys(userID, paymentID, "2024-06-10", 0), now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(next) != 1 {
		t.Errorf("expected next due date to be claimable, got %d rows", len(next))
	}
}
