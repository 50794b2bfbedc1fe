package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/payontime/backend/internal/domain/entity"
)

// PaymentRepository defines the interface for payment persistence operations.
type PaymentRepository interface {
	// Create persists a new payment.
	Create(ctx context.Context, payment *entity.Payment) error

	// FindByID retrieves a payment by its ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Payment, error)

	// FindByUserID lists the user's payments, newest first.
	FindByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.Payment, error)

	// Update saves every field of an existing payment.
	Update(ctx context.Context, payment *entity.Payment) error

	// Delete removes a payment.
	Delete(ctx context.Context, id uuid.UUID) error

	// ListActive returns one page of active payments across all users in a stable order.
	ListActive(ctx context.Context, offset, limit int) ([]*entity.Payment, error)
}
