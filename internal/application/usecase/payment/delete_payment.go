package payment

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/payontime/backend/internal/application/adapter"
	domainerror "github.com/payontime/backend/internal/domain/error"
)

// DeletePaymentInput represents the input for payment deletion.
type DeletePaymentInput struct {
	PaymentID uuid.UUID
	UserID    uuid.UUID
}

// DeletePaymentUseCase removes a payment. Its notification log rows are kept.
type DeletePaymentUseCase struct {
	paymentRepo adapter.PaymentRepository
}

// NewDeletePaymentUseCase creates a new DeletePaymentUseCase instance.
func NewDeletePaymentUseCase(paymentRepo adapter.PaymentRepository) *DeletePaymentUseCase {
	return &DeletePaymentUseCase{
		paymentRepo: paymentRepo,
	}
}

// Execute performs the payment deletion.
func (uc *DeletePaymentUseCase) Execute(ctx context.Context, input DeletePaymentInput) error {
	if _, err := findOwned(ctx, uc.paymentRepo, input.PaymentID, input.UserID); err != nil {
		return err
	}

	if err := uc.paymentRepo.Delete(ctx, input.PaymentID); err != nil {
		if errors.Is(err, domainerror.ErrPaymentNotFound) {
			return notFound()
		}
		return fmt.Errorf("failed to delete payment: %w", err)
	}

	slog.Info("Payment deleted", "payment_id", input.PaymentID, "user_id", input.UserID)
	return nil
}
