package payment

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/payontime/backend/internal/application/adapter"
	"github.com/payontime/backend/internal/domain/entity"
	domainerror "github.com/payontime/backend/internal/domain/error"
)

// GetPaymentInput represents the input for fetching one payment.
type GetPaymentInput struct {
	PaymentID uuid.UUID
	UserID    uuid.UUID
}

// GetPaymentOutput represents the output of fetching one payment.
type GetPaymentOutput struct {
	Payment *entity.Payment
}

// GetPaymentUseCase returns a payment owned by the caller.
type GetPaymentUseCase struct {
	paymentRepo adapter.PaymentRepository
}

// NewGetPaymentUseCase creates a new GetPaymentUseCase instance.
func NewGetPaymentUseCase(paymentRepo adapter.PaymentRepository) *GetPaymentUseCase {
	return &GetPaymentUseCase{
		paymentRepo: paymentRepo,
	}
}

// Execute retrieves the payment.
func (uc *GetPaymentUseCase) Execute(ctx context.Context, input GetPaymentInput) (*GetPaymentOutput, error) {
	payment, err := findOwned(ctx, uc.paymentRepo, input.PaymentID, input.UserID)
	if err != nil {
		return nil, err
	}
	return &GetPaymentOutput{Payment: payment}, nil
}

// findOwned loads a payment and hides payments of other users behind the not-found error.
func findOwned(ctx context.Context, repo adapter.PaymentRepository, paymentID, userID uuid.UUID) (*entity.Payment, error) {
	payment, err := repo.FindByID(ctx, paymentID)
	if err != nil {
		if errors.Is(err, domainerror.ErrPaymentNotFound) {
			return nil, notFound()
		}
		return nil, fmt.Errorf("failed to find payment: %w", err)
	}
	if payment.UserID != userID {
		return nil, notFound()
	}
	return payment, nil
}

func notFound() error {
	return domainerror.NewPaymentError(
		domainerror.ErrCodePaymentNotFound,
		"payment not found",
		domainerror.ErrPaymentNotFound,
	)
}
