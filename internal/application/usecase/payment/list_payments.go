package payment

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/payontime/backend/internal/application/adapter"
	"github.com/payontime/backend/internal/domain/entity"
)

// ListPaymentsInput represents the input for listing payments.
type ListPaymentsInput struct {
	UserID uuid.UUID
}

// ListPaymentsOutput represents the output of listing payments.
type ListPaymentsOutput struct {
	Payments []*entity.Payment
}

// ListPaymentsUseCase lists the caller's payments, newest first.
type ListPaymentsUseCase struct {
	paymentRepo adapter.PaymentRepository
}

// NewListPaymentsUseCase creates a new ListPaymentsUseCase instance.
func NewListPaymentsUseCase(paymentRepo adapter.PaymentRepository) *ListPaymentsUseCase {
	return &ListPaymentsUseCase{
		paymentRepo: paymentRepo,
	}
}

// Execute lists the payments.
func (uc *ListPaymentsUseCase) Execute(ctx context.Context, input ListPaymentsInput) (*ListPaymentsOutput, error) {
	payments, err := uc.paymentRepo.FindByUserID(ctx, input.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}
	if payments == nil {
		payments = []*entity.Payment{}
	}
	return &ListPaymentsOutput{Payments: payments}, nil
}
