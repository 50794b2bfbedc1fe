package payment

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/payontime/backend/internal/application/adapter"
	"github.com/payontime/backend/internal/domain/entity"
)

// UpdatePaymentInput represents the input for payment update. The draft replaces every editable field.
type UpdatePaymentInput struct {
	PaymentID uuid.UUID
	UserID    uuid.UUID
	Draft     Draft
}

// UpdatePaymentOutput represents the output of payment update.
type UpdatePaymentOutput struct {
	Payment *entity.Payment
}

// UpdatePaymentUseCase handles payment update logic.
type UpdatePaymentUseCase struct {
	paymentRepo adapter.PaymentRepository
}

// NewUpdatePaymentUseCase creates a new UpdatePaymentUseCase instance.
func NewUpdatePaymentUseCase(paymentRepo adapter.PaymentRepository) *UpdatePaymentUseCase {
	return &UpdatePaymentUseCase{
		paymentRepo: paymentRepo,
	}
}

// Execute performs the payment update.
func (uc *UpdatePaymentUseCase) Execute(ctx context.Context, input UpdatePaymentInput) (*UpdatePaymentOutput, error) {
	payment, err := findOwned(ctx, uc.paymentRepo, input.PaymentID, input.UserID)
	if err != nil {
		return nil, err
	}

	if err := applyDraft(payment, input.Draft); err != nil {
		return nil, err
	}
	payment.UpdatedAt = time.Now().UTC()

	if err := uc.paymentRepo.Update(ctx, payment); err != nil {
		return nil, fmt.Errorf("failed to update payment: %w", err)
	}

	return &UpdatePaymentOutput{Payment: payment}, nil
}

// SetPaymentActiveInput represents the input for toggling a payment.
type SetPaymentActiveInput struct {
	PaymentID uuid.UUID
	UserID    uuid.UUID
	IsActive  bool
}

// SetPaymentActiveUseCase enables or disables a payment without touching its schedule.
type SetPaymentActiveUseCase struct {
	paymentRepo adapter.PaymentRepository
}

// NewSetPaymentActiveUseCase creates a new SetPaymentActiveUseCase instance.
func NewSetPaymentActiveUseCase(paymentRepo adapter.PaymentRepository) *SetPaymentActiveUseCase {
	return &SetPaymentActiveUseCase{
		paymentRepo: paymentRepo,
	}
}

// Execute toggles the payment.
func (uc *SetPaymentActiveUseCase) Execute(ctx context.Context, input SetPaymentActiveInput) (*UpdatePaymentOutput, error) {
	payment, err := findOwned(ctx, uc.paymentRepo, input.PaymentID, input.UserID)
	if err != nil {
		return nil, err
	}

	payment.IsActive = input.IsActive
	payment.UpdatedAt = time.Now().UTC()
	if err := uc.paymentRepo.Update(ctx, payment); err != nil {
		return nil, fmt.Errorf("failed to update payment: %w", err)
	}

	return &UpdatePaymentOutput{Payment: payment}, nil
}
