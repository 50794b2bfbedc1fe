package payment

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/payontime/backend/internal/application/adapter"
	"github.com/payontime/backend/internal/domain/entity"
)

// CreatePaymentInput represents the input for payment creation.
type CreatePaymentInput struct {
	UserID uuid.UUID
	Draft  Draft
}

// CreatePaymentOutput represents the output of payment creation.
type CreatePaymentOutput struct {
	Payment *entity.Payment
}

// CreatePaymentUseCase handles payment creation logic.
type CreatePaymentUseCase struct {
	paymentRepo adapter.PaymentRepository
}

// NewCreatePaymentUseCase creates a new CreatePaymentUseCase instance.
func NewCreatePaymentUseCase(paymentRepo adapter.PaymentRepository) *CreatePaymentUseCase {
	return &CreatePaymentUseCase{
		paymentRepo: paymentRepo,
	}
}

// Execute validates the draft and stores a new active payment.
func (uc *CreatePaymentUseCase) Execute(ctx context.Context, input CreatePaymentInput) (*CreatePaymentOutput, error) {
	payment := entity.NewPayment(input.UserID, input.Draft.PaymentType, input.Draft.ScheduleMode)
	if err := applyDraft(payment, input.Draft); err != nil {
		return nil, err
	}

	if err := uc.paymentRepo.Create(ctx, payment); err != nil {
		return nil, fmt.Errorf("failed to create payment: %w", err)
	}

	slog.Info("Payment created",
		"payment_id", payment.ID,
		"user_id", payment.UserID,
		"schedule_mode", payment.ScheduleMode,
	)

	return &CreatePaymentOutput{
		Payment: payment,
	}, nil
}
