// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/payontime/backend/internal/application/adapter"
	"github.com/payontime/backend/internal/domain/entity"
	domainerror "github.com/payontime/backend/internal/domain/error"
	"github.com/payontime/backend/internal/integration/persistence/model"
)

// paymentRepository implements the adapter.PaymentRepository interface.
type paymentRepository struct {
	db *gorm.DB
}

// NewPaymentRepository creates a new payment repository instance.
func NewPaymentRepository(db *gorm.DB) adapter.PaymentRepository {
	return &paymentRepository{
		db: db,
	}
}

// Create creates a new payment in the database.
func (r *paymentRepository) Create(ctx context.Context, payment *entity.Payment) error {
	return r.db.WithContext(ctx).Create(model.PaymentFromEntity(payment)).Error
}

// FindByID retrieves a payment by its ID.
func (r *paymentRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Payment, error) {
	var paymentModel model.PaymentModel
	result := r.db.WithContext(ctx).Where("id = ?", id).First(&paymentModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrPaymentNotFound
		}
		return nil, result.Error
	}
	return paymentModel.ToEntity(), nil
}

// FindByUserID retrieves all payments of a user, newest first.
func (r *paymentRepository) FindByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.Payment, error) {
	var paymentModels []model.PaymentModel
	result := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Order("id").
		Find(&paymentModels)
	if result.Error != nil {
		return nil, result.Error
	}
	return toPaymentEntities(paymentModels), nil
}

// Update saves every field of an existing payment.
func (r *paymentRepository) Update(ctx context.Context, payment *entity.Payment) error {
	result := r.db.WithContext(ctx).Save(model.PaymentFromEntity(payment))
	if result.Error != nil {
		return result.Error
	}
	return nil
}

// Delete removes a payment from the database.
func (r *paymentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&model.PaymentModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerror.ErrPaymentNotFound
	}
	return nil
}

// ListActive returns one page of active payments ordered by creation time and id, so that
// consecutive pages neither skip nor repeat rows.
func (r *paymentRepository) ListActive(ctx context.Context, offset, limit int) ([]*entity.Payment, error) {
	var paymentModels []model.PaymentModel
	result := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("created_at").
		Order("id").
		Offset(offset).
		Limit(limit).
		Find(&paymentModels)
	if result.Error != nil {
		return nil, result.Error
	}
	return toPaymentEntities(paymentModels), nil
}

func toPaymentEntities(models []model.PaymentModel) []*entity.Payment {
	payments := make([]*entity.Payment, len(models))
	for i := range models {
		payments[i] = models[i].ToEntity()
	}
	return payments
}
