package adapter

import "github.com/payontime/backend/internal/domain/entity"

// CategoryCatalog provides the curated payment categories offered when creating a payment.
type CategoryCatalog interface {
	List() []entity.PaymentCategory
}
