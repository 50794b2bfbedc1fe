package payment

import (
	"github.com/payontime/backend/internal/application/adapter"
	"github.com/payontime/backend/internal/domain/entity"
)

// ListCategoriesOutput represents the curated payment categories.
type ListCategoriesOutput struct {
	Categories []entity.PaymentCategory
}

// ListCategoriesUseCase returns the curated payment categories.
type ListCategoriesUseCase struct {
	catalog adapter.CategoryCatalog
}

// NewListCategoriesUseCase creates a new ListCategoriesUseCase instance.
func NewListCategoriesUseCase(catalog adapter.CategoryCatalog) *ListCategoriesUseCase {
	return &ListCategoriesUseCase{
		catalog: catalog,
	}
}

// Execute lists the categories.
func (uc *ListCategoriesUseCase) Execute() *ListCategoriesOutput {
	return &ListCategoriesOutput{Categories: uc.catalog.List()}
}
