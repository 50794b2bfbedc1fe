package entity

import "github.com/payontime/backend/internal/domain/valueobject"

// DueItem is one payment evaluated against a date window. It is never persisted.
type DueItem struct {
	Payment   *Payment
	DueDate   valueobject.Date
	IsOverdue bool
}
