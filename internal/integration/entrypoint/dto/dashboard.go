package dto

import (
	"github.com/payontime/backend/internal/application/usecase/dashboard"
	"github.com/payontime/backend/internal/domain/entity"
)

// DueItemResponse represents one occurrence of a payment in a dashboard view.
type DueItemResponse struct {
	PaymentID       string  `json:"payment_id"`
	Name            string  `json:"name"`
	PaymentType     string  `json:"payment_type"`
	Amount          *string `json:"amount"`
	Currency        *string `json:"currency"`
	ProviderAddress *string `json:"provider_address"`
	DueDate         string  `json:"due_date"`
	IsOverdue       bool    `json:"is_overdue"`
	IsActive        bool    `json:"is_active"`
}

// DashboardResponse represents the dashboard views.
type DashboardResponse struct {
	Today      string            `json:"today"`
	SevenDays  []DueItemResponse `json:"seven_days"`
	ThirtyDays []DueItemResponse `json:"thirty_days"`
	NinetyDays []DueItemResponse `json:"ninety_days"`
	All        []DueItemResponse `json:"all"`
	Overdue    []DueItemResponse `json:"overdue"`
}

// ToDashboardResponse converts the dashboard output to its DTO.
func ToDashboardResponse(output *dashboard.GetDashboardOutput) DashboardResponse {
	return DashboardResponse{
		Today:      output.Today.String(),
		SevenDays:  toDueItemResponses(output.SevenDays),
		ThirtyDays: toDueItemResponses(output.ThirtyDays),
		NinetyDays: toDueItemResponses(output.NinetyDays),
		All:        toDueItemResponses(output.All),
		Overdue:    toDueItemResponses(output.Overdue),
	}
}

func toDueItemResponses(items []entity.DueItem) []DueItemResponse {
	out := make([]DueItemResponse, len(items))
	for i, item := range items {
		p := item.Payment
		out[i] = DueItemResponse{
			PaymentID:       p.ID.String(),
			Name:            p.DisplayName(),
			PaymentType:     p.PaymentType,
			Amount:          amountString(p.Amount),
			Currency:        p.Currency,
			ProviderAddress: p.ProviderAddress,
			DueDate:         item.DueDate.String(),
			IsOverdue:       item.IsOverdue,
			IsActive:        p.IsActive,
		}
	}
	return out
}
