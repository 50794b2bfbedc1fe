package dto

import (
	"github.com/payontime/backend/internal/application/usecase/reminder"
)

// ReminderItemResponse represents a payment whose reminders fired in a run.
type ReminderItemResponse struct {
	PaymentID       string  `json:"payment_id"`
	Name            string  `json:"name"`
	PaymentType     string  `json:"payment_type"`
	DueDate         string  `json:"due_date"`
	ProviderAddress *string `json:"provider_address"`
	Offsets         []int   `json:"offsets"`
}

// ReminderUserResponse represents a user considered by a run.
type ReminderUserResponse struct {
	UserID                string                 `json:"user_id"`
	Timezone              string                 `json:"timezone"`
	EmailEnabled          bool                   `json:"email_enabled"`
	NotificationCopyEmail *string                `json:"notification_copy_email"`
	Items                 []ReminderItemResponse `json:"items"`
}

// ReminderResultResponse represents the outcome for one user.
type ReminderResultResponse struct {
	UserID string  `json:"user_id"`
	Email  *string `json:"email"`
	Status string  `json:"status"`
	Error  string  `json:"error,omitempty"`
}

// ReminderRunResponse represents the summary of a reminder run.
type ReminderRunResponse struct {
	Users   []ReminderUserResponse   `json:"users"`
	Results []ReminderResultResponse `json:"results"`
}

// ToReminderRunResponse converts the run output to its DTO.
func ToReminderRunResponse(output *reminder.RunRemindersOutput) ReminderRunResponse {
	resp := ReminderRunResponse{
		Users:   make([]ReminderUserResponse, len(output.Users)),
		Results: make([]ReminderResultResponse, len(output.Results)),
	}

	for i, u := range output.Users {
		var copyEmail *string
		if u.CopyEmail != "" {
			c := u.CopyEmail
			copyEmail = &c
		}
		items := make([]ReminderItemResponse, len(u.Items))
		for j, item := range u.Items {
			items[j] = ReminderItemResponse{
				PaymentID:       item.Payment.ID.String(),
				Name:            item.Payment.DisplayName(),
				PaymentType:     item.Payment.PaymentType,
				DueDate:         item.DueDate.String(),
				ProviderAddress: item.Payment.ProviderAddress,
				Offsets:         item.Offsets,
			}
		}
		resp.Users[i] = ReminderUserResponse{
			UserID:                u.UserID.String(),
			Timezone:              u.Timezone,
			EmailEnabled:          u.EmailEnabled,
			NotificationCopyEmail: copyEmail,
			Items:                 items,
		}
	}

	for i, r := range output.Results {
		var email *string
		if r.Email != "" {
			e := r.Email
			email = &e
		}
		resp.Results[i] = ReminderResultResponse{
			UserID: r.UserID.String(),
			Email:  email,
			Status: string(r.Status),
			Error:  r.Error,
		}
	}
	return resp
}
