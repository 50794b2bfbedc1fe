package dto

import (
	"time"

	"github.com/payontime/backend/internal/application/usecase/settings"
	"github.com/payontime/backend/internal/domain/entity"
)

// UpdateSettingsRequest represents the request body for saving settings.
type UpdateSettingsRequest struct {
	Timezone              *string `json:"timezone,omitempty"`
	EmailEnabled          bool    `json:"email_enabled"`
	PushEnabled           bool    `json:"push_enabled"`
	NotificationCopyEmail string  `json:"notification_copy_email"`
	PlanTier              string  `json:"plan_tier" binding:"omitempty,oneof=free premium"`
	DisplayName           *string `json:"display_name,omitempty"`
}

// SettingsResponse represents a user's settings.
type SettingsResponse struct {
	UserID                string     `json:"user_id"`
	Timezone              string     `json:"timezone"`
	EmailEnabled          bool       `json:"email_enabled"`
	PushEnabled           bool       `json:"push_enabled"`
	NotificationCopyEmail *string    `json:"notification_copy_email"`
	PlanTier              string     `json:"plan_tier"`
	PremiumExpiresAt      *time.Time `json:"premium_expires_at"`
	IsPremium             bool       `json:"is_premium"`
	DisplayName           string     `json:"display_name"`
}

// ToSettingsResponse converts the settings output to its DTO.
func ToSettingsResponse(output *settings.SettingsOutput) SettingsResponse {
	s := output.Settings
	tier := entity.PlanTierFree
	if s.PlanTier != nil {
		tier = *s.PlanTier
	}
	push := false
	if s.PushEnabled != nil {
		push = *s.PushEnabled
	}
	return SettingsResponse{
		UserID:                s.UserID.String(),
		Timezone:              s.Timezone,
		EmailEnabled:          s.EmailEnabled,
		PushEnabled:           push,
		NotificationCopyEmail: s.NotificationCopyEmail,
		PlanTier:              string(tier),
		PremiumExpiresAt:      s.PremiumExpiresAt,
		IsPremium:             output.IsPremium,
		DisplayName:           output.DisplayName,
	}
}
