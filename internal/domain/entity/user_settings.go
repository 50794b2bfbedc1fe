package entity

import (
	"time"

	"github.com/google/uuid"
)

// DefaultTimezone is used for users without settings or with an unknown zone.
const DefaultTimezone = "Europe/Warsaw"

// PlanTier is the subscription tier stored next to the notification settings.
type PlanTier string

const (
	PlanTierFree    PlanTier = "free"
	PlanTierPremium PlanTier = "premium"
)

// UserSettings holds per-user notification preferences.
// Optional members map to columns that older stores may not have yet.
type UserSettings struct {
	UserID       uuid.UUID
	Timezone     string
	EmailEnabled bool

	PushEnabled           *bool
	NotificationCopyEmail *string
	PlanTier              *PlanTier
	PremiumExpiresAt      *time.Time

	UpdatedAt time.Time
}

// DefaultUserSettings returns the settings applied to users who never saved any.
func DefaultUserSettings(userID uuid.UUID) *UserSettings {
	return &UserSettings{
		UserID:       userID,
		Timezone:     DefaultTimezone,
		EmailEnabled: true,
	}
}

// CopyEmail returns the CC address, or "" when none is configured.
func (s *UserSettings) CopyEmail() string {
	if s == nil || s.NotificationCopyEmail == nil {
		return ""
	}
	return *s.NotificationCopyEmail
}

// IsPremium reports whether a premium plan is active at the given instant.
func (s *UserSettings) IsPremium(now time.Time) bool {
	if s == nil || s.PlanTier == nil || *s.PlanTier != PlanTierPremium {
		return false
	}
	return s.PremiumExpiresAt == nil || s.PremiumExpiresAt.After(now)
}
