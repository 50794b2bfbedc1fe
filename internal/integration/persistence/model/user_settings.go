package model

import (
	"time"

	"github.com/google/uuid"

	"github.com/payontime/backend/internal/domain/entity"
)

// UserSettingsModel represents the user_settings table in the database.
// The pointer columns were added after the first release and may be missing on older stores.
type UserSettingsModel struct {
	UserID       uuid.UUID `gorm:"type:uuid;primaryKey"`
	Timezone     string    `gorm:"type:varchar(64);not null"`
	EmailEnabled bool      `gorm:"not null"`

	PushEnabled           *bool
	NotificationCopyEmail *string `gorm:"type:varchar(255)"`
	PlanTier              *string `gorm:"type:varchar(20)"`
	PremiumExpiresAt      *time.Time

	UpdatedAt time.Time `gorm:"not null"`
}

// OptionalSettingsColumns are the columns a store may not have migrated yet.
var OptionalSettingsColumns = []string{
	"push_enabled",
	"notification_copy_email",
	"plan_tier",
	"premium_expires_at",
}

// TableName returns the table name for the UserSettingsModel.
func (UserSettingsModel) TableName() string {
	return "user_settings"
}

// ToEntity converts a UserSettingsModel to a domain UserSettings entity.
func (m *UserSettingsModel) ToEntity() *entity.UserSettings {
	var tier *entity.PlanTier
	if m.PlanTier != nil {
		t := entity.PlanTier(*m.PlanTier)
		tier = &t
	}

	return &entity.UserSettings{
		UserID:                m.UserID,
		Timezone:              m.Timezone,
		EmailEnabled:          m.EmailEnabled,
		PushEnabled:           m.PushEnabled,
		NotificationCopyEmail: m.NotificationCopyEmail,
		PlanTier:              tier,
		PremiumExpiresAt:      m.PremiumExpiresAt,
		UpdatedAt:             m.UpdatedAt,
	}
}

// UserSettingsFromEntity creates a UserSettingsModel from a domain UserSettings entity.
func UserSettingsFromEntity(s *entity.UserSettings) *UserSettingsModel {
	var tier *string
	if s.PlanTier != nil {
		t := string(*s.PlanTier)
		tier = &t
	}

	return &UserSettingsModel{
		UserID:                s.UserID,
		Timezone:              s.Timezone,
		EmailEnabled:          s.EmailEnabled,
		PushEnabled:           s.PushEnabled,
		NotificationCopyEmail: s.NotificationCopyEmail,
		PlanTier:              tier,
		PremiumExpiresAt:      s.PremiumExpiresAt,
		UpdatedAt:             s.UpdatedAt,
	}
}
