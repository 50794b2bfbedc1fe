package settings

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/payontime/backend/internal/application/adapter"
	"github.com/payontime/backend/internal/domain/entity"
	domainerror "github.com/payontime/backend/internal/domain/error"
	"github.com/payontime/backend/internal/domain/valueobject"
)

// MaxDisplayNameLength is the maximum allowed length for display names.
const MaxDisplayNameLength = 100

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// UpdateSettingsInput represents the submitted settings form. Every field is replaced;
// a nil Timezone keeps the stored one and a nil DisplayName leaves the profile untouched.
type UpdateSettingsInput struct {
	UserID                uuid.UUID
	Email                 string
	Timezone              *string
	EmailEnabled          bool
	PushEnabled           bool
	NotificationCopyEmail string
	PlanTier              string
	DisplayName           *string
}

// UpdateSettingsUseCase validates and stores the caller's settings.
type UpdateSettingsUseCase struct {
	settingsRepo adapter.UserSettingsRepository
	userRepo     adapter.UserRepository
	now          func() time.Time
}

// NewUpdateSettingsUseCase creates a new UpdateSettingsUseCase instance.
func NewUpdateSettingsUseCase(
	settingsRepo adapter.UserSettingsRepository,
	userRepo adapter.UserRepository,
) *UpdateSettingsUseCase {
	return &UpdateSettingsUseCase{
		settingsRepo: settingsRepo,
		userRepo:     userRepo,
		now:          time.Now,
	}
}

// Execute performs the settings update.
func (uc *UpdateSettingsUseCase) Execute(ctx context.Context, input UpdateSettingsInput) (*SettingsOutput, error) {
	current, err := loadSettings(ctx, uc.settingsRepo, input.UserID)
	if err != nil {
		return nil, err
	}
	now := uc.now().UTC()

	timezone := current.Timezone
	if input.Timezone != nil {
		timezone = strings.TrimSpace(*input.Timezone)
		if _, ok := valueobject.LoadLocation(timezone, nil); !ok {
			return nil, domainerror.NewSettingsError(
				domainerror.ErrCodeInvalidTimezone,
				fmt.Sprintf("unknown timezone %q", timezone),
				domainerror.ErrInvalidTimezone,
			)
		}
	}

	var copyEmail *string
	if trimmed := strings.TrimSpace(input.NotificationCopyEmail); trimmed != "" {
		if !emailRegex.MatchString(trimmed) {
			return nil, domainerror.NewSettingsError(
				domainerror.ErrCodeInvalidCopyEmail,
				"invalid notification copy email format",
				domainerror.ErrInvalidCopyEmail,
			)
		}
		copyEmail = &trimmed
	}

	tier := entity.PlanTier(strings.TrimSpace(input.PlanTier))
	if tier == "" {
		tier = entity.PlanTierFree
	}
	if tier != entity.PlanTierFree && tier != entity.PlanTierPremium {
		return nil, domainerror.NewSettingsError(
			domainerror.ErrCodeInvalidPlanTier,
			"plan tier must be 'free' or 'premium'",
			domainerror.ErrInvalidPlanTier,
		)
	}

	var displayName *string
	if input.DisplayName != nil {
		name := strings.TrimSpace(*input.DisplayName)
		if len(name) > MaxDisplayNameLength {
			return nil, domainerror.NewSettingsError(
				domainerror.ErrCodeInvalidDisplayName,
				fmt.Sprintf("display name must not exceed %d characters", MaxDisplayNameLength),
				domainerror.ErrInvalidDisplayName,
			)
		}
		displayName = &name
	}

	pushEnabled := input.PushEnabled
	updated := &entity.UserSettings{
		UserID:                input.UserID,
		Timezone:              timezone,
		EmailEnabled:          input.EmailEnabled,
		PushEnabled:           &pushEnabled,
		NotificationCopyEmail: copyEmail,
		PlanTier:              &tier,
		PremiumExpiresAt:      PremiumExpiry(tier, current.PremiumExpiresAt, now),
		UpdatedAt:             now,
	}

	if err := uc.settingsRepo.Upsert(ctx, updated); err != nil {
		return nil, fmt.Errorf("failed to save settings: %w", err)
	}

	resolvedName, err := uc.saveDisplayName(ctx, input, displayName, now)
	if err != nil {
		return nil, err
	}

	slog.Info("Settings updated",
		"user_id", input.UserID,
		"email_enabled", updated.EmailEnabled,
		"plan_tier", tier,
	)

	return &SettingsOutput{
		Settings:    updated,
		DisplayName: resolvedName,
		IsPremium:   updated.IsPremium(now),
	}, nil
}

// saveDisplayName stores the display name on the user mirror and returns the resulting name.
func (uc *UpdateSettingsUseCase) saveDisplayName(ctx context.Context, input UpdateSettingsInput, name *string, now time.Time) (string, error) {
	user, err := uc.userRepo.FindByID(ctx, input.UserID)
	switch {
	case err == nil:
	case errors.Is(err, domainerror.ErrUserNotFound):
		user = &entity.User{ID: input.UserID, Email: input.Email, CreatedAt: now}
	default:
		return "", fmt.Errorf("failed to find user: %w", err)
	}

	if name == nil {
		return user.Name, nil
	}

	user.Name = *name
	if input.Email != "" {
		user.Email = input.Email
	}
	user.UpdatedAt = now
	if err := uc.userRepo.Upsert(ctx, user); err != nil {
		return "", fmt.Errorf("failed to save display name: %w", err)
	}
	return user.Name, nil
}

// PremiumExpiry resolves the expiry stored with a plan tier. Activating premium grants one month
// unless an expiry is already set; downgrading keeps an expiry that has not passed yet.
func PremiumExpiry(tier entity.PlanTier, existing *time.Time, now time.Time) *time.Time {
	if tier == entity.PlanTierPremium {
		if existing != nil {
			return existing
		}
		expiry := now.AddDate(0, 1, 0)
		return &expiry
	}
	if existing != nil && !existing.Before(now) {
		return existing
	}
	return nil
}
