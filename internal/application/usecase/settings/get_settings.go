// Package settings contains notification settings use cases.
package settings

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/payontime/backend/internal/application/adapter"
	"github.com/payontime/backend/internal/domain/entity"
	domainerror "github.com/payontime/backend/internal/domain/error"
)

// GetSettingsInput represents the input for reading settings.
type GetSettingsInput struct {
	UserID uuid.UUID
}

// SettingsOutput represents a user's settings together with the profile fields shown next to them.
type SettingsOutput struct {
	Settings    *entity.UserSettings
	DisplayName string
	IsPremium   bool
}

// GetSettingsUseCase returns the caller's settings, or the defaults when none were saved.
type GetSettingsUseCase struct {
	settingsRepo adapter.UserSettingsRepository
	userRepo     adapter.UserRepository
	now          func() time.Time
}

// NewGetSettingsUseCase creates a new GetSettingsUseCase instance.
func NewGetSettingsUseCase(
	settingsRepo adapter.UserSettingsRepository,
	userRepo adapter.UserRepository,
) *GetSettingsUseCase {
	return &GetSettingsUseCase{
		settingsRepo: settingsRepo,
		userRepo:     userRepo,
		now:          time.Now,
	}
}

// Execute reads the settings.
func (uc *GetSettingsUseCase) Execute(ctx context.Context, input GetSettingsInput) (*SettingsOutput, error) {
	settings, err := loadSettings(ctx, uc.settingsRepo, input.UserID)
	if err != nil {
		return nil, err
	}

	displayName := ""
	user, err := uc.userRepo.FindByID(ctx, input.UserID)
	switch {
	case err == nil:
		displayName = user.Name
	case !errors.Is(err, domainerror.ErrUserNotFound):
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	return &SettingsOutput{
		Settings:    settings,
		DisplayName: displayName,
		IsPremium:   settings.IsPremium(uc.now()),
	}, nil
}

func loadSettings(ctx context.Context, repo adapter.UserSettingsRepository, userID uuid.UUID) (*entity.UserSettings, error) {
	settings, err := repo.FindByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, domainerror.ErrSettingsNotFound) {
			return entity.DefaultUserSettings(userID), nil
		}
		return nil, fmt.Errorf("failed to get settings: %w", err)
	}
	return settings, nil
}
