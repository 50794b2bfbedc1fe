package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/payontime/backend/internal/domain/entity"
)

// UserSettingsRepository defines the interface for notification settings persistence.
type UserSettingsRepository interface {
	// FindAll returns the settings of every user who saved any.
	FindAll(ctx context.Context) ([]*entity.UserSettings, error)

	// FindByUserID returns the user's settings, or domainerror.ErrSettingsNotFound.
	FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.UserSettings, error)

	// Upsert creates or replaces the user's settings. Optional fields the store cannot hold are dropped.
	Upsert(ctx context.Context, settings *entity.UserSettings) error
}
