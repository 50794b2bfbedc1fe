package persistence

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/payontime/backend/internal/application/adapter"
	"github.com/payontime/backend/internal/domain/entity"
	domainerror "github.com/payontime/backend/internal/domain/error"
	"github.com/payontime/backend/internal/integration/persistence/model"
)

// userSettingsRepository implements the adapter.UserSettingsRepository interface.
type userSettingsRepository struct {
	db *gorm.DB
}

// NewUserSettingsRepository creates a new user settings repository instance.
func NewUserSettingsRepository(db *gorm.DB) adapter.UserSettingsRepository {
	return &userSettingsRepository{
		db: db,
	}
}

// FindAll retrieves the settings of every user.
func (r *userSettingsRepository) FindAll(ctx context.Context) ([]*entity.UserSettings, error) {
	var settingsModels []model.UserSettingsModel
	if err := r.db.WithContext(ctx).Find(&settingsModels).Error; err != nil {
		return nil, err
	}

	settings := make([]*entity.UserSettings, len(settingsModels))
	for i := range settingsModels {
		settings[i] = settingsModels[i].ToEntity()
	}
	return settings, nil
}

// FindByUserID retrieves the settings of one user.
func (r *userSettingsRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.UserSettings, error) {
	var settingsModel model.UserSettingsModel
	result := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&settingsModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrSettingsNotFound
		}
		return nil, result.Error
	}
	return settingsModel.ToEntity(), nil
}

// Upsert writes every column. When the store lacks one of the optional columns the write is
// retried once without them, so a store that was not migrated still saves the core settings.
func (r *userSettingsRepository) Upsert(ctx context.Context, settings *entity.UserSettings) error {
	settingsModel := model.UserSettingsFromEntity(settings)

	err := r.upsert(ctx, settingsModel, nil)
	if err == nil || !isUnknownColumnError(err) {
		return err
	}

	slog.Warn("Settings store is missing optional columns, saving core settings only",
		"user_id", settings.UserID,
		"error", err,
	)
	return r.upsert(ctx, settingsModel, model.OptionalSettingsColumns)
}

func (r *userSettingsRepository) upsert(ctx context.Context, settingsModel *model.UserSettingsModel, omit []string) error {
	updates := []string{"timezone", "email_enabled", "updated_at"}
	for _, column := range model.OptionalSettingsColumns {
		if !contains(omit, column) {
			updates = append(updates, column)
		}
	}

	query := r.db.WithContext(ctx)
	if len(omit) > 0 {
		query = query.Omit(omit...)
	}
	return query.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns(updates),
	}).Create(settingsModel).Error
}

// isUnknownColumnError recognises the Postgres and SQLite messages for a missing column.
func isUnknownColumnError(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "does not exist") && strings.Contains(msg, "column") ||
		strings.Contains(msg, "no such column") ||
		strings.Contains(msg, "has no column named")
}

func contains(values []string, target string) bool {
	for _, v := range values {
		if v == target {
			return true
		}
	}
	return false
}
