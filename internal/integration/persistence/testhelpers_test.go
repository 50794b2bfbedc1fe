package persistence

import (
	"database/sql"
	"testing"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/payontime/backend/internal/integration/persistence/model"
)

// newTestDB opens a private in-memory SQLite database. A single connection keeps it alive.
func newTestDB(t *testing.T, models ...interface{}) *gorm.DB {
	t.Helper()

	sqlDB, err := sql.Open("sqlite", "file::memory:")
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	db, err := gorm.Open(sqlite.Dialector{Conn: sqlDB}, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open gorm: %v", err)
	}

	if len(models) == 0 {
		models = []interface{}{
			&model.PaymentModel{},
			&model.UserSettingsModel{},
			&model.NotificationLogModel{},
			&model.UserModel{},
		}
	}
	if err := db.AutoMigrate(models...); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return db
}

func strPtr(s string) *string { return &s }

func intPtr(i int) *int { return &i }
