package db

import (
	"testing"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func TestMigrateAndHealthCheck(t *testing.T) {
	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	database := Wrap(gdb)

	if err := database.Migrate(); err != nil {
		t.Fatalf("unexpected migration error: %v", err)
	}
	for _, table := range []string{"users", "user_settings", "payments", "notification_log"} {
		if !gdb.Migrator().HasTable(table) {
			t.Errorf("expected table %s to exist", table)
		}
	}
	if !database.HealthCheck() {
		t.Error("expected healthy database")
	}

	if err := database.Close(); err != nil {
		t.Fatalf("unexpected close error: %v", err)
	}
	if database.HealthCheck() {
		t.Error("expected closed database to be unhealthy")
	}
}
