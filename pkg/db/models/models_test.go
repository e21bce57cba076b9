package models

import (
	"testing"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/scootly/scootly-backend/pkg/enums"
)

// The schema must stay portable: sqlite backs the service test suites while
// Postgres owns defaults via the goose migrations, so model tags cannot lean
// on Postgres-only functions.
func TestModelsMigrateOnSQLite(t *testing.T) {
	dsn := "file:models_" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(&User{}, &Store{}, &Scooter{}, &Booking{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	user := &User{ID: uuid.New(), Email: "rider@example.com", PasswordHash: "x", Name: "Rider", Role: enums.RoleRider}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("insert user: %v", err)
	}
	var got User
	if err := db.First(&got, "id = ?", user.ID).Error; err != nil {
		t.Fatalf("load user: %v", err)
	}
	if got.ID != user.ID {
		t.Fatalf("expected id %s, got %s", user.ID, got.ID)
	}
}
