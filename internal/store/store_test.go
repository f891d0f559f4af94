package store

import (
	"testing"

	"mygamelist/backend/internal/models"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// testDB opens a fresh in-memory database with the full schema.
func testDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}

	if err := db.AutoMigrate(&models.User{}, &models.Game{}, &models.UserGame{}); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	return db
}

func seedGame(t *testing.T, db *gorm.DB, title string) models.Game {
	t.Helper()
	game := models.Game{Title: title, Genre: "RPG", Developer: "studio"}
	if err := db.Create(&game).Error; err != nil {
		t.Fatalf("seed game %q: %v", title, err)
	}
	return game
}

func seedUser(t *testing.T, db *gorm.DB, username, email string) models.User {
	t.Helper()
	user := models.User{Username: username, Email: email, PasswordHash: "x"}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("seed user %q: %v", username, err)
	}
	return user
}
