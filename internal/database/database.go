package database

import (
	"log"
	"os"
	"time"

	"mygamelist/backend/internal/models"

	logrus "github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Connect opens the connection pool and runs migrations. The returned handle
// is the process-wide pool; callers inject it into the stores and close it
// with Close on shutdown.
func Connect(dsn string) *gorm.DB {
	// Configure GORM logger
	customLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags), // io writer
		logger.Config{
			SlowThreshold:             200 * time.Millisecond, // Slow SQL threshold
			LogLevel:                  logger.Warn,            // Log level
			IgnoreRecordNotFoundError: true,                   // Ignore ErrRecordNotFound error for logger
			Colorful:                  true,                   // Enable color
		},
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:         customLogger,
		TranslateError: true,
	})
	if err != nil {
		logrus.Fatalf("Failed to connect to database: %v", err)
	}

	logrus.Info("Database connection established.")

	if err := Migrate(db); err != nil {
		logrus.Fatalf("Failed to migrate database: %v", err)
	}

	logrus.Info("Database migrated successfully.")

	return db
}

// Migrate creates or updates the schema for all models.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&models.User{}, &models.Game{}, &models.UserGame{})
}

// Close releases the underlying connection pool.
func Close(db *gorm.DB) {
	sqlDB, err := db.DB()
	if err != nil {
		logrus.Warnf("Failed to retrieve underlying pool: %v", err)
		return
	}
	if err := sqlDB.Close(); err != nil {
		logrus.Warnf("Failed to close database pool: %v", err)
	}
}
