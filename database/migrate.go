package database

import (
	"agrihub_backend/internal/models"

	"gorm.io/gorm"
)

// Migrate runs the schema migration for all models.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.RefreshToken{},
		&models.Listing{},
		&models.Booking{},
		&models.Conversation{},
		&models.Message{},
		&models.PaymentTransaction{},
		&models.Review{},
	)
}
