package repository

import (
	"petmarket/internal/domain"

	"gorm.io/gorm"
)

// AutoMigrate creates or updates the full schema. Used by the seed
// command and by tests running against in-memory sqlite.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&userModel{},
		&domain.Pet{},
		&domain.Service{},
		&bookingModel{},
		&domain.Review{},
		&domain.PaymentRecord{},
		&domain.Conversation{},
		&domain.Message{},
		&domain.Notification{},
	)
}
