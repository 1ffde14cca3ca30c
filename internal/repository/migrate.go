package repository

import (
	"github.com/Behyna/collect-gateway/internal/model"
	"gorm.io/gorm"
)

func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.Transaction{},
		&model.CallbackRegistration{},
		&model.TransactionUpdate{},
	)
}
