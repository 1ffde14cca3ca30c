package model

import (
	"time"

	"gorm.io/datatypes"
)

// TransactionUpdate is an externally pushed status payload kept as received.
type TransactionUpdate struct {
	OrderID   string         `gorm:"column:order_id;primaryKey;type:varchar(255)"`
	Payload   datatypes.JSON `gorm:"column:payload;type:json;not null"`
	UpdatedAt time.Time      `gorm:"column:updated_at"`
}

func (TransactionUpdate) TableName() string {
	return "transaction_updates"
}
