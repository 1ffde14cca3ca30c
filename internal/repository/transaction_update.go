package repository

import (
	"context"

	"github.com/Behyna/collect-gateway/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type TransactionUpdateRepository interface {
	Upsert(ctx context.Context, update *model.TransactionUpdate) error
}

type TransactionUpdate struct {
	db *gorm.DB
}

func NewTransactionUpdateRepository(db *gorm.DB) TransactionUpdateRepository {
	return &TransactionUpdate{db: db}
}

func (r *TransactionUpdate) Upsert(ctx context.Context, update *model.TransactionUpdate) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "order_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"payload", "updated_at"}),
		}).
		Create(update).Error
}
