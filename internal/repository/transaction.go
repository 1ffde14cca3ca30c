package repository

import (
	"context"
	"errors"
	"time"

	"github.com/Behyna/collect-gateway/internal/model"
	"gorm.io/gorm"
)

var ErrTransactionNotFound = errors.New("TRANSACTION_NOT_FOUND")

type TransactionRepository interface {
	Create(ctx context.Context, tx *model.Transaction) error
	ExistsByOrderID(ctx context.Context, orderID string) (bool, error)
	GetLatestByOrderID(ctx context.Context, orderID string) (*model.Transaction, error)
	GetByID(ctx context.Context, transactionID string) (*model.Transaction, error)
	MarkCallbackSent(ctx context.Context, transactionID string) error
	FindUnpublished(ctx context.Context, limit int) ([]model.Transaction, error)
	MarkPublished(ctx context.Context, transactionID string, publishedAt time.Time) error
}

type Transaction struct {
	db *gorm.DB
}

func NewTransactionRepository(db *gorm.DB) TransactionRepository {
	return &Transaction{db: db}
}

func (t *Transaction) Create(ctx context.Context, tx *model.Transaction) error {
	return t.db.WithContext(ctx).Create(tx).Error
}

func (t *Transaction) ExistsByOrderID(ctx context.Context, orderID string) (bool, error) {
	var count int64

	err := t.db.WithContext(ctx).Model(&model.Transaction{}).
		Where("order_id = ?", orderID).
		Limit(1).
		Count(&count).Error
	if err != nil {
		return false, err
	}

	return count > 0, nil
}

func (t *Transaction) GetLatestByOrderID(ctx context.Context, orderID string) (*model.Transaction, error) {
	var tx model.Transaction

	err := t.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		Order("created_at DESC").
		First(&tx).Error
	if err == nil {
		return &tx, nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrTransactionNotFound
	}

	return nil, err
}

func (t *Transaction) GetByID(ctx context.Context, transactionID string) (*model.Transaction, error) {
	var tx model.Transaction

	err := t.db.WithContext(ctx).Where("transaction_id = ?", transactionID).First(&tx).Error
	if err == nil {
		return &tx, nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrTransactionNotFound
	}

	return nil, err
}

func (t *Transaction) MarkCallbackSent(ctx context.Context, transactionID string) error {
	result := t.db.WithContext(ctx).Model(&model.Transaction{}).
		Where("transaction_id = ?", transactionID).
		Updates(map[string]interface{}{
			"callback_sent": true,
			"updated_at":    time.Now(),
		})

	if result.Error != nil {
		return result.Error
	}

	// MySQL reports only changed rows, so zero can still mean a match.
	if result.RowsAffected == 0 {
		var count int64
		err := t.db.WithContext(ctx).Model(&model.Transaction{}).
			Where("transaction_id = ?", transactionID).
			Count(&count).Error
		if err != nil {
			return err
		}

		if count == 0 {
			return ErrTransactionNotFound
		}
	}

	return nil
}

func (t *Transaction) FindUnpublished(ctx context.Context, limit int) ([]model.Transaction, error) {
	var txs []model.Transaction

	err := t.db.WithContext(ctx).
		Where("published = ?", false).
		Order("created_at ASC").
		Limit(limit).
		Find(&txs).Error
	if err != nil {
		return nil, err
	}

	return txs, nil
}

func (t *Transaction) MarkPublished(ctx context.Context, transactionID string, publishedAt time.Time) error {
	return t.db.WithContext(ctx).Model(&model.Transaction{}).
		Where("transaction_id = ?", transactionID).
		Updates(map[string]interface{}{
			"published":    true,
			"published_at": publishedAt,
			"updated_at":   time.Now(),
		}).Error
}
