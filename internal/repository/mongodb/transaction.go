package mongodb

import (
	"context"
	"errors"
	"time"

	"github.com/Behyna/collect-gateway/internal/model"
	"github.com/Behyna/collect-gateway/internal/repository"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Transaction struct {
	collection *mongo.Collection
}

func NewTransactionRepository(db *mongo.Database) repository.TransactionRepository {
	return &Transaction{collection: db.Collection(transactionsCollection)}
}

func (t *Transaction) Create(ctx context.Context, tx *model.Transaction) error {
	now := time.Now()
	if tx.CreatedAt.IsZero() {
		tx.CreatedAt = now
	}
	if tx.UpdatedAt.IsZero() {
		tx.UpdatedAt = now
	}

	_, err := t.collection.InsertOne(ctx, tx)
	return err
}

func (t *Transaction) ExistsByOrderID(ctx context.Context, orderID string) (bool, error) {
	count, err := t.collection.CountDocuments(ctx, bson.M{"order_id": orderID}, options.Count().SetLimit(1))
	if err != nil {
		return false, err
	}

	return count > 0, nil
}

func (t *Transaction) GetLatestByOrderID(ctx context.Context, orderID string) (*model.Transaction, error) {
	opts := options.FindOne().SetSort(bson.D{{Key: "created_at", Value: -1}})

	return t.findOne(ctx, bson.M{"order_id": orderID}, opts)
}

func (t *Transaction) GetByID(ctx context.Context, transactionID string) (*model.Transaction, error) {
	return t.findOne(ctx, bson.M{"_id": transactionID})
}

func (t *Transaction) MarkCallbackSent(ctx context.Context, transactionID string) error {
	update := bson.M{"$set": bson.M{"callback_sent": true, "updated_at": time.Now()}}

	result, err := t.collection.UpdateByID(ctx, transactionID, update)
	if err != nil {
		return err
	}

	if result.MatchedCount == 0 {
		return repository.ErrTransactionNotFound
	}

	return nil
}

func (t *Transaction) FindUnpublished(ctx context.Context, limit int) ([]model.Transaction, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: 1}}).
		SetLimit(int64(limit))

	cursor, err := t.collection.Find(ctx, bson.M{"published": false}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var txs []model.Transaction
	if err = cursor.All(ctx, &txs); err != nil {
		return nil, err
	}

	return txs, nil
}

func (t *Transaction) MarkPublished(ctx context.Context, transactionID string, publishedAt time.Time) error {
	update := bson.M{"$set": bson.M{
		"published":    true,
		"published_at": publishedAt,
		"updated_at":   time.Now(),
	}}

	_, err := t.collection.UpdateByID(ctx, transactionID, update)
	return err
}

func (t *Transaction) findOne(ctx context.Context, filter bson.M, opts ...*options.FindOneOptions) (*model.Transaction, error) {
	var tx model.Transaction

	err := t.collection.FindOne(ctx, filter, opts...).Decode(&tx)
	if err == nil {
		return &tx, nil
	}

	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, repository.ErrTransactionNotFound
	}

	return nil, err
}
