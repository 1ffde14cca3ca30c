package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

const (
	transactionsCollection       = "transactions"
	callbacksCollection          = "callbacks"
	transactionUpdatesCollection = "transaction_updates"
)

// EnsureIndexes creates the secondary indexes of the transactions collection.
// order_id is deliberately not unique.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "order_id", Value: 1}, {Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "published", Value: 1}, {Key: "created_at", Value: 1}}},
	}

	if _, err := db.Collection(transactionsCollection).Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}

	return nil
}
