package mongodb

import (
	"context"

	"github.com/Behyna/collect-gateway/internal/model"
	"github.com/Behyna/collect-gateway/internal/repository"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type TransactionUpdate struct {
	collection *mongo.Collection
}

func NewTransactionUpdateRepository(db *mongo.Database) repository.TransactionUpdateRepository {
	return &TransactionUpdate{collection: db.Collection(transactionUpdatesCollection)}
}

// Upsert keeps the received bytes in raw. When the payload also maps onto
// BSON it is stored as a native document under payload so it stays queryable.
func (r *TransactionUpdate) Upsert(ctx context.Context, update *model.TransactionUpdate) error {
	doc := bson.D{
		{Key: "_id", Value: update.OrderID},
		{Key: "raw", Value: string(update.Payload)},
		{Key: "updated_at", Value: update.UpdatedAt},
	}

	var payload bson.D
	if err := bson.UnmarshalExtJSON(update.Payload, false, &payload); err == nil {
		doc = append(doc, bson.E{Key: "payload", Value: payload})
	}

	_, err := r.collection.ReplaceOne(ctx,
		bson.M{"_id": update.OrderID},
		doc,
		options.Replace().SetUpsert(true),
	)
	return err
}
