package mongodb

import (
	"context"
	"errors"

	"github.com/Behyna/collect-gateway/internal/model"
	"github.com/Behyna/collect-gateway/internal/repository"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Callback struct {
	collection *mongo.Collection
}

func NewCallbackRepository(db *mongo.Database) repository.CallbackRepository {
	return &Callback{collection: db.Collection(callbacksCollection)}
}

func (c *Callback) Save(ctx context.Context, registration *model.CallbackRegistration) error {
	registration.ID = model.CallbackRegistrationID

	_, err := c.collection.ReplaceOne(ctx,
		bson.M{"_id": model.CallbackRegistrationID},
		registration,
		options.Replace().SetUpsert(true),
	)
	return err
}

func (c *Callback) Get(ctx context.Context) (*model.CallbackRegistration, error) {
	var registration model.CallbackRegistration

	err := c.collection.FindOne(ctx, bson.M{"_id": model.CallbackRegistrationID}).Decode(&registration)
	if err == nil {
		return &registration, nil
	}

	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, repository.ErrCallbackNotFound
	}

	return nil, err
}
