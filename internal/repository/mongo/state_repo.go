package mongo

import (
	"asura/tracker/internal/repository"
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const stateCollectionName = "states"

// mongoStateRepository keeps one activity document per user, keyed by user ID.
// The document is stored as a native BSON sub-document so it stays queryable.
type mongoStateRepository struct {
	collection *mongo.Collection
}

func NewMongoStateRepository(db *mongo.Database) repository.StateRepository {
	return &mongoStateRepository{
		collection: db.Collection(stateCollectionName),
	}
}

type stateDocument struct {
	UserID    string    `bson:"_id"`
	Data      bson.Raw  `bson:"data"`
	UpdatedAt time.Time `bson:"updatedAt"`
}

func (r *mongoStateRepository) Get(ctx context.Context, userID string) ([]byte, error) {
	var doc stateDocument
	err := r.collection.FindOne(ctx, bson.M{"_id": userID}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	// Relaxed extended JSON renders plain numbers, strings and arrays as ordinary JSON.
	out, err := bson.MarshalExtJSON(doc.Data, false, false)
	if err != nil {
		return nil, fmt.Errorf("render state: %w", err)
	}
	return out, nil
}

func (r *mongoStateRepository) Put(ctx context.Context, userID string, data []byte) error {
	body, err := toBSON(data)
	if err != nil {
		return err
	}
	update := bson.M{"$set": bson.M{"data": body, "updatedAt": time.Now().UTC()}}
	_, err = r.collection.UpdateOne(ctx, bson.M{"_id": userID}, update, options.Update().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("%w: %v", repository.ErrUpdateFailed, err)
	}
	return nil
}

func (r *mongoStateRepository) Seed(ctx context.Context, userID string, data []byte) error {
	body, err := toBSON(data)
	if err != nil {
		return err
	}
	update := bson.M{"$setOnInsert": bson.M{"data": body, "updatedAt": time.Now().UTC()}}
	_, err = r.collection.UpdateOne(ctx, bson.M{"_id": userID}, update, options.Update().SetUpsert(true))
	return err
}

func toBSON(data []byte) (bson.D, error) {
	var body bson.D
	if err := bson.UnmarshalExtJSON(data, false, &body); err != nil {
		return nil, fmt.Errorf("state is not a JSON object: %w", err)
	}
	return body, nil
}
