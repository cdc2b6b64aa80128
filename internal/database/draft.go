package repository

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"gojobot/bot/flow"
)

// SaveDraft persists a user's in-progress flow draft.
func (m *MongoDB) SaveDraft(ctx context.Context, d *flow.Draft) error {
	connection, err := m.connect()
	if err != nil {
		return err
	}
	defer m.disconnect(connection)

	collection := connection.Database(m.database).Collection(draftsCollection)

	d.UpdatedAt = time.Now()

	filter := bson.D{{Key: "user_id", Value: d.UserID}}
	update := bson.D{{Key: "$set", Value: d}}
	opts := options.Update().SetUpsert(true)

	_, err = collection.UpdateOne(ctx, filter, update, opts)
	return err
}

// LoadDraft retrieves a user's flow draft, nil when there is none.
func (m *MongoDB) LoadDraft(ctx context.Context, userID int64) (*flow.Draft, error) {
	connection, err := m.connect()
	if err != nil {
		return nil, err
	}
	defer m.disconnect(connection)

	collection := connection.Database(m.database).Collection(draftsCollection)

	var d flow.Draft
	err = collection.FindOne(ctx, bson.D{{Key: "user_id", Value: userID}}).Decode(&d)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}

	return &d, nil
}

// DeleteDraft removes a user's flow draft.
func (m *MongoDB) DeleteDraft(ctx context.Context, userID int64) error {
	connection, err := m.connect()
	if err != nil {
		return err
	}
	defer m.disconnect(connection)

	collection := connection.Database(m.database).Collection(draftsCollection)

	_, err = collection.DeleteOne(ctx, bson.D{{Key: "user_id", Value: userID}})
	return err
}
