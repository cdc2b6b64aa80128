package repository

import (
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"gojobot/entity"
)

// CreateTraining inserts a new enrollment. One per user, a second
// attempt returns ErrDuplicate.
func (m *MongoDB) CreateTraining(tr *entity.Training) error {
	if err := validate.Struct(tr); err != nil {
		return fmt.Errorf("training validation: %w", err)
	}

	connection, err := m.connect()
	if err != nil {
		return err
	}
	defer m.disconnect(connection)

	collection := connection.Database(m.database).Collection(trainingsCollection)

	count, err := collection.CountDocuments(m.ctx, bson.D{{Key: "telegram_id", Value: tr.TelegramId}})
	if err != nil {
		return fmt.Errorf("mongodb count error: %w", err)
	}
	if count > 0 {
		return ErrDuplicate
	}

	if _, err := collection.InsertOne(m.ctx, tr); err != nil {
		return fmt.Errorf("mongodb insert error: %w", err)
	}
	return nil
}

func (m *MongoDB) GetTraining(telegramId int64) (*entity.Training, error) {
	connection, err := m.connect()
	if err != nil {
		return nil, err
	}
	defer m.disconnect(connection)

	collection := connection.Database(m.database).Collection(trainingsCollection)

	var tr entity.Training
	err = collection.FindOne(m.ctx, bson.D{{Key: "telegram_id", Value: telegramId}}).Decode(&tr)
	if err != nil {
		return nil, m.findError(err)
	}
	return &tr, nil
}

func (m *MongoDB) SubmitTrainingPayment(telegramId int64, method, proof string) error {
	connection, err := m.connect()
	if err != nil {
		return err
	}
	defer m.disconnect(connection)

	collection := connection.Database(m.database).Collection(trainingsCollection)
	update := bson.M{"$set": bson.M{
		"payment_method": method,
		"payment_proof":  proof,
		"is_paid":        false,
		"payment_status": entity.StatusPending,
		"updated_at":     time.Now(),
	}}

	res, err := collection.UpdateOne(m.ctx, bson.D{{Key: "telegram_id", Value: telegramId}}, update)
	if err != nil {
		return fmt.Errorf("mongodb update error: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (m *MongoDB) PendingTrainingPayments() ([]entity.Training, error) {
	return m.findTrainings(bson.D{
		{Key: "payment_proof", Value: bson.D{{Key: "$ne", Value: ""}}},
		{Key: "payment_status", Value: entity.StatusPending},
	})
}

func (m *MongoDB) ListTrainings() ([]entity.Training, error) {
	return m.findTrainings(bson.D{})
}

func (m *MongoDB) findTrainings(filter bson.D) ([]entity.Training, error) {
	connection, err := m.connect()
	if err != nil {
		return nil, err
	}
	defer m.disconnect(connection)

	collection := connection.Database(m.database).Collection(trainingsCollection)
	cursor, err := collection.Find(m.ctx, filter, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("mongodb find error: %w", err)
	}
	defer cursor.Close(m.ctx)

	var trs []entity.Training
	if err := cursor.All(m.ctx, &trs); err != nil {
		return nil, fmt.Errorf("mongodb cursor error: %w", err)
	}
	return trs, nil
}

func (m *MongoDB) ReviewTrainingPayment(id string, approved bool) (*entity.Training, error) {
	connection, err := m.connect()
	if err != nil {
		return nil, err
	}
	defer m.disconnect(connection)

	status := entity.StatusRejected
	if approved {
		status = entity.StatusApproved
	}

	collection := connection.Database(m.database).Collection(trainingsCollection)
	update := bson.M{"$set": bson.M{
		"payment_status": status,
		"status":         status,
		"is_paid":        approved,
		"updated_at":     time.Now(),
	}}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var tr entity.Training
	err = collection.FindOneAndUpdate(m.ctx, bson.D{{Key: "id", Value: id}}, update, opts).Decode(&tr)
	if err != nil {
		return nil, m.findError(err)
	}
	return &tr, nil
}
