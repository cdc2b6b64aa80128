package repository

import (
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"gojobot/entity"
)

// CreateRegistration inserts a new registration. One per user, a second
// attempt returns ErrDuplicate.
func (m *MongoDB) CreateRegistration(reg *entity.Registration) error {
	if err := validate.Struct(reg); err != nil {
		return fmt.Errorf("registration validation: %w", err)
	}

	connection, err := m.connect()
	if err != nil {
		return err
	}
	defer m.disconnect(connection)

	collection := connection.Database(m.database).Collection(registrationsCollection)

	count, err := collection.CountDocuments(m.ctx, bson.D{{Key: "telegram_id", Value: reg.TelegramId}})
	if err != nil {
		return fmt.Errorf("mongodb count error: %w", err)
	}
	if count > 0 {
		return ErrDuplicate
	}

	if _, err := collection.InsertOne(m.ctx, reg); err != nil {
		return fmt.Errorf("mongodb insert error: %w", err)
	}
	return nil
}

func (m *MongoDB) GetRegistration(telegramId int64) (*entity.Registration, error) {
	connection, err := m.connect()
	if err != nil {
		return nil, err
	}
	defer m.disconnect(connection)

	collection := connection.Database(m.database).Collection(registrationsCollection)

	var reg entity.Registration
	err = collection.FindOne(m.ctx, bson.D{{Key: "telegram_id", Value: telegramId}}).Decode(&reg)
	if err != nil {
		return nil, m.findError(err)
	}
	return &reg, nil
}

func (m *MongoDB) GetRegistrationByID(id string) (*entity.Registration, error) {
	connection, err := m.connect()
	if err != nil {
		return nil, err
	}
	defer m.disconnect(connection)

	collection := connection.Database(m.database).Collection(registrationsCollection)

	var reg entity.Registration
	err = collection.FindOne(m.ctx, bson.D{{Key: "id", Value: id}}).Decode(&reg)
	if err != nil {
		return nil, m.findError(err)
	}
	return &reg, nil
}

// SubmitRegistrationPayment attaches proof of payment and puts the
// record back to pending. Resubmission always resets approval, an
// earlier approved payment does not survive a new proof.
func (m *MongoDB) SubmitRegistrationPayment(telegramId int64, method, proof string) error {
	connection, err := m.connect()
	if err != nil {
		return err
	}
	defer m.disconnect(connection)

	collection := connection.Database(m.database).Collection(registrationsCollection)
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

// PendingRegistrationPayments lists registrations with submitted proof
// still awaiting review.
func (m *MongoDB) PendingRegistrationPayments() ([]entity.Registration, error) {
	return m.findRegistrations(bson.D{
		{Key: "payment_proof", Value: bson.D{{Key: "$ne", Value: ""}}},
		{Key: "payment_status", Value: entity.StatusPending},
	})
}

func (m *MongoDB) ListRegistrations() ([]entity.Registration, error) {
	return m.findRegistrations(bson.D{})
}

func (m *MongoDB) findRegistrations(filter bson.D) ([]entity.Registration, error) {
	connection, err := m.connect()
	if err != nil {
		return nil, err
	}
	defer m.disconnect(connection)

	collection := connection.Database(m.database).Collection(registrationsCollection)
	cursor, err := collection.Find(m.ctx, filter, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("mongodb find error: %w", err)
	}
	defer cursor.Close(m.ctx)

	var regs []entity.Registration
	if err := cursor.All(m.ctx, &regs); err != nil {
		return nil, fmt.Errorf("mongodb cursor error: %w", err)
	}
	return regs, nil
}

// ReviewRegistrationPayment records the admin verdict and returns the
// updated record so the user can be notified.
func (m *MongoDB) ReviewRegistrationPayment(id string, approved bool) (*entity.Registration, error) {
	connection, err := m.connect()
	if err != nil {
		return nil, err
	}
	defer m.disconnect(connection)

	status := entity.StatusRejected
	if approved {
		status = entity.StatusApproved
	}

	collection := connection.Database(m.database).Collection(registrationsCollection)
	update := bson.M{"$set": bson.M{
		"payment_status": status,
		"status":         status,
		"is_paid":        approved,
		"updated_at":     time.Now(),
	}}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var reg entity.Registration
	err = collection.FindOneAndUpdate(m.ctx, bson.D{{Key: "id", Value: id}}, update, opts).Decode(&reg)
	if err != nil {
		return nil, m.findError(err)
	}
	return &reg, nil
}
