package repository

import (
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"gojobot/entity"
)

// CreateJobApplication inserts an application. Users may apply more
// than once, there is no duplicate check here.
func (m *MongoDB) CreateJobApplication(app *entity.JobApplication) error {
	if err := validate.Struct(app); err != nil {
		return fmt.Errorf("job application validation: %w", err)
	}

	connection, err := m.connect()
	if err != nil {
		return err
	}
	defer m.disconnect(connection)

	collection := connection.Database(m.database).Collection(jobsCollection)
	if _, err := collection.InsertOne(m.ctx, app); err != nil {
		return fmt.Errorf("mongodb insert error: %w", err)
	}
	return nil
}

func (m *MongoDB) ListJobApplications() ([]entity.JobApplication, error) {
	return m.findJobApplications(bson.D{})
}

func (m *MongoDB) GetJobApplicationsByUser(telegramId int64) ([]entity.JobApplication, error) {
	return m.findJobApplications(bson.D{{Key: "telegram_id", Value: telegramId}})
}

// UpdateJobStatus moves an application to a new review status and
// returns the updated record.
func (m *MongoDB) UpdateJobStatus(id, status string) (*entity.JobApplication, error) {
	connection, err := m.connect()
	if err != nil {
		return nil, err
	}
	defer m.disconnect(connection)

	collection := connection.Database(m.database).Collection(jobsCollection)
	update := bson.M{"$set": bson.M{
		"status":     status,
		"updated_at": time.Now(),
	}}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var app entity.JobApplication
	err = collection.FindOneAndUpdate(m.ctx, bson.D{{Key: "id", Value: id}}, update, opts).Decode(&app)
	if err != nil {
		return nil, m.findError(err)
	}
	return &app, nil
}

func (m *MongoDB) findJobApplications(filter bson.D) ([]entity.JobApplication, error) {
	connection, err := m.connect()
	if err != nil {
		return nil, err
	}
	defer m.disconnect(connection)

	collection := connection.Database(m.database).Collection(jobsCollection)
	cursor, err := collection.Find(m.ctx, filter, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("mongodb find error: %w", err)
	}
	defer cursor.Close(m.ctx)

	var apps []entity.JobApplication
	if err := cursor.All(m.ctx, &apps); err != nil {
		return nil, fmt.Errorf("mongodb cursor error: %w", err)
	}
	return apps, nil
}
