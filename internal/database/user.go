package repository

import (
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"gojobot/entity"
)

func (m *MongoDB) UpsertUser(user entity.User) error {
	if err := validate.Struct(user); err != nil {
		return fmt.Errorf("user validation: %w", err)
	}

	connection, err := m.connect()
	if err != nil {
		return err
	}
	defer m.disconnect(connection)

	user.LastSeen = time.Now()

	collection := connection.Database(m.database).Collection(usersCollection)
	filter := bson.D{{Key: "telegram_id", Value: user.TelegramId}}
	update := bson.M{"$set": user}

	_, err = collection.UpdateOne(m.ctx, filter, update, options.Update().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("mongodb upsert error: %w", err)
	}
	return nil
}

func (m *MongoDB) GetUser(telegramId int64) (*entity.User, error) {
	connection, err := m.connect()
	if err != nil {
		return nil, err
	}
	defer m.disconnect(connection)

	collection := connection.Database(m.database).Collection(usersCollection)
	filter := bson.D{{Key: "telegram_id", Value: telegramId}}

	var user entity.User
	err = collection.FindOne(m.ctx, filter).Decode(&user)
	if err != nil {
		return nil, m.findError(err)
	}

	return &user, nil
}
