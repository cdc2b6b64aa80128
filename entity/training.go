package entity

import (
	"time"

	"github.com/google/uuid"
)

// Training is the finished record of the training enrollment flow.
// One per user. Exactly one of Courses / OnlineTraining is non-empty,
// matching the mode the user chose.
type Training struct {
	ID             string    `json:"id" bson:"id"`
	TelegramId     int64     `json:"telegram_id" bson:"telegram_id" validate:"required"`
	Courses        []string  `json:"courses" bson:"courses"`
	OnlineTraining []string  `json:"online_training" bson:"online_training"`
	TrainingFee    int       `json:"training_fee" bson:"training_fee"`
	Status         string    `json:"status" bson:"status" validate:"required,oneof=pending approved rejected"`
	Payment        `bson:",inline"`
	CreatedAt      time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt      time.Time `json:"updated_at" bson:"updated_at"`
}

func NewTraining(telegramId int64) *Training {
	now := time.Now()
	return &Training{
		ID:         uuid.NewString(),
		TelegramId: telegramId,
		Status:     StatusPending,
		Payment:    NewPendingPayment(),
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

// InPerson reports whether the enrollment is for in-person courses.
func (t *Training) InPerson() bool {
	return len(t.Courses) > 0
}
