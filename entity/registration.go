package entity

import (
	"time"

	"github.com/google/uuid"
)

// Registration is the finished record of the talent registration flow.
// One per user; created pending and unpaid, thereafter owned by the review
// workflow.
type Registration struct {
	ID                string    `json:"id" bson:"id"`
	TelegramId        int64     `json:"telegram_id" bson:"telegram_id" validate:"required"`
	FullName          string    `json:"full_name" bson:"full_name" validate:"required,min=2"`
	DateOfBirth       time.Time `json:"date_of_birth" bson:"date_of_birth" validate:"required"`
	Gender            string    `json:"gender" bson:"gender" validate:"required,oneof=Male Female"`
	PhoneNumber       string    `json:"phone_number" bson:"phone_number" validate:"required"`
	Email             string    `json:"email" bson:"email" validate:"required,email"`
	PresentAddress    string    `json:"present_address" bson:"present_address" validate:"required"`
	MaritalStatus     string    `json:"marital_status" bson:"marital_status" validate:"required"`
	Height            float64   `json:"height" bson:"height" validate:"required,gte=1,lte=2.5"`
	Weight            float64   `json:"weight" bson:"weight" validate:"required,gte=30,lte=200"`
	FaceColor         string    `json:"face_color" bson:"face_color" validate:"required"`
	TalentCategories  []string  `json:"talent_categories" bson:"talent_categories" validate:"required,min=1"`
	PreferredLanguage string    `json:"preferred_language" bson:"preferred_language" validate:"omitempty"`
	NationalIdRef     string    `json:"national_id_ref" bson:"national_id_ref" validate:"required"`
	PhotoRef          string    `json:"photo_ref" bson:"photo_ref" validate:"required"`
	RegistrationFee   int       `json:"registration_fee" bson:"registration_fee"`
	Status            string    `json:"status" bson:"status" validate:"required,oneof=pending approved rejected"`
	Payment           `bson:",inline"`
	CreatedAt         time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt         time.Time `json:"updated_at" bson:"updated_at"`
}

func NewRegistration(telegramId int64) *Registration {
	now := time.Now()
	return &Registration{
		ID:         uuid.NewString(),
		TelegramId: telegramId,
		Status:     StatusPending,
		Payment:    NewPendingPayment(),
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}
