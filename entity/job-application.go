package entity

import (
	"time"

	"github.com/google/uuid"
)

// JobApplication is the finished record of the job application flow.
// Unlike registrations and trainings a user may submit several.
type JobApplication struct {
	ID               string    `json:"id" bson:"id"`
	TelegramId       int64     `json:"telegram_id" bson:"telegram_id" validate:"required"`
	CoverLetter      string    `json:"cover_letter" bson:"cover_letter" validate:"required"`
	Age              int       `json:"age" bson:"age" validate:"required,gte=18,lte=100"`
	ContactPhone     string    `json:"contact_phone" bson:"contact_phone" validate:"required"`
	ContactEmail     string    `json:"contact_email" bson:"contact_email" validate:"required,email"`
	TelegramUsername string    `json:"telegram_username" bson:"telegram_username" validate:"required"`
	EducationDocRef  string    `json:"education_doc_ref" bson:"education_doc_ref" validate:"required"`
	ExperienceDocRef string    `json:"experience_doc_ref" bson:"experience_doc_ref" validate:"required"`
	SocialMediaLinks []string  `json:"social_media_links" bson:"social_media_links"`
	Status           string    `json:"status" bson:"status" validate:"required,oneof=pending approved rejected"`
	CreatedAt        time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt        time.Time `json:"updated_at" bson:"updated_at"`
}

func NewJobApplication(telegramId int64) *JobApplication {
	now := time.Now()
	return &JobApplication{
		ID:         uuid.NewString(),
		TelegramId: telegramId,
		Status:     StatusPending,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}
