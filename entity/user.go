package entity

import (
	"time"
)

// User is the chat identity a submission belongs to. It is upserted on every
// flow completion so the stored profile follows the Telegram account.
type User struct {
	TelegramId   int64     `json:"telegram_id" bson:"telegram_id" validate:"required"`
	Username     string    `json:"username" bson:"username" validate:"omitempty"`
	FirstName    string    `json:"first_name" bson:"first_name" validate:"omitempty"`
	LastName     string    `json:"last_name" bson:"last_name" validate:"omitempty"`
	LanguageCode string    `json:"language_code" bson:"language_code" validate:"omitempty"`
	IsBot        bool      `json:"is_bot" bson:"is_bot"`
	LastSeen     time.Time `json:"last_seen" bson:"last_seen"`
}

func (u *User) FullName() string {
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}
