package user

import "time"

type User struct {
	ID           string    `json:"id" gorm:"primaryKey;type:uuid"`
	CreatedAt    time.Time `json:"created_at"`
	Username     string    `json:"username" gorm:"uniqueIndex"`
	Email        string    `json:"email" gorm:"uniqueIndex"`
	PasswordHash string    `json:"-"`
	Bio          string    `json:"bio"`
	AvatarURL    string    `json:"avatar_url"`
}
