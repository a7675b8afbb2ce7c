package user

import (
	"errors"

	"gorm.io/gorm"

	"github.com/JuliaBars/yatube-back/internal/database"
)

func ExistsByEmail(email string) bool {
	var count int64
	database.DB.Model(&User{}).Where("email = ?", email).Count(&count)
	return count > 0
}

func ExistsByUsername(username string) bool {
	var count int64
	database.DB.Model(&User{}).Where("username = ?", username).Count(&count)
	return count > 0
}

// ByUsername looks an author up by username. Returns (nil, nil) when no such
// user exists.
func ByUsername(username string) (*User, error) {
	var u User
	if err := database.DB.Where("username = ?", username).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}
