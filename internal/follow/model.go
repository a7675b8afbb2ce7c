package follow

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/JuliaBars/yatube-back/internal/database"
)

// Follow is a directed follower → author relationship. At most one row per
// pair; the handlers enforce it, not the schema.
type Follow struct {
	ID         string    `json:"id" gorm:"primaryKey;type:uuid"`
	CreatedAt  time.Time `json:"created_at"`
	FollowerID string    `json:"follower_id" gorm:"type:uuid;index"`
	AuthorID   string    `json:"author_id" gorm:"type:uuid;index"`
}

func (Follow) TableName() string {
	return "follows"
}

// IsFollowing reports whether follower already follows author.
func IsFollowing(followerID, authorID string) (bool, error) {
	var f Follow
	err := database.DB.
		Where("follower_id = ? AND author_id = ?", followerID, authorID).
		First(&f).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}

	return true, nil
}
