package group

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/JuliaBars/yatube-back/internal/database"
)

// Group is a community a post may be tagged to. Read-only from this service:
// groups are provisioned out of band.
type Group struct {
	ID          string    `json:"id" gorm:"primaryKey;type:uuid"`
	CreatedAt   time.Time `json:"created_at"`
	Slug        string    `json:"slug" gorm:"uniqueIndex"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
}

// BySlug returns (nil, nil) when no group carries the slug.
func BySlug(slug string) (*Group, error) {
	var g Group
	if err := database.DB.Where("slug = ?", slug).First(&g).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &g, nil
}

// ExistsByID reports whether a group id refers to a real group.
func ExistsByID(id string) (bool, error) {
	var count int64
	if err := database.DB.Model(&Group{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
