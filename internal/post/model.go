package post

import (
	"time"

	"github.com/JuliaBars/yatube-back/internal/group"
	"github.com/JuliaBars/yatube-back/internal/user"
)

type Post struct {
	ID        string       `json:"id" gorm:"primaryKey;type:uuid"`
	CreatedAt time.Time    `json:"created_at"`
	AuthorID  string       `json:"author_id" gorm:"type:uuid;index"`
	Author    user.User    `json:"author" gorm:"foreignKey:AuthorID"`
	GroupID   *string      `json:"group_id" gorm:"type:uuid;index"`
	Group     *group.Group `json:"group,omitempty" gorm:"foreignKey:GroupID"`
	Text      string       `json:"text"`
	ImageURL  string       `json:"image_url,omitempty"`
}
