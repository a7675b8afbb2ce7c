package post

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/JuliaBars/yatube-back/internal/database"
	"github.com/JuliaBars/yatube-back/internal/logs"
)

type Comment struct {
	ID        string    `json:"id" gorm:"primaryKey;type:uuid"`
	CreatedAt time.Time `json:"created_at"`
	PostID    string    `json:"post_id" gorm:"type:uuid;index"`
	AuthorID  string    `json:"author_id" gorm:"type:uuid"`
	Text      string    `json:"text"`
}

// AddComment POST /api/posts/:id/comments
//
// Invalid text is discarded without an error surface; every outcome short of
// a missing post redirects to the detail page.
func AddComment(c *gin.Context) {
	route := c.FullPath()
	userID := c.GetString("user_id")
	postID := c.Param("id")

	var p Post
	if err := database.DB.First(&p, "id = ?", postID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching post"})
		}
		return
	}

	var form CommentForm
	_ = c.ShouldBind(&form)

	if errs := form.Validate(); len(errs) > 0 {
		logs.LogJSON("WARN", "Invalid comment discarded", map[string]interface{}{
			"route":  route,
			"userID": userID,
			"postID": postID,
		})
		c.Redirect(http.StatusSeeOther, detailURL(postID))
		return
	}

	comment := Comment{
		ID:        uuid.New().String(),
		CreatedAt: time.Now(),
		PostID:    postID,
		AuthorID:  userID,
		Text:      form.Text,
	}

	if err := database.DB.Create(&comment).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error adding comment"})
		logs.LogJSON("ERROR", "Error adding comment", map[string]interface{}{
			"error":  err.Error(),
			"route":  route,
			"userID": userID,
			"postID": postID,
		})
		return
	}

	logs.LogJSON("INFO", "Comment added", map[string]interface{}{
		"route":  route,
		"userID": userID,
		"postID": postID,
	})
	c.Redirect(http.StatusSeeOther, detailURL(postID))
}
