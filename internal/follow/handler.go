package follow

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/JuliaBars/yatube-back/internal/database"
	"github.com/JuliaBars/yatube-back/internal/logs"
	"github.com/JuliaBars/yatube-back/internal/user"
)

func profileURL(username string) string {
	return fmt.Sprintf("/api/users/%s/posts", username)
}

// FollowUser POST /api/profiles/:username/follow
//
// Idempotent: an existing row or a self-follow attempt creates nothing, and
// every outcome short of an error redirects to the author's profile.
func FollowUser(c *gin.Context) {
	route := c.FullPath()

	followerID := c.GetString("user_id")
	username := c.Param("username")

	author, err := user.ByUsername(username)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching user"})
		logs.LogJSON("ERROR", "Error fetching user", map[string]interface{}{
			"error":    err.Error(),
			"route":    route,
			"userID":   followerID,
			"username": username,
		})
		return
	}
	if author == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	if followerID == author.ID {
		logs.LogJSON("WARN", "Attempt to follow yourself", map[string]interface{}{
			"route":  route,
			"userID": followerID,
		})
		c.Redirect(http.StatusSeeOther, profileURL(username))
		return
	}

	var existing Follow
	err = database.DB.
		Where("follower_id = ? AND author_id = ?", followerID, author.ID).
		First(&existing).Error
	if err == nil {
		// Already following, nothing to create.
		c.Redirect(http.StatusSeeOther, profileURL(username))
		return
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error checking follow"})
		logs.LogJSON("ERROR", "Error checking follow", map[string]interface{}{
			"error":  err.Error(),
			"route":  route,
			"userID": followerID,
			"extra":  fmt.Sprintf("authorID : %s", author.ID),
		})
		return
	}

	newFollow := Follow{
		ID:         uuid.New().String(),
		FollowerID: followerID,
		AuthorID:   author.ID,
	}

	if err := database.DB.Create(&newFollow).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error adding follow"})
		logs.LogJSON("ERROR", "Error adding follow", map[string]interface{}{
			"error":  err.Error(),
			"route":  route,
			"userID": followerID,
			"extra":  fmt.Sprintf("authorID : %s", author.ID),
		})
		return
	}

	logs.LogJSON("INFO", "Followed author", map[string]interface{}{
		"route":  route,
		"userID": followerID,
		"extra":  fmt.Sprintf("authorID : %s", author.ID),
	})
	c.Redirect(http.StatusSeeOther, profileURL(username))
}

// UnfollowUser POST /api/profiles/:username/unfollow
//
// Deleting a missing pair is a no-op.
func UnfollowUser(c *gin.Context) {
	route := c.FullPath()

	followerID := c.GetString("user_id")
	username := c.Param("username")

	author, err := user.ByUsername(username)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching user"})
		logs.LogJSON("ERROR", "Error fetching user", map[string]interface{}{
			"error":    err.Error(),
			"route":    route,
			"userID":   followerID,
			"username": username,
		})
		return
	}
	if author == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	if err := database.DB.
		Where("follower_id = ? AND author_id = ?", followerID, author.ID).
		Delete(&Follow{}).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error removing follow"})
		logs.LogJSON("ERROR", "Error removing follow", map[string]interface{}{
			"error":  err.Error(),
			"route":  route,
			"userID": followerID,
			"extra":  fmt.Sprintf("authorID : %s", author.ID),
		})
		return
	}

	logs.LogJSON("INFO", "Unfollowed author", map[string]interface{}{
		"route":  route,
		"userID": followerID,
		"extra":  fmt.Sprintf("authorID : %s", author.ID),
	})
	c.Redirect(http.StatusSeeOther, profileURL(username))
}
