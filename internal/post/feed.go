package post

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/JuliaBars/yatube-back/internal/database"
	"github.com/JuliaBars/yatube-back/internal/follow"
	"github.com/JuliaBars/yatube-back/internal/group"
	"github.com/JuliaBars/yatube-back/internal/logs"
	"github.com/JuliaBars/yatube-back/internal/pagination"
	"github.com/JuliaBars/yatube-back/internal/user"
)

// GroupFeed GET /api/groups/:slug/posts
func GroupFeed(c *gin.Context) {
	slug := c.Param("slug")

	g, err := group.BySlug(slug)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching group"})
		return
	}
	if g == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Group not found"})
		return
	}

	var posts []Post
	query := database.DB.Model(&Post{}).
		Preload("Author").
		Where("group_id = ?", g.ID).
		Order("created_at DESC")

	page, err := pagination.Paginate(query, pagination.PageFromQuery(c), &posts)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching posts"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"group": g, "posts": posts, "page": page})
}

// ProfileFeed GET /api/users/:username/posts
//
// The following flag is false for anonymous viewers and for the author
// viewing their own profile.
func ProfileFeed(c *gin.Context) {
	username := c.Param("username")
	viewerID := c.GetString("user_id")

	author, err := user.ByUsername(username)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching user"})
		return
	}
	if author == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	var posts []Post
	query := database.DB.Model(&Post{}).
		Preload("Group").
		Where("author_id = ?", author.ID).
		Order("created_at DESC")

	page, err := pagination.Paginate(query, pagination.PageFromQuery(c), &posts)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching posts"})
		return
	}

	following := false
	if viewerID != "" && viewerID != author.ID {
		following, err = follow.IsFollowing(viewerID, author.ID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error checking follow"})
			logs.LogJSON("ERROR", "Error checking follow", map[string]interface{}{
				"error":    err.Error(),
				"route":    c.FullPath(),
				"username": username,
				"userID":   viewerID,
			})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"author":    author,
		"posts":     posts,
		"n_posts":   page.TotalItems,
		"following": following,
		"page":      page,
	})
}

// FollowFeed GET /api/follow/posts
func FollowFeed(c *gin.Context) {
	viewerID := c.GetString("user_id")

	followed := database.DB.Model(&follow.Follow{}).
		Select("author_id").
		Where("follower_id = ?", viewerID)

	var posts []Post
	query := database.DB.Model(&Post{}).
		Preload("Author").
		Preload("Group").
		Where("author_id IN (?)", followed).
		Order("created_at DESC")

	page, err := pagination.Paginate(query, pagination.PageFromQuery(c), &posts)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching posts"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"posts": posts, "page": page})
}
