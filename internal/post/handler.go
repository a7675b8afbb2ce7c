package post

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/JuliaBars/yatube-back/internal/cache"
	"github.com/JuliaBars/yatube-back/internal/database"
	"github.com/JuliaBars/yatube-back/internal/logs"
	"github.com/JuliaBars/yatube-back/internal/pagination"
	"github.com/JuliaBars/yatube-back/internal/storage"
	"github.com/JuliaBars/yatube-back/internal/user"
)

// indexCacheKey prefixes the cache entries for the index feed. The page
// number is the only request detail baked into the key, so within one TTL
// window all visitors of a page see the same bytes.
const indexCacheKey = "index_page"

type Handler struct {
	pageCache cache.Cache
	cacheTTL  time.Duration
}

func NewHandler(pageCache cache.Cache, cacheTTL time.Duration) *Handler {
	return &Handler{pageCache: pageCache, cacheTTL: cacheTTL}
}

func detailURL(postID string) string {
	return fmt.Sprintf("/api/posts/%s", postID)
}

func profileURL(username string) string {
	return fmt.Sprintf("/api/users/%s/posts", username)
}

// Index GET /api/posts
//
// The rendered body is cached whole; a post created inside the window shows
// up only after expiry.
func (h *Handler) Index(c *gin.Context) {
	page := pagination.PageFromQuery(c)
	key := fmt.Sprintf("%s:p%d", indexCacheKey, page)

	if body, ok := h.pageCache.Get(c.Request.Context(), key); ok {
		c.Data(http.StatusOK, "application/json; charset=utf-8", body)
		return
	}

	var posts []Post
	query := database.DB.Model(&Post{}).
		Preload("Author").
		Preload("Group").
		Order("created_at DESC")

	pageInfo, err := pagination.Paginate(query, page, &posts)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching posts"})
		logs.LogJSON("ERROR", "Error fetching index feed", map[string]interface{}{
			"error": err.Error(),
			"route": c.FullPath(),
		})
		return
	}

	body, err := json.Marshal(gin.H{"posts": posts, "page": pageInfo})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error rendering posts"})
		return
	}

	h.pageCache.Set(c.Request.Context(), key, body, h.cacheTTL)
	c.Data(http.StatusOK, "application/json; charset=utf-8", body)
}

// GetPost GET /api/posts/:id
func (h *Handler) GetPost(c *gin.Context) {
	postID := c.Param("id")

	var p Post
	err := database.DB.Preload("Author").Preload("Group").First(&p, "id = ?", postID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching post"})
		}
		return
	}

	var authorPosts int64
	if err := database.DB.Model(&Post{}).Where("author_id = ?", p.AuthorID).Count(&authorPosts).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error counting posts"})
		return
	}

	var comments []Comment
	if err := database.DB.
		Where("post_id = ?", postID).
		Order("created_at ASC").
		Find(&comments).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching comments"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"post":         p,
		"author_posts": authorPosts,
		"comments":     comments,
		"form":         CommentForm{},
	})
}

// NewPost GET /api/posts/new
func (h *Handler) NewPost(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"form": PostForm{}})
}

// CreatePost POST /api/posts
//
// Invalid input is never persisted; the form and its errors come back in the
// response body instead.
func (h *Handler) CreatePost(c *gin.Context) {
	route := c.FullPath()
	userID := c.GetString("user_id")

	var form PostForm
	_ = c.ShouldBind(&form)

	formErrs, err := form.Validate()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error validating post"})
		return
	}
	if len(formErrs) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"form": form, "errors": formErrs})
		return
	}

	var author user.User
	if err := database.DB.First(&author, "id = ?", userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	postID := uuid.New().String()

	imageURL, ok := h.uploadImage(c, postID)
	if !ok {
		return
	}

	var groupID *string
	if form.GroupID != "" {
		groupID = &form.GroupID
	}

	newPost := Post{
		ID:        postID,
		CreatedAt: time.Now(),
		AuthorID:  userID,
		GroupID:   groupID,
		Text:      form.Text,
		ImageURL:  imageURL,
	}

	if err := database.DB.Create(&newPost).Error; err != nil {
		if imageURL != "" {
			urlParts := strings.Split(imageURL, ".amazonaws.com/")
			if len(urlParts) > 1 {
				_ = storage.DeleteFromS3(urlParts[1])
			}
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error creating post"})
		logs.LogJSON("ERROR", "Error creating post", map[string]interface{}{
			"error":  err.Error(),
			"route":  route,
			"userID": userID,
		})
		return
	}

	logs.LogJSON("INFO", "Post created", map[string]interface{}{
		"route":  route,
		"userID": userID,
		"postID": postID,
	})
	c.Redirect(http.StatusSeeOther, profileURL(author.Username))
}

// uploadImage stores an optional multipart "image" on S3 and returns its
// public URL. A false return means the request was already answered.
func (h *Handler) uploadImage(c *gin.Context, postID string) (string, bool) {
	file, header, err := c.Request.FormFile("image")
	if err != nil {
		// No image attached.
		return "", true
	}
	defer file.Close()

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if !storage.ValidImageExtensions[ext] {
		c.JSON(http.StatusBadRequest, gin.H{"errors": gin.H{"image": "Invalid image extension"}})
		return "", false
	}
	if !storage.Configured() {
		c.JSON(http.StatusBadRequest, gin.H{"errors": gin.H{"image": "Image uploads are disabled"}})
		return "", false
	}

	filename := fmt.Sprintf("post_%s%s", postID, ext)
	url, err := storage.UploadToS3(file, filename, header.Header.Get("Content-Type"), "posts")
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error uploading image"})
		logs.LogJSON("ERROR", "Error uploading image", map[string]interface{}{
			"error":  err.Error(),
			"postID": postID,
		})
		return "", false
	}
	return url, true
}

// EditPost GET /api/posts/:id/edit
//
// Non-authors are redirected to the detail page without an error surface.
func (h *Handler) EditPost(c *gin.Context) {
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

	if p.AuthorID != userID {
		c.Redirect(http.StatusSeeOther, detailURL(postID))
		return
	}

	form := PostForm{Text: p.Text}
	if p.GroupID != nil {
		form.GroupID = *p.GroupID
	}
	c.JSON(http.StatusOK, gin.H{"form": form, "is_edit": true, "post": p})
}

// UpdatePost PUT /api/posts/:id/edit
//
// Authorship is re-checked here as well: a non-author submission is dropped
// with the same silent redirect the read path uses. Invalid input is also
// discarded silently; either way the client lands on the detail page.
func (h *Handler) UpdatePost(c *gin.Context) {
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

	if p.AuthorID != userID {
		logs.LogJSON("WARN", "Edit attempt by non-author", map[string]interface{}{
			"route":  route,
			"userID": userID,
			"postID": postID,
		})
		c.Redirect(http.StatusSeeOther, detailURL(postID))
		return
	}

	var form PostForm
	_ = c.ShouldBind(&form)

	formErrs, err := form.Validate()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error validating post"})
		return
	}
	if len(formErrs) == 0 {
		p.Text = form.Text
		if form.GroupID != "" {
			p.GroupID = &form.GroupID
		} else {
			p.GroupID = nil
		}
		if err := database.DB.Save(&p).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error updating post"})
			logs.LogJSON("ERROR", "Error updating post", map[string]interface{}{
				"error":  err.Error(),
				"route":  route,
				"userID": userID,
				"postID": postID,
			})
			return
		}
		logs.LogJSON("INFO", "Post updated", map[string]interface{}{
			"route":  route,
			"userID": userID,
			"postID": postID,
		})
	}

	c.Redirect(http.StatusSeeOther, detailURL(postID))
}
