package user

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/JuliaBars/yatube-back/internal/database"
)

// GetMe GET /api/me
func GetMe(c *gin.Context) {
	userID := c.GetString("user_id")

	var u User
	if err := database.DB.First(&u, "id = ?", userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": u})
}
