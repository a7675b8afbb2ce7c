package auth

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/JuliaBars/yatube-back/internal/config"
	"github.com/JuliaBars/yatube-back/internal/database"
	"github.com/JuliaBars/yatube-back/internal/logs"
	"github.com/JuliaBars/yatube-back/internal/user"
)

type signupInput struct {
	Username string `form:"username" json:"username"`
	Email    string `form:"email" json:"email"`
	Password string `form:"password" json:"password"`
	Bio      string `form:"bio" json:"bio"`
}

// SignupForm GET /api/signup
func SignupForm(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"form": signupInput{}})
}

// Signup POST /api/signup
//
// Creates the account and sends the client to the index, the same
// create-and-redirect flow the web frontend expects.
func Signup(c *gin.Context) {
	route := c.FullPath()

	var input signupInput
	if err := c.ShouldBind(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	input.Username = strings.TrimSpace(input.Username)
	input.Email = strings.TrimSpace(input.Email)

	formErrs := make(map[string]string)
	if input.Username == "" {
		formErrs["username"] = "Username is required"
	}
	if input.Email == "" {
		formErrs["email"] = "Email is required"
	}
	if input.Password == "" {
		formErrs["password"] = "Password is required"
	}
	if len(formErrs) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"form": input, "errors": formErrs})
		return
	}

	if user.ExistsByEmail(input.Email) {
		c.JSON(http.StatusConflict, gin.H{"error": "Email already taken"})
		return
	}
	if user.ExistsByUsername(input.Username) {
		c.JSON(http.StatusConflict, gin.H{"error": "Username already taken"})
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error hashing password"})
		return
	}

	newUser := user.User{
		ID:           uuid.New().String(),
		CreatedAt:    time.Now(),
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: string(hash),
		Bio:          input.Bio,
	}

	if err := database.DB.Create(&newUser).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error creating user"})
		logs.LogJSON("ERROR", "Error creating user", map[string]interface{}{
			"error":    err.Error(),
			"route":    route,
			"username": input.Username,
		})
		return
	}

	logs.LogJSON("INFO", "User signed up", map[string]interface{}{
		"route":  route,
		"userID": newUser.ID,
	})
	c.Redirect(http.StatusSeeOther, "/api/posts")
}

// Login POST /api/login
func Login(c *gin.Context) {
	route := c.FullPath()

	var input struct {
		Email    string `form:"email" json:"email"`
		Password string `form:"password" json:"password"`
	}
	if err := c.ShouldBind(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	var u user.User
	if err := database.DB.Where("email = ?", input.Email).First(&u).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(input.Password)); err != nil {
		logs.LogJSON("WARN", "Login failed", map[string]interface{}{
			"route":  route,
			"userID": u.ID,
		})
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
		return
	}

	cfg := config.LoadConfig()
	token, err := IssueToken(u.ID, []byte(cfg.JWTSecret), cfg.TokenLifetime)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error issuing token"})
		return
	}

	logs.LogJSON("INFO", "User logged in", map[string]interface{}{
		"route":  route,
		"userID": u.ID,
	})
	c.JSON(http.StatusOK, gin.H{"token": token, "user": u})
}
