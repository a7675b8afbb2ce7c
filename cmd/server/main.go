package main

import (
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"golang.org/x/time/rate"

	"github.com/JuliaBars/yatube-back/internal/auth"
	"github.com/JuliaBars/yatube-back/internal/cache"
	"github.com/JuliaBars/yatube-back/internal/config"
	"github.com/JuliaBars/yatube-back/internal/database"
	"github.com/JuliaBars/yatube-back/internal/follow"
	"github.com/JuliaBars/yatube-back/internal/group"
	"github.com/JuliaBars/yatube-back/internal/logs"
	"github.com/JuliaBars/yatube-back/internal/middleware"
	"github.com/JuliaBars/yatube-back/internal/post"
	"github.com/JuliaBars/yatube-back/internal/storage"
	"github.com/JuliaBars/yatube-back/internal/user"
)

func main() {
	_ = godotenv.Load()
	cfg := config.LoadConfig()

	database.Connect(cfg.DBUrl, cfg.SQLitePath)
	if err := database.DB.AutoMigrate(
		&user.User{},
		&group.Group{},
		&post.Post{},
		&post.Comment{},
		&follow.Follow{},
	); err != nil {
		logs.LogJSON("FATAL", "Migration failed", map[string]interface{}{"error": err.Error()})
		return
	}

	if cfg.AWSBucket != "" {
		if err := storage.InitS3(); err != nil {
			logs.LogJSON("WARN", "S3 unavailable, image uploads disabled", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}

	var pageCache cache.Cache = cache.NewMemory(nil)
	if client := cache.NewRedisClient(cfg); client != nil {
		pageCache = cache.NewRedis(client)
	}
	posts := post.NewHandler(pageCache, cfg.CacheTTL)

	r := gin.Default()
	r.GET("/", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	api := r.Group("/api")

	authLimit := middleware.RateLimitMiddleware(rate.Limit(1), 5)
	api.GET("/signup", auth.SignupForm)
	api.POST("/signup", authLimit, auth.Signup)
	api.POST("/login", authLimit, auth.Login)

	public := api.Group("", middleware.OptionalAuthMiddleware())
	public.GET("/posts", posts.Index)
	public.GET("/posts/:id", posts.GetPost)
	public.GET("/groups/:slug/posts", post.GroupFeed)
	public.GET("/users/:username/posts", post.ProfileFeed)
	// Edit is owner-only, not login-only: non-authors (anonymous included)
	// get the silent redirect to the detail page from the handler itself.
	public.GET("/posts/:id/edit", posts.EditPost)
	public.POST("/posts/:id/edit", posts.UpdatePost)
	public.PUT("/posts/:id/edit", posts.UpdatePost)

	authed := api.Group("", middleware.AuthMiddleware())
	authed.GET("/me", user.GetMe)
	authed.GET("/posts/new", posts.NewPost)
	authed.POST("/posts", posts.CreatePost)
	authed.POST("/posts/:id/comments", post.AddComment)
	authed.GET("/follow/posts", post.FollowFeed)
	authed.GET("/profiles/:username/follow", follow.FollowUser)
	authed.POST("/profiles/:username/follow", follow.FollowUser)
	authed.GET("/profiles/:username/unfollow", follow.UnfollowUser)
	authed.POST("/profiles/:username/unfollow", follow.UnfollowUser)

	if err := r.Run(":" + cfg.Port); err != nil {
		logs.LogJSON("FATAL", "Server stopped", map[string]interface{}{"error": err.Error()})
	}
}
