package app

import (
	"net/http"

	"github.com/blogzone/core/internal/middleware"
	"github.com/blogzone/core/internal/modules/auth"
	"github.com/blogzone/core/internal/modules/blog"
	"github.com/blogzone/core/internal/modules/category"
	"github.com/blogzone/core/internal/modules/upload"
	"github.com/blogzone/core/internal/modules/user"
	"github.com/blogzone/core/internal/pkg/imageurl"
	"github.com/blogzone/core/internal/pkg/jwt"
	"github.com/blogzone/core/internal/pkg/response"
	"github.com/blogzone/core/internal/storage"
	"github.com/gin-gonic/gin"
)

func (a *App) registerRoutes() {
	r := a.router

	users := storage.NewUserRepo(a.db)
	blogs := storage.NewBlogRepo(a.db)
	categories := storage.NewCategoryRepo(a.db)

	issuer := jwt.New(a.cfg.JWTSecret, a.cfg.TokenTTL)
	resolver := imageurl.New(a.cfg.BaseURL)
	authMW := middleware.Auth(issuer, users)

	r.NoRoute(func(c *gin.Context) {
		response.NotFound(c, "Route not found")
	})
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	api := r.Group("/api")
	api.Use(middleware.OptionalAuth(issuer, users))

	auth.NewHandler(auth.NewService(users, issuer, resolver)).RegisterRoutes(api, authMW)
	blog.NewHandler(blog.NewService(blogs, categories, users, resolver)).RegisterRoutes(api, authMW)
	category.NewHandler(category.NewService(categories, blogs, resolver)).RegisterRoutes(api, authMW)
	user.NewHandler(user.NewService(users, resolver, a.cfg.UploadsDir)).RegisterRoutes(api, authMW)
	upload.NewHandler(upload.NewService(a.cfg.UploadsDir, resolver)).RegisterRoutes(api, authMW)
}
