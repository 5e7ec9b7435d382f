package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/blogzone/core/internal/config"
	"github.com/blogzone/core/internal/database"
	"github.com/blogzone/core/internal/middleware"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// App holds all application dependencies.
type App struct {
	cfg     *config.AppConfig
	router  *gin.Engine
	db      *mongo.Database
	logger  *zap.Logger
	cleanup func()
}

// New initializes the application: config → DB → seed → routes.
func New(ctx context.Context, logger *zap.Logger, cfg *config.AppConfig) (*App, error) {
	if cfg == nil {
		return nil, errors.New("config is nil")
	}

	db, cleanup, err := database.Connect(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("database: %w", err)
	}

	created, err := database.SeedAdmin(ctx, db, cfg.Admin)
	if err != nil {
		cleanup()
		return nil, fmt.Errorf("seed admin: %w", err)
	}
	if created {
		logger.Info("default admin account created", zap.String("username", cfg.Admin.Username))
	}

	if cfg.IsDev() {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.Logger(logger))
	router.Use(cors.New(corsConfig(cfg)))

	app := &App{cfg: cfg, router: router, db: db, logger: logger, cleanup: cleanup}
	app.registerRoutes()

	return app, nil
}

// Addr returns the listen address.
func (a *App) Addr() string { return fmt.Sprintf(":%d", a.cfg.Port) }

// Router returns the HTTP handler.
func (a *App) Router() http.Handler { return a.router }

// Shutdown disconnects the database client.
func (a *App) Shutdown() { a.cleanup() }
