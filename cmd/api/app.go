package main

import (
	"log/slog"

	"nearby-weather/internal/config"
	"nearby-weather/internal/navigation"
	"nearby-weather/internal/poisource"
	"nearby-weather/internal/weatherjoin"

	"github.com/gin-gonic/gin"
)

// App encapsulates application dependencies
type App struct {
	router    *gin.Engine
	logger    *slog.Logger
	cfg       *config.Config
	poiSource poisource.Source
	engine    *navigation.Engine
}

// NewApp creates a new application with injected dependencies
func NewApp(cfg *config.Config, logger *slog.Logger) (*App, error) {
	// Set Gin mode from configuration
	gin.SetMode(cfg.Server.GinMode)

	// Create Gin router
	router := gin.New()

	// Add middleware
	router.Use(gin.Recovery())

	// Load the POI seed
	source, err := poisource.NewStaticFromFile(cfg.Poi.SeedFile)
	if err != nil {
		return nil, err
	}

	// Initialize the weather join service with the real provider chain
	enricher, err := weatherjoin.NewService(cfg, logger)
	if err != nil {
		return nil, err
	}

	app := &App{
		router:    router,
		logger:    logger,
		cfg:       cfg,
		poiSource: source,
		engine:    navigation.NewEngine(source, enricher, cfg, logger),
	}

	// Register routes
	app.registerRoutes()

	return app, nil
}

// Run starts the HTTP server
func (app *App) Run(addr string) error {
	return app.router.Run(addr)
}
