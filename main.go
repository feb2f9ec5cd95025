package main

import (
	"deenquest/config"
	"deenquest/handlers"
	"deenquest/middleware"
	"deenquest/models"
	"deenquest/routes"
	"deenquest/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	// Load configuration
	cfg := config.Load()

	// Initialize database
	db, err := config.InitDB(cfg)
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}

	// Auto-migrate database models
	err = db.AutoMigrate(
		&models.User{},
		&models.Room{},
		&models.Player{},
	)
	if err != nil {
		logger.Fatal("failed to migrate database", zap.Error(err))
	}

	// Initialize Redis
	redisClient := config.InitRedis(cfg)

	// Initialize services
	authService := services.NewAuthService(db, cfg.JWTSecret)
	roomService := services.NewRoomService(db, redisClient, logger)
	gameService := services.NewGameService(db, roomService, logger)
	presenceService := services.NewPresenceService(redisClient, logger)

	// Initialize WebSocket hub
	hub := services.NewHub(roomService, presenceService, logger)
	go hub.Run()

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	roomHandler := handlers.NewRoomHandler(roomService, authService, hub)
	gameHandler := handlers.NewGameHandler(gameService, hub)

	// Setup Gin router
	router := gin.Default()
	router.Use(middleware.CORS())

	routes.SetupRoutes(router, authHandler, roomHandler, gameHandler,
		hub, authService, roomService, presenceService, logger)

	// Start server
	logger.Info("server starting", zap.String("port", cfg.Port))
	if err := router.Run(":" + cfg.Port); err != nil {
		logger.Fatal("failed to start server", zap.Error(err))
	}
}
