package routes

import (
	"net/http"
	"strings"

	"deenquest/handlers"
	"deenquest/middleware"
	"deenquest/models"
	"deenquest/services"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins for development
	},
}

func SetupRoutes(
	router *gin.Engine,
	authHandler *handlers.AuthHandler,
	roomHandler *handlers.RoomHandler,
	gameHandler *handlers.GameHandler,
	hub *services.Hub,
	authService *services.AuthService,
	roomService *services.RoomService,
	presenceService *services.PresenceService,
	logger *zap.Logger,
) {
	api := router.Group("/api")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
		}

		protected := api.Group("/")
		protected.Use(middleware.JWTAuth(authService))
		{
			protected.GET("/auth/profile", authHandler.GetProfile)

			rooms := protected.Group("/rooms")
			{
				rooms.GET("", roomHandler.ListWaitingRooms)
				rooms.POST("", roomHandler.CreateRoom)
				rooms.GET("/:code", roomHandler.GetRoom)
				rooms.POST("/:code/join", roomHandler.JoinRoom)
				rooms.POST("/:code/start", gameHandler.StartGame)
				rooms.POST("/:code/advance", gameHandler.AdvanceRound)
				rooms.POST("/:code/answer", gameHandler.SubmitAnswer)
			}
		}
	}

	// Room change-feed equivalent: one subscription per room, pushing the full
	// room + roster snapshot on every mutation.
	router.GET("/ws/rooms/:code", func(c *gin.Context) {
		code := c.Param("code")

		user, err := wsCaller(c, authService)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid or missing token"})
			return
		}

		room, err := roomService.RoomByCode(code)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "room not found"})
			return
		}

		// Only members (or the host, who is always a member) may watch a room.
		if room.HostID != user.ID && !roomService.IsMember(room.ID, user.ID) {
			c.JSON(http.StatusForbidden, gin.H{"error": "player not found in room"})
			return
		}

		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			logger.Warn("websocket upgrade failed", zap.String("code", room.Code), zap.Error(err))
			return
		}

		hub.RegisterClient(conn, room.Code, user.ID, user.Username)

		logger.Info("room watcher connected",
			zap.String("code", room.Code),
			zap.String("user_id", user.ID),
			zap.Int("watchers", hub.ClientsOnTopic(room.Code)))
	})

	// Lobby presence channel: announce on connect, expire on disconnect.
	router.GET("/ws/lobby", func(c *gin.Context) {
		user, err := wsCaller(c, authService)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid or missing token"})
			return
		}

		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			logger.Warn("websocket upgrade failed", zap.String("topic", "lobby"), zap.Error(err))
			return
		}

		hub.RegisterClient(conn, services.LobbyTopic, user.ID, user.Username)

		if err := presenceService.Join(user.ID, user.Username, hub); err != nil {
			logger.Warn("lobby presence join failed", zap.String("user_id", user.ID), zap.Error(err))
		}
	})

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
}

// wsCaller authenticates a websocket request. Browsers cannot set headers on
// websocket upgrades, so the token rides in a query parameter.
func wsCaller(c *gin.Context, authService *services.AuthService) (*models.User, error) {
	token := c.Query("token")
	if token == "" {
		token = strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer ")
	}

	userID, err := authService.ValidateToken(token)
	if err != nil {
		return nil, err
	}

	return authService.UserByID(userID)
}
