package handlers

import (
	"net/http"

	"deenquest/services"

	"github.com/gin-gonic/gin"
)

type RoomHandler struct {
	roomService *services.RoomService
	authService *services.AuthService
	hub         *services.Hub
}

func NewRoomHandler(roomService *services.RoomService, authService *services.AuthService, hub *services.Hub) *RoomHandler {
	return &RoomHandler{
		roomService: roomService,
		authService: authService,
		hub:         hub,
	}
}

type CreateRoomRequest struct {
	GameType string `json:"game_type" binding:"required"`
}

func (h *RoomHandler) CreateRoom(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}

	var req CreateRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.authService.UserByID(userID)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": services.ErrNotAuthenticated.Error()})
		return
	}

	room, err := h.roomService.CreateRoom(userID, user.Username, req.GameType, h.hub)
	if err != nil {
		c.JSON(statusForError(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, room)
}

func (h *RoomHandler) JoinRoom(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}

	code := c.Param("code")
	if code == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "room code required"})
		return
	}

	user, err := h.authService.UserByID(userID)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": services.ErrNotAuthenticated.Error()})
		return
	}

	player, err := h.roomService.JoinRoom(code, userID, user.Username, h.hub)
	if err != nil {
		c.JSON(statusForError(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, player)
}

func (h *RoomHandler) GetRoom(c *gin.Context) {
	code := c.Param("code")
	if code == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "room code required"})
		return
	}

	state, err := h.roomService.CachedRoomState(code)
	if err != nil {
		c.JSON(statusForError(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, state)
}

func (h *RoomHandler) ListWaitingRooms(c *gin.Context) {
	rooms, err := h.roomService.WaitingRooms()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"rooms": rooms})
}
