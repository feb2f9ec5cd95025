package handlers

import (
	"net/http"

	"deenquest/services"

	"github.com/gin-gonic/gin"
)

type GameHandler struct {
	gameService *services.GameService
	hub         *services.Hub
}

func NewGameHandler(gameService *services.GameService, hub *services.Hub) *GameHandler {
	return &GameHandler{
		gameService: gameService,
		hub:         hub,
	}
}

func (h *GameHandler) StartGame(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}

	code := c.Param("code")
	room, err := h.gameService.StartGame(code, userID, h.hub)
	if err != nil {
		c.JSON(statusForError(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"room":  room,
		"round": h.gameService.CurrentRound(room),
	})
}

func (h *GameHandler) AdvanceRound(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}

	code := c.Param("code")
	room, err := h.gameService.AdvanceRound(code, userID, h.hub)
	if err != nil {
		c.JSON(statusForError(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"room":  room,
		"round": h.gameService.CurrentRound(room),
	})
}

func (h *GameHandler) SubmitAnswer(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}

	code := c.Param("code")

	var req services.SubmitAnswerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	points, err := h.gameService.SubmitAnswer(code, userID, &req, h.hub)
	if err != nil {
		c.JSON(statusForError(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"points": points})
}
