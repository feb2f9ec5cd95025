package handlers

import (
	"errors"
	"net/http"

	"deenquest/services"

	"github.com/gin-gonic/gin"
)

// callerID pulls the authenticated user id set by the JWT middleware.
func callerID(c *gin.Context) (string, bool) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": services.ErrNotAuthenticated.Error()})
		return "", false
	}
	return userID.(string), true
}

func statusForError(err error) int {
	switch {
	case errors.Is(err, services.ErrRoomNotFound):
		return http.StatusNotFound
	case errors.Is(err, services.ErrNotAuthenticated):
		return http.StatusUnauthorized
	case errors.Is(err, services.ErrNotHost), errors.Is(err, services.ErrNotInRoom):
		return http.StatusForbidden
	case errors.Is(err, services.ErrAlreadyAnswered):
		return http.StatusConflict
	case errors.Is(err, services.ErrUnknownGameType),
		errors.Is(err, services.ErrGameNotPlayable),
		errors.Is(err, services.ErrGameFinished),
		errors.Is(err, services.ErrRoundNotActive):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
