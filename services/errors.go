package services

import "errors"

// Service-level failures, mapped to HTTP statuses by the handlers.
var (
	ErrNotAuthenticated   = errors.New("not authenticated")
	ErrRoomNotFound       = errors.New("room not found")
	ErrRoomCreation       = errors.New("room creation failed")
	ErrJoinFailed         = errors.New("failed to join room")
	ErrNotHost            = errors.New("only the host can control the game")
	ErrNotInRoom          = errors.New("player has not joined this room")
	ErrUnknownGameType    = errors.New("unknown game type")
	ErrGameNotPlayable    = errors.New("this game type has no rule set yet")
	ErrGameFinished       = errors.New("game is already finished")
	ErrRoundNotActive     = errors.New("game is not in progress")
	ErrAlreadyAnswered    = errors.New("answer already submitted for this round")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailTaken         = errors.New("email is already registered")
)
