package services

import (
	"context"
	"crypto/rand"
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"deenquest/content"
	"deenquest/models"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const roomCodeCharset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// roomStateTTL bounds how long a cached room snapshot outlives its last
// mutation. The database rows remain the source of truth.
const roomStateTTL = 2 * time.Hour

type RoomService struct {
	db     *gorm.DB
	redis  *redis.Client
	logger *zap.Logger
}

func NewRoomService(db *gorm.DB, redis *redis.Client, logger *zap.Logger) *RoomService {
	return &RoomService{
		db:     db,
		redis:  redis,
		logger: logger,
	}
}

// RoomState is the full snapshot broadcast to every client watching a room:
// the room row plus the complete roster, ordered by descending score. Every
// mutation re-reads both from the database, so observers converge regardless
// of delivery order.
type RoomState struct {
	Room    models.Room     `json:"room"`
	Players []models.Player `json:"players"`
}

// CreateRoom persists a new waiting room for the given host and immediately
// joins the host as its first player. The generated code is sampled uniformly
// and is not checked against existing rooms; with 36^6 possibilities a
// collision surfaces as a unique-index violation on insert.
func (s *RoomService) CreateRoom(userID, username, gameType string, hub *Hub) (*models.Room, error) {
	if !content.IsKnownGameType(gameType) {
		return nil, fmt.Errorf("%w: %q", ErrUnknownGameType, gameType)
	}

	room := models.Room{
		ID:                   uuid.NewString(),
		Code:                 generateRoomCode(),
		HostID:               userID,
		Status:               models.RoomStatusWaiting,
		GameType:             gameType,
		CurrentQuestionIndex: 0,
	}

	if err := s.db.Create(&room).Error; err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRoomCreation, err)
	}

	// The room row is not rolled back if the host join fails; callers see an
	// overall failure but the row may remain without any players.
	if _, err := s.addPlayer(&room, userID, username); err != nil {
		s.logger.Error("host join failed after room insert",
			zap.String("room_id", room.ID), zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrRoomCreation, err)
	}

	if hub != nil {
		hub.BroadcastToLobby("room_opened", room)
		hub.BroadcastRoomState(room.Code)
	}

	s.logger.Info("room created",
		zap.String("room_id", room.ID),
		zap.String("code", room.Code),
		zap.String("game_type", room.GameType),
		zap.String("host_id", userID))

	return &room, nil
}

// JoinRoom adds the user to the room identified by code. Joining a room the
// user already belongs to succeeds and returns the existing membership.
func (s *RoomService) JoinRoom(code, userID, username string, hub *Hub) (*models.Player, error) {
	room, err := s.RoomByCode(code)
	if err != nil {
		return nil, err
	}

	player, err := s.addPlayer(room, userID, username)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrJoinFailed, err)
	}

	if hub != nil {
		hub.BroadcastRoomState(room.Code)
	}

	return player, nil
}

func (s *RoomService) addPlayer(room *models.Room, userID, username string) (*models.Player, error) {
	var existing models.Player
	err := s.db.Where("room_id = ? AND user_id = ?", room.ID, userID).First(&existing).Error
	if err == nil {
		return &existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	player := models.Player{
		ID:       uuid.NewString(),
		RoomID:   room.ID,
		UserID:   userID,
		Username: username,
		Score:    0,
		Status:   models.PlayerStatusReady,
	}

	if err := s.db.Create(&player).Error; err != nil {
		// Two concurrent joins for the same user can race past the lookup
		// above; the unique (room_id, user_id) index turns the loser into an
		// idempotent success.
		if requeryErr := s.db.Where("room_id = ? AND user_id = ?", room.ID, userID).
			First(&existing).Error; requeryErr == nil {
			return &existing, nil
		}
		return nil, err
	}

	return &player, nil
}

// RoomByCode looks a room up by its join code, case-insensitively.
func (s *RoomService) RoomByCode(code string) (*models.Room, error) {
	normalized := strings.ToUpper(strings.TrimSpace(code))

	var room models.Room
	if err := s.db.Where("code = ?", normalized).First(&room).Error; err != nil {
		return nil, ErrRoomNotFound
	}
	return &room, nil
}

// Players returns the room's roster ordered by descending score. The ordering
// is computed at read time, not stored.
func (s *RoomService) Players(roomID string) ([]models.Player, error) {
	var players []models.Player
	if err := s.db.Where("room_id = ?", roomID).
		Order("score DESC, created_at ASC").
		Find(&players).Error; err != nil {
		return nil, err
	}
	return players, nil
}

// WaitingRooms lists rooms still open for joining, newest first.
func (s *RoomService) WaitingRooms() ([]models.Room, error) {
	var rooms []models.Room
	if err := s.db.Where("status = ?", models.RoomStatusWaiting).
		Order("created_at DESC").
		Find(&rooms).Error; err != nil {
		return nil, err
	}
	return rooms, nil
}

// CurrentRoomState re-reads the room and its full roster from the database
// and refreshes the Redis snapshot. This runs after every mutation and on
// every client (re)connect.
func (s *RoomService) CurrentRoomState(code string) (*RoomState, error) {
	room, err := s.RoomByCode(code)
	if err != nil {
		return nil, err
	}

	players, err := s.Players(room.ID)
	if err != nil {
		return nil, err
	}

	state := &RoomState{Room: *room, Players: players}
	s.storeRoomState(state)
	return state, nil
}

// CachedRoomState serves read-only lookups from Redis when a fresh snapshot
// exists, falling back to the database.
func (s *RoomService) CachedRoomState(code string) (*RoomState, error) {
	normalized := strings.ToUpper(strings.TrimSpace(code))

	data, err := s.redis.Get(context.Background(), "room:"+normalized).Result()
	if err == nil {
		var state RoomState
		if err := json.Unmarshal([]byte(data), &state); err == nil {
			return &state, nil
		}
		s.logger.Warn("discarding unreadable room snapshot", zap.String("code", normalized), zap.Error(err))
	} else if err != redis.Nil {
		s.logger.Warn("redis read failed", zap.String("code", normalized), zap.Error(err))
	}

	return s.CurrentRoomState(normalized)
}

func (s *RoomService) storeRoomState(state *RoomState) {
	data, err := json.Marshal(state)
	if err != nil {
		s.logger.Error("failed to marshal room state", zap.String("code", state.Room.Code), zap.Error(err))
		return
	}

	if err := s.redis.Set(context.Background(), "room:"+state.Room.Code, data, roomStateTTL).Err(); err != nil {
		s.logger.Warn("failed to cache room state", zap.String("code", state.Room.Code), zap.Error(err))
	}
}

// IsMember reports whether the user has a player row in the room.
func (s *RoomService) IsMember(roomID, userID string) bool {
	var count int64
	s.db.Model(&models.Player{}).
		Where("room_id = ? AND user_id = ?", roomID, userID).
		Count(&count)
	return count > 0
}

func generateRoomCode() string {
	code := make([]byte, 6)
	for i := range code {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(roomCodeCharset))))
		if err != nil {
			panic(err) // crypto/rand failure is unrecoverable
		}
		code[i] = roomCodeCharset[n.Int64()]
	}
	return string(code)
}
