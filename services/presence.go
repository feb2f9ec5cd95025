package services

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const presenceKey = "lobby:presence"

// Lobby presence status tags.
const (
	PresenceIdle            = "idle"
	PresenceInGame          = "in-game"
	PresenceLookingForMatch = "looking-for-match"
)

// PresenceEntry is the state blob one lobby member announces to the rest.
type PresenceEntry struct {
	UserID   string    `json:"user_id"`
	Username string    `json:"username"`
	OnlineAt time.Time `json:"online_at"`
	Status   string    `json:"status"`
}

// PresenceService tracks who is online in the lobby. Entries live only in
// Redis and are removed when the owning connection goes away; after any
// change the full current set is rebroadcast to every lobby member.
type PresenceService struct {
	redis  *redis.Client
	logger *zap.Logger
}

func NewPresenceService(redis *redis.Client, logger *zap.Logger) *PresenceService {
	return &PresenceService{
		redis:  redis,
		logger: logger,
	}
}

// Join announces a user to the lobby with idle status.
func (s *PresenceService) Join(userID, username string, hub *Hub) error {
	entry := PresenceEntry{
		UserID:   userID,
		Username: username,
		OnlineAt: time.Now().UTC(),
		Status:   PresenceIdle,
	}
	if err := s.store(entry); err != nil {
		return err
	}

	s.logger.Info("user joined lobby", zap.String("user_id", userID), zap.String("username", username))
	s.broadcast(hub)
	return nil
}

// SetStatus updates a member's status tag and resyncs the lobby.
func (s *PresenceService) SetStatus(userID, status string, hub *Hub) error {
	switch status {
	case PresenceIdle, PresenceInGame, PresenceLookingForMatch:
	default:
		return fmt.Errorf("invalid presence status %q", status)
	}

	data, err := s.redis.HGet(context.Background(), presenceKey, userID).Result()
	if err != nil {
		return fmt.Errorf("user %s is not in the lobby", userID)
	}

	var entry PresenceEntry
	if err := json.Unmarshal([]byte(data), &entry); err != nil {
		return err
	}

	entry.Status = status
	if err := s.store(entry); err != nil {
		return err
	}

	s.broadcast(hub)
	return nil
}

// Leave drops a member from the lobby and resyncs the remaining set.
func (s *PresenceService) Leave(userID string, hub *Hub) {
	if err := s.redis.HDel(context.Background(), presenceKey, userID).Err(); err != nil {
		s.logger.Warn("failed to remove presence entry", zap.String("user_id", userID), zap.Error(err))
	}
	s.broadcast(hub)
}

// Snapshot returns the current lobby membership, oldest connection first.
func (s *PresenceService) Snapshot() ([]PresenceEntry, error) {
	raw, err := s.redis.HGetAll(context.Background(), presenceKey).Result()
	if err != nil {
		return nil, err
	}

	entries := make([]PresenceEntry, 0, len(raw))
	for _, data := range raw {
		var entry PresenceEntry
		if err := json.Unmarshal([]byte(data), &entry); err != nil {
			s.logger.Warn("discarding unreadable presence entry", zap.Error(err))
			continue
		}
		entries = append(entries, entry)
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].OnlineAt.Before(entries[j].OnlineAt)
	})
	return entries, nil
}

func (s *PresenceService) store(entry PresenceEntry) error {
	data, err := json.Marshal(entry)
	if err != nil {
		return err
	}
	return s.redis.HSet(context.Background(), presenceKey, entry.UserID, data).Err()
}

func (s *PresenceService) broadcast(hub *Hub) {
	if hub == nil {
		return
	}
	entries, err := s.Snapshot()
	if err != nil {
		s.logger.Error("presence snapshot failed", zap.Error(err))
		return
	}
	hub.BroadcastToLobby("presence_state", entries)
}
