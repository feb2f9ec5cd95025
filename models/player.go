package models

import (
	"time"

	"gorm.io/gorm"
)

// Per-round player markers. Informational only; scoring never reads them
// except to reject a second submission within the same round.
const (
	PlayerStatusReady     = "ready"
	PlayerStatusAnswering = "answering"
	PlayerStatusAnswered  = "answered"
)

type Player struct {
	ID        string         `json:"id" gorm:"primaryKey;size:36"`
	RoomID    string         `json:"room_id" gorm:"size:36;not null;uniqueIndex:idx_room_user"`
	UserID    string         `json:"user_id" gorm:"size:36;not null;uniqueIndex:idx_room_user"`
	Username  string         `json:"username" gorm:"not null"`
	Score     int            `json:"score" gorm:"not null;default:0"`
	Status    string         `json:"status" gorm:"not null;default:'ready'"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`

	// Relationships
	Room Room `json:"room,omitempty"`
}

func (Player) TableName() string {
	return "multiplayer_players"
}
