package models

import (
	"time"

	"gorm.io/gorm"
)

// Room lifecycle states. Transitions are forward-only:
// waiting -> playing -> finished.
const (
	RoomStatusWaiting  = "waiting"
	RoomStatusPlaying  = "playing"
	RoomStatusFinished = "finished"
)

// Supported game types. Only the first three have executable rule sets;
// the rest are selectable but not yet playable.
const (
	GameTypeQuiz            = "quiz"
	GameTypeWordScramble    = "word-scramble"
	GameTypeHangman         = "hangman"
	GameTypeQuranVerses     = "quran-verses"
	GameTypeProphetTimeline = "prophet-timeline"
	GameTypeDuaCompletion   = "dua-completion"
)

type Room struct {
	ID                   string         `json:"id" gorm:"primaryKey;size:36"`
	Code                 string         `json:"code" gorm:"uniqueIndex;size:6;not null"`
	HostID               string         `json:"host_id" gorm:"size:36;not null"`
	Status               string         `json:"status" gorm:"not null;default:'waiting'"`
	GameType             string         `json:"game_type" gorm:"not null"`
	CurrentQuestionIndex int            `json:"current_question_index" gorm:"not null;default:0"`
	CreatedAt            time.Time      `json:"created_at"`
	UpdatedAt            time.Time      `json:"updated_at"`
	DeletedAt            gorm.DeletedAt `json:"-" gorm:"index"`

	// Relationships
	Players []Player `json:"players,omitempty" gorm:"foreignKey:RoomID"`
}

func (Room) TableName() string {
	return "multiplayer_rooms"
}
