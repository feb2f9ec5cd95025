package services

import (
	"fmt"
	"strings"

	"deenquest/content"
	"deenquest/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// CorrectAnswerPoints is awarded for a correct submission in every playable
// game type.
const CorrectAnswerPoints = 10

type GameService struct {
	db     *gorm.DB
	rooms  *RoomService
	logger *zap.Logger
}

func NewGameService(db *gorm.DB, rooms *RoomService, logger *zap.Logger) *GameService {
	return &GameService{
		db:     db,
		rooms:  rooms,
		logger: logger,
	}
}

// SubmitAnswerRequest carries one player's answer for the current round. The
// relevant field depends on the room's game type; the server decides
// correctness itself and never accepts a client-supplied point amount.
type SubmitAnswerRequest struct {
	AnswerIndex  *int   `json:"answer_index,omitempty"`
	Word         string `json:"word,omitempty"`
	WrongGuesses int    `json:"wrong_guesses,omitempty"`
}

// StartGame moves a waiting room to playing with the round index at 0 and
// every player marked answering. Only the host may start, and a finished room
// stays finished.
func (s *GameService) StartGame(code, userID string, hub *Hub) (*models.Room, error) {
	room, err := s.rooms.RoomByCode(code)
	if err != nil {
		return nil, err
	}
	if room.HostID != userID {
		return nil, ErrNotHost
	}
	if desc, ok := content.Descriptor(room.GameType); !ok || !desc.Playable {
		return nil, ErrGameNotPlayable
	}
	if room.Status == models.RoomStatusFinished {
		return nil, ErrGameFinished
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(room).Updates(map[string]interface{}{
			"status":                 models.RoomStatusPlaying,
			"current_question_index": 0,
		}).Error; err != nil {
			return err
		}
		return tx.Model(&models.Player{}).
			Where("room_id = ?", room.ID).
			Update("status", models.PlayerStatusAnswering).Error
	})
	if err != nil {
		return nil, err
	}

	room.Status = models.RoomStatusPlaying
	room.CurrentQuestionIndex = 0

	if hub != nil {
		// The room left the waiting list; lobby viewers drop it.
		hub.BroadcastToLobby("room_closed", room)
		hub.BroadcastRoomState(room.Code)
	}

	s.logger.Info("game started",
		zap.String("room_id", room.ID),
		zap.String("code", room.Code),
		zap.String("game_type", room.GameType))

	return room, nil
}

// AdvanceRound moves the room to the next round, or to finished when the
// round counter would leave the game type's fixed round count. Advancing a
// finished room has no effect. The room update and the roster status reset
// commit together.
func (s *GameService) AdvanceRound(code, userID string, hub *Hub) (*models.Room, error) {
	room, err := s.rooms.RoomByCode(code)
	if err != nil {
		return nil, err
	}
	if room.HostID != userID {
		return nil, ErrNotHost
	}
	if room.Status == models.RoomStatusFinished {
		return room, nil
	}
	if room.Status != models.RoomStatusPlaying {
		return nil, ErrRoundNotActive
	}

	desc, ok := content.Descriptor(room.GameType)
	if !ok || !desc.Playable {
		return nil, ErrGameNotPlayable
	}

	if room.CurrentQuestionIndex+1 >= desc.RoundCount {
		// Terminal round: the index stays where it is.
		if err := s.db.Model(room).Update("status", models.RoomStatusFinished).Error; err != nil {
			return nil, err
		}
		room.Status = models.RoomStatusFinished

		if hub != nil {
			hub.BroadcastRoomState(room.Code)
		}

		s.logger.Info("game finished",
			zap.String("room_id", room.ID),
			zap.String("code", room.Code),
			zap.Int("rounds", desc.RoundCount))

		return room, nil
	}

	nextIndex := room.CurrentQuestionIndex + 1
	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(room).Update("current_question_index", nextIndex).Error; err != nil {
			return err
		}
		return tx.Model(&models.Player{}).
			Where("room_id = ?", room.ID).
			Update("status", models.PlayerStatusAnswering).Error
	})
	if err != nil {
		return nil, err
	}

	room.CurrentQuestionIndex = nextIndex

	if hub != nil {
		hub.BroadcastRoomState(room.Code)
	}

	return room, nil
}

// SubmitAnswer scores one player's answer for the current round. Correctness
// is decided here, against the static content banks; a correct answer is
// worth CorrectAnswerPoints, anything else zero. A player may answer each
// round once.
func (s *GameService) SubmitAnswer(code, userID string, req *SubmitAnswerRequest, hub *Hub) (int, error) {
	room, err := s.rooms.RoomByCode(code)
	if err != nil {
		return 0, err
	}
	if room.Status != models.RoomStatusPlaying {
		return 0, ErrRoundNotActive
	}

	var player models.Player
	if err := s.db.Where("room_id = ? AND user_id = ?", room.ID, userID).
		First(&player).Error; err != nil {
		return 0, ErrNotInRoom
	}
	if player.Status == models.PlayerStatusAnswered {
		return 0, ErrAlreadyAnswered
	}

	points, err := s.scoreAnswer(room, req)
	if err != nil {
		return 0, err
	}

	// Score bumps go through a SQL expression so that concurrent submissions
	// for different rounds cannot lose an update.
	if err := s.db.Model(&models.Player{}).
		Where("id = ?", player.ID).
		Updates(map[string]interface{}{
			"score":  gorm.Expr("score + ?", points),
			"status": models.PlayerStatusAnswered,
		}).Error; err != nil {
		return 0, err
	}

	if hub != nil {
		hub.BroadcastRoomState(room.Code)
	}

	s.logger.Debug("answer scored",
		zap.String("room_id", room.ID),
		zap.String("user_id", userID),
		zap.Int("round", room.CurrentQuestionIndex),
		zap.Int("points", points))

	return points, nil
}

func (s *GameService) scoreAnswer(room *models.Room, req *SubmitAnswerRequest) (int, error) {
	switch room.GameType {
	case models.GameTypeQuiz:
		if room.CurrentQuestionIndex >= len(content.QuizQuestions) {
			return 0, fmt.Errorf("round %d is out of range for the quiz bank", room.CurrentQuestionIndex)
		}
		question := content.QuizQuestions[room.CurrentQuestionIndex]
		if req.AnswerIndex != nil && *req.AnswerIndex == question.CorrectIndex {
			return CorrectAnswerPoints, nil
		}
		return 0, nil

	case models.GameTypeWordScramble:
		target := content.ScrambleWords[room.CurrentQuestionIndex%len(content.ScrambleWords)]
		if strings.EqualFold(strings.TrimSpace(req.Word), target.Word) {
			return CorrectAnswerPoints, nil
		}
		return 0, nil

	case models.GameTypeHangman:
		target := content.HangmanWords[room.CurrentQuestionIndex%len(content.HangmanWords)]
		if req.WrongGuesses < content.HangmanMaxWrongGuesses &&
			strings.EqualFold(strings.TrimSpace(req.Word), target.Word) {
			return CorrectAnswerPoints, nil
		}
		return 0, nil

	default:
		return 0, ErrGameNotPlayable
	}
}

// CurrentRound exposes the round content a client should render for the
// room's current index: the question (without its answer key) for quiz, the
// target word's hint and length for the word games.
func (s *GameService) CurrentRound(room *models.Room) map[string]interface{} {
	switch room.GameType {
	case models.GameTypeQuiz:
		if room.CurrentQuestionIndex >= len(content.QuizQuestions) {
			return nil
		}
		q := content.QuizQuestions[room.CurrentQuestionIndex]
		return map[string]interface{}{
			"round":   room.CurrentQuestionIndex,
			"text":    q.Text,
			"options": q.Options,
		}

	case models.GameTypeWordScramble:
		w := content.ScrambleWords[room.CurrentQuestionIndex%len(content.ScrambleWords)]
		return map[string]interface{}{
			"round":  room.CurrentQuestionIndex,
			"hint":   w.Hint,
			"length": len(w.Word),
		}

	case models.GameTypeHangman:
		w := content.HangmanWords[room.CurrentQuestionIndex%len(content.HangmanWords)]
		return map[string]interface{}{
			"round":         room.CurrentQuestionIndex,
			"hint":          w.Hint,
			"length":        len(w.Word),
			"wrong_allowed": content.HangmanMaxWrongGuesses,
		}
	}
	return nil
}
