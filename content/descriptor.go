package content

import "deenquest/models"

// GameTypeDescriptor fixes the round-count and index-wrap policy for one game
// type. The quiz bank is a hard stop (the game finishes before the index can
// leave the bank); word-scramble and hangman cycle their banks, so their round
// index is always taken modulo the bank size.
type GameTypeDescriptor struct {
	Type       string
	RoundCount int
	Wrap       bool
	Playable   bool
}

var descriptors = map[string]GameTypeDescriptor{
	models.GameTypeQuiz: {
		Type:       models.GameTypeQuiz,
		RoundCount: len(QuizQuestions),
		Playable:   true,
	},
	models.GameTypeWordScramble: {
		Type:       models.GameTypeWordScramble,
		RoundCount: ScrambleRounds,
		Wrap:       true,
		Playable:   true,
	},
	models.GameTypeHangman: {
		Type:       models.GameTypeHangman,
		RoundCount: len(HangmanWords),
		Wrap:       true,
		Playable:   true,
	},
	// Declared but without rule sets yet.
	models.GameTypeQuranVerses:     {Type: models.GameTypeQuranVerses},
	models.GameTypeProphetTimeline: {Type: models.GameTypeProphetTimeline},
	models.GameTypeDuaCompletion:   {Type: models.GameTypeDuaCompletion},
}

// Descriptor returns the descriptor for a game type. ok is false for
// unknown types.
func Descriptor(gameType string) (GameTypeDescriptor, bool) {
	d, ok := descriptors[gameType]
	return d, ok
}

// IsKnownGameType reports whether the game type can be selected at room
// creation, playable or not.
func IsKnownGameType(gameType string) bool {
	_, ok := descriptors[gameType]
	return ok
}
