package content

import (
	"testing"

	"deenquest/models"
)

func TestQuizBank(t *testing.T) {
	if len(QuizQuestions) != 5 {
		t.Fatalf("quiz bank size = %d, want 5", len(QuizQuestions))
	}
	for i, q := range QuizQuestions {
		if len(q.Options) < 2 {
			t.Errorf("question %d has %d options", i, len(q.Options))
		}
		if q.CorrectIndex < 0 || q.CorrectIndex >= len(q.Options) {
			t.Errorf("question %d correct index %d out of range", i, q.CorrectIndex)
		}
	}
}

func TestWordBanks(t *testing.T) {
	if len(ScrambleWords) == 0 || len(HangmanWords) == 0 {
		t.Fatal("word banks must not be empty")
	}
	for i, w := range ScrambleWords {
		if w.Word == "" || w.Hint == "" {
			t.Errorf("scramble entry %d incomplete: %+v", i, w)
		}
	}
	for i, w := range HangmanWords {
		if w.Word == "" || w.Hint == "" {
			t.Errorf("hangman entry %d incomplete: %+v", i, w)
		}
	}
}

func TestDescriptors(t *testing.T) {
	cases := []struct {
		gameType   string
		roundCount int
		wrap       bool
		playable   bool
	}{
		{models.GameTypeQuiz, len(QuizQuestions), false, true},
		{models.GameTypeWordScramble, ScrambleRounds, true, true},
		{models.GameTypeHangman, len(HangmanWords), true, true},
		{models.GameTypeQuranVerses, 0, false, false},
		{models.GameTypeProphetTimeline, 0, false, false},
		{models.GameTypeDuaCompletion, 0, false, false},
	}

	for _, tc := range cases {
		desc, ok := Descriptor(tc.gameType)
		if !ok {
			t.Errorf("Descriptor(%s): not found", tc.gameType)
			continue
		}
		if desc.RoundCount != tc.roundCount {
			t.Errorf("%s round count = %d, want %d", tc.gameType, desc.RoundCount, tc.roundCount)
		}
		if desc.Wrap != tc.wrap {
			t.Errorf("%s wrap = %v, want %v", tc.gameType, desc.Wrap, tc.wrap)
		}
		if desc.Playable != tc.playable {
			t.Errorf("%s playable = %v, want %v", tc.gameType, desc.Playable, tc.playable)
		}
	}

	if _, ok := Descriptor("chess"); ok {
		t.Error("Descriptor accepted an unknown game type")
	}

	if IsKnownGameType("chess") {
		t.Error("IsKnownGameType accepted an unknown game type")
	}
}
