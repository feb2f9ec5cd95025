package services

import (
	"errors"
	"regexp"
	"strings"
	"testing"

	"deenquest/models"
)

var roomCodePattern = regexp.MustCompile(`^[A-Z0-9]{6}$`)

func TestGenerateRoomCodeFormat(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 200; i++ {
		code := generateRoomCode()
		if !roomCodePattern.MatchString(code) {
			t.Fatalf("code %q does not match %s", code, roomCodePattern)
		}
		seen[code] = true
	}
	// Uniform sampling over 36^6 should essentially never repeat in 200 draws.
	if len(seen) < 199 {
		t.Errorf("expected ~200 distinct codes, got %d", len(seen))
	}
}

func TestCreateRoom(t *testing.T) {
	env := newTestEnv(t)

	room, err := env.rooms.CreateRoom("host-1", "Amina", models.GameTypeQuiz, nil)
	if err != nil {
		t.Fatalf("CreateRoom: %v", err)
	}

	if room.Status != models.RoomStatusWaiting {
		t.Errorf("status = %q, want waiting", room.Status)
	}
	if room.CurrentQuestionIndex != 0 {
		t.Errorf("current_question_index = %d, want 0", room.CurrentQuestionIndex)
	}
	if room.HostID != "host-1" {
		t.Errorf("host_id = %q, want host-1", room.HostID)
	}
	if !roomCodePattern.MatchString(room.Code) {
		t.Errorf("code %q is malformed", room.Code)
	}

	// Creating a room implicitly joins the host.
	players, err := env.rooms.Players(room.ID)
	if err != nil {
		t.Fatalf("Players: %v", err)
	}
	if len(players) != 1 {
		t.Fatalf("player count = %d, want 1", len(players))
	}
	if players[0].UserID != "host-1" || players[0].Score != 0 {
		t.Errorf("host player = %+v, want user host-1 with score 0", players[0])
	}
}

func TestCreateRoomUnknownGameType(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.rooms.CreateRoom("host-1", "Amina", "chess", nil)
	if !errors.Is(err, ErrUnknownGameType) {
		t.Fatalf("err = %v, want ErrUnknownGameType", err)
	}
}

func TestCreateRoomAcceptsUnplayableTypes(t *testing.T) {
	env := newTestEnv(t)

	// Declared types without rule sets are still selectable.
	for _, gt := range []string{models.GameTypeQuranVerses, models.GameTypeProphetTimeline, models.GameTypeDuaCompletion} {
		if _, err := env.rooms.CreateRoom("host-1", "Amina", gt, nil); err != nil {
			t.Errorf("CreateRoom(%s): %v", gt, err)
		}
	}
}

func TestJoinRoomIdempotent(t *testing.T) {
	env := newTestEnv(t)

	room, err := env.rooms.CreateRoom("host-1", "Amina", models.GameTypeQuiz, nil)
	if err != nil {
		t.Fatalf("CreateRoom: %v", err)
	}

	first, err := env.rooms.JoinRoom(room.Code, "user-2", "Bilal", nil)
	if err != nil {
		t.Fatalf("first join: %v", err)
	}
	second, err := env.rooms.JoinRoom(room.Code, "user-2", "Bilal", nil)
	if err != nil {
		t.Fatalf("second join: %v", err)
	}

	if first.ID != second.ID {
		t.Errorf("duplicate join created a new player row: %s vs %s", first.ID, second.ID)
	}

	players, _ := env.rooms.Players(room.ID)
	if len(players) != 2 {
		t.Errorf("player count = %d, want 2 (host + one joiner)", len(players))
	}
}

func TestJoinRoomCaseInsensitiveCode(t *testing.T) {
	env := newTestEnv(t)

	room, _ := env.rooms.CreateRoom("host-1", "Amina", models.GameTypeQuiz, nil)

	if _, err := env.rooms.JoinRoom("  "+strings.ToLower(room.Code)+" ", "user-2", "Bilal", nil); err != nil {
		t.Fatalf("join with lowercased padded code: %v", err)
	}
}

func TestJoinRoomNotFound(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.rooms.JoinRoom("ZZZZZZ", "user-2", "Bilal", nil)
	if !errors.Is(err, ErrRoomNotFound) {
		t.Fatalf("err = %v, want ErrRoomNotFound", err)
	}
}

func TestWaitingRoomsExcludesStarted(t *testing.T) {
	env := newTestEnv(t)

	open, _ := env.rooms.CreateRoom("host-1", "Amina", models.GameTypeQuiz, nil)
	started, _ := env.rooms.CreateRoom("host-2", "Bilal", models.GameTypeQuiz, nil)
	if _, err := env.games.StartGame(started.Code, "host-2", nil); err != nil {
		t.Fatalf("StartGame: %v", err)
	}

	rooms, err := env.rooms.WaitingRooms()
	if err != nil {
		t.Fatalf("WaitingRooms: %v", err)
	}
	if len(rooms) != 1 || rooms[0].ID != open.ID {
		t.Errorf("waiting rooms = %+v, want only %s", rooms, open.ID)
	}
}

func TestPlayersOrderedByScore(t *testing.T) {
	env := newTestEnv(t)

	room, _ := env.rooms.CreateRoom("host-1", "Amina", models.GameTypeQuiz, nil)
	env.rooms.JoinRoom(room.Code, "user-2", "Bilal", nil)
	env.rooms.JoinRoom(room.Code, "user-3", "Zainab", nil)

	env.db.Model(&models.Player{}).Where("user_id = ?", "user-3").Update("score", 30)
	env.db.Model(&models.Player{}).Where("user_id = ?", "user-2").Update("score", 10)

	players, err := env.rooms.Players(room.ID)
	if err != nil {
		t.Fatalf("Players: %v", err)
	}

	want := []string{"user-3", "user-2", "host-1"}
	for i, userID := range want {
		if players[i].UserID != userID {
			t.Fatalf("players[%d] = %s, want %s (order %v)", i, players[i].UserID, userID, want)
		}
	}
}

func TestCachedRoomStateFallsThroughToDB(t *testing.T) {
	env := newTestEnv(t)

	room, _ := env.rooms.CreateRoom("host-1", "Amina", models.GameTypeQuiz, nil)

	state, err := env.rooms.CachedRoomState(room.Code)
	if err != nil {
		t.Fatalf("CachedRoomState: %v", err)
	}
	if state.Room.ID != room.ID || len(state.Players) != 1 {
		t.Errorf("state = %+v, want room %s with 1 player", state, room.ID)
	}

	// Second read should be served from the cache written by the first.
	cached, err := env.rooms.CachedRoomState(room.Code)
	if err != nil {
		t.Fatalf("CachedRoomState (cached): %v", err)
	}
	if cached.Room.ID != room.ID {
		t.Errorf("cached room id = %s, want %s", cached.Room.ID, room.ID)
	}
}
