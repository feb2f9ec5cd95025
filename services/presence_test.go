package services

import (
	"testing"
)

func TestPresenceSnapshot(t *testing.T) {
	env := newTestEnv(t)

	if err := env.presence.Join("user-1", "Amina", nil); err != nil {
		t.Fatalf("join: %v", err)
	}
	if err := env.presence.Join("user-2", "Bilal", nil); err != nil {
		t.Fatalf("join: %v", err)
	}

	entries, err := env.presence.Snapshot()
	if err != nil {
		t.Fatalf("snapshot: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("entries = %d, want 2", len(entries))
	}
	for _, entry := range entries {
		if entry.Status != PresenceIdle {
			t.Errorf("entry %s status = %q, want idle on join", entry.UserID, entry.Status)
		}
		if entry.OnlineAt.IsZero() {
			t.Errorf("entry %s has no online_at timestamp", entry.UserID)
		}
	}
}

func TestPresenceSetStatus(t *testing.T) {
	env := newTestEnv(t)

	env.presence.Join("user-1", "Amina", nil)

	if err := env.presence.SetStatus("user-1", PresenceLookingForMatch, nil); err != nil {
		t.Fatalf("set status: %v", err)
	}

	entries, _ := env.presence.Snapshot()
	if entries[0].Status != PresenceLookingForMatch {
		t.Errorf("status = %q, want looking-for-match", entries[0].Status)
	}

	if err := env.presence.SetStatus("user-1", "sleeping", nil); err == nil {
		t.Error("invalid status accepted")
	}

	if err := env.presence.SetStatus("ghost", PresenceIdle, nil); err == nil {
		t.Error("status update for absent member accepted")
	}
}

func TestPresenceLeave(t *testing.T) {
	env := newTestEnv(t)

	env.presence.Join("user-1", "Amina", nil)
	env.presence.Join("user-2", "Bilal", nil)
	env.presence.Leave("user-1", nil)

	entries, _ := env.presence.Snapshot()
	if len(entries) != 1 || entries[0].UserID != "user-2" {
		t.Errorf("entries = %+v, want only user-2", entries)
	}
}
