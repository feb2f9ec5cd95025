package services

import (
	"errors"
	"testing"
)

func TestRegisterAndLogin(t *testing.T) {
	db := newTestDB(t)
	auth := NewAuthService(db, "test-secret")

	user, token, err := auth.Register("amina@example.com", "Amina", "secret123")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if token == "" {
		t.Fatal("register returned no token")
	}

	userID, err := auth.ValidateToken(token)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if userID != user.ID {
		t.Errorf("token subject = %s, want %s", userID, user.ID)
	}

	if _, _, err := auth.Register("amina@example.com", "Other", "secret123"); !errors.Is(err, ErrEmailTaken) {
		t.Errorf("duplicate register err = %v, want ErrEmailTaken", err)
	}

	if _, _, err := auth.Login("amina@example.com", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("bad password err = %v, want ErrInvalidCredentials", err)
	}

	loggedIn, token2, err := auth.Login("amina@example.com", "secret123")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if loggedIn.ID != user.ID || token2 == "" {
		t.Errorf("login = (%s, %q), want user %s with a token", loggedIn.ID, token2, user.ID)
	}
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	auth := NewAuthService(newTestDB(t), "test-secret")

	for _, token := range []string{"", "not-a-jwt", "a.b.c"} {
		if _, err := auth.ValidateToken(token); !errors.Is(err, ErrNotAuthenticated) {
			t.Errorf("ValidateToken(%q) err = %v, want ErrNotAuthenticated", token, err)
		}
	}
}

func TestValidateTokenWrongSecret(t *testing.T) {
	db := newTestDB(t)
	issuer := NewAuthService(db, "secret-a")
	verifier := NewAuthService(db, "secret-b")

	_, token, err := issuer.Register("amina@example.com", "Amina", "secret123")
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	if _, err := verifier.ValidateToken(token); !errors.Is(err, ErrNotAuthenticated) {
		t.Errorf("cross-secret validation err = %v, want ErrNotAuthenticated", err)
	}
}
