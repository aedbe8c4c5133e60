package auth

import (
	"testing"
	"time"

	"github.com/estudai/estudai/internal/constants"
)

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("segredo1")
	if err != nil {
		t.Fatalf("HashPassword() error = %v", err)
	}
	if hash == "segredo1" {
		t.Fatal("hash equals the plain password")
	}
	if !CheckPassword(hash, "segredo1") {
		t.Error("CheckPassword() rejected the right password")
	}
	if CheckPassword(hash, "segredo2") {
		t.Error("CheckPassword() accepted the wrong password")
	}
	if CheckPassword("not-a-hash", "segredo1") {
		t.Error("CheckPassword() accepted a malformed hash")
	}
}

func TestNewSession(t *testing.T) {
	now := time.Date(2026, 10, 16, 10, 0, 0, 0, time.UTC)
	s := NewSession("u1", now)

	if s.UserID != "u1" {
		t.Errorf("UserID = %q", s.UserID)
	}
	if !ValidToken(s.Token) {
		t.Errorf("Token %q is not a uuid", s.Token)
	}
	if !s.ExpiresAt.Equal(now.Add(constants.SessionTTL)) {
		t.Errorf("ExpiresAt = %v", s.ExpiresAt)
	}
	if s.Expired(now) {
		t.Error("new session already expired")
	}
	if !s.Expired(now.Add(constants.SessionTTL)) {
		t.Error("session should expire at its TTL")
	}

	other := NewSession("u1", now)
	if other.Token == s.Token {
		t.Error("two sessions share a token")
	}
}

func TestNewResetToken(t *testing.T) {
	now := time.Date(2026, 10, 16, 10, 0, 0, 0, time.UTC)
	token, expires := NewResetToken(now)
	if !ValidToken(token) {
		t.Errorf("token %q is not a uuid", token)
	}
	if !expires.Equal(now.Add(constants.ResetTokenTTL)) {
		t.Errorf("expires = %v", expires)
	}
}

func TestUsername(t *testing.T) {
	tests := []struct {
		email string
		want  string
	}{
		{"ana.souza@usp.br", "ana.souza"},
		{"  joao@example.com ", "joao"},
		{"no-at-sign", "no-at-sign"},
	}
	for _, tt := range tests {
		if got := Username(tt.email); got != tt.want {
			t.Errorf("Username(%q) = %q, want %q", tt.email, got, tt.want)
		}
	}
}

func TestNormalizeEmail(t *testing.T) {
	if got := NormalizeEmail("  Ana@Example.COM "); got != "ana@example.com" {
		t.Errorf("NormalizeEmail() = %q", got)
	}
}
