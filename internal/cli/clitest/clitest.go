// Package clitest sets up a signed-in command context backed by a temporary
// SQLite store.
package clitest

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	gokeyring "github.com/zalando/go-keyring"

	"github.com/estudai/estudai/internal/cli"
	"github.com/estudai/estudai/internal/keyring"
	"github.com/estudai/estudai/internal/models"
	"github.com/estudai/estudai/internal/storage"
	"github.com/estudai/estudai/internal/storage/sqlite"
)

const (
	Email    = "ana@usp.br"
	Password = "segredo1"
)

// Now is the fixed clock of contexts built by Setup: Friday 2025-11-14 10:00 UTC.
func Now() time.Time {
	return time.Date(2025, 11, 14, 10, 0, 0, 0, time.UTC)
}

// NewStore opens a migrated SQLite store under t.TempDir and mocks the keyring.
func NewStore(t *testing.T) *sqlite.Store {
	t.Helper()
	gokeyring.MockInit()

	store := sqlite.NewStore(filepath.Join(t.TempDir(), "test.db"), nil)
	if err := store.Init(); err != nil {
		t.Fatalf("failed to init store: %v", err)
	}
	t.Cleanup(func() {
		_ = keyring.DeleteSessionToken()
		if err := store.Close(); err != nil {
			t.Errorf("failed to close store: %v", err)
		}
	})
	return store
}

// Setup returns a context whose keyring holds a valid session for a new user.
func Setup(t *testing.T) (*cli.Context, models.User) {
	t.Helper()
	store := NewStore(t)

	bg := context.Background()
	user, err := store.SignUp(bg, storage.SignUpRequest{Email: Email, Password: Password, Name: "Ana"})
	if err != nil {
		t.Fatalf("failed to sign up: %v", err)
	}
	session, err := store.SignIn(bg, Email, Password)
	if err != nil {
		t.Fatalf("failed to sign in: %v", err)
	}
	if err := keyring.SetSessionToken(session.Token); err != nil {
		t.Fatalf("failed to store session: %v", err)
	}

	return &cli.Context{
		Store:    store,
		Location: time.UTC,
		Now:      Now,
	}, user
}
