// Package auth holds the credential primitives shared by the storage backends.
package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/estudai/estudai/internal/constants"
	"github.com/estudai/estudai/internal/models"
)

// HashPassword returns a bcrypt hash of password.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// CheckPassword reports whether password matches hash.
func CheckPassword(hash, password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

// NewUserID returns a random account id.
func NewUserID() string {
	return uuid.NewString()
}

// NewSession issues a session token for userID that expires after SessionTTL.
func NewSession(userID string, now time.Time) models.Session {
	return models.Session{
		Token:     uuid.NewString(),
		UserID:    userID,
		ExpiresAt: now.Add(constants.SessionTTL).UTC(),
	}
}

// NewResetToken returns a one-time password reset token and its expiry.
func NewResetToken(now time.Time) (string, time.Time) {
	return uuid.NewString(), now.Add(constants.ResetTokenTTL).UTC()
}

// ValidToken reports whether s has the shape of an issued token.
func ValidToken(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil
}

// NormalizeEmail trims and lower-cases an address for lookups.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Username derives the default username from the local part of an email.
func Username(email string) string {
	email = strings.TrimSpace(email)
	if at := strings.Index(email, "@"); at >= 0 {
		return email[:at]
	}
	return email
}

// ErrExpired is returned for sessions or reset tokens past their expiry.
var ErrExpired = errors.New("token expired")
