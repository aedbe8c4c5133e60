package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/estudai/estudai/internal/auth"
	apperrors "github.com/estudai/estudai/internal/errors"
	"github.com/estudai/estudai/internal/logger"
	"github.com/estudai/estudai/internal/models"
	"github.com/estudai/estudai/internal/storage"
	"github.com/estudai/estudai/internal/validation"
)

// SignUp creates the account together with its profile and default settings.
func (s *Store) SignUp(ctx context.Context, req storage.SignUpRequest) (models.User, error) {
	if err := validation.SignUp(req.Email, req.Password, req.Name); err != nil {
		return models.User{}, err
	}
	email := auth.NormalizeEmail(req.Email)

	var count int
	if err := s.queryRow(ctx, s.db, "SELECT COUNT(*) FROM users WHERE LOWER(email) = ?", email).Scan(&count); err != nil {
		return models.User{}, fmt.Errorf("check email: %w", err)
	}
	if count > 0 {
		return models.User{}, apperrors.ErrEmailTaken
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return models.User{}, err
	}

	now := s.now().UTC()
	ts := now.Format(time.RFC3339)
	user := models.User{ID: auth.NewUserID(), Email: email, Name: req.Name, CreatedAt: now.Truncate(time.Second)}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return models.User{}, err
	}
	defer tx.Rollback()

	if _, err := s.exec(ctx, tx,
		"INSERT INTO users (id, email, name, password_hash, created_at) VALUES (?, ?, ?, ?, ?)",
		user.ID, user.Email, user.Name, hash, ts); err != nil {
		return models.User{}, fmt.Errorf("insert user: %w", err)
	}
	if _, err := s.exec(ctx, tx,
		"INSERT INTO profiles (id, username, name, email, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?)",
		user.ID, auth.Username(email), user.Name, user.Email, ts, ts); err != nil {
		return models.User{}, fmt.Errorf("insert profile: %w", err)
	}
	if err := s.writeSettings(ctx, tx, user.ID, models.DefaultSettings()); err != nil {
		return models.User{}, err
	}

	if err := tx.Commit(); err != nil {
		return models.User{}, err
	}
	logger.Info("Account created", "user", user.ID)
	return user, nil
}

func (s *Store) SignIn(ctx context.Context, email, password string) (models.Session, error) {
	var userID, hash string
	err := s.queryRow(ctx, s.db, "SELECT id, password_hash FROM users WHERE LOWER(email) = ?",
		auth.NormalizeEmail(email)).Scan(&userID, &hash)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Session{}, apperrors.ErrInvalidCredentials
	}
	if err != nil {
		return models.Session{}, fmt.Errorf("lookup user: %w", err)
	}
	if !auth.CheckPassword(hash, password) {
		return models.Session{}, apperrors.ErrInvalidCredentials
	}

	session := auth.NewSession(userID, s.now())
	if _, err := s.exec(ctx, s.db, "INSERT INTO sessions (token, user_id, expires_at) VALUES (?, ?, ?)",
		session.Token, session.UserID, session.ExpiresAt.Format(time.RFC3339)); err != nil {
		return models.Session{}, fmt.Errorf("create session: %w", err)
	}
	return session, nil
}

// SignOut revokes token. Unknown tokens are ignored.
func (s *Store) SignOut(ctx context.Context, token string) error {
	if _, err := s.exec(ctx, s.db, "DELETE FROM sessions WHERE token = ?", token); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

func (s *Store) CurrentUser(ctx context.Context, token string) (models.User, error) {
	if token == "" {
		return models.User{}, apperrors.ErrUnauthenticated
	}

	var user models.User
	var createdAt, expiresAt string
	err := s.queryRow(ctx, s.db, `
		SELECT u.id, u.email, u.name, u.created_at, s.expires_at
		FROM sessions s JOIN users u ON u.id = s.user_id
		WHERE s.token = ?`, token).Scan(&user.ID, &user.Email, &user.Name, &createdAt, &expiresAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, apperrors.ErrUnauthenticated
	}
	if err != nil {
		return models.User{}, fmt.Errorf("lookup session: %w", err)
	}

	expiry, err := time.Parse(time.RFC3339, expiresAt)
	if err != nil || !s.now().Before(expiry) {
		_ = s.SignOut(ctx, token)
		return models.User{}, fmt.Errorf("%w: %w", apperrors.ErrUnauthenticated, auth.ErrExpired)
	}
	user.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	return user, nil
}

// ResetPassword stores a one-time reset token. There is no mailer, so the
// token is returned to the caller and logged.
func (s *Store) ResetPassword(ctx context.Context, email string) (string, error) {
	var userID string
	err := s.queryRow(ctx, s.db, "SELECT id FROM users WHERE LOWER(email) = ?", auth.NormalizeEmail(email)).Scan(&userID)
	if errors.Is(err, sql.ErrNoRows) {
		logger.Info("Password reset requested for unknown email")
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("lookup user: %w", err)
	}

	token, expires := auth.NewResetToken(s.now())
	if _, err := s.exec(ctx, s.db, "INSERT INTO password_resets (token, user_id, expires_at) VALUES (?, ?, ?)",
		token, userID, expires.Format(time.RFC3339)); err != nil {
		return "", fmt.Errorf("create reset token: %w", err)
	}
	logger.Info("Password reset issued", "user", userID, "expires", expires.Format(time.RFC3339))
	return token, nil
}

// ConfirmPasswordReset sets a new password and revokes every session of the user.
func (s *Store) ConfirmPasswordReset(ctx context.Context, token, newPassword string) error {
	if err := validation.Password(newPassword); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var userID, expiresAt string
	err = s.queryRow(ctx, tx, "SELECT user_id, expires_at FROM password_resets WHERE token = ? AND used = ?", token, false).
		Scan(&userID, &expiresAt)
	if errors.Is(err, sql.ErrNoRows) {
		return apperrors.Invalid("token", "invalid or already used reset token")
	}
	if err != nil {
		return fmt.Errorf("lookup reset token: %w", err)
	}
	if expiry, err := time.Parse(time.RFC3339, expiresAt); err != nil || !s.now().Before(expiry) {
		return apperrors.Invalid("token", "reset token expired")
	}

	hash, err := auth.HashPassword(newPassword)
	if err != nil {
		return err
	}
	if _, err := s.exec(ctx, tx, "UPDATE users SET password_hash = ? WHERE id = ?", hash, userID); err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	if _, err := s.exec(ctx, tx, "UPDATE password_resets SET used = ? WHERE token = ?", true, token); err != nil {
		return fmt.Errorf("consume reset token: %w", err)
	}
	if _, err := s.exec(ctx, tx, "DELETE FROM sessions WHERE user_id = ?", userID); err != nil {
		return fmt.Errorf("revoke sessions: %w", err)
	}
	return tx.Commit()
}
