package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/estudai/estudai/internal/constants"
	apperrors "github.com/estudai/estudai/internal/errors"
	"github.com/estudai/estudai/internal/models"
	"github.com/estudai/estudai/internal/realtime"
	"github.com/estudai/estudai/internal/validation"
)

func (s *Store) GetProfile(ctx context.Context, userID string) (models.Profile, error) {
	var p models.Profile
	err := s.queryRow(ctx, s.db, `
		SELECT id, username, name, email, institution, course, avatar_url, bio, created_at, updated_at
		FROM profiles WHERE id = ?`, userID).Scan(
		&p.ID, &p.Username, &p.Name, &p.Email, &p.Institution, &p.Course, &p.AvatarURL, &p.Bio,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Profile{}, fmt.Errorf("profile: %w", apperrors.ErrNotFound)
	}
	if err != nil {
		return models.Profile{}, fmt.Errorf("load profile: %w", err)
	}
	return p, nil
}

// UpdateProfile applies patch and returns the stored profile.
func (s *Store) UpdateProfile(ctx context.Context, userID string, patch models.ProfilePatch) (models.Profile, error) {
	current, err := s.GetProfile(ctx, userID)
	if err != nil {
		return models.Profile{}, err
	}
	if patch.IsEmpty() {
		return current, nil
	}

	updated := patch.Apply(current)
	if err := validation.Profile(updated); err != nil {
		return models.Profile{}, err
	}
	updated.UpdatedAt = s.timestamp()

	_, err = s.exec(ctx, s.db, `
		UPDATE profiles
		SET username = ?, name = ?, email = ?, institution = ?, course = ?, avatar_url = ?, bio = ?, updated_at = ?
		WHERE id = ?`,
		updated.Username, updated.Name, updated.Email, updated.Institution, updated.Course,
		updated.AvatarURL, updated.Bio, updated.UpdatedAt, userID)
	if err != nil {
		return models.Profile{}, fmt.Errorf("update profile: %w", err)
	}

	s.publish(ctx, constants.TableProfiles, realtime.ActionUpdate, userID)
	return updated, nil
}
