package sqlstore

import (
	"context"
	"fmt"
	"sort"

	"github.com/estudai/estudai/internal/constants"
	"github.com/estudai/estudai/internal/models"
	"github.com/estudai/estudai/internal/realtime"
	"github.com/estudai/estudai/internal/validation"
)

// GetSettings reads the user's key/value rows, storing the defaults when
// the user has none yet.
func (s *Store) GetSettings(ctx context.Context, userID string) (models.Settings, error) {
	rows, err := s.query(ctx, s.db, "SELECT key, value FROM settings WHERE user_id = ?", userID)
	if err != nil {
		return models.Settings{}, fmt.Errorf("load settings: %w", err)
	}
	defer rows.Close()

	data := make(map[string]string)
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return models.Settings{}, err
		}
		data[key] = value
	}
	if err := rows.Err(); err != nil {
		return models.Settings{}, err
	}

	if len(data) == 0 {
		defaults := models.DefaultSettings()
		if err := s.writeSettings(ctx, s.db, userID, defaults); err != nil {
			return models.Settings{}, fmt.Errorf("failed to save default settings: %w", err)
		}
		return defaults, nil
	}
	return models.MapToSettings(data)
}

func (s *Store) UpdateSettings(ctx context.Context, userID string, patch models.SettingsPatch) (models.Settings, error) {
	current, err := s.GetSettings(ctx, userID)
	if err != nil {
		return models.Settings{}, err
	}
	if patch.IsEmpty() {
		return current, nil
	}

	updated := patch.Apply(current)
	if err := validation.Settings(updated); err != nil {
		return models.Settings{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return models.Settings{}, err
	}
	defer tx.Rollback()

	if err := s.writeSettings(ctx, tx, userID, updated); err != nil {
		return models.Settings{}, err
	}
	if err := tx.Commit(); err != nil {
		return models.Settings{}, err
	}

	s.publish(ctx, constants.TableSettings, realtime.ActionUpdate, userID)
	return updated, nil
}

func (s *Store) writeSettings(ctx context.Context, q queryer, userID string, settings models.Settings) error {
	data := models.SettingsToMap(settings)
	keys := make([]string, 0, len(data))
	for k := range data {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, key := range keys {
		if _, err := s.exec(ctx, q, `
			INSERT INTO settings (user_id, key, value) VALUES (?, ?, ?)
			ON CONFLICT (user_id, key) DO UPDATE SET value = excluded.value`,
			userID, key, data[key]); err != nil {
			return fmt.Errorf("save setting %s: %w", key, err)
		}
	}
	return nil
}
