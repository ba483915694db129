package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// Setting keys.
const (
	SettingDailyFolder = "daily_folder"
)

// DefaultDailyFolder is used when no daily folder has been set.
const DefaultDailyFolder = "daily"

// GetSetting returns the value stored under key. ok is false when the key
// has never been set.
func (s *Store) GetSetting(ctx context.Context, key string) (value string, ok bool, err error) {
	err = s.db.QueryRowContext(ctx, `SELECT value FROM settings WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get setting %s: %w", key, err)
	}
	return value, true, nil
}

// SetSetting stores value under key, replacing any previous value.
func (s *Store) SetSetting(ctx context.Context, key, value string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO settings (key, value, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`, key, value, s.clock.Now().UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("set setting %s: %w", key, err)
	}
	return nil
}

// DailyFolder returns the configured daily folder, or DefaultDailyFolder.
func (s *Store) DailyFolder(ctx context.Context) (string, error) {
	v, ok, err := s.GetSetting(ctx, SettingDailyFolder)
	if err != nil {
		return "", err
	}
	if !ok || v == "" {
		return DefaultDailyFolder, nil
	}
	return v, nil
}
