package store

import (
	"fmt"
	"strconv"
)

func (s *Store) GetSetting(key string) (string, error) {
	var value string
	err := s.db.QueryRow(`SELECT value FROM settings WHERE key = ?`, key).Scan(&value)
	if err != nil {
		return "", fmt.Errorf("get setting %q: %w", key, err)
	}
	return value, nil
}

// SetSetting upserts a setting. Seeds must be unsigned integers.
func (s *Store) SetSetting(key, value string) error {
	if key == KeySeed {
		if _, err := strconv.ParseUint(value, 10, 64); err != nil {
			return fmt.Errorf("setting %q: %w", key, err)
		}
	}
	_, err := s.db.Exec(
		`INSERT INTO settings (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		key, value,
	)
	return err
}

func (s *Store) GetAllSettings() ([]Setting, error) {
	rows, err := s.db.Query(`SELECT key, value FROM settings ORDER BY key`)
	if err != nil {
		return nil, fmt.Errorf("list settings: %w", err)
	}
	defer rows.Close()

	var settings []Setting
	for rows.Next() {
		var s Setting
		if err := rows.Scan(&s.Key, &s.Value); err != nil {
			return nil, err
		}
		settings = append(settings, s)
	}
	return settings, rows.Err()
}

// Config reads the typed settings.
func (s *Store) Config() (Config, error) {
	var c Config
	var err error
	if c.Site, err = s.GetSetting(KeySite); err != nil {
		return c, err
	}
	seed, err := s.GetSetting(KeySeed)
	if err != nil {
		return c, err
	}
	if c.Seed, err = strconv.ParseUint(seed, 10, 64); err != nil {
		return c, fmt.Errorf("parse seed %q: %w", seed, err)
	}
	if c.ExportDir, err = s.GetSetting(KeyExportDir); err != nil {
		return c, err
	}
	return c, nil
}
