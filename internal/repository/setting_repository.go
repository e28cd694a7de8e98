package repository

import (
	"database/sql"
	"fmt"
	"time"
)

// SettingRepository provides data access methods for the system_settings
// key/value table. It stores operational configuration such as the encrypted
// exchange-rate provider token.
type SettingRepository struct {
	db *sql.DB
}

// NewSettingRepository creates a new SettingRepository with the provided database connection.
func NewSettingRepository(db *sql.DB) *SettingRepository {
	return &SettingRepository{db: db}
}

// GetSetting retrieves a setting value by key. Returns an empty string with no
// error when the key does not exist.
func (r *SettingRepository) GetSetting(key string) (string, error) {
	var value string
	err := r.db.QueryRow(`SELECT value FROM system_settings WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to scan system_settings results: %w", err)
	}
	return value, nil
}

// SetSetting inserts or replaces a setting value.
func (r *SettingRepository) SetSetting(key, value string) error {
	_, err := r.db.Exec(`
		INSERT INTO system_settings (key, value, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT (key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, value, time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("failed to set system setting: %w", err)
	}
	return nil
}
