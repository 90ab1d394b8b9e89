package database

import (
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// PreferenceRepository stores small per-client settings such as the theme
type PreferenceRepository interface {
	// Get returns ok=false when the client never set key
	Get(clientID, key string) (value string, ok bool, err error)
	Set(clientID, key, value string) error
}

type preferenceRepository struct {
	db  *sql.DB
	now func() time.Time
}

func NewPreferenceRepository(db *sql.DB) PreferenceRepository {
	return &preferenceRepository{db: db, now: time.Now}
}

func (r *preferenceRepository) Get(clientID, key string) (string, bool, error) {
	var value string
	err := r.db.QueryRow(
		`SELECT value FROM preferences WHERE client_id = ? AND key = ?`,
		clientID, key,
	).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to read preference %q: %w", key, err)
	}
	return value, true, nil
}

func (r *preferenceRepository) Set(clientID, key, value string) error {
	_, err := r.db.Exec(`INSERT INTO preferences (client_id, key, value, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (client_id, key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		clientID, key, value, r.now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to store preference %q: %w", key, err)
	}
	return nil
}
