package database

import (
	"database/sql"
	"fmt"
	"time"

	"jetdash/internal/models"
)

type PollHistoryRepository interface {
	InsertBatch(events []*models.PollEvent) error
	// Recent returns up to limit events, newest first
	Recent(limit int) ([]models.PollEvent, error)
	// Prune keeps the newest keep events and returns how many were removed
	Prune(keep int) (int64, error)
}

type pollHistoryRepository struct {
	db *sql.DB
}

func NewPollHistoryRepository(db *sql.DB) PollHistoryRepository {
	return &pollHistoryRepository{db: db}
}

// InsertBatch writes the events in a single transaction
func (r *pollHistoryRepository) InsertBatch(events []*models.PollEvent) error {
	if len(events) == 0 {
		return nil
	}

	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`INSERT INTO poll_history (
		timestamp, ok, aircraft_count, changed, duration_ms, error
	) VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer stmt.Close()

	for _, ev := range events {
		if _, err := stmt.Exec(
			ev.Timestamp.UTC(),
			ev.OK,
			ev.AircraftCount,
			ev.Changed,
			ev.Duration.Milliseconds(),
			ev.Error,
		); err != nil {
			return fmt.Errorf("failed to insert poll event: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

func (r *pollHistoryRepository) Recent(limit int) ([]models.PollEvent, error) {
	rows, err := r.db.Query(`SELECT timestamp, ok, aircraft_count, changed, duration_ms, error
		FROM poll_history ORDER BY timestamp DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query poll history: %w", err)
	}
	defer rows.Close()

	events := make([]models.PollEvent, 0, limit)
	for rows.Next() {
		var (
			ev         models.PollEvent
			durationMS int64
		)
		if err := rows.Scan(&ev.Timestamp, &ev.OK, &ev.AircraftCount, &ev.Changed, &durationMS, &ev.Error); err != nil {
			return nil, fmt.Errorf("failed to scan poll event: %w", err)
		}
		ev.Duration = time.Duration(durationMS) * time.Millisecond
		events = append(events, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read poll history: %w", err)
	}
	return events, nil
}

func (r *pollHistoryRepository) Prune(keep int) (int64, error) {
	res, err := r.db.Exec(`DELETE FROM poll_history WHERE id NOT IN (
		SELECT id FROM poll_history ORDER BY timestamp DESC, id DESC LIMIT ?
	)`, keep)
	if err != nil {
		return 0, fmt.Errorf("failed to prune poll history: %w", err)
	}
	return res.RowsAffected()
}
