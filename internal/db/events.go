package db

import (
	"fmt"
	"time"
)

// Event represents a resolution failure or degradation record
type Event struct {
	ID         int64
	EventType  string
	MountPoint string
	Details    string
	Timestamp  time.Time
}

// RecordEvent logs a resolution event
func (d *DB) RecordEvent(eventType, mountPoint, details string) error {
	_, err := d.conn.Exec(`
		INSERT INTO events (event_type, mount_point, details)
		VALUES (?, ?, ?)
	`, eventType, mountPoint, details)
	if err != nil {
		return fmt.Errorf("failed to record event: %w", err)
	}
	return nil
}

// ListEvents returns the most recent events, newest first
func (d *DB) ListEvents(limit int) ([]*Event, error) {
	if limit <= 0 {
		limit = 100
	}

	rows, err := d.conn.Query(`
		SELECT id, event_type, COALESCE(mount_point, ''), COALESCE(details, ''), timestamp
		FROM events
		ORDER BY timestamp DESC, id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query events: %w", err)
	}
	defer rows.Close()

	var events []*Event
	for rows.Next() {
		e := &Event{}
		if err := rows.Scan(&e.ID, &e.EventType, &e.MountPoint, &e.Details, &e.Timestamp); err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}
