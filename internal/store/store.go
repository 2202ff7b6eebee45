// Package store implements the SQLite-backed event store behind the
// /api/events contract. Ids are assigned here on creation and never change.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"

	_ "github.com/mattn/go-sqlite3"

	"github.com/minjae-im/dallyeok/internal/apperr"
	"github.com/minjae-im/dallyeok/internal/event"
)

const schemaSQL = `
CREATE TABLE IF NOT EXISTS events (
	id                TEXT PRIMARY KEY,
	title             TEXT NOT NULL DEFAULT '',
	date              TEXT NOT NULL,
	start_time        TEXT NOT NULL,
	end_time          TEXT NOT NULL,
	description       TEXT NOT NULL DEFAULT '',
	location          TEXT NOT NULL DEFAULT '',
	category          TEXT NOT NULL DEFAULT '',
	repeat_type       TEXT NOT NULL DEFAULT 'none',
	repeat_interval   INTEGER NOT NULL DEFAULT 0,
	repeat_end_date   TEXT NOT NULL DEFAULT '',
	notification_time INTEGER NOT NULL DEFAULT 0
);

CREATE INDEX IF NOT EXISTS idx_events_date ON events(date);
`

// DB wraps a sql.DB with event store operations.
type DB struct {
	conn *sql.DB
}

// Open opens (or creates) the SQLite database and applies the schema.
func Open(dsn string) (*DB, error) {
	conn, err := sql.Open("sqlite3", dsn+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("store: open db: %w", err)
	}
	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("store: ping: %w", err)
	}
	if _, err := conn.Exec(schemaSQL); err != nil {
		conn.Close()
		return nil, fmt.Errorf("store: apply schema: %w", err)
	}
	return &DB{conn: conn}, nil
}

// Close closes the underlying database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

const eventColumns = `id, title, date, start_time, end_time, description,
	location, category, repeat_type, repeat_interval, repeat_end_date, notification_time`

func scanEvent(row interface{ Scan(...any) error }) (event.Event, error) {
	var ev event.Event
	var repeatType string
	err := row.Scan(&ev.ID, &ev.Title, &ev.Date, &ev.StartTime, &ev.EndTime,
		&ev.Description, &ev.Location, &ev.Category,
		&repeatType, &ev.Repeat.Interval, &ev.Repeat.EndDate, &ev.NotificationTime)
	if err != nil {
		return event.Event{}, err
	}
	ev.Repeat.Type = event.RepeatType(repeatType)
	return ev, nil
}

// List returns every stored event ordered by insertion.
func (db *DB) List(ctx context.Context) ([]event.Event, error) {
	rows, err := db.conn.QueryContext(ctx, `SELECT `+eventColumns+` FROM events ORDER BY rowid`)
	if err != nil {
		return nil, fmt.Errorf("store: list: %w", err)
	}
	defer rows.Close()

	out := []event.Event{}
	for rows.Next() {
		ev, err := scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("store: scan: %w", err)
		}
		out = append(out, ev)
	}
	return out, rows.Err()
}

// Get returns the event with the given id, or apperr.ErrNotFound.
func (db *DB) Get(ctx context.Context, id string) (event.Event, error) {
	row := db.conn.QueryRowContext(ctx, `SELECT `+eventColumns+` FROM events WHERE id = ?`, id)
	ev, err := scanEvent(row)
	if errors.Is(err, sql.ErrNoRows) {
		return event.Event{}, apperr.ErrNotFound
	}
	if err != nil {
		return event.Event{}, fmt.Errorf("store: get %s: %w", id, err)
	}
	return ev, nil
}

// Create stores a new event. A client-supplied id is kept; otherwise the
// next numeric id is assigned. Returns the stored event.
func (db *DB) Create(ctx context.Context, ev event.Event) (event.Event, error) {
	if ev.ID == "" {
		id, err := db.nextID(ctx)
		if err != nil {
			return event.Event{}, err
		}
		ev.ID = id
	}
	_, err := db.conn.ExecContext(ctx, `
		INSERT INTO events (`+eventColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		ev.ID, ev.Title, ev.Date, ev.StartTime, ev.EndTime, ev.Description,
		ev.Location, ev.Category, string(ev.Repeat.Type), ev.Repeat.Interval,
		ev.Repeat.EndDate, ev.NotificationTime)
	if err != nil {
		return event.Event{}, fmt.Errorf("store: create: %w", err)
	}
	return ev, nil
}

// Update fully replaces the stored event with the same id. Returns
// apperr.ErrNotFound when the id is unknown.
func (db *DB) Update(ctx context.Context, ev event.Event) (event.Event, error) {
	res, err := db.conn.ExecContext(ctx, `
		UPDATE events SET
			title = ?, date = ?, start_time = ?, end_time = ?, description = ?,
			location = ?, category = ?, repeat_type = ?, repeat_interval = ?,
			repeat_end_date = ?, notification_time = ?
		WHERE id = ?`,
		ev.Title, ev.Date, ev.StartTime, ev.EndTime, ev.Description,
		ev.Location, ev.Category, string(ev.Repeat.Type), ev.Repeat.Interval,
		ev.Repeat.EndDate, ev.NotificationTime, ev.ID)
	if err != nil {
		return event.Event{}, fmt.Errorf("store: update %s: %w", ev.ID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return event.Event{}, fmt.Errorf("store: update %s: %w", ev.ID, err)
	}
	if n == 0 {
		return event.Event{}, apperr.ErrNotFound
	}
	return ev, nil
}

// Delete removes the event with the given id, or returns apperr.ErrNotFound.
func (db *DB) Delete(ctx context.Context, id string) error {
	res, err := db.conn.ExecContext(ctx, `DELETE FROM events WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("store: delete %s: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("store: delete %s: %w", id, err)
	}
	if n == 0 {
		return apperr.ErrNotFound
	}
	return nil
}

// nextID returns one past the highest numeric id in the table. Non-numeric
// client-supplied ids cast to 0 and never collide with generated ones.
func (db *DB) nextID(ctx context.Context) (string, error) {
	var max int64
	row := db.conn.QueryRowContext(ctx,
		`SELECT COALESCE(MAX(CAST(id AS INTEGER)), 0) FROM events`)
	if err := row.Scan(&max); err != nil {
		return "", fmt.Errorf("store: next id: %w", err)
	}
	return strconv.FormatInt(max+1, 10), nil
}
