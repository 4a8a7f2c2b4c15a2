// Package tracking records display-layer events (page views, plays,
// searches) in the shared store, independently of the read path.
// Recording is best effort: a failed insert is reported to the caller
// for logging but must never abort the surrounding flow.
package tracking

import (
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// Action identifies the kind of event.
type Action string

const (
	ActionPageView Action = "PAGE_VIEW"
	ActionPlay     Action = "PLAY_MOVIE"
	ActionSearch   Action = "SEARCH"
)

// Event is one recorded visitor action.
type Event struct {
	Action       Action
	ContentTitle string
	Query        string
	Timestamp    time.Time
}

// Log writes events into the visitor_logs table of the shared store.
type Log struct {
	db  *sql.DB
	now func() time.Time
}

const trackingSchema = `
CREATE TABLE IF NOT EXISTS visitor_logs (
	id            INTEGER PRIMARY KEY AUTOINCREMENT,
	action        TEXT NOT NULL,
	content_title TEXT NOT NULL DEFAULT '',
	query         TEXT NOT NULL DEFAULT '',
	timestamp     TEXT NOT NULL
);`

// Open opens (creating if needed) the visitor log at path. The path is
// normally the same SQLite file as the shared cache.
func Open(path string) (*Log, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening visitor log: %w", err)
	}
	if _, err := db.Exec(trackingSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("preparing visitor log schema: %w", err)
	}
	return &Log{db: db, now: time.Now}, nil
}

// Record inserts one event.
func (l *Log) Record(e Event) error {
	ts := e.Timestamp
	if ts.IsZero() {
		ts = l.now()
	}
	_, err := l.db.Exec(
		`INSERT INTO visitor_logs (action, content_title, query, timestamp) VALUES (?, ?, ?, ?)`,
		string(e.Action), e.ContentTitle, e.Query, ts.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("recording event: %w", err)
	}
	return nil
}

// PageView records a detail page view.
func (l *Log) PageView(title string) error {
	return l.Record(Event{Action: ActionPageView, ContentTitle: title})
}

// Play records the start of playback.
func (l *Log) Play(title string) error {
	return l.Record(Event{Action: ActionPlay, ContentTitle: title})
}

// Search records a search query.
func (l *Log) Search(query string) error {
	return l.Record(Event{Action: ActionSearch, Query: query})
}

// Recent returns up to limit events, newest first.
func (l *Log) Recent(limit int) ([]Event, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := l.db.Query(
		`SELECT action, content_title, query, timestamp FROM visitor_logs ORDER BY id DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("reading visitor log: %w", err)
	}
	defer rows.Close()

	var events []Event
	for rows.Next() {
		var e Event
		var action, ts string
		if err := rows.Scan(&action, &e.ContentTitle, &e.Query, &ts); err != nil {
			return nil, fmt.Errorf("scanning visitor log: %w", err)
		}
		e.Action = Action(action)
		if t, err := time.Parse(time.RFC3339, ts); err == nil {
			e.Timestamp = t
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

// Close releases the underlying store handle.
func (l *Log) Close() error {
	return l.db.Close()
}
