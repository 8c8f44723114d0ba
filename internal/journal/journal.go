// Package journal persists an audit trail of cell link events to SQLite.
package journal

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"time"

	_ "modernc.org/sqlite"

	"github.com/chapyter/cellsync"
)

const schema = `
CREATE TABLE IF NOT EXISTS link_events (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	created_at TEXT NOT NULL,
	notebook TEXT NOT NULL,
	action TEXT NOT NULL,
	trigger_id TEXT NOT NULL,
	generated_id TEXT NOT NULL,
	execution_count INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_link_events_notebook ON link_events(notebook);
`

// Journal stores link events in a SQLite database.
type Journal struct {
	db *sql.DB
}

// Entry is one stored link event.
type Entry struct {
	ID             int64     `json:"id"`
	CreatedAt      time.Time `json:"createdAt"`
	Notebook       string    `json:"notebook"`
	Action         string    `json:"action"`
	TriggerID      string    `json:"triggerId"`
	GeneratedID    string    `json:"generatedId"`
	ExecutionCount int       `json:"executionCount"`
}

// Open creates or opens the journal database at the given path.
func Open(path string) (*Journal, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open journal database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create journal schema: %w", err)
	}
	return &Journal{db: db}, nil
}

// Record stores one link event.
func (j *Journal) Record(ctx context.Context, ev cellsync.LinkEvent) error {
	_, err := j.db.ExecContext(ctx,
		`INSERT INTO link_events (created_at, notebook, action, trigger_id, generated_id, execution_count)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		time.Now().UTC().Format(time.RFC3339Nano),
		ev.Notebook, string(ev.Action), ev.TriggerID, ev.GeneratedID, ev.ExecutionCount)
	if err != nil {
		return fmt.Errorf("failed to record link event: %w", err)
	}
	return nil
}

// RecordLink implements cellsync.LinkRecorder. Journal failures are logged
// rather than surfaced; the audit trail must never block cell handling.
func (j *Journal) RecordLink(ev cellsync.LinkEvent) {
	if err := j.Record(context.Background(), ev); err != nil {
		log.Printf("[Journal] %v", err)
	}
}

// Recent returns the newest events, most recent first. An empty notebook
// matches all notebooks.
func (j *Journal) Recent(ctx context.Context, notebook string, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 50
	}
	query := `SELECT id, created_at, notebook, action, trigger_id, generated_id, execution_count
		FROM link_events`
	args := []any{}
	if notebook != "" {
		query += ` WHERE notebook = ?`
		args = append(args, notebook)
	}
	query += ` ORDER BY id DESC LIMIT ?`
	args = append(args, limit)

	rows, err := j.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query link events: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var created string
		if err := rows.Scan(&e.ID, &created, &e.Notebook, &e.Action, &e.TriggerID, &e.GeneratedID, &e.ExecutionCount); err != nil {
			return nil, fmt.Errorf("failed to scan link event: %w", err)
		}
		e.CreatedAt, _ = time.Parse(time.RFC3339Nano, created)
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read link events: %w", err)
	}
	return entries, nil
}

// Close closes the underlying database.
func (j *Journal) Close() error {
	return j.db.Close()
}
