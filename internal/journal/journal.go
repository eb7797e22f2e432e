// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/journal/journal.go
// Summary: SQLite journal of dispatched terminal input events.
//
// The journal contributes one handler per event kind. Registered after the
// view handlers, it records every event that was fully handled.

package journal

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/gdamore/tcell/v2"
	_ "modernc.org/sqlite"

	"github.com/kittech0/ric-rac-roe/input"
)

const schema = `
CREATE TABLE IF NOT EXISTS events (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    timestamp INTEGER NOT NULL,       -- UnixNano
    kind TEXT NOT NULL,
    detail TEXT NOT NULL DEFAULT ''
);

CREATE INDEX IF NOT EXISTS idx_events_timestamp ON events(timestamp);
CREATE INDEX IF NOT EXISTS idx_events_kind ON events(kind);
`

// Entry is one recorded event.
type Entry struct {
	ID     int64
	Time   time.Time
	Kind   string
	Detail string
}

// Journal appends input events to a SQLite database.
type Journal struct {
	db     *sql.DB
	insert *sql.Stmt
	now    func() time.Time
}

// Open creates or opens the journal database at path.
func Open(path string) (*Journal, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return nil, fmt.Errorf("journal: create directory: %w", err)
	}

	dsn := path +
		"?_pragma=journal_mode(WAL)" +
		"&_pragma=synchronous(NORMAL)" +
		"&_pragma=busy_timeout(2000)"

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("journal: open database: %w", err)
	}
	// Inserts happen on the dispatch goroutine only.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("journal: connect: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("journal: create schema: %w", err)
	}
	insert, err := db.Prepare("INSERT INTO events (timestamp, kind, detail) VALUES (?, ?, ?)")
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("journal: prepare insert: %w", err)
	}
	log.Printf("journal: recording input events to %s", path)
	return &Journal{db: db, insert: insert, now: time.Now}, nil
}

// Close releases the database.
func (j *Journal) Close() error {
	if err := j.insert.Close(); err != nil {
		j.db.Close()
		return fmt.Errorf("journal: close statement: %w", err)
	}
	return j.db.Close()
}

// Handlers returns one recording handler per event kind. A failed insert is
// returned to the dispatcher and therefore ends the input loop.
func (j *Journal) Handlers() input.Handlers {
	return input.Handlers{
		FocusGained: []input.FocusHandler{func(ctx context.Context) error {
			return j.record(ctx, input.KindFocusGained, "")
		}},
		FocusLost: []input.FocusHandler{func(ctx context.Context) error {
			return j.record(ctx, input.KindFocusLost, "")
		}},
		Key: []input.KeyHandler{func(ctx context.Context, key *tcell.EventKey) error {
			return j.record(ctx, input.KindKey, key.Name())
		}},
		Mouse: []input.MouseHandler{func(ctx context.Context, mouse *tcell.EventMouse) error {
			return j.record(ctx, input.KindMouse, DescribeMouse(mouse))
		}},
		Paste: []input.PasteHandler{func(ctx context.Context, text string) error {
			return j.record(ctx, input.KindPaste, text)
		}},
		Resize: []input.ResizeHandler{func(ctx context.Context, width, height uint16) error {
			return j.record(ctx, input.KindResize, fmt.Sprintf("%dx%d", width, height))
		}},
	}
}

func (j *Journal) record(ctx context.Context, kind input.Kind, detail string) error {
	if _, err := j.insert.ExecContext(ctx, j.now().UnixNano(), kind.String(), detail); err != nil {
		return fmt.Errorf("journal: record %s: %w", kind, err)
	}
	return nil
}

// Recent returns up to limit entries, newest first.
func (j *Journal) Recent(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 {
		return nil, nil
	}
	rows, err := j.db.QueryContext(ctx,
		"SELECT id, timestamp, kind, detail FROM events ORDER BY id DESC LIMIT ?", limit)
	if err != nil {
		return nil, fmt.Errorf("journal: query recent: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var ts int64
		if err := rows.Scan(&e.ID, &ts, &e.Kind, &e.Detail); err != nil {
			return nil, fmt.Errorf("journal: scan: %w", err)
		}
		e.Time = time.Unix(0, ts)
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("journal: iterate: %w", err)
	}
	return entries, nil
}

// Count returns how many events have been recorded for kind. An empty kind
// counts everything.
func (j *Journal) Count(ctx context.Context, kind string) (int64, error) {
	var n int64
	var err error
	if kind == "" {
		err = j.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM events").Scan(&n)
	} else {
		err = j.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM events WHERE kind = ?", kind).Scan(&n)
	}
	if err != nil {
		return 0, fmt.Errorf("journal: count: %w", err)
	}
	return n, nil
}

// DescribeMouse renders a mouse event as "x,y buttons=N mods=N".
func DescribeMouse(ev *tcell.EventMouse) string {
	x, y := ev.Position()
	return fmt.Sprintf("%d,%d buttons=%d mods=%d", x, y, ev.Buttons(), ev.Modifiers())
}
