// Package catalog keeps a SQLite record of converted plays.
package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/roboco-io/play2html/internal/ir"

	// Pure-Go SQLite driver (CGO-free)
	_ "modernc.org/sqlite"
)

// schemaVersion tracks the catalog schema. Bump it with a migration when
// the plays table changes.
const schemaVersion = 1

// ErrNotFound is returned by Get when no entry exists for a source.
var ErrNotFound = errors.New("catalog entry not found")

// Entry is one converted play.
type Entry struct {
	Source      string    `json:"source" yaml:"source"`
	File        string    `json:"file" yaml:"file"`
	Title       string    `json:"title" yaml:"title"`
	Subtitle    string    `json:"subtitle,omitempty" yaml:"subtitle,omitempty"`
	Stats       ir.Stats  `json:"stats" yaml:"stats"`
	ConvertedAt time.Time `json:"converted_at" yaml:"converted_at"`
}

// EntryFor builds the catalog entry for play converted from source into file.
func EntryFor(source, file string, play *ir.Play, at time.Time) Entry {
	return Entry{
		Source:      source,
		File:        file,
		Title:       ir.TitleOr(play.Title, ""),
		Subtitle:    ir.TitleOr(play.Subtitle, ""),
		Stats:       play.Stats(),
		ConvertedAt: at.UTC(),
	}
}

// Catalog is an open catalog database. It is safe for concurrent use.
type Catalog struct {
	db   *sql.DB
	path string
}

// Open creates or opens the catalog at path and ensures its schema.
func Open(ctx context.Context, path string) (*Catalog, error) {
	if path == "" {
		return nil, errors.New("catalog path is required")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create catalog directory: %w", err)
	}

	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)", filepath.ToSlash(path))
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog: %w", err)
	}
	// Workers share one connection so writes are serialized.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL;"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to enable WAL: %w", err)
	}
	if err := ensureSchema(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}

	log.Debug().Str("path", path).Msg("Catalog ready")
	return &Catalog{db: db, path: path}, nil
}

func ensureSchema(ctx context.Context, db *sql.DB) error {
	ddl := []string{
		`CREATE TABLE IF NOT EXISTS version (
			id         INTEGER PRIMARY KEY CHECK(id=1),
			schema     INTEGER NOT NULL,
			created_at TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS plays (
			source       TEXT PRIMARY KEY,
			file         TEXT NOT NULL,
			title        TEXT NOT NULL,
			subtitle     TEXT NOT NULL,
			acts         INTEGER NOT NULL,
			scenes       INTEGER NOT NULL,
			speeches     INTEGER NOT NULL,
			lines        INTEGER NOT NULL,
			stagedirs    INTEGER NOT NULL,
			converted_at TEXT NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_plays_title ON plays(title);`,
	}
	for _, q := range ddl {
		if _, err := db.ExecContext(ctx, q); err != nil {
			return fmt.Errorf("failed to create catalog schema: %w", err)
		}
	}

	var cur int
	err := db.QueryRowContext(ctx, `SELECT schema FROM version WHERE id=1`).Scan(&cur)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		now := time.Now().UTC().Format(time.RFC3339)
		if _, err := db.ExecContext(ctx, `INSERT INTO version (id, schema, created_at) VALUES(1, ?, ?)`, schemaVersion, now); err != nil {
			return fmt.Errorf("failed to record schema version: %w", err)
		}
	case err != nil:
		return fmt.Errorf("failed to read schema version: %w", err)
	case cur > schemaVersion:
		return fmt.Errorf("catalog schema %d is newer than supported %d", cur, schemaVersion)
	}
	return nil
}

// Path returns the database file path.
func (c *Catalog) Path() string {
	return c.path
}

// Upsert records e, replacing any earlier entry for the same source.
func (c *Catalog) Upsert(ctx context.Context, e Entry) error {
	_, err := c.db.ExecContext(ctx, `
		INSERT INTO plays (source, file, title, subtitle, acts, scenes, speeches, lines, stagedirs, converted_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(source) DO UPDATE SET
			file=excluded.file,
			title=excluded.title,
			subtitle=excluded.subtitle,
			acts=excluded.acts,
			scenes=excluded.scenes,
			speeches=excluded.speeches,
			lines=excluded.lines,
			stagedirs=excluded.stagedirs,
			converted_at=excluded.converted_at`,
		e.Source, e.File, e.Title, e.Subtitle,
		e.Stats.Acts, e.Stats.Scenes, e.Stats.Speeches, e.Stats.Lines, e.Stats.StageDirections,
		e.ConvertedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("failed to upsert %s: %w", e.Source, err)
	}
	return nil
}

const selectEntries = `SELECT source, file, title, subtitle, acts, scenes, speeches, lines, stagedirs, converted_at FROM plays`

// Get returns the entry for source, or ErrNotFound.
func (c *Catalog) Get(ctx context.Context, source string) (Entry, error) {
	row := c.db.QueryRowContext(ctx, selectEntries+` WHERE source=?`, source)
	e, err := scanEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Entry{}, ErrNotFound
	}
	return e, err
}

// List returns all entries ordered by title, then file.
func (c *Catalog) List(ctx context.Context) ([]Entry, error) {
	rows, err := c.db.QueryContext(ctx, selectEntries+` ORDER BY title, file`)
	if err != nil {
		return nil, fmt.Errorf("failed to list catalog: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list catalog: %w", err)
	}
	return entries, nil
}

// Delete removes the entry for source. Missing entries are not an error.
func (c *Catalog) Delete(ctx context.Context, source string) error {
	if _, err := c.db.ExecContext(ctx, `DELETE FROM plays WHERE source=?`, source); err != nil {
		return fmt.Errorf("failed to delete %s: %w", source, err)
	}
	return nil
}

// Close closes the database.
func (c *Catalog) Close() error {
	return c.db.Close()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanEntry(s scanner) (Entry, error) {
	var (
		e  Entry
		at string
	)
	err := s.Scan(&e.Source, &e.File, &e.Title, &e.Subtitle,
		&e.Stats.Acts, &e.Stats.Scenes, &e.Stats.Speeches, &e.Stats.Lines, &e.Stats.StageDirections,
		&at)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Entry{}, err
		}
		return Entry{}, fmt.Errorf("failed to read catalog entry: %w", err)
	}
	if e.ConvertedAt, err = time.Parse(time.RFC3339Nano, at); err != nil {
		return Entry{}, fmt.Errorf("invalid timestamp for %s: %w", e.Source, err)
	}
	return e, nil
}
