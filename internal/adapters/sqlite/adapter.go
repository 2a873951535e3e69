// Package sqlite provides a SQLite-backed implementation of the
// saved-tracks repository port.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3" // driver registration

	"github.com/vibematch/backend/internal/core/domain"
	"github.com/vibematch/backend/internal/core/ports"
)

// Adapter implements ports.TrackRepository for SQLite.
type Adapter struct {
	db *sql.DB
}

var _ ports.TrackRepository = (*Adapter)(nil)

// NewAdapter creates a connection and runs the schema migration.
func NewAdapter(storagePath string) (*Adapter, error) {
	db, err := sql.Open("sqlite3", storagePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite db: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping sqlite db: %w", err)
	}

	adapter := &Adapter{db: db}
	if err := adapter.migrate(); err != nil {
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	return adapter, nil
}

// Close ensures the DB connection is closed gracefully.
func (a *Adapter) Close() error {
	return a.db.Close()
}

// SaveTrack upserts a saved track; re-saving refreshes its metadata and
// its saved_at timestamp.
func (a *Adapter) SaveTrack(ctx context.Context, track domain.SearchResult) error {
	query := `
		INSERT INTO saved_tracks (id, title, channel, thumbnail_url)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			title=excluded.title,
			channel=excluded.channel,
			thumbnail_url=excluded.thumbnail_url,
			saved_at=CURRENT_TIMESTAMP;
	`
	if _, err := a.db.ExecContext(ctx, query, track.ID, track.Title, track.Channel, track.ThumbnailURL); err != nil {
		return fmt.Errorf("failed to save track %s: %w", track.ID, err)
	}
	return nil
}

// ListSaved returns all saved tracks, most recently saved first.
func (a *Adapter) ListSaved(ctx context.Context) ([]domain.SearchResult, error) {
	rows, err := a.db.QueryContext(ctx, `
		SELECT id, title, channel, IFNULL(thumbnail_url, '')
		FROM saved_tracks
		ORDER BY saved_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to load saved tracks: %w", err)
	}
	defer rows.Close()

	tracks := []domain.SearchResult{}
	for rows.Next() {
		var track domain.SearchResult
		if err := rows.Scan(&track.ID, &track.Title, &track.Channel, &track.ThumbnailURL); err != nil {
			return nil, fmt.Errorf("failed to scan saved track: %w", err)
		}
		tracks = append(tracks, track)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate saved tracks: %w", err)
	}

	return tracks, nil
}

func (a *Adapter) migrate() error {
	query := `
	CREATE TABLE IF NOT EXISTS saved_tracks (
		id TEXT PRIMARY KEY,
		title TEXT NOT NULL,
		channel TEXT,
		thumbnail_url TEXT,
		saved_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);
	`
	if _, err := a.db.Exec(query); err != nil {
		return err
	}
	return nil
}
