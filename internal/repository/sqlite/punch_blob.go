package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/cmlabs-hris/punch-analytics/internal/domain/punch"
)

type punchRepositoryImpl struct {
	db  *sql.DB
	key string
}

// NewPunchRepository applies the blob migration and returns the repository.
func NewPunchRepository(ctx context.Context, db *sql.DB) (punch.PunchRepository, error) {
	r := &punchRepositoryImpl{db: db, key: punch.BlobKey}
	if err := r.migrate(ctx); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *punchRepositoryImpl) migrate(ctx context.Context) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS punch_blobs (
			key TEXT PRIMARY KEY,
			payload TEXT NOT NULL,
			row_count INTEGER NOT NULL,
			updated_at TEXT NOT NULL
		);`,
	}
	for _, stmt := range stmts {
		if _, err := r.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate punch blobs: %w", err)
		}
	}
	return nil
}

// Load implements punch.PunchRepository.
func (r *punchRepositoryImpl) Load(ctx context.Context) ([]punch.RawPunch, error) {
	var payload string
	err := r.db.QueryRowContext(ctx, `SELECT payload FROM punch_blobs WHERE key = ?`, r.key).Scan(&payload)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return []punch.RawPunch{}, nil
		}
		return nil, fmt.Errorf("load punch blob: %w", err)
	}

	var rows []punch.RawPunch
	if err := json.Unmarshal([]byte(payload), &rows); err != nil {
		return nil, fmt.Errorf("%w: %v", punch.ErrBlobCorrupt, err)
	}
	return rows, nil
}

// Save implements punch.PunchRepository.
func (r *punchRepositoryImpl) Save(ctx context.Context, rows []punch.RawPunch) error {
	if rows == nil {
		rows = []punch.RawPunch{}
	}
	payload, err := json.Marshal(rows)
	if err != nil {
		return fmt.Errorf("encode punch blob: %w", err)
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO punch_blobs (key, payload, row_count, updated_at)
		 VALUES (?, ?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET
			payload = excluded.payload,
			row_count = excluded.row_count,
			updated_at = excluded.updated_at`,
		r.key,
		string(payload),
		len(rows),
		time.Now().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("save punch blob: %w", err)
	}
	return nil
}

// Clear implements punch.PunchRepository.
func (r *punchRepositoryImpl) Clear(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM punch_blobs WHERE key = ?`, r.key); err != nil {
		return fmt.Errorf("clear punch blob: %w", err)
	}
	return nil
}
