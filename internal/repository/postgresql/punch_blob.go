package postgresql

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/punch-analytics/internal/domain/punch"
	"github.com/cmlabs-hris/punch-analytics/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

const schema = `
CREATE TABLE IF NOT EXISTS punch_blobs (
	key        TEXT PRIMARY KEY,
	payload    JSONB NOT NULL,
	row_count  INTEGER NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE TABLE IF NOT EXISTS punch_blob_revisions (
	id        BIGSERIAL PRIMARY KEY,
	key       TEXT NOT NULL,
	row_count INTEGER NOT NULL,
	saved_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
);`

type punchRepositoryImpl struct {
	db  *database.DB
	key string
}

func NewPunchRepository(db *database.DB) punch.PunchRepository {
	return &punchRepositoryImpl{db: db, key: punch.BlobKey}
}

// EnsureSchema creates the blob tables when missing.
func EnsureSchema(ctx context.Context, db *database.DB) error {
	if _, err := db.Exec(ctx, schema); err != nil {
		return fmt.Errorf("create punch blob schema: %w", err)
	}
	return nil
}

// Load implements punch.PunchRepository.
func (r *punchRepositoryImpl) Load(ctx context.Context) ([]punch.RawPunch, error) {
	q := GetQuerier(ctx, r.db)

	var payload []byte
	err := q.QueryRow(ctx, `SELECT payload FROM punch_blobs WHERE key = $1`, r.key).Scan(&payload)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return []punch.RawPunch{}, nil
		}
		return nil, fmt.Errorf("load punch blob: %w", err)
	}

	var rows []punch.RawPunch
	if err := json.Unmarshal(payload, &rows); err != nil {
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

	return WithTransaction(ctx, r.db, func(ctx context.Context) error {
		q := GetQuerier(ctx, r.db)

		upsert := `
			INSERT INTO punch_blobs (key, payload, row_count, updated_at)
			VALUES ($1, $2, $3, NOW())
			ON CONFLICT (key) DO UPDATE
			SET payload = EXCLUDED.payload, row_count = EXCLUDED.row_count, updated_at = NOW()
		`
		if _, err := q.Exec(ctx, upsert, r.key, payload, len(rows)); err != nil {
			return fmt.Errorf("save punch blob: %w", err)
		}
		return r.recordRevision(ctx, len(rows))
	})
}

// Clear implements punch.PunchRepository.
func (r *punchRepositoryImpl) Clear(ctx context.Context) error {
	return WithTransaction(ctx, r.db, func(ctx context.Context) error {
		q := GetQuerier(ctx, r.db)
		if _, err := q.Exec(ctx, `DELETE FROM punch_blobs WHERE key = $1`, r.key); err != nil {
			return fmt.Errorf("clear punch blob: %w", err)
		}
		return r.recordRevision(ctx, 0)
	})
}

func (r *punchRepositoryImpl) recordRevision(ctx context.Context, rowCount int) error {
	q := GetQuerier(ctx, r.db)
	_, err := q.Exec(ctx, `INSERT INTO punch_blob_revisions (key, row_count) VALUES ($1, $2)`, r.key, rowCount)
	if err != nil {
		return fmt.Errorf("record punch blob revision: %w", err)
	}
	return nil
}

var _ punch.PunchRepository = (*punchRepositoryImpl)(nil)
