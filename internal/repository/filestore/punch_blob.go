package filestore

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/punch-analytics/internal/domain/punch"
	"github.com/cmlabs-hris/punch-analytics/internal/pkg/storage"
)

type punchRepositoryImpl struct {
	files storage.FileStorage
	path  string
}

// NewPunchRepository stores the blob as "<key>.json" in files.
func NewPunchRepository(files storage.FileStorage) punch.PunchRepository {
	return &punchRepositoryImpl{files: files, path: punch.BlobKey + ".json"}
}

// Load implements punch.PunchRepository.
func (r *punchRepositoryImpl) Load(ctx context.Context) ([]punch.RawPunch, error) {
	rc, err := r.files.Get(ctx, r.path)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return []punch.RawPunch{}, nil
		}
		return nil, fmt.Errorf("load punch blob: %w", err)
	}
	defer rc.Close()

	var rows []punch.RawPunch
	if err := json.NewDecoder(rc).Decode(&rows); err != nil {
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
	if err := r.files.Put(ctx, r.path, bytes.NewReader(payload)); err != nil {
		return fmt.Errorf("save punch blob: %w", err)
	}
	return nil
}

// Clear implements punch.PunchRepository.
func (r *punchRepositoryImpl) Clear(ctx context.Context) error {
	if err := r.files.Delete(ctx, r.path); err != nil {
		return fmt.Errorf("clear punch blob: %w", err)
	}
	return nil
}
