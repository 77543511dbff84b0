package memory

import (
	"context"
	"sync"

	"github.com/cmlabs-hris/punch-analytics/internal/domain/punch"
)

// PunchRepository keeps the blob in process memory. Used by the CLI and tests.
type PunchRepository struct {
	mu   sync.RWMutex
	rows []punch.RawPunch
}

func NewPunchRepository(seed ...punch.RawPunch) *PunchRepository {
	return &PunchRepository{rows: append([]punch.RawPunch(nil), seed...)}
}

func (r *PunchRepository) Load(ctx context.Context) ([]punch.RawPunch, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]punch.RawPunch{}, r.rows...), nil
}

func (r *PunchRepository) Save(ctx context.Context, rows []punch.RawPunch) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rows = append([]punch.RawPunch(nil), rows...)
	return nil
}

func (r *PunchRepository) Clear(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rows = nil
	return nil
}

var _ punch.PunchRepository = (*PunchRepository)(nil)
