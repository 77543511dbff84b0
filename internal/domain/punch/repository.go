package punch

import "context"

// BlobKey is the fixed key the raw rows are persisted under.
const BlobKey = "registros"

// PunchRepository persists the raw rows as a single blob.
// Derived records are never stored; they are recomputed on load.
type PunchRepository interface {
	// Load returns the stored rows, or an empty slice when nothing is stored.
	Load(ctx context.Context) ([]RawPunch, error)

	// Save replaces the stored rows.
	Save(ctx context.Context, rows []RawPunch) error

	// Clear removes the stored rows.
	Clear(ctx context.Context) error
}
