package attendance

import (
	"context"

	"github.com/cmlabs-hris/punch-analytics/internal/domain/punch"
	"github.com/cmlabs-hris/punch-analytics/internal/pkg/sse"
)

// TopicSnapshot is the broadcast topic carrying SnapshotResponse values.
const TopicSnapshot = "attendance.snapshot"

type AttendanceService interface {
	// Ingest replaces the whole index with the given rows, persists them and
	// publishes the new snapshot.
	Ingest(ctx context.Context, req punch.IngestRequest) (punch.IngestResponse, error)
	// Restore rebuilds the index from the persisted rows.
	Restore(ctx context.Context) (punch.IngestResponse, error)
	Clear(ctx context.Context) error

	Current() *Snapshot
	AllWorkers(ctx context.Context) WorkerListResponse
	RecordsForWorker(ctx context.Context, worker string) (WorkerRecordsResponse, error)

	// Subscribe yields the latest snapshot summary; an unread value is
	// replaced by a newer one.
	Subscribe() (<-chan sse.Event, func())
}
