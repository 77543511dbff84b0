package attendance

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/cmlabs-hris/punch-analytics/internal/domain/attendance"
	"github.com/cmlabs-hris/punch-analytics/internal/domain/punch"
	"github.com/cmlabs-hris/punch-analytics/internal/pkg/metrics"
	"github.com/cmlabs-hris/punch-analytics/internal/pkg/sse"
	"github.com/google/uuid"
)

type AttendanceServiceImpl struct {
	punchRepo punch.PunchRepository
	hub       *sse.Hub

	// writeMu serializes Ingest, Restore and Clear; readers only load current.
	writeMu sync.Mutex
	current atomic.Pointer[attendance.Snapshot]
	now     func() time.Time
}

func NewAttendanceService(punchRepo punch.PunchRepository, hub *sse.Hub) *AttendanceServiceImpl {
	s := &AttendanceServiceImpl{
		punchRepo: punchRepo,
		hub:       hub,
		now:       time.Now,
	}
	s.current.Store(s.newSnapshot(BuildResult{Index: attendance.EmptyIndex()}))
	return s
}

// Ingest implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) Ingest(ctx context.Context, req punch.IngestRequest) (punch.IngestResponse, error) {
	if err := req.Validate(); err != nil {
		return punch.IngestResponse{}, err
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	result := BuildIndex(req.Rows)

	if err := s.punchRepo.Save(ctx, req.Rows); err != nil {
		return punch.IngestResponse{}, fmt.Errorf("failed to persist punch rows: %w", err)
	}

	metrics.PunchesIngested.Add(float64(result.Accepted))
	metrics.PunchesDropped.Add(float64(result.Dropped()))

	snap := s.publish(result, "ingest")
	slog.Info("Punch rows ingested",
		"snapshot_id", snap.ID,
		"received", result.Received,
		"accepted", result.Accepted,
		"daily_records", snap.Index.Len(),
		"novelty", snap.Novelty)

	return ingestResponse(snap, result), nil
}

// Restore implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) Restore(ctx context.Context) (punch.IngestResponse, error) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	rows, err := s.punchRepo.Load(ctx)
	if err != nil {
		return punch.IngestResponse{}, fmt.Errorf("failed to load punch rows: %w", err)
	}

	result := BuildIndex(rows)
	snap := s.publish(result, "restore")
	slog.Info("Punch rows restored",
		"snapshot_id", snap.ID,
		"rows", result.Received,
		"daily_records", snap.Index.Len())

	return ingestResponse(snap, result), nil
}

// Clear implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) Clear(ctx context.Context) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	if err := s.punchRepo.Clear(ctx); err != nil {
		return fmt.Errorf("failed to clear punch rows: %w", err)
	}

	snap := s.publish(BuildResult{Index: attendance.EmptyIndex()}, "clear")
	slog.Info("Punch rows cleared", "snapshot_id", snap.ID)
	return nil
}

// Current implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) Current() *attendance.Snapshot {
	return s.current.Load()
}

// AllWorkers implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) AllWorkers(ctx context.Context) attendance.WorkerListResponse {
	workers := s.Current().Index.AllWorkers()
	return attendance.WorkerListResponse{Workers: workers, Total: len(workers)}
}

// RecordsForWorker implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) RecordsForWorker(ctx context.Context, worker string) (attendance.WorkerRecordsResponse, error) {
	if worker == "" {
		return attendance.WorkerRecordsResponse{}, attendance.ErrWorkerRequired
	}

	records := s.Current().Index.RecordsForWorker(worker)
	if len(records) == 0 {
		return attendance.WorkerRecordsResponse{}, attendance.ErrWorkerNotFound
	}

	resp := attendance.WorkerRecordsResponse{
		Worker:  worker,
		Records: make([]attendance.RecordResponse, 0, len(records)),
	}
	for _, rec := range records {
		resp.Records = append(resp.Records, attendance.NewRecordResponse(rec))
	}
	return resp, nil
}

// Subscribe implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) Subscribe() (<-chan sse.Event, func()) {
	return s.hub.Subscribe(attendance.TopicSnapshot)
}

func (s *AttendanceServiceImpl) newSnapshot(result BuildResult) *attendance.Snapshot {
	id, err := uuid.NewV7()
	if err != nil {
		id = uuid.New()
	}
	return &attendance.Snapshot{
		ID:          id.String(),
		GeneratedAt: s.now(),
		Index:       result.Index,
		Novelty:     result.Novelty,
	}
}

// publish swaps in a new snapshot and notifies subscribers. Callers hold writeMu.
func (s *AttendanceServiceImpl) publish(result BuildResult, source string) *attendance.Snapshot {
	snap := s.newSnapshot(result)
	s.current.Store(snap)

	metrics.SnapshotsPublished.WithLabelValues(source).Inc()
	metrics.DailyRecords.Set(float64(snap.Index.Len()))
	metrics.NoveltyRecords.Set(float64(snap.Novelty))

	s.hub.Publish(attendance.TopicSnapshot, sse.Event{
		Event: "snapshot",
		Data:  attendance.NewSnapshotResponse(snap),
	})
	return snap
}

func ingestResponse(snap *attendance.Snapshot, result BuildResult) punch.IngestResponse {
	return punch.IngestResponse{
		SnapshotID:   snap.ID,
		ReceivedRows: result.Received,
		AcceptedRows: result.Accepted,
		DroppedRows:  result.Dropped(),
		Dates:        snap.Index.DateCount(),
		Workers:      len(snap.Index.AllWorkers()),
		DailyRecords: snap.Index.Len(),
		NoveltyCount: snap.Novelty,
		GeneratedAt:  snap.GeneratedAt.Format(time.RFC3339),
	}
}

var _ attendance.AttendanceService = (*AttendanceServiceImpl)(nil)
