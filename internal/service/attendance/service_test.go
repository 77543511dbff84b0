package attendance

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/cmlabs-hris/punch-analytics/internal/domain/attendance"
	"github.com/cmlabs-hris/punch-analytics/internal/domain/punch"
	"github.com/cmlabs-hris/punch-analytics/internal/pkg/sse"
	"github.com/cmlabs-hris/punch-analytics/internal/pkg/validator"
	"github.com/cmlabs-hris/punch-analytics/internal/repository/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingRepo struct {
	memory.PunchRepository
	err error
}

func (f *failingRepo) Save(ctx context.Context, rows []punch.RawPunch) error {
	return f.err
}

func newTestService(repo punch.PunchRepository) *AttendanceServiceImpl {
	svc := NewAttendanceService(repo, sse.NewHub())
	svc.now = func() time.Time { return time.Date(2024, 3, 6, 9, 0, 0, 0, time.UTC) }
	return svc
}

func TestAttendanceService_Ingest(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewPunchRepository()
	svc := newTestService(repo)

	resp, err := svc.Ingest(ctx, punch.IngestRequest{Rows: samplePunches()})
	require.NoError(t, err)

	assert.NotEmpty(t, resp.SnapshotID)
	assert.Equal(t, 8, resp.ReceivedRows)
	assert.Equal(t, 7, resp.AcceptedRows)
	assert.Equal(t, 1, resp.DroppedRows)
	assert.Equal(t, 2, resp.Dates)
	assert.Equal(t, 3, resp.Workers)
	assert.Equal(t, 4, resp.DailyRecords)
	assert.Equal(t, 2, resp.NoveltyCount)
	assert.Equal(t, "2024-03-06T09:00:00Z", resp.GeneratedAt)

	stored, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, samplePunches(), stored)

	assert.Equal(t, resp.SnapshotID, svc.Current().ID)
}

func TestAttendanceService_IngestReplacesPreviousState(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(memory.NewPunchRepository())

	_, err := svc.Ingest(ctx, punch.IngestRequest{Rows: samplePunches()})
	require.NoError(t, err)

	_, err = svc.Ingest(ctx, punch.IngestRequest{Rows: []punch.RawPunch{
		{Worker: "carla", Date: "2024-04-01", Time: "08:00"},
	}})
	require.NoError(t, err)

	assert.Equal(t, []string{"carla"}, svc.AllWorkers(ctx).Workers)
	_, err = svc.RecordsForWorker(ctx, "ana")
	assert.ErrorIs(t, err, attendance.ErrWorkerNotFound)
}

func TestAttendanceService_IngestValidation(t *testing.T) {
	svc := newTestService(memory.NewPunchRepository())

	_, err := svc.Ingest(context.Background(), punch.IngestRequest{})
	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Contains(t, verrs.ToMap(), "rows")
}

func TestAttendanceService_SaveFailureKeepsSnapshot(t *testing.T) {
	boom := errors.New("disk full")
	svc := newTestService(&failingRepo{err: boom})
	before := svc.Current()

	_, err := svc.Ingest(context.Background(), punch.IngestRequest{Rows: samplePunches()})
	assert.ErrorIs(t, err, boom)
	assert.Same(t, before, svc.Current())
}

func TestAttendanceService_RecordsForWorker(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(memory.NewPunchRepository())
	_, err := svc.Ingest(ctx, punch.IngestRequest{Rows: samplePunches()})
	require.NoError(t, err)

	resp, err := svc.RecordsForWorker(ctx, "ana")
	require.NoError(t, err)
	require.Len(t, resp.Records, 2)
	assert.Equal(t, "2024-03-04", resp.Records[0].Date)
	assert.Equal(t, "2024-03-05", resp.Records[1].Date)
	assert.Equal(t, "07h : 59min : 29seg", resp.Records[0].WorkedLabel)

	_, err = svc.RecordsForWorker(ctx, "")
	assert.ErrorIs(t, err, attendance.ErrWorkerRequired)
}

func TestAttendanceService_RestoreAndClear(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewPunchRepository(samplePunches()...)
	svc := newTestService(repo)
	assert.Equal(t, 0, svc.Current().Index.Len())

	resp, err := svc.Restore(ctx)
	require.NoError(t, err)
	assert.Equal(t, 4, resp.DailyRecords)
	assert.Equal(t, 4, svc.Current().Index.Len())

	require.NoError(t, svc.Clear(ctx))
	assert.Equal(t, 0, svc.Current().Index.Len())

	stored, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, stored)
}

func TestAttendanceService_SubscribersSeeLatestSnapshot(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(memory.NewPunchRepository())

	events, cleanup := svc.Subscribe()
	defer cleanup()

	_, err := svc.Ingest(ctx, punch.IngestRequest{Rows: samplePunches()})
	require.NoError(t, err)
	last, err := svc.Ingest(ctx, punch.IngestRequest{Rows: samplePunches()[:3]})
	require.NoError(t, err)

	ev := <-events
	summary, ok := ev.Data.(attendance.SnapshotResponse)
	require.True(t, ok)
	assert.Equal(t, last.SnapshotID, summary.ID)
	assert.Equal(t, 1, summary.DailyRecords)
	assert.Equal(t, "2024-03-04", summary.FirstDate)
}
