package statistics

import (
	"context"
	"time"

	"github.com/cmlabs-hris/punch-analytics/internal/domain/attendance"
	"github.com/cmlabs-hris/punch-analytics/internal/domain/holiday"
	"github.com/cmlabs-hris/punch-analytics/internal/domain/statistics"
)

// SnapshotSource yields the snapshot statistics are computed from.
type SnapshotSource interface {
	Current() *attendance.Snapshot
}

type StatisticsServiceImpl struct {
	snapshots SnapshotSource
	holidays  holiday.HolidayService
	location  *time.Location
	now       func() time.Time
}

// NewStatisticsService builds the service. holidays may be nil, in which case
// no day is classified as a holiday.
func NewStatisticsService(snapshots SnapshotSource, holidays holiday.HolidayService, location *time.Location) *StatisticsServiceImpl {
	if location == nil {
		location = time.Local
	}
	return &StatisticsServiceImpl{
		snapshots: snapshots,
		holidays:  holidays,
		location:  location,
		now:       time.Now,
	}
}

// WithClock replaces the clock used for period windows and future days.
func (s *StatisticsServiceImpl) WithClock(now func() time.Time) *StatisticsServiceImpl {
	s.now = now
	return s
}

// ForPeriod implements statistics.StatisticsService.
func (s *StatisticsServiceImpl) ForPeriod(ctx context.Context, req statistics.PeriodRequest) (statistics.PeriodStatistics, error) {
	opts, err := req.Options()
	if err != nil {
		return statistics.PeriodStatistics{}, err
	}

	snap := s.snapshots.Current()
	view := snap.Index.FilterByPeriod(opts.Period, s.now().In(s.location))
	records := view.Records()
	days := view.DateCount()
	totals := rollup(records)

	out := statistics.PeriodStatistics{
		Period:      opts.Period,
		SnapshotID:  snap.ID,
		General:     general(view),
		EntryRanges: histogram(records, entryTime, days),
		ExitRanges:  histogram(records, exitTime, days),
		Hourly:      hourly(records),
		Workers:     toResponses(totals),
		Rankings: statistics.Rankings{
			TotalHours:   rankByTotal(totals, opts.HoursOrder),
			AverageHours: rankByAverage(totals, opts.AverageOrder),
			Entry:        rankByRange(workerRanges(records, entryTime), opts.EntryOrder),
			Exit:         rankByRange(workerRanges(records, exitTime), opts.ExitOrder),
		},
	}
	if dates := view.Dates(); len(dates) > 0 {
		out.From = dates[0]
		out.To = dates[len(dates)-1]
	}
	return out, nil
}

// WeeklySummary implements statistics.StatisticsService.
func (s *StatisticsServiceImpl) WeeklySummary(ctx context.Context, req statistics.MonthRequest) (statistics.WeeklyResponse, error) {
	year, month, records, err := s.workerMonth(req)
	if err != nil {
		return statistics.WeeklyResponse{}, err
	}
	weeks := weeklyPartition(records, year, month, s.location)
	return weeklyResponse(req.Worker, year, month, weeks), nil
}

// CalendarForMonth implements statistics.StatisticsService.
func (s *StatisticsServiceImpl) CalendarForMonth(ctx context.Context, req statistics.MonthRequest) (statistics.CalendarResponse, error) {
	year, month, records, err := s.workerMonth(req)
	if err != nil {
		return statistics.CalendarResponse{}, err
	}
	resp := calendar(records, year, month, s.today(), s.holidaySet(ctx, year))
	resp.Worker = req.Worker
	return resp, nil
}

// MonthlySummary implements statistics.StatisticsService.
func (s *StatisticsServiceImpl) MonthlySummary(ctx context.Context, req statistics.MonthRequest) (statistics.MonthlySummary, error) {
	year, month, records, err := s.workerMonth(req)
	if err != nil {
		return statistics.MonthlySummary{}, err
	}
	return monthlySummary(req.Worker, records, year, month, s.today(), s.holidaySet(ctx, year)), nil
}

// workerMonth validates req and loads the worker's full history.
func (s *StatisticsServiceImpl) workerMonth(req statistics.MonthRequest) (int, int, []attendance.DailyRecord, error) {
	year, month, err := req.Resolve()
	if err != nil {
		return 0, 0, nil, err
	}
	records := s.snapshots.Current().Index.RecordsForWorker(req.Worker)
	if len(records) == 0 {
		return 0, 0, nil, attendance.ErrWorkerNotFound
	}
	return year, month, records, nil
}

func (s *StatisticsServiceImpl) today() time.Time {
	now := s.now().In(s.location)
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, s.location)
}

func (s *StatisticsServiceImpl) holidaySet(ctx context.Context, year int) holiday.Set {
	if s.holidays == nil {
		return holiday.Set{}
	}
	return s.holidays.ForYear(ctx, year)
}

var _ statistics.StatisticsService = (*StatisticsServiceImpl)(nil)
