package statistics

import "context"

// StatisticsService answers read-only queries over the current attendance
// snapshot. Results are recomputed on every call.
type StatisticsService interface {
	ForPeriod(ctx context.Context, req PeriodRequest) (PeriodStatistics, error)
	WeeklySummary(ctx context.Context, req MonthRequest) (WeeklyResponse, error)
	CalendarForMonth(ctx context.Context, req MonthRequest) (CalendarResponse, error)
	MonthlySummary(ctx context.Context, req MonthRequest) (MonthlySummary, error)
}
