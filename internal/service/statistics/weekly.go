package statistics

import (
	"fmt"
	"time"

	"github.com/cmlabs-hris/punch-analytics/internal/domain/attendance"
	"github.com/cmlabs-hris/punch-analytics/internal/domain/statistics"
	"github.com/cmlabs-hris/punch-analytics/internal/pkg/clocktime"
)

// monthBounds returns the first and last day of a month at midnight in loc.
func monthBounds(year, month int, loc *time.Location) (first, last time.Time) {
	first = time.Date(year, time.Month(month), 1, 0, 0, 0, 0, loc)
	last = first.AddDate(0, 1, -1)
	return first, last
}

// byDate indexes a worker's records by date.
func byDate(records []attendance.DailyRecord) map[string]attendance.DailyRecord {
	out := make(map[string]attendance.DailyRecord, len(records))
	for _, rec := range records {
		out[rec.Date] = rec
	}
	return out
}

// dayLabel is the day of month, suffixed with "/month" when day lies outside
// the month being partitioned.
func dayLabel(day time.Time, month time.Month) string {
	if day.Month() != month {
		return fmt.Sprintf("%d/%d", day.Day(), int(day.Month()))
	}
	return fmt.Sprintf("%d", day.Day())
}

// weeklyPartition splits a month into Monday-start calendar weeks. Only days
// inside the month are counted, so the first and last weeks may be partial;
// their labels still name the full week.
func weeklyPartition(records []attendance.DailyRecord, year, month int, loc *time.Location) []statistics.WeeklySummary {
	first, last := monthBounds(year, month, loc)
	dates := byDate(records)

	offset := (int(first.Weekday()) + 6) % 7 // days since Monday
	weekStart := first.AddDate(0, 0, -offset)

	type week struct {
		summary statistics.WeeklySummary
		seconds int
	}
	var weeks []week
	for n := 1; !weekStart.After(last); n++ {
		weekEnd := weekStart.AddDate(0, 0, 6)
		from, to := weekStart, weekEnd
		if from.Before(first) {
			from = first
		}
		if to.After(last) {
			to = last
		}

		w := week{summary: statistics.WeeklySummary{
			WeekNumber: n,
			StartLabel: dayLabel(weekStart, first.Month()),
			EndLabel:   dayLabel(weekEnd, first.Month()),
			StartDate:  attendance.FormatDate(from),
			EndDate:    attendance.FormatDate(to),
		}}
		for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
			if rec, ok := dates[attendance.FormatDate(d)]; ok {
				w.summary.DaysWorked++
				w.seconds += rec.WorkedSeconds
			}
		}
		w.summary.TotalHours = hours(w.seconds)
		w.summary.AverageHoursPerDay = averageHours(w.seconds, w.summary.DaysWorked)
		w.summary.TotalLabel = clocktime.DecimalHoursToClock(exactHours(w.seconds))

		weeks = append(weeks, w)
		weekStart = weekStart.AddDate(0, 0, 7)
	}

	total := 0
	for _, w := range weeks {
		total += w.seconds
	}
	out := make([]statistics.WeeklySummary, 0, len(weeks))
	for _, w := range weeks {
		// above or at the mean weekly total
		w.summary.AboveAverage = total > 0 && w.seconds*len(weeks) >= total
		out = append(out, w.summary)
	}
	return out
}

func weeklyResponse(worker string, year, month int, weeks []statistics.WeeklySummary) statistics.WeeklyResponse {
	resp := statistics.WeeklyResponse{
		Worker: worker,
		Year:   year,
		Month:  month,
		Weeks:  weeks,
	}
	sum := 0.0
	for _, w := range weeks {
		resp.DaysWorked += w.DaysWorked
		sum += w.TotalHours
	}
	if len(weeks) > 0 {
		resp.AverageWeeklyHours = roundTo2(sum / float64(len(weeks)))
	}
	return resp
}
