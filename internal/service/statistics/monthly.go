package statistics

import (
	"fmt"
	"strings"
	"time"

	"github.com/cmlabs-hris/punch-analytics/internal/domain/attendance"
	"github.com/cmlabs-hris/punch-analytics/internal/domain/holiday"
	"github.com/cmlabs-hris/punch-analytics/internal/domain/statistics"
	"github.com/cmlabs-hris/punch-analytics/internal/pkg/clocktime"
)

// monthlySummary rolls a worker's history up for one month, alongside the
// all-time totals the monthly average is based on.
func monthlySummary(worker string, records []attendance.DailyRecord, year, month int, today time.Time, holidays holiday.Set) statistics.MonthlySummary {
	prefix := fmt.Sprintf("%04d-%02d-", year, month)

	var inMonth []attendance.DailyRecord
	months := make(map[string]struct{})
	allSeconds, monthSeconds := 0, 0
	for _, rec := range records {
		allSeconds += rec.WorkedSeconds
		if _, ok := rec.Day(today.Location()); ok {
			months[rec.Date[:7]] = struct{}{}
		}
		if strings.HasPrefix(rec.Date, prefix) {
			inMonth = append(inMonth, rec)
			monthSeconds += rec.WorkedSeconds
		}
	}

	cal := calendar(records, year, month, today, holidays)
	s := statistics.MonthlySummary{
		Worker:            worker,
		Year:              year,
		Month:             month,
		TotalHours:        hours(monthSeconds),
		TotalHoursAllTime: hours(allSeconds),
		TotalLabel:        clocktime.DecimalHoursToClock(exactHours(monthSeconds)),
		MonthsWorked:      len(months),
		DaysWorked:        len(inMonth),
		AbsenceDays:       cal.Counters.Absence,
		EntryFrequency:    frequencies(inMonth, entryTime, len(inMonth)),
		ExitFrequency:     frequencies(inMonth, exitTime, len(inMonth)),
		Weeks:             weeklyPartition(records, year, month, today.Location()),
	}

	for _, rec := range inMonth {
		if rec.IsNovelty {
			s.NoveltyDays++
		} else {
			s.NormalDays++
		}
	}

	s.DailyAverage = averageHours(monthSeconds, s.DaysWorked)
	s.WeeklyAverage = averageHours(monthSeconds*5, s.DaysWorked)
	s.MonthlyAverage = averageHours(allSeconds, s.MonthsWorked)

	tracked := s.NormalDays + s.NoveltyDays + s.AbsenceDays
	s.AttendancePct = percentage1(s.NormalDays+s.NoveltyDays, tracked)
	s.AbsencePct = percentage1(s.AbsenceDays, tracked)
	s.NoveltyPct = percentage1(s.NoveltyDays, tracked)
	return s
}
