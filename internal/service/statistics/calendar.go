package statistics

import (
	"time"

	"github.com/cmlabs-hris/punch-analytics/internal/domain/attendance"
	"github.com/cmlabs-hris/punch-analytics/internal/domain/holiday"
	"github.com/cmlabs-hris/punch-analytics/internal/domain/statistics"
	"github.com/cmlabs-hris/punch-analytics/internal/pkg/clocktime"
)

func isWeekend(d time.Time) bool {
	return d.Weekday() == time.Saturday || d.Weekday() == time.Sunday
}

// classifyDay applies, in order: holiday, weekend without record, record
// (normal or novelty), future day, absence.
func classifyDay(day, today time.Time, rec *attendance.DailyRecord, holidays holiday.Set) statistics.CalendarDay {
	date := attendance.FormatDate(day)
	out := statistics.CalendarDay{
		Date:    date,
		Day:     day.Day(),
		Weekday: int(day.Weekday()),
	}

	if name, ok := holidays.Name(date); ok {
		out.Status = statistics.StatusHoliday
		out.HolidayName = name
		return out
	}
	if rec == nil && isWeekend(day) {
		out.Status = statistics.StatusWeekend
		return out
	}
	if rec != nil {
		out.Status = statistics.StatusNormal
		if rec.IsNovelty {
			out.Status = statistics.StatusNovelty
		}
		out.EntryTime = rec.EntryTime()
		out.ExitTime = rec.ExitTime()
		out.WorkedLabel = clocktime.DecimalHoursToHHMMSS(rec.WorkedHours())
		return out
	}
	if day.After(today) {
		out.Status = statistics.StatusEmpty
		return out
	}
	out.Status = statistics.StatusAbsence
	return out
}

// calendar classifies every day of a month for one worker. today is the
// current date at midnight in the same location as the month.
func calendar(records []attendance.DailyRecord, year, month int, today time.Time, holidays holiday.Set) statistics.CalendarResponse {
	first, last := monthBounds(year, month, today.Location())
	dates := byDate(records)

	resp := statistics.CalendarResponse{
		Year:          year,
		Month:         month,
		LeadingBlanks: int(first.Weekday()),
		Days:          make([]statistics.CalendarDay, 0, last.Day()),
	}
	for d := first; !d.After(last); d = d.AddDate(0, 0, 1) {
		var rec *attendance.DailyRecord
		if r, ok := dates[attendance.FormatDate(d)]; ok {
			rec = &r
		}

		day := classifyDay(d, today, rec, holidays)
		switch day.Status {
		case statistics.StatusNormal:
			resp.Counters.Normal++
		case statistics.StatusNovelty:
			resp.Counters.Novelty++
		case statistics.StatusAbsence:
			resp.Counters.Absence++
		case statistics.StatusHoliday:
			resp.Counters.Holiday++
		case statistics.StatusWeekend:
			resp.Counters.Weekend++
		case statistics.StatusEmpty:
			resp.Counters.Empty++
		}
		resp.Days = append(resp.Days, day)
	}
	return resp
}
