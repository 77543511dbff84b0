package attendance

import (
	"github.com/cmlabs-hris/punch-analytics/internal/domain/attendance"
	"github.com/cmlabs-hris/punch-analytics/internal/pkg/clocktime"
)

const (
	// NoonSeconds splits a day's punches into entry and exit candidates.
	NoonSeconds = 12 * clocktime.SecondsPerHour
	// DefaultEntrySeconds stands in for a missing morning punch (12:00:00).
	DefaultEntrySeconds = 12 * clocktime.SecondsPerHour
	// DefaultExitSeconds stands in for a missing afternoon punch (17:30:00).
	DefaultExitSeconds = 17*clocktime.SecondsPerHour + 30*clocktime.SecondsPerMinute
	// LunchBreakSeconds is deducted from every worked day (1h30m).
	LunchBreakSeconds = clocktime.SecondsPerHour + 30*clocktime.SecondsPerMinute
)

// InferDay reduces the punch times of one worker on one date to a single
// DailyRecord. The earliest punch before noon is the entry and the latest
// punch at or after noon is the exit; a missing side falls back to its
// default and flags the record as novelty. Times that do not parse are ignored.
func InferDay(worker, date string, times []string) attendance.DailyRecord {
	rec := attendance.DailyRecord{
		Worker:       worker,
		Date:         date,
		EntrySeconds: DefaultEntrySeconds,
		ExitSeconds:  DefaultExitSeconds,
	}

	hasEntry, hasExit := false, false
	for _, raw := range times {
		secs, ok := clocktime.Parse(raw)
		if !ok {
			continue
		}
		if secs < NoonSeconds {
			if !hasEntry || secs < rec.EntrySeconds {
				rec.EntrySeconds = secs
			}
			hasEntry = true
			continue
		}
		if !hasExit || secs > rec.ExitSeconds {
			rec.ExitSeconds = secs
		}
		hasExit = true
	}

	rec.IsNovelty = !hasEntry || !hasExit
	rec.WorkedSeconds = WorkedSeconds(rec.EntrySeconds, rec.ExitSeconds)
	return rec
}

// WorkedSeconds is exit minus entry, wrapped across midnight, minus the lunch
// break, never negative.
func WorkedSeconds(entry, exit int) int {
	span := exit - entry
	if span < 0 {
		span += clocktime.SecondsPerDay
	}
	span -= LunchBreakSeconds
	if span < 0 {
		return 0
	}
	return span
}
