package statistics

import (
	"context"
	"time"

	"github.com/cmlabs-hris/punch-analytics/internal/domain/attendance"
	"github.com/cmlabs-hris/punch-analytics/internal/domain/holiday"
)

func hms(h, m, s int) int { return h*3600 + m*60 + s }

func record(worker, date string, entry, exit int, novelty bool) attendance.DailyRecord {
	worked := exit - entry - 5400
	if worked < 0 {
		worked = 0
	}
	return attendance.DailyRecord{
		Worker:        worker,
		Date:          date,
		EntrySeconds:  entry,
		ExitSeconds:   exit,
		WorkedSeconds: worked,
		IsNovelty:     novelty,
	}
}

func worked(worker, date string, seconds int) attendance.DailyRecord {
	return attendance.DailyRecord{
		Worker:        worker,
		Date:          date,
		EntrySeconds:  hms(8, 0, 0),
		ExitSeconds:   hms(17, 0, 0),
		WorkedSeconds: seconds,
	}
}

type staticSnapshots struct {
	snap *attendance.Snapshot
}

func (s staticSnapshots) Current() *attendance.Snapshot { return s.snap }

func snapshotOf(records ...attendance.DailyRecord) staticSnapshots {
	return staticSnapshots{snap: &attendance.Snapshot{ID: "snap-1", Index: attendance.NewIndex(records)}}
}

type fakeHolidays struct {
	sets  map[int]holiday.Set
	calls []int
}

func (f *fakeHolidays) ForYear(ctx context.Context, year int) holiday.Set {
	f.calls = append(f.calls, year)
	if set, ok := f.sets[year]; ok {
		return set
	}
	return holiday.Set{}
}

func (f *fakeHolidays) Warm(ctx context.Context, years ...int) error { return nil }

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}
