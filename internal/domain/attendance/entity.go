package attendance

import (
	"sort"
	"time"

	"github.com/cmlabs-hris/punch-analytics/internal/pkg/clocktime"
)

const dateLayout = "2006-01-02"

// DailyRecord is the attendance inferred for one worker on one date.
type DailyRecord struct {
	Worker        string
	Date          string
	EntrySeconds  int
	ExitSeconds   int
	WorkedSeconds int
	IsNovelty     bool
}

func (r DailyRecord) EntryTime() string {
	return clocktime.FormatSeconds(r.EntrySeconds)
}

func (r DailyRecord) ExitTime() string {
	return clocktime.FormatSeconds(r.ExitSeconds)
}

func (r DailyRecord) WorkedHours() float64 {
	return float64(r.WorkedSeconds) / clocktime.SecondsPerHour
}

// Day parses Date in loc. ok is false for dates that were kept verbatim
// because they could not be normalized.
func (r DailyRecord) Day(loc *time.Location) (time.Time, bool) {
	return ParseDate(r.Date, loc)
}

// ParseDate parses a "YYYY-MM-DD" date at midnight in loc.
func ParseDate(date string, loc *time.Location) (time.Time, bool) {
	if loc == nil {
		loc = time.Local
	}
	t, err := time.ParseInLocation(dateLayout, date, loc)
	return t, err == nil
}

// FormatDate renders t as "YYYY-MM-DD".
func FormatDate(t time.Time) string {
	return t.Format(dateLayout)
}

// Index holds exactly one DailyRecord per (date, worker). An Index is never
// mutated after construction; filters return a new Index.
type Index struct {
	days map[string]map[string]DailyRecord
	size int
}

// NewIndex builds an Index. A later record for the same (date, worker)
// replaces an earlier one.
func NewIndex(records []DailyRecord) *Index {
	idx := &Index{days: make(map[string]map[string]DailyRecord)}
	for _, rec := range records {
		workers, ok := idx.days[rec.Date]
		if !ok {
			workers = make(map[string]DailyRecord)
			idx.days[rec.Date] = workers
		}
		if _, exists := workers[rec.Worker]; !exists {
			idx.size++
		}
		workers[rec.Worker] = rec
	}
	return idx
}

// EmptyIndex returns an Index with no records.
func EmptyIndex() *Index {
	return NewIndex(nil)
}

// Len returns the number of daily records.
func (idx *Index) Len() int {
	return idx.size
}

// DateCount returns the number of distinct dates.
func (idx *Index) DateCount() int {
	return len(idx.days)
}

// Dates returns the indexed dates in ascending order.
func (idx *Index) Dates() []string {
	dates := make([]string, 0, len(idx.days))
	for date := range idx.days {
		dates = append(dates, date)
	}
	sort.Strings(dates)
	return dates
}

// Record looks up the record of worker on date.
func (idx *Index) Record(date, worker string) (DailyRecord, bool) {
	rec, ok := idx.days[date][worker]
	return rec, ok
}

// AllWorkers returns every worker present on any date, sorted.
func (idx *Index) AllWorkers() []string {
	seen := make(map[string]struct{})
	for _, workers := range idx.days {
		for worker := range workers {
			seen[worker] = struct{}{}
		}
	}
	out := make([]string, 0, len(seen))
	for worker := range seen {
		out = append(out, worker)
	}
	sort.Strings(out)
	return out
}

// RecordsForWorker returns the worker's records sorted by date ascending.
func (idx *Index) RecordsForWorker(worker string) []DailyRecord {
	var out []DailyRecord
	for _, workers := range idx.days {
		if rec, ok := workers[worker]; ok {
			out = append(out, rec)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out
}

// Records returns every record ordered by date, then worker.
func (idx *Index) Records() []DailyRecord {
	out := make([]DailyRecord, 0, idx.size)
	for _, date := range idx.Dates() {
		workers := idx.days[date]
		names := make([]string, 0, len(workers))
		for name := range workers {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			out = append(out, workers[name])
		}
	}
	return out
}

// Filter returns a new Index with the dates keep accepts.
func (idx *Index) Filter(keep func(date string) bool) *Index {
	out := &Index{days: make(map[string]map[string]DailyRecord)}
	for date, workers := range idx.days {
		if !keep(date) {
			continue
		}
		out.days[date] = workers
		out.size += len(workers)
	}
	return out
}

// FilterByPeriod restricts the index to the dates inside p relative to now.
// Windows are inclusive calendar-day ranges ending today in now's location.
func (idx *Index) FilterByPeriod(p Period, now time.Time) *Index {
	if p == PeriodAllTime {
		return idx.Filter(func(string) bool { return true })
	}

	loc := now.Location()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)
	from := today
	switch p {
	case PeriodLast7Days:
		from = today.AddDate(0, 0, -7)
	case PeriodLast30Days:
		from = today.AddDate(0, 0, -30)
	}

	return idx.Filter(func(date string) bool {
		d, ok := ParseDate(date, loc)
		if !ok {
			return false
		}
		return !d.Before(from) && !d.After(today)
	})
}

// Snapshot is one published state of the index.
type Snapshot struct {
	ID          string
	GeneratedAt time.Time
	Index       *Index
	Novelty     int
}
