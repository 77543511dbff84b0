package statistics

import (
	"sort"

	"github.com/cmlabs-hris/punch-analytics/internal/domain/attendance"
	"github.com/cmlabs-hris/punch-analytics/internal/domain/statistics"
	"github.com/cmlabs-hris/punch-analytics/internal/pkg/clocktime"
)

// timeOf picks the entry or exit time of a record, in seconds.
type timeOf func(attendance.DailyRecord) int

func entryTime(r attendance.DailyRecord) int { return r.EntrySeconds }
func exitTime(r attendance.DailyRecord) int  { return r.ExitSeconds }

// bucketStart returns the start, in minutes since midnight, of the 15 minute
// bucket containing seconds.
func bucketStart(seconds int) int {
	minutes := seconds / clocktime.SecondsPerMinute
	return minutes / statistics.BucketMinutes * statistics.BucketMinutes
}

// rangeLabel renders a bucket as "HH:MM - HH:MM". The last bucket of the day
// ends at "24:00".
func rangeLabel(start int) string {
	return clocktime.FormatHHMM(start) + " - " + clocktime.FormatHHMM(start+statistics.BucketMinutes)
}

// frequencies counts every bucket and sorts by count descending, then bucket
// start ascending. Percentages are over all records; per-day averages over days.
func frequencies(records []attendance.DailyRecord, pick timeOf, days int) []statistics.RangeFrequency {
	counts := make(map[int]int)
	for _, rec := range records {
		counts[bucketStart(pick(rec))]++
	}

	out := make([]statistics.RangeFrequency, 0, len(counts))
	for start, count := range counts {
		out = append(out, statistics.RangeFrequency{
			Range:         rangeLabel(start),
			StartMinute:   start,
			Count:         count,
			Percentage:    percentage(count, len(records)),
			PerDayAverage: perDay(count, days),
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].StartMinute < out[j].StartMinute
	})
	return out
}

// histogram keeps the top buckets of a view. days is the number of distinct
// dates in the view.
func histogram(records []attendance.DailyRecord, pick timeOf, days int) statistics.RangeHistogram {
	all := frequencies(records, pick, days)
	top := all
	if len(top) > statistics.TopRanges {
		top = top[:statistics.TopRanges]
	}

	h := statistics.RangeHistogram{
		Top:   top,
		Peak:  statistics.NoPeak,
		Total: len(records),
		Days:  days,
	}
	if len(top) > 0 {
		h.Peak = top[0].Range
	}
	for _, f := range top {
		h.ShownTotal += f.Count
	}
	return h
}

// hourly counts entries and exits per hour of the day.
func hourly(records []attendance.DailyRecord) []statistics.HourlySlot {
	slots := make([]statistics.HourlySlot, 24)
	for h := range slots {
		slots[h].Hour = clocktime.FormatHHMM(h * 60)
	}
	for _, rec := range records {
		if h := hourOf(rec.EntrySeconds); h >= 0 {
			slots[h].Entries++
		}
		if h := hourOf(rec.ExitSeconds); h >= 0 {
			slots[h].Exits++
		}
	}
	return slots
}

func hourOf(seconds int) int {
	h := seconds / clocktime.SecondsPerHour
	if seconds < 0 || h > 23 {
		return -1
	}
	return h
}
