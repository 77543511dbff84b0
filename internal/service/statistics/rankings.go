package statistics

import (
	"sort"

	"github.com/cmlabs-hris/punch-analytics/internal/domain/attendance"
	"github.com/cmlabs-hris/punch-analytics/internal/domain/statistics"
	"github.com/cmlabs-hris/punch-analytics/internal/pkg/clocktime"
)

func top[T any](items []T) []T {
	if len(items) > statistics.TopRanking {
		return items[:statistics.TopRanking]
	}
	return items
}

// rankByTotal orders workers by total worked time, ties by name.
func rankByTotal(totals []workerTotal, order statistics.SortOrder) []statistics.WorkerHours {
	ranked := append([]workerTotal(nil), totals...)
	sort.SliceStable(ranked, func(i, j int) bool {
		a, b := ranked[i], ranked[j]
		if a.seconds != b.seconds {
			if order == statistics.OrderAsc {
				return a.seconds < b.seconds
			}
			return a.seconds > b.seconds
		}
		return a.worker < b.worker
	})
	return toResponses(top(ranked))
}

// rankByAverage orders workers by worked time per day, ties by name.
func rankByAverage(totals []workerTotal, order statistics.SortOrder) []statistics.WorkerHours {
	ranked := append([]workerTotal(nil), totals...)
	sort.SliceStable(ranked, func(i, j int) bool {
		a, b := ranked[i], ranked[j]
		// compare a.seconds/a.days with b.seconds/b.days without division
		lhs, rhs := a.seconds*b.days, b.seconds*a.days
		if lhs != rhs {
			if order == statistics.OrderAsc {
				return lhs < rhs
			}
			return lhs > rhs
		}
		return a.worker < b.worker
	})
	return toResponses(top(ranked))
}

// workerRanges finds every worker's most frequent bucket for pick. Records
// whose time is exactly midnight carry no punch information and are skipped.
func workerRanges(records []attendance.DailyRecord, pick timeOf) []statistics.WorkerRange {
	type acc struct {
		counts  map[int]int
		days    int
		seconds int
	}
	byWorker := make(map[string]*acc)
	for _, rec := range records {
		secs := pick(rec)
		if secs == 0 {
			continue
		}
		a, ok := byWorker[rec.Worker]
		if !ok {
			a = &acc{counts: make(map[int]int)}
			byWorker[rec.Worker] = a
		}
		a.counts[bucketStart(secs)]++
		a.days++
		a.seconds += secs
	}

	out := make([]statistics.WorkerRange, 0, len(byWorker))
	for worker, a := range byWorker {
		best, bestCount := -1, 0
		for start, count := range a.counts {
			if count > bestCount || (count == bestCount && start < best) {
				best, bestCount = start, count
			}
		}
		avg := float64(a.seconds) / float64(a.days) / clocktime.SecondsPerHour
		out = append(out, statistics.WorkerRange{
			Worker:      worker,
			Range:       rangeLabel(best),
			StartMinute: best,
			Count:       bestCount,
			Days:        a.days,
			AverageTime: clocktime.DecimalHoursToHHMM(avg),
		})
	}
	return out
}

// rankByRange orders workers by how often they hit their most frequent
// bucket. Ties go to the earlier bucket for asc, the later one for desc,
// then to the worker name.
func rankByRange(ranges []statistics.WorkerRange, order statistics.SortOrder) []statistics.WorkerRange {
	ranked := append([]statistics.WorkerRange(nil), ranges...)
	sort.SliceStable(ranked, func(i, j int) bool {
		a, b := ranked[i], ranked[j]
		if a.Count != b.Count {
			return a.Count > b.Count
		}
		if a.StartMinute != b.StartMinute {
			if order == statistics.OrderAsc {
				return a.StartMinute < b.StartMinute
			}
			return a.StartMinute > b.StartMinute
		}
		return a.Worker < b.Worker
	})
	return top(ranked)
}
