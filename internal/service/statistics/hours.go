package statistics

import (
	"sort"

	"github.com/cmlabs-hris/punch-analytics/internal/domain/attendance"
	"github.com/cmlabs-hris/punch-analytics/internal/domain/statistics"
	"github.com/cmlabs-hris/punch-analytics/internal/pkg/clocktime"
)

// workerTotal is the unrounded worked time of one worker over a view.
type workerTotal struct {
	worker  string
	days    int
	seconds int
}

// rollup sums worked seconds per worker, sorted by worker name.
func rollup(records []attendance.DailyRecord) []workerTotal {
	byWorker := make(map[string]*workerTotal)
	for _, rec := range records {
		t, ok := byWorker[rec.Worker]
		if !ok {
			t = &workerTotal{worker: rec.Worker}
			byWorker[rec.Worker] = t
		}
		t.days++
		t.seconds += rec.WorkedSeconds
	}

	out := make([]workerTotal, 0, len(byWorker))
	for _, t := range byWorker {
		out = append(out, *t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].worker < out[j].worker })
	return out
}

func (t workerTotal) toResponse() statistics.WorkerHours {
	avg := 0.0
	if t.days > 0 {
		avg = exactHours(t.seconds) / float64(t.days)
	}
	return statistics.WorkerHours{
		Worker:       t.worker,
		Days:         t.days,
		TotalHours:   hours(t.seconds),
		AverageHours: averageHours(t.seconds, t.days),
		TotalLabel:   clocktime.DecimalHoursToClock(exactHours(t.seconds)),
		AverageLabel: clocktime.DecimalHoursToClock(avg),
	}
}

func toResponses(totals []workerTotal) []statistics.WorkerHours {
	out := make([]statistics.WorkerHours, 0, len(totals))
	for _, t := range totals {
		out = append(out, t.toResponse())
	}
	return out
}

// general summarizes a view. The average is total worked time over the total
// number of worker-days.
func general(view *attendance.Index) statistics.GeneralStats {
	records := view.Records()
	seconds, novelty := 0, 0
	for _, rec := range records {
		seconds += rec.WorkedSeconds
		if rec.IsNovelty {
			novelty++
		}
	}

	avg := 0.0
	if len(records) > 0 {
		avg = exactHours(seconds) / float64(len(records))
	}
	return statistics.GeneralStats{
		Workers:        len(view.AllWorkers()),
		Dates:          view.DateCount(),
		Records:        len(records),
		NoveltyRecords: novelty,
		TotalHours:     hours(seconds),
		TotalLabel:     clocktime.DecimalHoursToClock(exactHours(seconds)),
		AverageHours:   averageHours(seconds, len(records)),
		AverageLabel:   clocktime.DecimalHoursToClock(avg),
	}
}
