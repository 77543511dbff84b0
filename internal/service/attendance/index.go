package attendance

import (
	"github.com/cmlabs-hris/punch-analytics/internal/domain/attendance"
	"github.com/cmlabs-hris/punch-analytics/internal/domain/punch"
)

type dayKey struct {
	date   string
	worker string
}

// BuildResult is the outcome of folding a batch of rows into an index.
type BuildResult struct {
	Index    *attendance.Index
	Received int
	Accepted int
	Novelty  int
}

func (b BuildResult) Dropped() int {
	return b.Received - b.Accepted
}

// BuildIndex cleans rows, groups them by (date, worker) in one pass and
// infers one DailyRecord per group.
func BuildIndex(rows []punch.RawPunch) BuildResult {
	cleaned := Clean(rows)

	order := make([]dayKey, 0)
	groups := make(map[dayKey][]string)
	for _, row := range cleaned {
		key := dayKey{date: row.Date, worker: row.Worker}
		if _, seen := groups[key]; !seen {
			order = append(order, key)
		}
		groups[key] = append(groups[key], row.Time)
	}

	records := make([]attendance.DailyRecord, 0, len(order))
	novelty := 0
	for _, key := range order {
		rec := InferDay(key.worker, key.date, groups[key])
		if rec.IsNovelty {
			novelty++
		}
		records = append(records, rec)
	}

	return BuildResult{
		Index:    attendance.NewIndex(records),
		Received: len(rows),
		Accepted: len(cleaned),
		Novelty:  novelty,
	}
}
