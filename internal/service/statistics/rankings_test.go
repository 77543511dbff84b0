package statistics

import (
	"fmt"
	"testing"

	"github.com/cmlabs-hris/punch-analytics/internal/domain/attendance"
	"github.com/cmlabs-hris/punch-analytics/internal/domain/statistics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func names(hours []statistics.WorkerHours) []string {
	out := make([]string, 0, len(hours))
	for _, h := range hours {
		out = append(out, h.Worker)
	}
	return out
}

func TestRankByTotal(t *testing.T) {
	totals := rollup([]attendance.DailyRecord{
		worked("A", "2024-03-04", 40*3600),
		worked("B", "2024-03-04", 30*3600),
		worked("B", "2024-03-05", 25*3600),
		worked("C", "2024-03-04", 10*3600),
	})

	desc := rankByTotal(totals, statistics.OrderDesc)
	assert.Equal(t, []string{"B", "A", "C"}, names(desc))
	assert.Equal(t, 55.0, desc[0].TotalHours)
	assert.Equal(t, 27.5, desc[0].AverageHours)
	assert.Equal(t, "55h : 00min : 00seg", desc[0].TotalLabel)

	asc := rankByTotal(totals, statistics.OrderAsc)
	assert.Equal(t, []string{"C", "A", "B"}, names(asc))
}

func TestRankByTotal_TopTenAndNameTieBreak(t *testing.T) {
	var records []attendance.DailyRecord
	for i := 0; i < 12; i++ {
		records = append(records, worked(fmt.Sprintf("w%02d", 11-i), "2024-03-04", 3600))
	}

	ranked := rankByTotal(rollup(records), statistics.OrderDesc)
	require.Len(t, ranked, 10)
	assert.Equal(t, "w00", ranked[0].Worker)
	assert.Equal(t, "w09", ranked[9].Worker)
}

func TestRankByAverage(t *testing.T) {
	totals := rollup([]attendance.DailyRecord{
		worked("A", "2024-03-04", 8*3600),
		worked("A", "2024-03-05", 8*3600),
		worked("B", "2024-03-04", 9*3600),
		worked("C", "2024-03-04", 6*3600),
		worked("C", "2024-03-05", 14*3600),
	})

	desc := rankByAverage(totals, statistics.OrderDesc)
	assert.Equal(t, []string{"C", "B", "A"}, names(desc))
	assert.Equal(t, 10.0, desc[0].AverageHours)

	asc := rankByAverage(totals, statistics.OrderAsc)
	assert.Equal(t, []string{"A", "B", "C"}, names(asc))
}

func TestWorkerRanges(t *testing.T) {
	records := []attendance.DailyRecord{
		record("ana", "2024-03-04", hms(8, 5, 0), hms(17, 0, 0), false),
		record("ana", "2024-03-05", hms(8, 10, 0), hms(17, 20, 0), false),
		record("ana", "2024-03-06", hms(7, 50, 0), hms(17, 20, 0), false),
		record("ana", "2024-03-07", 0, hms(17, 0, 0), false),
	}

	ranges := workerRanges(records, entryTime)
	require.Len(t, ranges, 1)
	assert.Equal(t, "08:00 - 08:15", ranges[0].Range)
	assert.Equal(t, 2, ranges[0].Count)
	assert.Equal(t, 3, ranges[0].Days)
	assert.Equal(t, "08:02", ranges[0].AverageTime)

	exits := workerRanges(records, exitTime)
	require.Len(t, exits, 1)
	// two buckets with two hits each: the earlier one wins
	assert.Equal(t, "17:00 - 17:15", exits[0].Range)
	assert.Equal(t, 4, exits[0].Days)
}

func TestRankByRange(t *testing.T) {
	ranges := []statistics.WorkerRange{
		{Worker: "late", StartMinute: 9 * 60, Count: 3},
		{Worker: "early", StartMinute: 7 * 60, Count: 3},
		{Worker: "often", StartMinute: 8 * 60, Count: 5},
		{Worker: "also-early", StartMinute: 7 * 60, Count: 3},
	}

	asc := rankByRange(ranges, statistics.OrderAsc)
	workers := func(rs []statistics.WorkerRange) []string {
		out := make([]string, 0, len(rs))
		for _, r := range rs {
			out = append(out, r.Worker)
		}
		return out
	}
	assert.Equal(t, []string{"often", "also-early", "early", "late"}, workers(asc))

	desc := rankByRange(ranges, statistics.OrderDesc)
	assert.Equal(t, []string{"often", "late", "also-early", "early"}, workers(desc))
}
