package statistics

import (
	"testing"
	"time"

	"github.com/cmlabs-hris/punch-analytics/internal/domain/attendance"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWeeklyPartition_MonthStartingWednesday(t *testing.T) {
	// May 2024 has 31 days and starts on a Wednesday
	records := []attendance.DailyRecord{
		worked("ana", "2024-04-30", 8*3600), // outside the month
		worked("ana", "2024-05-01", 8*3600),
		worked("ana", "2024-05-03", 8*3600),
		worked("ana", "2024-05-06", 7*3600),
		worked("ana", "2024-05-15", 9*3600),
		worked("ana", "2024-05-31", 6*3600),
		worked("ana", "2024-06-01", 8*3600), // outside the month
	}

	weeks := weeklyPartition(records, 2024, 5, time.UTC)
	require.Len(t, weeks, 5)

	assert.Equal(t, 1, weeks[0].WeekNumber)
	assert.Equal(t, "29/4", weeks[0].StartLabel)
	assert.Equal(t, "5", weeks[0].EndLabel)
	assert.Equal(t, "2024-05-01", weeks[0].StartDate)
	assert.Equal(t, "2024-05-05", weeks[0].EndDate)
	assert.Equal(t, 2, weeks[0].DaysWorked)
	assert.Equal(t, 16.0, weeks[0].TotalHours)
	assert.Equal(t, 8.0, weeks[0].AverageHoursPerDay)

	assert.Equal(t, "6", weeks[1].StartLabel)
	assert.Equal(t, "12", weeks[1].EndLabel)

	last := weeks[4]
	assert.Equal(t, "27", last.StartLabel)
	assert.Equal(t, "2/6", last.EndLabel)
	assert.Equal(t, "2024-05-31", last.EndDate)
	assert.Equal(t, 1, last.DaysWorked)

	total := 0
	for _, w := range weeks {
		total += w.DaysWorked
	}
	assert.Equal(t, 5, total)
}

func TestWeeklyPartition_MonthStartingMonday(t *testing.T) {
	// April 2024 starts on a Monday and ends on a Tuesday
	weeks := weeklyPartition(nil, 2024, 4, time.UTC)
	require.Len(t, weeks, 5)
	assert.Equal(t, "1", weeks[0].StartLabel)
	assert.Equal(t, "7", weeks[0].EndLabel)
	assert.Equal(t, "29", weeks[4].StartLabel)
	assert.Equal(t, "5/5", weeks[4].EndLabel)
	for _, w := range weeks {
		assert.Equal(t, 0, w.DaysWorked)
		assert.Equal(t, 0.0, w.AverageHoursPerDay)
		assert.False(t, w.AboveAverage)
	}
}

func TestWeeklyPartition_SixWeeks(t *testing.T) {
	// September 2024 starts on a Sunday and has 30 days
	weeks := weeklyPartition(nil, 2024, 9, time.UTC)
	require.Len(t, weeks, 6)
	assert.Equal(t, "26/8", weeks[0].StartLabel)
	assert.Equal(t, "2024-09-01", weeks[0].StartDate)
	assert.Equal(t, "2024-09-01", weeks[0].EndDate)
	assert.Equal(t, "30", weeks[5].StartLabel)
	assert.Equal(t, "6/10", weeks[5].EndLabel)
}

func TestWeeklyPartition_AboveAverage(t *testing.T) {
	records := []attendance.DailyRecord{
		worked("ana", "2024-05-06", 10*3600),
		worked("ana", "2024-05-13", 2*3600),
	}
	weeks := weeklyPartition(records, 2024, 5, time.UTC)
	require.Len(t, weeks, 5)
	assert.False(t, weeks[0].AboveAverage)
	assert.True(t, weeks[1].AboveAverage)
	assert.False(t, weeks[2].AboveAverage)

	resp := weeklyResponse("ana", 2024, 5, weeks)
	assert.Equal(t, 2, resp.DaysWorked)
	assert.Equal(t, 2.4, resp.AverageWeeklyHours)
}
