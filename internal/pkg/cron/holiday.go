package cron

import (
	"context"
	"time"

	"github.com/cmlabs-hris/punch-analytics/internal/domain/holiday"
)

// HolidayJobs keeps the holiday cache warm so calendar requests rarely wait
// on the upstream provider.
type HolidayJobs struct {
	holidayService holiday.HolidayService
	interval       time.Duration
	now            func() time.Time
}

func NewHolidayJobs(holidayService holiday.HolidayService, interval time.Duration, loc *time.Location) *HolidayJobs {
	if loc == nil {
		loc = time.UTC
	}
	return &HolidayJobs{
		holidayService: holidayService,
		interval:       interval,
		now:            func() time.Time { return time.Now().In(loc) },
	}
}

// RegisterJobs registers the holiday warm-up job.
func (j *HolidayJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob("warm_holidays", j.interval, j.WarmHolidays)
}

// WarmHolidays prefetches the current and the next calendar year.
func (j *HolidayJobs) WarmHolidays(ctx context.Context) error {
	year := j.now().Year()
	return j.holidayService.Warm(ctx, year, year+1)
}
