package statistics

import (
	"github.com/cmlabs-hris/punch-analytics/internal/domain/attendance"
	"github.com/cmlabs-hris/punch-analytics/internal/pkg/validator"
)

// PeriodRequest selects the period view and the direction of each ranking.
// Empty orders fall back to: entry asc, exit desc, hours desc, average desc.
type PeriodRequest struct {
	Period       string `json:"period"`
	EntryOrder   string `json:"entry_order"`
	ExitOrder    string `json:"exit_order"`
	HoursOrder   string `json:"hours_order"`
	AverageOrder string `json:"average_order"`
}

// PeriodOptions is a validated PeriodRequest.
type PeriodOptions struct {
	Period       attendance.Period
	EntryOrder   SortOrder
	ExitOrder    SortOrder
	HoursOrder   SortOrder
	AverageOrder SortOrder
}

func (r *PeriodRequest) Validate() error {
	_, err := r.Options()
	return err
}

// Options resolves the request, reporting every invalid field at once.
func (r *PeriodRequest) Options() (PeriodOptions, error) {
	var errs validator.ValidationErrors

	period, err := attendance.ParsePeriod(r.Period)
	if err != nil {
		errs = append(errs, validator.ValidationError{Field: "period", Message: err.Error()})
	}

	opts := PeriodOptions{Period: period}
	orders := []struct {
		field    string
		value    string
		fallback SortOrder
		target   *SortOrder
	}{
		{"entry_order", r.EntryOrder, OrderAsc, &opts.EntryOrder},
		{"exit_order", r.ExitOrder, OrderDesc, &opts.ExitOrder},
		{"hours_order", r.HoursOrder, OrderDesc, &opts.HoursOrder},
		{"average_order", r.AverageOrder, OrderDesc, &opts.AverageOrder},
	}
	for _, o := range orders {
		if validator.IsEmpty(o.value) {
			*o.target = o.fallback
			continue
		}
		if !validator.IsInSlice(o.value, []string{string(OrderAsc), string(OrderDesc)}) {
			errs = append(errs, validator.ValidationError{Field: o.field, Message: ErrInvalidSortOrder.Error()})
			continue
		}
		*o.target = SortOrder(o.value)
	}

	if len(errs) > 0 {
		return PeriodOptions{}, errs
	}
	return opts, nil
}

// MonthRequest selects one worker and one calendar month.
type MonthRequest struct {
	Worker string `json:"worker"`
	Year   string `json:"year"`
	Month  string `json:"month"`
}

// Resolve validates the request and returns the numeric year and month.
func (r *MonthRequest) Resolve() (year, month int, err error) {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Worker) {
		errs = append(errs, validator.ValidationError{Field: "worker", Message: "worker is required"})
	}

	year, ok := validator.ParseInt(r.Year)
	if !ok || !validator.IsValidYear(year) {
		errs = append(errs, validator.ValidationError{Field: "year", Message: "year must be a four digit number"})
	}

	month, ok = validator.ParseInt(r.Month)
	if !ok || !validator.IsValidMonth(month) {
		errs = append(errs, validator.ValidationError{Field: "month", Message: "month must be between 1 and 12"})
	}

	if len(errs) > 0 {
		return 0, 0, errs
	}
	return year, month, nil
}

func (r *MonthRequest) Validate() error {
	_, _, err := r.Resolve()
	return err
}

// RangeFrequency counts the records whose time falls in one bucket.
type RangeFrequency struct {
	Range         string `json:"range"`
	StartMinute   int    `json:"start_minute"`
	Count         int    `json:"count"`
	Percentage    int    `json:"percentage"`
	PerDayAverage string `json:"per_day_average"`
}

// RangeHistogram is the top of a bucket distribution. Total counts every
// occurrence, ShownTotal only those in Top.
type RangeHistogram struct {
	Top        []RangeFrequency `json:"top"`
	Peak       string           `json:"peak"`
	Total      int              `json:"total"`
	ShownTotal int              `json:"shown_total"`
	Days       int              `json:"days"`
}

type WorkerHours struct {
	Worker       string  `json:"worker"`
	Days         int     `json:"days"`
	TotalHours   float64 `json:"total_hours"`
	AverageHours float64 `json:"average_hours"`
	TotalLabel   string  `json:"total_label"`
	AverageLabel string  `json:"average_label"`
}

// WorkerRange is a worker's most frequent entry or exit bucket.
type WorkerRange struct {
	Worker      string `json:"worker"`
	Range       string `json:"range"`
	StartMinute int    `json:"start_minute"`
	Count       int    `json:"count"`
	Days        int    `json:"days"`
	AverageTime string `json:"average_time"`
}

type HourlySlot struct {
	Hour    string `json:"hour"`
	Entries int    `json:"entries"`
	Exits   int    `json:"exits"`
}

type Rankings struct {
	TotalHours   []WorkerHours `json:"total_hours"`
	AverageHours []WorkerHours `json:"average_hours"`
	Entry        []WorkerRange `json:"entry"`
	Exit         []WorkerRange `json:"exit"`
}

type GeneralStats struct {
	Workers        int     `json:"workers"`
	Dates          int     `json:"dates"`
	Records        int     `json:"records"`
	NoveltyRecords int     `json:"novelty_records"`
	TotalHours     float64 `json:"total_hours"`
	TotalLabel     string  `json:"total_label"`
	AverageHours   float64 `json:"average_hours"`
	AverageLabel   string  `json:"average_label"`
}

type PeriodStatistics struct {
	Period      attendance.Period `json:"period"`
	SnapshotID  string            `json:"snapshot_id"`
	From        string            `json:"from,omitempty"`
	To          string            `json:"to,omitempty"`
	General     GeneralStats      `json:"general"`
	EntryRanges RangeHistogram    `json:"entry_ranges"`
	ExitRanges  RangeHistogram    `json:"exit_ranges"`
	Hourly      []HourlySlot      `json:"hourly"`
	Workers     []WorkerHours     `json:"workers"`
	Rankings    Rankings          `json:"rankings"`
}

type WeeklySummary struct {
	WeekNumber         int     `json:"week_number"`
	StartLabel         string  `json:"start_label"`
	EndLabel           string  `json:"end_label"`
	StartDate          string  `json:"start_date"`
	EndDate            string  `json:"end_date"`
	DaysWorked         int     `json:"days_worked"`
	TotalHours         float64 `json:"total_hours"`
	AverageHoursPerDay float64 `json:"average_hours_per_day"`
	TotalLabel         string  `json:"total_label"`
	AboveAverage       bool    `json:"above_average"`
}

type WeeklyResponse struct {
	Worker             string          `json:"worker"`
	Year               int             `json:"year"`
	Month              int             `json:"month"`
	DaysWorked         int             `json:"days_worked"`
	AverageWeeklyHours float64         `json:"average_weekly_hours"`
	Weeks              []WeeklySummary `json:"weeks"`
}

type CalendarDay struct {
	Date        string    `json:"date"`
	Day         int       `json:"day"`
	Weekday     int       `json:"weekday"`
	Status      DayStatus `json:"status"`
	HolidayName string    `json:"holiday_name,omitempty"`
	EntryTime   string    `json:"entry_time,omitempty"`
	ExitTime    string    `json:"exit_time,omitempty"`
	WorkedLabel string    `json:"worked_label,omitempty"`
}

type CalendarCounters struct {
	Normal  int `json:"normal"`
	Novelty int `json:"novelty"`
	Absence int `json:"absence"`
	Holiday int `json:"holiday"`
	Weekend int `json:"weekend"`
	Empty   int `json:"empty"`
}

type CalendarResponse struct {
	Worker        string           `json:"worker"`
	Year          int              `json:"year"`
	Month         int              `json:"month"`
	LeadingBlanks int              `json:"leading_blanks"`
	Days          []CalendarDay    `json:"days"`
	Counters      CalendarCounters `json:"counters"`
}

type MonthlySummary struct {
	Worker            string           `json:"worker"`
	Year              int              `json:"year"`
	Month             int              `json:"month"`
	TotalHours        float64          `json:"total_hours"`
	TotalHoursAllTime float64          `json:"total_hours_all_time"`
	DailyAverage      float64          `json:"daily_average"`
	WeeklyAverage     float64          `json:"weekly_average"`
	MonthlyAverage    float64          `json:"monthly_average"`
	MonthsWorked      int              `json:"months_worked"`
	DaysWorked        int              `json:"days_worked"`
	NormalDays        int              `json:"normal_days"`
	NoveltyDays       int              `json:"novelty_days"`
	AbsenceDays       int              `json:"absence_days"`
	AttendancePct     float64          `json:"attendance_pct"`
	AbsencePct        float64          `json:"absence_pct"`
	NoveltyPct        float64          `json:"novelty_pct"`
	TotalLabel        string           `json:"total_label"`
	EntryFrequency    []RangeFrequency `json:"entry_frequency"`
	ExitFrequency     []RangeFrequency `json:"exit_frequency"`
	Weeks             []WeeklySummary  `json:"weeks"`
}
