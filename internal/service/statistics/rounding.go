package statistics

import (
	"github.com/cmlabs-hris/punch-analytics/internal/pkg/clocktime"
	"github.com/shopspring/decimal"
)

var (
	secondsPerHour = decimal.NewFromInt(clocktime.SecondsPerHour)
	hundred        = decimal.NewFromInt(100)
)

// hours converts seconds to hours rounded to two decimals.
func hours(seconds int) float64 {
	return decimal.NewFromInt(int64(seconds)).Div(secondsPerHour).Round(2).InexactFloat64()
}

// exactHours is seconds as fractional hours without rounding, for labels.
func exactHours(seconds int) float64 {
	return float64(seconds) / clocktime.SecondsPerHour
}

// averageHours divides seconds by n and converts to hours, two decimals.
// n <= 0 yields 0.
func averageHours(seconds, n int) float64 {
	if n <= 0 {
		return 0
	}
	return decimal.NewFromInt(int64(seconds)).
		Div(decimal.NewFromInt(int64(n))).
		Div(secondsPerHour).
		Round(2).
		InexactFloat64()
}

// percentage is part/total*100 rounded to a whole number; 0 when total is 0.
func percentage(part, total int) int {
	if total <= 0 {
		return 0
	}
	return int(decimal.NewFromInt(int64(part)).
		Mul(hundred).
		Div(decimal.NewFromInt(int64(total))).
		Round(0).
		IntPart())
}

// percentage1 is part/total*100 with one decimal.
func percentage1(part, total int) float64 {
	if total <= 0 {
		return 0
	}
	return decimal.NewFromInt(int64(part)).
		Mul(hundred).
		Div(decimal.NewFromInt(int64(total))).
		Round(1).
		InexactFloat64()
}

// perDay renders count/days with one decimal as "N.N/día".
func perDay(count, days int) string {
	if days < 1 {
		days = 1
	}
	return decimal.NewFromInt(int64(count)).
		Div(decimal.NewFromInt(int64(days))).
		StringFixed(1) + "/día"
}

func roundTo2(v float64) float64 {
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}
