// Package clocktime converts wall-clock strings to seconds since midnight and back.
//
// Every function here is total: malformed input degrades to zero instead of
// returning an error, because device exports routinely carry partial values.
package clocktime

import (
	"fmt"
	"math"
	"strings"
)

const (
	SecondsPerMinute = 60
	SecondsPerHour   = 3600
	SecondsPerDay    = 86400
)

// Parse converts "HH:MM[:SS]" into seconds since midnight.
// ok is false when the value is empty or has fewer than two components.
func Parse(s string) (seconds int, ok bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	parts := strings.Split(s, ":")
	if len(parts) < 2 {
		return 0, false
	}

	h := clamp(leadingInt(parts[0]), 0, 23)
	m := clamp(leadingInt(parts[1]), 0, 59)
	sec := 0
	if len(parts) > 2 {
		sec = clamp(leadingInt(parts[2]), 0, 59)
	}
	return h*SecondsPerHour + m*SecondsPerMinute + sec, true
}

// ParseTime is Parse without the ok flag; unparseable input yields 0.
func ParseTime(s string) int {
	seconds, _ := Parse(s)
	return seconds
}

// FormatSeconds renders seconds as "HH:MM:SS", wrapping modulo one day.
func FormatSeconds(seconds int) string {
	seconds %= SecondsPerDay
	if seconds < 0 {
		seconds += SecondsPerDay
	}
	h := seconds / SecondsPerHour
	m := (seconds % SecondsPerHour) / SecondsPerMinute
	s := seconds % SecondsPerMinute
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}

// FormatHHMM renders minutes since midnight as "HH:MM" without wrapping,
// so the end of the last bucket of the day reads "24:00".
func FormatHHMM(minutes int) string {
	if minutes < 0 {
		minutes = 0
	}
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// DecimalHoursToClock renders a fractional hour count as "HHh : MMmin : SSseg".
func DecimalHoursToClock(hours float64) string {
	h, m, s := splitHours(hours, math.Round)
	return fmt.Sprintf("%02dh : %02dmin : %02dseg", h, m, s)
}

// DecimalHoursToHHMMSS renders a fractional hour count as "HH:MM:SS",
// truncating the seconds.
func DecimalHoursToHHMMSS(hours float64) string {
	h, m, s := splitHours(hours, math.Floor)
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}

// DecimalHoursToHHMM renders a fractional hour-of-day as "HH:MM", rounding minutes.
func DecimalHoursToHHMM(hours float64) string {
	if hours <= 0 || math.IsNaN(hours) || math.IsInf(hours, 0) {
		return "00:00"
	}
	h := int(math.Floor(hours))
	m := int(math.Round((hours - float64(h)) * 60))
	if m >= 60 {
		m = 0
		h++
	}
	return fmt.Sprintf("%02d:%02d", h, m)
}

// ClockToDecimalHours is the inverse of DecimalHoursToClock. It also accepts
// plain "HH:MM[:SS]" values. Fewer than two components yields 0.
func ClockToDecimalHours(s string) float64 {
	parts := strings.Split(s, ":")
	if len(parts) < 2 {
		return 0
	}
	h := leadingInt(parts[0])
	m := leadingInt(parts[1])
	sec := 0
	if len(parts) > 2 {
		sec = leadingInt(parts[2])
	}
	return float64(h) + float64(m)/60 + float64(sec)/3600
}

func splitHours(hours float64, roundSeconds func(float64) float64) (h, m, s int) {
	if hours <= 0 || math.IsNaN(hours) || math.IsInf(hours, 0) {
		return 0, 0, 0
	}
	h = int(math.Floor(hours))
	minutes := (hours - float64(h)) * 60
	m = int(math.Floor(minutes))
	s = int(roundSeconds((minutes - float64(m)) * 60))

	// carry when rounding lands exactly on 60
	if s >= 60 {
		s = 0
		m++
	}
	if m >= 60 {
		m = 0
		h++
	}
	return h, m, s
}

// leadingInt reads an optionally signed run of digits after leading
// whitespace and ignores whatever follows. No digits yields 0.
func leadingInt(s string) int {
	s = strings.TrimSpace(s)
	neg := false
	if strings.HasPrefix(s, "-") || strings.HasPrefix(s, "+") {
		neg = s[0] == '-'
		s = s[1:]
	}
	n := 0
	for _, r := range s {
		if r < '0' || r > '9' {
			break
		}
		n = n*10 + int(r-'0')
		if n > 1_000_000 {
			break
		}
	}
	if neg {
		return -n
	}
	return n
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
