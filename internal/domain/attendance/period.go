package attendance

import "strings"

// Period is a named relative date window.
type Period string

const (
	PeriodToday      Period = "today"
	PeriodLast7Days  Period = "last7days"
	PeriodLast30Days Period = "last30days"
	PeriodAllTime    Period = "allTime"
)

// DefaultPeriod is used when a request names none.
const DefaultPeriod = PeriodLast7Days

var periodAliases = map[string]Period{
	"today":      PeriodToday,
	"hoy":        PeriodToday,
	"last7days":  PeriodLast7Days,
	"week":       PeriodLast7Days,
	"semana":     PeriodLast7Days,
	"last30days": PeriodLast30Days,
	"month":      PeriodLast30Days,
	"mes":        PeriodLast30Days,
	"alltime":    PeriodAllTime,
	"all":        PeriodAllTime,
	"siempre":    PeriodAllTime,
}

// ParsePeriod resolves a period name case-insensitively. An empty name
// yields DefaultPeriod.
func ParsePeriod(s string) (Period, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return DefaultPeriod, nil
	}
	if p, ok := periodAliases[s]; ok {
		return p, nil
	}
	return "", ErrInvalidPeriod
}
