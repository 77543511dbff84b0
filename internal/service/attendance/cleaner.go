package attendance

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/cmlabs-hris/punch-analytics/internal/domain/punch"
)

// nullWorker is the placeholder some device exports write for unassigned badges.
const nullWorker = "NULL"

// Clean drops rows without a usable worker, date or time and normalizes the
// identifier fields. Surviving rows keep their input order.
func Clean(rows []punch.RawPunch) []punch.RawPunch {
	out := make([]punch.RawPunch, 0, len(rows))
	for _, row := range rows {
		worker := normalizeIdentifier(row.Worker)
		if worker == "" || worker == nullWorker {
			continue
		}
		date := strings.TrimSpace(row.Date)
		clock := strings.TrimSpace(row.Time)
		if date == "" || clock == "" {
			continue
		}

		out = append(out, punch.RawPunch{
			Worker:    worker,
			WorkID:    normalizeIdentifier(row.WorkID),
			CardNo:    normalizeIdentifier(row.CardNo),
			Date:      NormalizeDate(date),
			Time:      clock,
			Direction: strings.TrimSpace(row.Direction),
			EventCode: strings.TrimSpace(row.EventCode),
		})
	}
	return out
}

// normalizeIdentifier removes quoting left behind by CSV exports.
func normalizeIdentifier(s string) string {
	s = strings.ReplaceAll(s, "'", "")
	s = strings.TrimSpace(s)
	s = strings.Trim(s, `"`)
	return strings.TrimSpace(s)
}

// NormalizeDate rewrites YYYY-MM-DD, YYYY/MM/DD, DD/MM/YYYY and DD-MM-YYYY
// dates (optionally followed by a time part) as YYYY-MM-DD. Anything else is
// returned unchanged.
func NormalizeDate(s string) string {
	s = strings.TrimSpace(s)
	head := s
	if i := strings.IndexAny(head, "T "); i > 0 {
		head = head[:i]
	}

	parts := strings.FieldsFunc(head, func(r rune) bool { return r == '-' || r == '/' || r == '.' })
	if len(parts) != 3 {
		return s
	}
	nums := make([]int, 3)
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil {
			return s
		}
		nums[i] = n
	}

	var y, m, d int
	switch {
	case len(parts[0]) == 4:
		y, m, d = nums[0], nums[1], nums[2]
	case len(parts[2]) == 4:
		d, m, y = nums[0], nums[1], nums[2]
	default:
		return s
	}

	t := time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
	if t.Year() != y || int(t.Month()) != m || t.Day() != d {
		return s
	}
	return fmt.Sprintf("%04d-%02d-%02d", y, m, d)
}
