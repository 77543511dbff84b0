package punch

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"unicode"

	"github.com/cmlabs-hris/punch-analytics/internal/pkg/validator"
)

// MaxRowsPerUpload bounds a single ingest request.
const MaxRowsPerUpload = 500_000

// UnmarshalJSON accepts the loosely named keys produced by spreadsheet and CSV
// adapters: keys match case-insensitively with punctuation ignored, so "IN/OUT",
// "in_out" and "InOut" all land in Direction. Non-string values are stringified.
func (p *RawPunch) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var fields map[string]interface{}
	if err := dec.Decode(&fields); err != nil {
		return err
	}

	*p = RawPunch{}
	for key, value := range fields {
		s := stringify(value)
		switch normalizeKey(key) {
		case "user":
			p.Worker = s
		case "workid":
			p.WorkID = s
		case "cardno":
			p.CardNo = s
		case "date":
			p.Date = s
		case "time":
			p.Time = s
		case "inout", "direction":
			p.Direction = s
		case "eventcode":
			p.EventCode = s
		}
	}
	return nil
}

func normalizeKey(key string) string {
	var b strings.Builder
	for _, r := range key {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(unicode.ToLower(r))
		}
	}
	return b.String()
}

func stringify(v interface{}) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case json.Number:
		return val.String()
	default:
		return fmt.Sprint(val)
	}
}

// IngestRequest carries one full upload. The body may be a bare array of rows
// or an object with a "rows" field.
type IngestRequest struct {
	Rows []RawPunch `json:"rows"`
}

func (r *IngestRequest) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		return json.Unmarshal(trimmed, &r.Rows)
	}

	var wrapper struct {
		Rows []RawPunch `json:"rows"`
	}
	if err := json.Unmarshal(trimmed, &wrapper); err != nil {
		return err
	}
	r.Rows = wrapper.Rows
	return nil
}

func (r *IngestRequest) Validate() error {
	var errs validator.ValidationErrors

	if len(r.Rows) == 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "rows",
			Message: "at least one punch row is required",
		})
	}

	if len(r.Rows) > MaxRowsPerUpload {
		errs = append(errs, validator.ValidationError{
			Field:   "rows",
			Message: "rows must not exceed " + validator.Itoa(MaxRowsPerUpload),
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// IngestResponse summarizes the snapshot produced by an ingest.
type IngestResponse struct {
	SnapshotID   string `json:"snapshot_id"`
	ReceivedRows int    `json:"received_rows"`
	AcceptedRows int    `json:"accepted_rows"`
	DroppedRows  int    `json:"dropped_rows"`
	Dates        int    `json:"dates"`
	Workers      int    `json:"workers"`
	DailyRecords int    `json:"daily_records"`
	NoveltyCount int    `json:"novelty_records"`
	GeneratedAt  string `json:"generated_at"`
}
