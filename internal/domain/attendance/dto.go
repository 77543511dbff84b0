package attendance

import (
	"time"

	"github.com/cmlabs-hris/punch-analytics/internal/pkg/clocktime"
)

type RecordResponse struct {
	Date          string  `json:"date"`
	Worker        string  `json:"worker"`
	EntryTime     string  `json:"entry_time"`
	ExitTime      string  `json:"exit_time"`
	WorkedSeconds int     `json:"worked_seconds"`
	WorkedHours   float64 `json:"worked_hours"`
	WorkedLabel   string  `json:"worked_label"`
	IsNovelty     bool    `json:"is_novelty"`
}

func NewRecordResponse(r DailyRecord) RecordResponse {
	return RecordResponse{
		Date:          r.Date,
		Worker:        r.Worker,
		EntryTime:     r.EntryTime(),
		ExitTime:      r.ExitTime(),
		WorkedSeconds: r.WorkedSeconds,
		WorkedHours:   r.WorkedHours(),
		WorkedLabel:   clocktime.DecimalHoursToClock(r.WorkedHours()),
		IsNovelty:     r.IsNovelty,
	}
}

type WorkerRecordsResponse struct {
	Worker  string           `json:"worker"`
	Records []RecordResponse `json:"records"`
}

type WorkerListResponse struct {
	Workers []string `json:"workers"`
	Total   int      `json:"total"`
}

// SnapshotResponse summarizes a Snapshot. It is also the payload of the
// live stream.
type SnapshotResponse struct {
	ID           string    `json:"id"`
	GeneratedAt  time.Time `json:"generated_at"`
	Dates        int       `json:"dates"`
	Workers      int       `json:"workers"`
	DailyRecords int       `json:"daily_records"`
	NoveltyCount int       `json:"novelty_count"`
	FirstDate    string    `json:"first_date,omitempty"`
	LastDate     string    `json:"last_date,omitempty"`
}

func NewSnapshotResponse(s *Snapshot) SnapshotResponse {
	resp := SnapshotResponse{
		ID:           s.ID,
		GeneratedAt:  s.GeneratedAt,
		Dates:        s.Index.DateCount(),
		Workers:      len(s.Index.AllWorkers()),
		DailyRecords: s.Index.Len(),
		NoveltyCount: s.Novelty,
	}
	if dates := s.Index.Dates(); len(dates) > 0 {
		resp.FirstDate = dates[0]
		resp.LastDate = dates[len(dates)-1]
	}
	return resp
}
