package http

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/cmlabs-hris/punch-analytics/internal/domain/attendance"
	"github.com/cmlabs-hris/punch-analytics/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

// streamKeepalive is how often an idle stream sends a ping event.
var streamKeepalive = 30 * time.Second

type AttendanceHandler interface {
	Snapshot(w http.ResponseWriter, r *http.Request)
	Stream(w http.ResponseWriter, r *http.Request)
	Workers(w http.ResponseWriter, r *http.Request)
	Records(w http.ResponseWriter, r *http.Request)
}

type attendanceHandlerImpl struct {
	attendanceService attendance.AttendanceService
}

func NewAttendanceHandler(attendanceService attendance.AttendanceService) AttendanceHandler {
	return &attendanceHandlerImpl{
		attendanceService: attendanceService,
	}
}

// Snapshot implements AttendanceHandler.
func (h *attendanceHandlerImpl) Snapshot(w http.ResponseWriter, r *http.Request) {
	response.Success(w, attendance.NewSnapshotResponse(h.attendanceService.Current()))
}

// Stream sends the current snapshot summary, then one event per newer
// snapshot. A slow reader only ever sees the latest one.
func (h *attendanceHandlerImpl) Stream(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		response.InternalServerError(w, "Streaming not supported")
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")

	events, cleanup := h.attendanceService.Subscribe()
	defer cleanup()

	fmt.Fprint(w, "event: connected\ndata: {\"status\":\"connected\"}\n\n")
	flusher.Flush()

	keepalive := time.NewTicker(streamKeepalive)
	defer keepalive.Stop()

	for {
		select {
		case event, ok := <-events:
			if !ok {
				return
			}
			data, err := json.Marshal(event.Data)
			if err != nil {
				slog.Error("Failed to encode stream event", "event", event.Event, "error", err)
				continue
			}
			fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event.Event, data)
			flusher.Flush()

		case <-keepalive.C:
			fmt.Fprintf(w, "event: ping\ndata: {\"timestamp\":%d}\n\n", time.Now().Unix())
			flusher.Flush()

		case <-r.Context().Done():
			return
		}
	}
}

// Workers implements AttendanceHandler.
func (h *attendanceHandlerImpl) Workers(w http.ResponseWriter, r *http.Request) {
	result := h.attendanceService.AllWorkers(r.Context())
	snapshot := h.attendanceService.Current()

	response.SuccessWithMeta(w, result, &response.Meta{
		SnapshotID:  snapshot.ID,
		GeneratedAt: &snapshot.GeneratedAt,
		TotalItems:  result.Total,
	})
}

// Records implements AttendanceHandler.
func (h *attendanceHandlerImpl) Records(w http.ResponseWriter, r *http.Request) {
	worker := chi.URLParam(r, "worker")

	result, err := h.attendanceService.RecordsForWorker(r.Context(), worker)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, result, &response.Meta{TotalItems: len(result.Records)})
}
