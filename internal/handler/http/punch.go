package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/punch-analytics/internal/domain/attendance"
	"github.com/cmlabs-hris/punch-analytics/internal/domain/punch"
	"github.com/cmlabs-hris/punch-analytics/internal/handler/http/response"
)

// MaxIngestBodyBytes bounds the raw upload body.
const MaxIngestBodyBytes = 64 << 20

type PunchHandler interface {
	Ingest(w http.ResponseWriter, r *http.Request)
	Clear(w http.ResponseWriter, r *http.Request)
}

type punchHandlerImpl struct {
	attendanceService attendance.AttendanceService
}

func NewPunchHandler(attendanceService attendance.AttendanceService) PunchHandler {
	return &punchHandlerImpl{
		attendanceService: attendanceService,
	}
}

// Ingest implements PunchHandler.
func (h *punchHandlerImpl) Ingest(w http.ResponseWriter, r *http.Request) {
	var req punch.IngestRequest

	r.Body = http.MaxBytesReader(w, r.Body, MaxIngestBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			response.PayloadTooLarge(w, "Upload exceeds the maximum body size")
			return
		}
		slog.Warn("Failed to decode punch upload", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.attendanceService.Ingest(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Punches ingested", result)
}

// Clear implements PunchHandler.
func (h *punchHandlerImpl) Clear(w http.ResponseWriter, r *http.Request) {
	if err := h.attendanceService.Clear(r.Context()); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Punches cleared", nil)
}
