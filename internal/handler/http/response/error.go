package response

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/punch-analytics/internal/domain/attendance"
	"github.com/cmlabs-hris/punch-analytics/internal/domain/holiday"
	"github.com/cmlabs-hris/punch-analytics/internal/domain/punch"
	"github.com/cmlabs-hris/punch-analytics/internal/domain/statistics"
	"github.com/cmlabs-hris/punch-analytics/internal/pkg/jwt"
	"github.com/cmlabs-hris/punch-analytics/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Attendance domain errors
	case errors.Is(err, attendance.ErrWorkerNotFound):
		NotFound(w, "Worker not found")
	case errors.Is(err, attendance.ErrWorkerRequired):
		BadRequest(w, "Worker is required", nil)
	case errors.Is(err, attendance.ErrInvalidPeriod):
		BadRequest(w, err.Error(), nil)

	// Statistics domain errors
	case errors.Is(err, statistics.ErrInvalidSortOrder):
		BadRequest(w, err.Error(), nil)

	// Holiday domain errors
	case errors.Is(err, holiday.ErrInvalidYear):
		BadRequest(w, "Invalid year", nil)
	case errors.Is(err, holiday.ErrProviderUnavailable):
		ServiceUnavailable(w, "Holiday provider unavailable")

	// Auth errors
	case errors.Is(err, jwt.ErrInvalidToken):
		Unauthorized(w, "Invalid or expired token")

	// Punch storage errors
	case errors.Is(err, punch.ErrBlobCorrupt):
		slog.Error("Stored punch data is corrupt", "error", err)
		InternalServerError(w, "Stored punch data is corrupt")

	default:
		slog.Error("Unhandled error", "error", err)
		InternalServerError(w, "An unexpected error occurred")
	}
}
