package http

import (
	"net/http"

	"github.com/cmlabs-hris/punch-analytics/internal/domain/statistics"
	"github.com/cmlabs-hris/punch-analytics/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type StatisticsHandler interface {
	ForPeriod(w http.ResponseWriter, r *http.Request)
	Weekly(w http.ResponseWriter, r *http.Request)
	Calendar(w http.ResponseWriter, r *http.Request)
	Summary(w http.ResponseWriter, r *http.Request)
}

type statisticsHandlerImpl struct {
	statisticsService statistics.StatisticsService
}

func NewStatisticsHandler(statisticsService statistics.StatisticsService) StatisticsHandler {
	return &statisticsHandlerImpl{
		statisticsService: statisticsService,
	}
}

// ForPeriod implements StatisticsHandler.
func (h *statisticsHandlerImpl) ForPeriod(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	req := statistics.PeriodRequest{
		Period:       query.Get("period"),
		EntryOrder:   query.Get("entry_order"),
		ExitOrder:    query.Get("exit_order"),
		HoursOrder:   query.Get("hours_order"),
		AverageOrder: query.Get("average_order"),
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.statisticsService.ForPeriod(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, result, &response.Meta{SnapshotID: result.SnapshotID})
}

// Weekly implements StatisticsHandler.
func (h *statisticsHandlerImpl) Weekly(w http.ResponseWriter, r *http.Request) {
	req := monthRequest(r)
	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.statisticsService.WeeklySummary(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Calendar implements StatisticsHandler.
func (h *statisticsHandlerImpl) Calendar(w http.ResponseWriter, r *http.Request) {
	req := monthRequest(r)
	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.statisticsService.CalendarForMonth(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Summary implements StatisticsHandler.
func (h *statisticsHandlerImpl) Summary(w http.ResponseWriter, r *http.Request) {
	req := monthRequest(r)
	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.statisticsService.MonthlySummary(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func monthRequest(r *http.Request) statistics.MonthRequest {
	query := r.URL.Query()
	return statistics.MonthRequest{
		Worker: chi.URLParam(r, "worker"),
		Year:   query.Get("year"),
		Month:  query.Get("month"),
	}
}
