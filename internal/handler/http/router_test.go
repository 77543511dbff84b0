package http

import (
	"bufio"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/cmlabs-hris/punch-analytics/internal/pkg/jwt"
	"github.com/cmlabs-hris/punch-analytics/internal/pkg/sse"
	"github.com/cmlabs-hris/punch-analytics/internal/repository/memory"
	attendanceService "github.com/cmlabs-hris/punch-analytics/internal/service/attendance"
	statisticsService "github.com/cmlabs-hris/punch-analytics/internal/service/statistics"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const handlerTestSecret = "test-secret-key-for-jwt"

const samplePunches = `{"rows":[
	{"User":"ana","WorkId":"1","Date":"2024-03-04","Time":"08:00:00","IN/OUT":"IN"},
	{"User":"ana","WorkId":"1","Date":"2024-03-04","Time":"17:30:00","IN/OUT":"OUT"},
	{"User":"ana","WorkId":"1","Date":"2024-03-05","Time":"07:55:00","IN/OUT":"IN"},
	{"User":"'bruno'","WorkId":"2","Date":"05/03/2024","Time":"09:10","IN/OUT":"IN"},
	{"User":"NULL","WorkId":"3","Date":"2024-03-05","Time":"09:00","IN/OUT":"IN"}
]}`

type testEnv struct {
	router *chi.Mux
	jwt    jwt.Service
	repo   *memory.PunchRepository
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	repo := memory.NewPunchRepository()
	attendanceSvc := attendanceService.NewAttendanceService(repo, sse.NewHub())
	statisticsSvc := statisticsService.NewStatisticsService(attendanceSvc, nil, time.UTC).
		WithClock(func() time.Time { return time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC) })
	jwtSvc := jwt.NewJWTService(handlerTestSecret, "1h")

	router := NewRouter(
		RouterOptions{Env: "test", Version: "test", LogOutput: io.Discard},
		jwtSvc,
		NewPunchHandler(attendanceSvc),
		NewAttendanceHandler(attendanceSvc),
		NewStatisticsHandler(statisticsSvc),
	)
	return &testEnv{router: router, jwt: jwtSvc, repo: repo}
}

func (e *testEnv) token(t *testing.T) string {
	t.Helper()
	token, _, err := e.jwt.GenerateAccessToken("uploader")
	require.NoError(t, err)
	return token
}

func (e *testEnv) do(t *testing.T, method, target, body, token string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string            `json:"code"`
		Message string            `json:"message"`
		Details map[string]string `json:"details"`
	} `json:"error"`
	Meta map[string]interface{} `json:"meta"`
}

func decode(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	return env
}

func TestRouter_Heartbeat(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodGet, "/", "", "")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRouter_Metrics(t *testing.T) {
	env := newTestEnv(t)

	env.do(t, http.MethodGet, "/api/v1/workers", "", "")
	w := env.do(t, http.MethodGet, "/metrics", "", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "punch_http_request_duration_seconds")
}

func TestPunchHandler_Ingest_RequiresToken(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodPost, "/api/v1/punches", samplePunches, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = env.do(t, http.MethodPost, "/api/v1/punches", samplePunches, "not-a-token")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestPunchHandler_Ingest_Success(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodPost, "/api/v1/punches", samplePunches, env.token(t))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	body := decode(t, w)
	assert.True(t, body.Success)

	var result struct {
		ReceivedRows int `json:"received_rows"`
		AcceptedRows int `json:"accepted_rows"`
		DroppedRows  int `json:"dropped_rows"`
		Workers      int `json:"workers"`
		DailyRecords int `json:"daily_records"`
	}
	require.NoError(t, json.Unmarshal(body.Data, &result))
	assert.Equal(t, 5, result.ReceivedRows)
	assert.Equal(t, 4, result.AcceptedRows)
	assert.Equal(t, 1, result.DroppedRows)
	assert.Equal(t, 2, result.Workers)
	assert.Equal(t, 3, result.DailyRecords)

	stored, err := env.repo.Load(context.Background())
	require.NoError(t, err)
	assert.Len(t, stored, 5)
}

func TestPunchHandler_Ingest_BareArray(t *testing.T) {
	env := newTestEnv(t)

	body := `[{"user":"ana","date":"2024-03-04","time":"08:00"}]`
	w := env.do(t, http.MethodPost, "/api/v1/punches", body, env.token(t))
	assert.Equal(t, http.StatusCreated, w.Code, w.Body.String())
}

func TestPunchHandler_Ingest_Invalid(t *testing.T) {
	env := newTestEnv(t)
	token := env.token(t)

	w := env.do(t, http.MethodPost, "/api/v1/punches", `{"rows":[]}`, token)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, decode(t, w).Error.Details, "rows")

	w = env.do(t, http.MethodPost, "/api/v1/punches", `{"rows":`, token)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPunchHandler_Clear(t *testing.T) {
	env := newTestEnv(t)
	token := env.token(t)

	require.Equal(t, http.StatusCreated, env.do(t, http.MethodPost, "/api/v1/punches", samplePunches, token).Code)

	w := env.do(t, http.MethodDelete, "/api/v1/punches", "", token)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = env.do(t, http.MethodGet, "/api/v1/workers", "", "")
	var list struct {
		Workers []string `json:"workers"`
		Total   int      `json:"total"`
	}
	require.NoError(t, json.Unmarshal(decode(t, w).Data, &list))
	assert.Equal(t, 0, list.Total)
}

func TestAttendanceHandler_WorkersAndRecords(t *testing.T) {
	env := newTestEnv(t)
	require.Equal(t, http.StatusCreated, env.do(t, http.MethodPost, "/api/v1/punches", samplePunches, env.token(t)).Code)

	w := env.do(t, http.MethodGet, "/api/v1/workers", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)

	var list struct {
		Workers []string `json:"workers"`
	}
	require.NoError(t, json.Unmarshal(body.Data, &list))
	assert.Equal(t, []string{"ana", "bruno"}, list.Workers)
	assert.NotEmpty(t, body.Meta["snapshot_id"])

	w = env.do(t, http.MethodGet, "/api/v1/workers/ana/records", "", "")
	require.Equal(t, http.StatusOK, w.Code)

	var records struct {
		Worker  string `json:"worker"`
		Records []struct {
			Date      string `json:"date"`
			EntryTime string `json:"entry_time"`
			ExitTime  string `json:"exit_time"`
			IsNovelty bool   `json:"is_novelty"`
		} `json:"records"`
	}
	require.NoError(t, json.Unmarshal(decode(t, w).Data, &records))
	require.Len(t, records.Records, 2)
	assert.Equal(t, "2024-03-04", records.Records[0].Date)
	assert.Equal(t, "08:00:00", records.Records[0].EntryTime)
	assert.Equal(t, "17:30:00", records.Records[0].ExitTime)
	assert.False(t, records.Records[0].IsNovelty)
	assert.True(t, records.Records[1].IsNovelty)

	w = env.do(t, http.MethodGet, "/api/v1/workers/nobody/records", "", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAttendanceHandler_Snapshot(t *testing.T) {
	env := newTestEnv(t)
	require.Equal(t, http.StatusCreated, env.do(t, http.MethodPost, "/api/v1/punches", samplePunches, env.token(t)).Code)

	w := env.do(t, http.MethodGet, "/api/v1/attendance/snapshot", "", "")
	require.Equal(t, http.StatusOK, w.Code)

	var snap struct {
		ID        string `json:"id"`
		Workers   int    `json:"workers"`
		FirstDate string `json:"first_date"`
		LastDate  string `json:"last_date"`
	}
	require.NoError(t, json.Unmarshal(decode(t, w).Data, &snap))
	assert.NotEmpty(t, snap.ID)
	assert.Equal(t, 2, snap.Workers)
	assert.Equal(t, "2024-03-04", snap.FirstDate)
	assert.Equal(t, "2024-03-05", snap.LastDate)
}

func TestAttendanceHandler_Stream(t *testing.T) {
	env := newTestEnv(t)
	require.Equal(t, http.StatusCreated, env.do(t, http.MethodPost, "/api/v1/punches", samplePunches, env.token(t)).Code)

	server := httptest.NewServer(env.router)
	defer server.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, server.URL+"/api/v1/attendance/stream", nil)
	require.NoError(t, err)
	resp, err := server.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))

	var events []string
	scanner := bufio.NewScanner(resp.Body)
	for scanner.Scan() {
		line := scanner.Text()
		if name, ok := strings.CutPrefix(line, "event: "); ok {
			events = append(events, name)
		}
		if strings.HasPrefix(line, "data: ") && len(events) > 0 && events[len(events)-1] == "snapshot" {
			assert.Contains(t, line, `"workers":2`)
			break
		}
	}
	assert.Equal(t, []string{"connected", "snapshot"}, events)
}

func TestStatisticsHandler_ForPeriod(t *testing.T) {
	env := newTestEnv(t)
	require.Equal(t, http.StatusCreated, env.do(t, http.MethodPost, "/api/v1/punches", samplePunches, env.token(t)).Code)

	w := env.do(t, http.MethodGet, "/api/v1/statistics?period=allTime&entry_order=desc", "", "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var stats struct {
		Period  string `json:"period"`
		General struct {
			Workers int `json:"workers"`
		} `json:"general"`
	}
	body := decode(t, w)
	require.NoError(t, json.Unmarshal(body.Data, &stats))
	assert.Equal(t, "allTime", stats.Period)
	assert.Equal(t, 2, stats.General.Workers)
	assert.NotEmpty(t, body.Meta["snapshot_id"])
}

func TestStatisticsHandler_ForPeriod_Invalid(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodGet, "/api/v1/statistics?period=fortnight&hours_order=up", "", "")
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)

	details := decode(t, w).Error.Details
	assert.Contains(t, details, "period")
	assert.Contains(t, details, "hours_order")
}

func TestStatisticsHandler_MonthViews(t *testing.T) {
	env := newTestEnv(t)
	require.Equal(t, http.StatusCreated, env.do(t, http.MethodPost, "/api/v1/punches", samplePunches, env.token(t)).Code)

	for _, view := range []string{"weekly", "calendar", "summary"} {
		t.Run(view, func(t *testing.T) {
			w := env.do(t, http.MethodGet, "/api/v1/workers/ana/"+view+"?year=2024&month=3", "", "")
			assert.Equal(t, http.StatusOK, w.Code, w.Body.String())

			w = env.do(t, http.MethodGet, "/api/v1/workers/ana/"+view+"?year=2024", "", "")
			assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

			w = env.do(t, http.MethodGet, "/api/v1/workers/nobody/"+view+"?year=2024&month=3", "", "")
			assert.Equal(t, http.StatusNotFound, w.Code)
		})
	}
}
