package shared

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/phrazzld/account-api/internal/platform/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func captureDefaultLogger(t *testing.T) *logger.TestLogBuffer {
	t.Helper()
	original := slog.Default()
	log, buf := logger.GetTestLogger(t)
	slog.SetDefault(log)
	t.Cleanup(func() { slog.SetDefault(original) })
	return buf
}

func TestRespondWithJSON(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	w := httptest.NewRecorder()

	RespondWithJSON(w, req, http.StatusCreated, map[string]string{"id": "abc"})

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"id":"abc"}`, w.Body.String())
}

func TestRespondWithError(t *testing.T) {
	captureDefaultLogger(t)

	req := httptest.NewRequest(http.MethodPost, "/api/accounts", nil)
	req = req.WithContext(WithTraceID(req.Context(), "trace-123"))
	w := httptest.NewRecorder()

	RespondWithError(w, req, http.StatusBadRequest, "Invalid request format")

	assert.Equal(t, http.StatusBadRequest, w.Code)
	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Invalid request format", resp.Error)
	assert.Equal(t, "trace-123", resp.TraceID)
}

func TestRespondWithErrorOmitsEmptyTraceID(t *testing.T) {
	captureDefaultLogger(t)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()

	RespondWithError(w, req, http.StatusNotFound, "not found")

	assert.JSONEq(t, `{"error":"not found"}`, w.Body.String())
}

func TestRespondWithErrorAndLogRedactsDetails(t *testing.T) {
	buf := captureDefaultLogger(t)

	req := httptest.NewRequest(http.MethodPost, "/api/accounts", nil)
	w := httptest.NewRecorder()
	cause := errors.New("dial postgres://admin:hunter2@db:5432/accounts failed")

	RespondWithErrorAndLog(w, req, http.StatusServiceUnavailable, "Service temporarily unavailable", cause)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.NotContains(t, w.Body.String(), "postgres://")
	assert.NotContains(t, w.Body.String(), "hunter2")

	logger.AssertLogContains(t, buf, "API error response")
	logger.AssertLogContains(t, buf, `"level":"ERROR"`)
	logger.AssertLogNotContains(t, buf, "hunter2")
}

func TestRespondWithErrorAndLogLevels(t *testing.T) {
	tests := []struct {
		status int
		level  string
	}{
		{http.StatusBadRequest, "DEBUG"},
		{http.StatusConflict, "INFO"},
		{http.StatusInternalServerError, "ERROR"},
	}

	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			buf := captureDefaultLogger(t)
			req := httptest.NewRequest(http.MethodPost, "/", nil)

			RespondWithErrorAndLog(httptest.NewRecorder(), req, tt.status, "msg", nil)

			entries := buf.Entries()
			require.Len(t, entries, 1)
			assert.Equal(t, tt.level, entries[0]["level"])
		})
	}
}
