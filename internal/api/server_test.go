package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/durwheel/durwheel/internal/storage"
	"github.com/durwheel/durwheel/internal/testutil"
	"github.com/durwheel/durwheel/internal/timespan"
)

func newTestServer(t *testing.T) (*Server, *storage.SQLiteStorage) {
	t.Helper()

	store := testutil.NewTestStorage(t)
	cfg := testutil.NewTestConfig(t)

	return NewServer(cfg, store), store
}

func doRequest(t *testing.T, s *Server, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	rr := httptest.NewRecorder()
	s.setupRoutes().ServeHTTP(rr, req)
	return rr
}

func decodeBody(t *testing.T, rr *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var result map[string]interface{}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &result))
	return result
}

func TestHealthHandler(t *testing.T) {
	s, _ := newTestServer(t)

	rr := doRequest(t, s, "GET", "/health", nil)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "ok", decodeBody(t, rr)["status"])
}

func TestQuantizeHandler_Defaults(t *testing.T) {
	s, _ := newTestServer(t)

	rr := doRequest(t, s, "POST", "/api/quantize", map[string]interface{}{
		"seconds": 3725,
	})

	require.Equal(t, http.StatusOK, rr.Code)
	body := decodeBody(t, rr)
	assert.Equal(t, float64(1), body["hour"])
	assert.Equal(t, float64(2), body["minute"])
	assert.Equal(t, float64(5), body["second"])
	assert.Equal(t, float64(3725), body["total_seconds"])
	assert.Equal(t, "01:02:05", body["formatted"])
}

func TestQuantizeHandler_Overrides(t *testing.T) {
	s, _ := newTestServer(t)

	interval := 15
	rr := doRequest(t, s, "POST", "/api/quantize", map[string]interface{}{
		"seconds":         2*3600 + 40*60,
		"mode":            "hourMinute",
		"minute_interval": interval,
		"rounding":        "up",
	})

	require.Equal(t, http.StatusOK, rr.Code)
	body := decodeBody(t, rr)
	assert.Equal(t, float64(2), body["hour"])
	assert.Equal(t, float64(45), body["minute"])
	assert.Equal(t, float64(0), body["second"])
	assert.Equal(t, "hourMinute", body["mode"])
	assert.Equal(t, "up", body["rounding"])
}

func TestQuantizeHandler_ClampsToBounds(t *testing.T) {
	s, _ := newTestServer(t)

	rr := doRequest(t, s, "POST", "/api/quantize", map[string]interface{}{
		"seconds":         10,
		"minimum_seconds": 600,
	})

	require.Equal(t, http.StatusOK, rr.Code)
	body := decodeBody(t, rr)
	assert.Equal(t, float64(600), body["total_seconds"])
	assert.Equal(t, float64(600), body["minimum"])
}

func TestQuantizeHandler_RejectsBadInput(t *testing.T) {
	s, _ := newTestServer(t)

	tests := []struct {
		name string
		body map[string]interface{}
	}{
		{"unknown mode", map[string]interface{}{"seconds": 0, "mode": "fortnight"}},
		{"unknown rounding", map[string]interface{}{"seconds": 0, "rounding": "sideways"}},
		{"non-divisor hour interval", map[string]interface{}{"seconds": 0, "hour_interval": 5}},
		{"non-divisor minute interval", map[string]interface{}{"seconds": 0, "minute_interval": 7}},
		{"oversized second interval", map[string]interface{}{"seconds": 0, "second_interval": 31}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := doRequest(t, s, "POST", "/api/quantize", tt.body)
			assert.Equal(t, http.StatusBadRequest, rr.Code)
		})
	}
}

func TestGetSelectionHandler(t *testing.T) {
	s, _ := newTestServer(t)

	opts := timespan.Options{Mode: timespan.ModeHourMinute}
	s.SetSelection(timespan.Components{Hour: 2, Minute: 30}, opts)

	rr := doRequest(t, s, "GET", "/api/selection", nil)

	require.Equal(t, http.StatusOK, rr.Code)
	body := decodeBody(t, rr)
	assert.Equal(t, float64(2), body["hour"])
	assert.Equal(t, float64(30), body["minute"])
	assert.Equal(t, float64(9000), body["total_seconds"])
	assert.Equal(t, "hourMinute", body["mode"])
}

func TestHistoryHandlers(t *testing.T) {
	s, store := newTestServer(t)
	ctx := context.Background()

	id, err := store.SaveSelection(ctx, &storage.SelectionRecord{
		Mode:           "hourMinute",
		Hour:           1,
		Minute:         30,
		TotalSeconds:   5400,
		HourInterval:   1,
		MinuteInterval: 1,
		SecondInterval: 1,
		Rounding:       "down",
	})
	require.NoError(t, err)

	t.Run("list", func(t *testing.T) {
		rr := doRequest(t, s, "GET", "/api/history", nil)
		require.Equal(t, http.StatusOK, rr.Code)
		body := decodeBody(t, rr)
		assert.Equal(t, float64(1), body["count"])
		assert.Equal(t, float64(1), body["total"])
	})

	t.Run("list filters by mode", func(t *testing.T) {
		rr := doRequest(t, s, "GET", "/api/history?mode=second", nil)
		require.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, float64(0), decodeBody(t, rr)["count"])
	})

	t.Run("get by id", func(t *testing.T) {
		rr := doRequest(t, s, "GET", "/api/history/"+id, nil)
		require.Equal(t, http.StatusOK, rr.Code)
		body := decodeBody(t, rr)
		assert.Equal(t, id, body["id"])
		assert.Equal(t, float64(5400), body["total_seconds"])
	})

	t.Run("get unknown id", func(t *testing.T) {
		rr := doRequest(t, s, "GET", "/api/history/nope", nil)
		assert.Equal(t, http.StatusNotFound, rr.Code)
	})

	t.Run("delete", func(t *testing.T) {
		rr := doRequest(t, s, "DELETE", "/api/history/"+id, nil)
		require.Equal(t, http.StatusOK, rr.Code)

		rr = doRequest(t, s, "DELETE", "/api/history/"+id, nil)
		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}

func TestGetStatsHandler(t *testing.T) {
	s, store := newTestServer(t)
	ctx := context.Background()

	for _, total := range []int{60, 180} {
		_, err := store.SaveSelection(ctx, &storage.SelectionRecord{
			Mode:         "minute",
			Minute:       total / 60,
			TotalSeconds: total,
			Rounding:     "down",
		})
		require.NoError(t, err)
	}

	rr := doRequest(t, s, "GET", "/api/stats", nil)

	require.Equal(t, http.StatusOK, rr.Code)
	body := decodeBody(t, rr)
	assert.Equal(t, float64(2), body["count"])
	assert.Equal(t, float64(240), body["total_seconds"])
	assert.Equal(t, float64(180), body["longest_seconds"])
}

func TestGetConfigHandler(t *testing.T) {
	s, _ := newTestServer(t)

	rr := doRequest(t, s, "GET", "/api/config", nil)

	require.Equal(t, http.StatusOK, rr.Code)
	body := decodeBody(t, rr)
	assert.Equal(t, "hourMinuteSecond", body["mode"])
	assert.Equal(t, "down", body["rounding"])
}

func TestProtectedRoutesRequireKey(t *testing.T) {
	store := testutil.NewTestStorage(t)

	cfg := testutil.NewTestConfig(t)
	cfg.APIKey = "secret"
	s := NewServer(cfg, store)

	rr := doRequest(t, s, "GET", "/api/selection", nil)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)

	// Health stays public.
	rr = doRequest(t, s, "GET", "/health", nil)
	assert.Equal(t, http.StatusOK, rr.Code)
}
