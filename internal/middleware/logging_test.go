package middleware

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggingMiddleware(t *testing.T) {
	tests := []struct {
		name      string
		requestID string
		status    int
		level     string
	}{
		{"generated request id", "", http.StatusOK, "info"},
		{"propagated request id", "req-42", http.StatusOK, "info"},
		{"server error", "", http.StatusInternalServerError, "error"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := zerolog.New(&buf)
			handler := LoggingMiddleware(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
			}))

			req := httptest.NewRequest(http.MethodGet, "/api/executions?limit=5", nil)
			if tt.requestID != "" {
				req.Header.Set(RequestIDHeader, tt.requestID)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.status, rec.Code)
			gotID := rec.Header().Get(RequestIDHeader)
			if tt.requestID != "" {
				assert.Equal(t, tt.requestID, gotID)
			} else {
				_, err := uuid.Parse(gotID)
				assert.NoError(t, err)
			}

			var entry map[string]interface{}
			require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
			assert.Equal(t, tt.level, entry["level"])
			assert.Equal(t, "/api/executions", entry["path"])
			assert.Equal(t, "limit=5", entry["query"])
			assert.Equal(t, float64(tt.status), entry["status"])
			assert.Equal(t, gotID, entry["request_id"])
		})
	}
}

func TestLoggingMiddleware_RequestIDOnContext(t *testing.T) {
	var seen string
	handler := LoggingMiddleware(zerolog.Nop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = RequestIDFromRequest(r)
	}))

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(RequestIDHeader, "req-7")
	handler.ServeHTTP(httptest.NewRecorder(), req)

	assert.Equal(t, "req-7", seen)

	_, ok := RequestIDFromRequest(httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.False(t, ok)
}
