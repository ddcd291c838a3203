package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealthHandler_Health(t *testing.T) {
	h := NewHealthHandler(time.Second, nil)

	w := httptest.NewRecorder()
	h.Health(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestHealthHandler_Ready(t *testing.T) {
	tests := []struct {
		name           string
		checks         map[string]CheckFunc
		expectedStatus int
		expectedChecks map[string]string
	}{
		{
			name:           "no dependencies",
			expectedStatus: http.StatusOK,
			expectedChecks: map[string]string{},
		},
		{
			name: "all healthy",
			checks: map[string]CheckFunc{
				"redis":    func(context.Context) error { return nil },
				"database": func(context.Context) error { return nil },
			},
			expectedStatus: http.StatusOK,
			expectedChecks: map[string]string{"redis": "ok", "database": "ok"},
		},
		{
			name: "redis down",
			checks: map[string]CheckFunc{
				"redis":    func(context.Context) error { return errors.New("connection refused") },
				"database": func(context.Context) error { return nil },
			},
			expectedStatus: http.StatusServiceUnavailable,
			expectedChecks: map[string]string{"redis": "failed: connection refused", "database": "ok"},
		},
		{
			name: "check exceeds timeout",
			checks: map[string]CheckFunc{
				"database": func(ctx context.Context) error {
					<-ctx.Done()
					return ctx.Err()
				},
			},
			expectedStatus: http.StatusServiceUnavailable,
			expectedChecks: map[string]string{"database": "failed: context deadline exceeded"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHealthHandler(50*time.Millisecond, tt.checks)

			w := httptest.NewRecorder()
			h.Ready(w, httptest.NewRequest(http.MethodGet, "/health/ready", nil))

			assert.Equal(t, tt.expectedStatus, w.Code)

			var body struct {
				Data HealthStatus `json:"data"`
			}
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, tt.expectedChecks, body.Data.Checks)
		})
	}
}
