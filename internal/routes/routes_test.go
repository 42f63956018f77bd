package routes

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stanstork/execdash/internal/config"
	"github.com/stanstork/execdash/internal/handlers"
	"github.com/stanstork/execdash/internal/models"
	"github.com/stretchr/testify/assert"
)

type emptyRepo struct{}

func (emptyRepo) ListInstances(context.Context) ([]string, error) { return []string{}, nil }
func (emptyRepo) ListExecutions(context.Context, string, int) ([]models.ExecutionRecord, error) {
	return []models.ExecutionRecord{}, nil
}
func (emptyRepo) ListStatusGroups(context.Context, string) ([]models.StatusGroup, error) {
	return nil, nil
}
func (emptyRepo) ListStartedSince(context.Context, string, time.Time) ([]models.ExecutionRecord, error) {
	return nil, nil
}
func (emptyRepo) ListWorkflowGroups(context.Context, string) ([]models.StatusGroup, error) {
	return nil, nil
}

func TestNewRouter(t *testing.T) {
	limits := config.APIConfig{DefaultLimit: 100, MaxLimit: 1000, DefaultDays: 14, MaxDays: 365}
	router := NewRouter(handlers.NewExecutionHandler(emptyRepo{}, limits, zerolog.Nop()))

	for _, path := range []string{
		"/health",
		"/api/instances",
		"/api/executions",
		"/api/executions/stats",
		"/api/executions/daily",
		"/api/executions/workflows",
	} {
		t.Run(path, func(t *testing.T) {
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
			assert.Equal(t, http.StatusOK, rec.Code)
		})
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/unknown", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
