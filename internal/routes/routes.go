package routes

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/stanstork/execdash/internal/handlers"
)

// NewRouter sets up the read-only API routes
func NewRouter(executions *handlers.ExecutionHandler) *mux.Router {
	router := mux.NewRouter()

	// Health check route
	router.HandleFunc("/health", handlers.HealthCheck).Methods(http.MethodGet)

	api := router.PathPrefix("/api").Subrouter()
	api.HandleFunc("/instances", executions.ListInstances).Methods(http.MethodGet)
	api.HandleFunc("/executions", executions.ListExecutions).Methods(http.MethodGet)
	api.HandleFunc("/executions/stats", executions.GetStats).Methods(http.MethodGet)
	api.HandleFunc("/executions/daily", executions.GetDailyStats).Methods(http.MethodGet)
	api.HandleFunc("/executions/workflows", executions.GetWorkflowStats).Methods(http.MethodGet)

	return router
}
