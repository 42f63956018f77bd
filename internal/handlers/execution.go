package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/stanstork/execdash/internal/aggregate"
	"github.com/stanstork/execdash/internal/config"
	"github.com/stanstork/execdash/internal/repository"
)

type ExecutionHandler struct {
	repo   repository.ExecutionRepository
	limits config.APIConfig
	now    func() time.Time
	logger zerolog.Logger
}

func NewExecutionHandler(repo repository.ExecutionRepository, limits config.APIConfig, logger zerolog.Logger) *ExecutionHandler {
	return &ExecutionHandler{
		repo:   repo,
		limits: limits,
		now:    time.Now,
		logger: logger.With().Str("handler", "execution").Logger(),
	}
}

func instanceParam(r *http.Request) string {
	return strings.TrimSpace(r.URL.Query().Get("instance"))
}

func (h *ExecutionHandler) ListInstances(w http.ResponseWriter, r *http.Request) {
	instances, err := h.repo.ListInstances(r.Context())
	if err != nil {
		h.requestLogger(r).Error().Err(err).Msg("failed to list instances")
		writeError(w, http.StatusInternalServerError, "Failed to list instances: "+err.Error())
		return
	}
	writeJSON(w, http.StatusOK, instances)
}

func (h *ExecutionHandler) ListExecutions(w http.ResponseWriter, r *http.Request) {
	limit := intParam(r, "limit", h.limits.DefaultLimit, h.limits.MaxLimit)
	instance := instanceParam(r)

	executions, err := h.repo.ListExecutions(r.Context(), instance, limit)
	if err != nil {
		h.requestLogger(r).Error().Err(err).Str("instance", instance).Msg("failed to list executions")
		writeError(w, http.StatusInternalServerError, "Failed to list executions: "+err.Error())
		return
	}
	writeJSON(w, http.StatusOK, executions)
}

func (h *ExecutionHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	instance := instanceParam(r)

	groups, err := h.repo.ListStatusGroups(r.Context(), instance)
	if err != nil {
		h.requestLogger(r).Error().Err(err).Str("instance", instance).Msg("failed to load execution stats")
		writeError(w, http.StatusInternalServerError, "Failed to get execution stats: "+err.Error())
		return
	}
	writeJSON(w, http.StatusOK, aggregate.ComputeStats(groups))
}

func (h *ExecutionHandler) GetDailyStats(w http.ResponseWriter, r *http.Request) {
	days := intParam(r, "days", h.limits.DefaultDays, h.limits.MaxDays)
	instance := instanceParam(r)
	now := h.now()

	records, err := h.repo.ListStartedSince(r.Context(), instance, aggregate.WindowStart(now, days))
	if err != nil {
		h.requestLogger(r).Error().Err(err).Str("instance", instance).Int("days", days).Msg("failed to load daily stats")
		writeError(w, http.StatusInternalServerError, "Failed to get daily stats: "+err.Error())
		return
	}
	writeJSON(w, http.StatusOK, aggregate.ComputeDaily(records, now, days))
}

func (h *ExecutionHandler) GetWorkflowStats(w http.ResponseWriter, r *http.Request) {
	instance := instanceParam(r)

	groups, err := h.repo.ListWorkflowGroups(r.Context(), instance)
	if err != nil {
		h.requestLogger(r).Error().Err(err).Str("instance", instance).Msg("failed to load workflow stats")
		writeError(w, http.StatusInternalServerError, "Failed to get workflow stats: "+err.Error())
		return
	}
	writeJSON(w, http.StatusOK, aggregate.ComputeWorkflowStats(groups))
}
