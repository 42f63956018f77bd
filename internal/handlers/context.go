package handlers

import (
	"net/http"

	"github.com/rs/zerolog"
	"github.com/stanstork/execdash/internal/middleware"
)

// requestLogger tags entries with the id assigned by the logging middleware.
func (h *ExecutionHandler) requestLogger(r *http.Request) *zerolog.Logger {
	l := h.logger
	if id, ok := middleware.RequestIDFromRequest(r); ok {
		l = l.With().Str("request_id", id).Logger()
	}
	return &l
}
