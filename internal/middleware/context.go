package middleware

import (
	"context"
	"net/http"
)

type contextKey string

const requestIDKey contextKey = "request_id"

// WithRequestID stores the request id on the context.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	if requestID == "" {
		return ctx
	}
	return context.WithValue(ctx, requestIDKey, requestID)
}

func RequestIDFromRequest(r *http.Request) (string, bool) {
	id, ok := r.Context().Value(requestIDKey).(string)
	if !ok || id == "" {
		return "", false
	}
	return id, true
}
