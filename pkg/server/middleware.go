package server

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	camderrors "github.com/cheapamd/camd/pkg/errors"
)

type contextKey string

const contextKeyRequestID contextKey = "request-id"

// withMiddleware wraps API handlers with request ID assignment, rate
// limiting and request logging. System endpoints skip it.
func (s *Server) withMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get("X-Request-ID")
		if requestID == "" {
			requestID = uuid.New().String()
		}
		w.Header().Set("X-Request-ID", requestID)
		r = r.WithContext(context.WithValue(r.Context(), contextKeyRequestID, requestID))

		if !s.limiter.Allow() {
			WriteErrorFromCode(w, r, camderrors.ErrCodeRateLimitExceeded, "rate limit exceeded", nil)
			return
		}

		start := time.Now()
		next(w, r)

		slog.Debug("request handled",
			"method", r.Method,
			"path", r.URL.Path,
			"request_id", requestID,
			"duration_ms", time.Since(start).Milliseconds(),
		)
	}
}
