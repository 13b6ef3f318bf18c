package api

import (
	"context"
	"net/http"
	"time"

	"shareit/internal/metrics"
	"shareit/internal/models"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

type requestIDKey struct{}

// RequestIDFrom returns the request id stored by WithRequestID.
func RequestIDFrom(ctx context.Context) string {
	if id, ok := ctx.Value(requestIDKey{}).(string); ok {
		return id
	}
	return ""
}

// WithRequestID reuses the caller's X-Request-Id or generates one, and echoes
// it on the response.
func WithRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(models.RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
			r.Header.Set(models.RequestIDHeader, id)
		}
		w.Header().Set(models.RequestIDHeader, id)
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), requestIDKey{}, id)))
	})
}

// Observe logs every request and records it in the HTTP metrics under the
// matched route pattern.
func Observe(logger *zerolog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(recorder, r)
		dur := time.Since(start)

		route := r.Pattern
		if route == "" {
			route = "unmatched"
		}
		metrics.ObserveHTTP(route, recorder.status, dur)

		logger.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", recorder.status).
			Dur("duration", dur).
			Str("request_id", RequestIDFrom(r.Context())).
			Msg("http request")
	})
}

// Recover turns a handler panic into a 500 response.
func Recover(logger *zerolog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				logger.Error().
					Interface("panic", rec).
					Str("path", r.URL.Path).
					Str("request_id", RequestIDFrom(r.Context())).
					Msg("handler panic")
				WriteError(w, http.StatusInternalServerError, "internal server error")
			}
		}()
		next.ServeHTTP(w, r)
	})
}

// userQuota limits the number of calls per acting user within the configured
// window. Calls without the user header are not counted. Limiter failures let
// the call through.
func (s *HTTPServer) userQuota(next http.Handler) http.Handler {
	if s.limiter == nil || !s.cfg.RateLimit.Enabled {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user := r.Header.Get(models.UserHeader)
		if user == "" {
			next.ServeHTTP(w, r)
			return
		}

		allowed, err := s.limiter.Allow(r.Context(), "user:"+user, s.cfg.RateLimit.Requests, s.cfg.RateLimit.Window)
		if err != nil {
			s.logger.Warn().Err(err).Str("user", user).Msg("rate limiter unavailable")
		} else if !allowed {
			metrics.IncRateLimited()
			WriteError(w, http.StatusTooManyRequests, "rate limit exceeded")
			return
		}
		next.ServeHTTP(w, r)
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}
