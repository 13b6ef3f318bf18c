package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"shareit/internal/config"
	"shareit/internal/domain"

	"github.com/rs/zerolog"
)

// Services bundles the operations served over HTTP.
type Services struct {
	Users    domain.UserService
	Items    domain.ItemService
	Bookings domain.BookingService
	Requests domain.RequestService
}

// HealthChecker reports whether a backing store is reachable.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// HTTPServer exposes the sharing API.
type HTTPServer struct {
	cfg        config.APIConfig
	pagination config.PaginationConfig
	services   Services
	limiter    domain.RateLimiter
	health     HealthChecker
	logger     *zerolog.Logger
	server     *http.Server
}

// NewHTTPServer wires routes and middleware. limiter and health may be nil.
func NewHTTPServer(
	cfg *config.Config,
	services Services,
	limiter domain.RateLimiter,
	health HealthChecker,
	logger *zerolog.Logger,
) *HTTPServer {
	srv := &HTTPServer{
		cfg:        cfg.API,
		pagination: cfg.Pagination,
		services:   services,
		limiter:    limiter,
		health:     health,
		logger:     logger,
	}

	srv.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.API.HTTP.Port),
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      15 * time.Second,
	}
	return srv
}

// Handler returns the fully wrapped route table.
func (s *HTTPServer) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", s.handleHealth)

	mux.HandleFunc("POST /users", s.handleCreateUser)
	mux.HandleFunc("GET /users", s.handleListUsers)
	mux.HandleFunc("GET /users/{id}", s.handleGetUser)
	mux.HandleFunc("PATCH /users/{id}", s.handleUpdateUser)
	mux.HandleFunc("DELETE /users/{id}", s.handleDeleteUser)

	mux.HandleFunc("POST /items", s.handleCreateItem)
	mux.HandleFunc("GET /items", s.handleListOwnerItems)
	mux.HandleFunc("GET /items/search", s.handleSearchItems)
	mux.HandleFunc("GET /items/{id}", s.handleGetItem)
	mux.HandleFunc("PATCH /items/{id}", s.handleUpdateItem)
	mux.HandleFunc("POST /items/{id}/comment", s.handleAddComment)

	mux.HandleFunc("POST /bookings", s.handleCreateBooking)
	mux.HandleFunc("GET /bookings", s.handleListBookerBookings)
	mux.HandleFunc("GET /bookings/owner", s.handleListOwnerBookings)
	mux.HandleFunc("GET /bookings/owner/export", s.handleExportOwnerBookings)
	mux.HandleFunc("GET /bookings/{id}", s.handleGetBooking)
	mux.HandleFunc("PATCH /bookings/{id}", s.handleDecideBooking)

	mux.HandleFunc("POST /requests", s.handleCreateRequest)
	mux.HandleFunc("GET /requests", s.handleListOwnRequests)
	mux.HandleFunc("GET /requests/all", s.handleListOtherRequests)
	mux.HandleFunc("GET /requests/{id}", s.handleGetRequest)

	return Recover(s.logger, WithRequestID(Observe(s.logger, s.userQuota(mux))))
}

func (s *HTTPServer) Start() error {
	if s.server == nil {
		return fmt.Errorf("http server is not initialized")
	}
	s.logger.Info().Str("addr", s.server.Addr).Msg("HTTP API listening")
	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *HTTPServer) Shutdown(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}

func (s *HTTPServer) handleHealth(w http.ResponseWriter, r *http.Request) {
	if s.health != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := s.health.HealthCheck(ctx); err != nil {
			s.logger.Warn().Err(err).Msg("health check failed")
			WriteError(w, http.StatusServiceUnavailable, "store unavailable")
			return
		}
	}
	WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
