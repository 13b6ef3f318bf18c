package gateway

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"shareit/internal/api"
	"shareit/internal/config"
	"shareit/internal/dto"
	"shareit/internal/models"
	"shareit/internal/service"

	"github.com/rs/zerolog"
)

const maxBodyBytes = 1 << 20

// check validates one call before it is forwarded. body is the raw request body.
type check func(r *http.Request, body []byte) error

// Forwarder sends validated calls to the server.
type Forwarder interface {
	Forward(ctx context.Context, method, requestURI string, header http.Header, body []byte) (*Response, error)
}

// Gateway validates client calls and relays them to the server.
type Gateway struct {
	pagination config.PaginationConfig
	upstream   Forwarder
	limiter    *api.ClientLimiter
	now        func() time.Time
	logger     *zerolog.Logger
	server     *http.Server
}

func New(cfg *config.Config, upstream Forwarder, logger *zerolog.Logger) *Gateway {
	g := &Gateway{
		pagination: cfg.Pagination,
		upstream:   upstream,
		limiter:    api.NewClientLimiter(cfg.Gateway.RateLimit.RPS, cfg.Gateway.RateLimit.Burst),
		now:        time.Now,
		logger:     logger,
	}
	g.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Gateway.Port),
		Handler:           g.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      cfg.Gateway.Timeout + 5*time.Second,
	}
	return g
}

func (g *Gateway) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, _ *http.Request) {
		api.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	g.route(mux, "POST /users", jsonBody[dto.UserCreate]())
	g.route(mux, "GET /users")
	g.route(mux, "GET /users/{id}", pathID)
	g.route(mux, "PATCH /users/{id}", pathID, jsonBody[dto.UserUpdate]())
	g.route(mux, "DELETE /users/{id}", pathID)

	g.route(mux, "POST /items", userHeader, jsonBody[dto.ItemCreate]())
	g.route(mux, "GET /items", userHeader, g.page)
	g.route(mux, "GET /items/search", g.page)
	g.route(mux, "GET /items/{id}", userHeader, pathID)
	g.route(mux, "PATCH /items/{id}", userHeader, pathID, jsonBody[dto.ItemUpdate]())
	g.route(mux, "POST /items/{id}/comment", userHeader, pathID, jsonBody[dto.CommentCreate]())

	g.route(mux, "POST /bookings", userHeader, g.booking)
	g.route(mux, "GET /bookings", userHeader, state, g.page)
	g.route(mux, "GET /bookings/owner", userHeader, state, g.page)
	g.route(mux, "GET /bookings/owner/export", userHeader, state)
	g.route(mux, "GET /bookings/{id}", userHeader, pathID)
	g.route(mux, "PATCH /bookings/{id}", userHeader, pathID, decision)

	g.route(mux, "POST /requests", userHeader, jsonBody[dto.RequestCreate]())
	g.route(mux, "GET /requests", userHeader)
	g.route(mux, "GET /requests/all", userHeader, g.page)
	g.route(mux, "GET /requests/{id}", userHeader, pathID)

	return api.Recover(g.logger, api.WithRequestID(api.Observe(g.logger, g.limiter.Wrap(mux))))
}

func (g *Gateway) Start() error {
	g.logger.Info().Str("addr", g.server.Addr).Msg("Gateway listening")
	if err := g.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (g *Gateway) Shutdown(ctx context.Context) error {
	return g.server.Shutdown(ctx)
}

// route registers pattern with checks run in order before forwarding.
func (g *Gateway) route(mux *http.ServeMux, pattern string, checks ...check) {
	mux.HandleFunc(pattern, func(w http.ResponseWriter, r *http.Request) {
		raw, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
		if err != nil {
			g.reject(w, r, fmt.Errorf("%w: unreadable body: %v", dto.ErrInvalid, err))
			return
		}
		for _, c := range checks {
			if err := c(r, raw); err != nil {
				g.reject(w, r, err)
				return
			}
		}
		g.forward(w, r, raw)
	})
}

func (g *Gateway) forward(w http.ResponseWriter, r *http.Request, raw []byte) {
	resp, err := g.upstream.Forward(r.Context(), r.Method, r.URL.RequestURI(), r.Header, raw)
	if err != nil {
		g.logger.Error().Err(err).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Str("request_id", api.RequestIDFrom(r.Context())).
			Msg("forward failed")
		api.WriteError(w, http.StatusBadGateway, ErrUpstreamUnavailable.Error())
		return
	}

	for key := range resp.Header {
		w.Header().Set(key, resp.Header.Get(key))
	}
	w.WriteHeader(resp.Status)
	_, _ = w.Write(resp.Body)
}

func (g *Gateway) reject(w http.ResponseWriter, r *http.Request, err error) {
	status, message := api.StatusFor(err)
	g.logger.Debug().Err(err).Int("status", status).Str("path", r.URL.Path).Msg("request rejected")
	api.WriteError(w, status, message)
}

func userHeader(r *http.Request, _ []byte) error {
	_, err := dto.UserID(r.Header)
	return err
}

func pathID(r *http.Request, _ []byte) error {
	_, err := dto.ParseID(r.PathValue("id"))
	return err
}

func state(r *http.Request, _ []byte) error {
	raw := dto.State(r.URL.Query())
	if _, ok := models.ParseBookingState(raw); !ok {
		return fmt.Errorf("%w: %q", service.ErrUnsupportedStatus, raw)
	}
	return nil
}

func decision(r *http.Request, _ []byte) error {
	switch v := r.URL.Query().Get("approved"); {
	case strings.EqualFold(v, "true"), strings.EqualFold(v, "false"):
		return nil
	case v == "":
		return fmt.Errorf("%w: approved is required", dto.ErrInvalid)
	default:
		return fmt.Errorf("%w: approved must be true or false", dto.ErrInvalid)
	}
}

// jsonBody decodes and validates the JSON body as T.
func jsonBody[T any]() check {
	return func(_ *http.Request, raw []byte) error {
		var req T
		return dto.Decode(bytes.NewReader(raw), &req)
	}
}

func (g *Gateway) page(r *http.Request, _ []byte) error {
	_, err := dto.ParsePage(r.URL.Query(), g.pagination.DefaultSize, g.pagination.MaxSize)
	return err
}

func (g *Gateway) booking(_ *http.Request, raw []byte) error {
	var req dto.BookingCreate
	if err := dto.Decode(bytes.NewReader(raw), &req); err != nil {
		return err
	}
	return req.CheckFuture(g.now())
}
