package gateway

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"shareit/internal/metrics"
	"shareit/internal/models"
	"shareit/internal/worker"

	"github.com/rs/zerolog"
)

// ErrUpstreamUnavailable is returned when the server could not be reached.
var ErrUpstreamUnavailable = errors.New("server unavailable")

// forwardedHeaders are copied from the caller to the server.
var forwardedHeaders = []string{"Content-Type", "Accept", models.UserHeader, models.RequestIDHeader}

// relayedHeaders are copied from the server response back to the caller.
var relayedHeaders = []string{"Content-Type", "Content-Disposition", models.RequestIDHeader}

// Response is a fully read server response.
type Response struct {
	Status int
	Header http.Header
	Body   []byte
}

// ServerClient forwards validated calls to the backend server.
type ServerClient struct {
	baseURL    string
	httpClient *http.Client
	retry      worker.RetryPolicy
	logger     *zerolog.Logger
}

func NewServerClient(baseURL string, timeout time.Duration, retry worker.RetryPolicy, logger *zerolog.Logger) *ServerClient {
	return &ServerClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		retry:      retry,
		logger:     logger,
	}
}

// Forward sends method and requestURI (path plus query) with the given body.
// Idempotent calls are retried on transport errors and on 502, 503 and 504.
// When retries run out on a retryable status, the last server response is
// returned.
func (c *ServerClient) Forward(ctx context.Context, method, requestURI string, header http.Header, body []byte) (*Response, error) {
	policy := c.retry
	if !idempotent(method) {
		policy.MaxRetries = 0
	}

	var last *Response
	err := policy.Do(ctx, func(attempt int) error {
		resp, err := c.send(ctx, method, requestURI, header, body)
		if err != nil {
			if ctx.Err() != nil {
				return worker.Permanent(err)
			}
			c.noteRetry(method, requestURI, attempt, "error", err)
			return err
		}
		last = resp
		if retryableStatus(resp.Status) {
			c.noteRetry(method, requestURI, attempt, strconv.Itoa(resp.Status), nil)
			return fmt.Errorf("server responded %d", resp.Status)
		}
		return nil
	})
	if err != nil && last == nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)
	}
	return last, nil
}

func (c *ServerClient) send(ctx context.Context, method, requestURI string, header http.Header, body []byte) (*Response, error) {
	var reader io.Reader
	if len(body) > 0 {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+requestURI, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	copyHeaders(req.Header, header, forwardedHeaders)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	out := &Response{Status: resp.StatusCode, Header: http.Header{}, Body: data}
	copyHeaders(out.Header, resp.Header, relayedHeaders)
	return out, nil
}

// noteRetry records a failed attempt, including the last one.
func (c *ServerClient) noteRetry(method, requestURI string, attempt int, reason string, err error) {
	metrics.IncUpstreamRetry(reason)
	c.logger.Warn().
		Err(err).
		Str("method", method).
		Str("uri", requestURI).
		Int("attempt", attempt).
		Str("reason", reason).
		Msg("upstream call failed")
}

func idempotent(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions, http.MethodPut, http.MethodDelete:
		return true
	}
	return false
}

func retryableStatus(code int) bool {
	switch code {
	case http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		return true
	}
	return false
}

func copyHeaders(dst, src http.Header, keys []string) {
	for _, key := range keys {
		if v := src.Get(key); v != "" {
			dst.Set(key, v)
		}
	}
}
