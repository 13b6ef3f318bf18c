package api

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClientLimiterPerKey(t *testing.T) {
	l := NewClientLimiter(0.001, 2)

	assert.True(t, l.Allow("10.0.0.1"))
	assert.True(t, l.Allow("10.0.0.1"))
	assert.False(t, l.Allow("10.0.0.1"))
	assert.True(t, l.Allow("10.0.0.2"))
}

func TestClientLimiterWrap(t *testing.T) {
	ok := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	h := NewClientLimiter(0.001, 1).Wrap(ok)
	call := func(addr string) int {
		req := httptest.NewRequest(http.MethodGet, "/bookings", nil)
		req.RemoteAddr = addr
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec.Code
	}

	assert.Equal(t, http.StatusNoContent, call("192.0.2.1:5000"))
	assert.Equal(t, http.StatusTooManyRequests, call("192.0.2.1:5001"))
	assert.Equal(t, http.StatusNoContent, call("192.0.2.2:5000"))
}

func TestClientLimiterDisabled(t *testing.T) {
	ok := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {})
	h := NewClientLimiter(0, 1).Wrap(ok)
	for i := 0; i < 10; i++ {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
	}
}

func TestClientKey(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "203.0.113.9:1234"
	assert.Equal(t, "203.0.113.9", ClientKey(req))

	req.RemoteAddr = "socket"
	assert.Equal(t, "socket", ClientKey(req))
}
