package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClientIP(t *testing.T) {
	tests := []struct {
		name       string
		forwarded  string
		remoteAddr string
		want       string
	}{
		{name: "no header", remoteAddr: "192.0.2.10:54321", want: "192.0.2.10"},
		{name: "single hop", forwarded: "203.0.113.5", remoteAddr: "10.0.0.1:80", want: "203.0.113.5"},
		{name: "multi hop takes first", forwarded: "203.0.113.5, 10.0.0.2, 10.0.0.3", remoteAddr: "10.0.0.1:80", want: "203.0.113.5"},
		{name: "remote addr without port", remoteAddr: "192.0.2.10", want: "192.0.2.10"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodPost, "/api/v1/appointments", nil)
			r.RemoteAddr = tt.remoteAddr
			if tt.forwarded != "" {
				r.Header.Set("X-Forwarded-For", tt.forwarded)
			}

			assert.Equal(t, tt.want, clientIP(r))
		})
	}
}

func TestRateLimiter_Middleware(t *testing.T) {
	rl := NewRateLimiter(1, 2)
	handler := rl.Middleware(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusCreated)
	}))

	do := func(forwarded string) int {
		r := httptest.NewRequest(http.MethodPost, "/api/v1/appointments", nil)
		r.RemoteAddr = "10.0.0.1:80"
		r.Header.Set("X-Forwarded-For", forwarded)
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, r)
		return w.Code
	}

	// burst=2: третий запрос подряд упирается в лимит
	assert.Equal(t, http.StatusCreated, do("203.0.113.5"))
	assert.Equal(t, http.StatusCreated, do("203.0.113.5"))
	assert.Equal(t, http.StatusTooManyRequests, do("203.0.113.5"))

	// лимит на клиента, другой IP не затронут
	assert.Equal(t, http.StatusCreated, do("203.0.113.99"))

	// тот же клиент за другим прокси - тот же bucket
	assert.Equal(t, http.StatusTooManyRequests, do("203.0.113.5, 10.0.0.7"))
}
