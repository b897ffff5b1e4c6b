package middleware

import (
	"bytes"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dtroode/jobboard/internal/logger"
	"github.com/dtroode/jobboard/internal/mocks"
	"github.com/dtroode/jobboard/internal/testutil"
)

func TestRequestID(t *testing.T) {
	var seen string
	h := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = GetRequestID(r.Context())
	}))

	t.Run("echoes incoming", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(RequestIDHeader, "abc")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		assert.Equal(t, "abc", seen)
		assert.Equal(t, "abc", rec.Header().Get(RequestIDHeader))
	})

	t.Run("generates missing", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

		_, err := uuid.Parse(seen)
		assert.NoError(t, err)
		assert.Equal(t, seen, rec.Header().Get(RequestIDHeader))
	})
}

func TestContextManager(t *testing.T) {
	cm := ContextManager{}
	uid := uuid.New()

	ctx := cm.SetUserIDToContext(httptest.NewRequest(http.MethodGet, "/", nil).Context(), uid)
	got, ok := cm.GetUserIDFromContext(ctx)
	assert.True(t, ok)
	assert.Equal(t, uid, got)

	_, ok = cm.GetUserIDFromContext(httptest.NewRequest(http.MethodGet, "/", nil).Context())
	assert.False(t, ok)
}

func TestAuth(t *testing.T) {
	uid := uuid.New()

	tests := []struct {
		name       string
		header     string
		setup      func(a *mocks.Authenticator)
		wantStatus int
	}{
		{
			name:       "missing header",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "wrong scheme",
			header:     "Basic dXNlcjpwYXNz",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:   "rejected token",
			header: "Bearer expired",
			setup: func(a *mocks.Authenticator) {
				a.On("Authenticate", mock.Anything, "expired").Return(uuid.Nil, errors.New("token is expired"))
			},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:   "valid token",
			header: "bearer good",
			setup: func(a *mocks.Authenticator) {
				a.On("Authenticate", mock.Anything, "good").Return(uid, nil)
			},
			wantStatus: http.StatusNoContent,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			authn := mocks.NewAuthenticator(t)
			if tt.setup != nil {
				tt.setup(authn)
			}

			var got uuid.UUID
			h := Auth(authn, ContextManager{}, testutil.MakeNoopLogger())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				got, _ = ContextManager{}.GetUserIDFromContext(r.Context())
				w.WriteHeader(http.StatusNoContent)
			}))

			req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantStatus == http.StatusNoContent {
				assert.Equal(t, uid, got)
			}
		})
	}
}

func TestRecovery(t *testing.T) {
	h := Recovery(testutil.MakeNoopLogger())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	require.NotPanics(t, func() { h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil)) })
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "INTERNAL_ERROR")
}

type httpStats struct {
	statuses  []int
	latencies int
}

func (s *httpStats) RecordHTTPStatus(code int)             { s.statuses = append(s.statuses, code) }
func (s *httpStats) RecordRequestLatency(_ time.Duration) { s.latencies++ }

func TestLogging(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		wantLog string
	}{
		{name: "ok", status: http.StatusOK, wantLog: "request completed"},
		{name: "client error", status: http.StatusUnauthorized, wantLog: "request rejected"},
		{name: "server error", status: http.StatusBadGateway, wantLog: "request failed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			stats := &httpStats{}
			h := Logging(logger.NewWithWriter(0, &buf), stats)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
			}))

			h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/auth/me", nil))

			assert.Contains(t, buf.String(), tt.wantLog)
			assert.Contains(t, buf.String(), "path=/auth/me")
			assert.Equal(t, []int{tt.status}, stats.statuses)
			assert.Equal(t, 1, stats.latencies)
		})
	}
}

type rejections int

func (r *rejections) RecordRateLimited() { *r++ }

func TestRateLimiter(t *testing.T) {
	var rejected rejections
	rl := NewRateLimiter(RateLimiterConfig{Rate: 0.001, Burst: 2}, &rejected, testutil.MakeNoopLogger())
	defer rl.Stop()

	h := rl.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	call := func(remote string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/auth/login", nil)
		req.RemoteAddr = remote
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec
	}

	assert.Equal(t, http.StatusOK, call("10.0.0.1:1000").Code)
	assert.Equal(t, http.StatusOK, call("10.0.0.1:1001").Code)

	limited := call("10.0.0.1:1002")
	assert.Equal(t, http.StatusTooManyRequests, limited.Code)
	assert.Equal(t, "1000", limited.Header().Get("Retry-After"))
	assert.Equal(t, rejections(1), rejected)

	assert.Equal(t, http.StatusOK, call("10.0.0.2:1000").Code)
	assert.Equal(t, 2, rl.Clients())
}

func TestRateLimiter_Evict(t *testing.T) {
	rl := NewRateLimiter(RateLimiterConfig{Rate: 1, Burst: 1, CleanupInterval: time.Hour}, nil, testutil.MakeNoopLogger())
	defer rl.Stop()

	rl.limiter("10.0.0.1")
	require.Equal(t, 1, rl.Clients())

	rl.evict(time.Now().Add(time.Hour))
	assert.Equal(t, 1, rl.Clients())

	rl.evict(time.Now().Add(3 * time.Hour))
	assert.Equal(t, 0, rl.Clients())
}
