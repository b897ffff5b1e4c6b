package router

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dtroode/jobboard/internal/api/http/middleware"
	"github.com/dtroode/jobboard/internal/identity"
	"github.com/dtroode/jobboard/internal/metrics"
	"github.com/dtroode/jobboard/internal/mocks"
	"github.com/dtroode/jobboard/internal/model"
	"github.com/dtroode/jobboard/internal/testutil"
)

func newServer(t *testing.T, svc *mocks.AuthService, authn *mocks.Authenticator, limiter *middleware.RateLimiter) *httptest.Server {
	t.Helper()

	reg := prometheus.NewRegistry()
	r := New(Deps{
		AuthService:   svc,
		Authenticator: authn,
		Limiter:       limiter,
		Recorder:      metrics.NewCollector(reg),
		Metrics:       metrics.Handler(reg),
		Version:       "test",
		Logger:        testutil.MakeNoopLogger(),
	})
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv
}

func TestRouter_LoginThenMe(t *testing.T) {
	uid := uuid.New()
	user := model.User{ID: uid, Email: "admin@example.com", Username: "admin", Role: model.RoleAdmin, IsSuperAdmin: true}

	svc := mocks.NewAuthService(t)
	authn := mocks.NewAuthenticator(t)
	svc.On("Login", mock.Anything, "admin@example.com", "secret123").Return("tok", user, nil)
	svc.On("Me", mock.Anything, uid).Return(user, nil)
	authn.On("Authenticate", mock.Anything, "tok").Return(uid, nil)
	authn.On("Authenticate", mock.Anything, "stale").Return(uuid.Nil, errors.New("token is expired"))

	srv := newServer(t, svc, authn, nil)
	client := identity.NewHTTPClient(srv.URL, srv.Client(), testutil.MakeNoopLogger())

	token, err := client.Login(context.Background(), "admin@example.com", "secret123")
	require.NoError(t, err)
	assert.Equal(t, "tok", token)

	id, err := client.FetchIdentity(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, uid.String(), id.ID)
	assert.Equal(t, model.RoleAdmin, id.Role)
	assert.True(t, id.IsSuperAdmin)

	_, err = client.FetchIdentity(context.Background(), "stale")
	assert.ErrorIs(t, err, model.ErrIdentityFetch)

	resp, err := srv.Client().Get(srv.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRouter_ProtectedRoutesRequireToken(t *testing.T) {
	srv := newServer(t, mocks.NewAuthService(t), mocks.NewAuthenticator(t), nil)

	routes := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/auth/me"},
		{http.MethodPost, "/auth/change-password"},
		{http.MethodPatch, "/auth/onboarding"},
		{http.MethodPost, "/admin/users"},
	}

	for _, rt := range routes {
		t.Run(rt.method+" "+rt.path, func(t *testing.T) {
			req, err := http.NewRequest(rt.method, srv.URL+rt.path, strings.NewReader("{}"))
			require.NoError(t, err)
			resp, err := srv.Client().Do(req)
			require.NoError(t, err)
			_ = resp.Body.Close()
			assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		})
	}
}

func TestRouter_LoginRateLimited(t *testing.T) {
	svc := mocks.NewAuthService(t)
	svc.On("Login", mock.Anything, "a@b.c", "wrong").Return("", model.User{}, model.ErrInvalidCredentials).Once()

	limiter := middleware.NewRateLimiter(middleware.RateLimiterConfig{Rate: 0.001, Burst: 1}, nil, testutil.MakeNoopLogger())
	t.Cleanup(limiter.Stop)

	srv := newServer(t, svc, mocks.NewAuthenticator(t), limiter)

	post := func() int {
		resp, err := srv.Client().Post(srv.URL+"/auth/login", "application/json", strings.NewReader(`{"email":"a@b.c","password":"wrong"}`))
		require.NoError(t, err)
		_ = resp.Body.Close()
		return resp.StatusCode
	}

	assert.Equal(t, http.StatusUnauthorized, post())
	assert.Equal(t, http.StatusTooManyRequests, post())
}

func TestRouter_Health(t *testing.T) {
	srv := newServer(t, mocks.NewAuthService(t), mocks.NewAuthenticator(t), nil)

	resp, err := srv.Client().Get(srv.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get(middleware.RequestIDHeader))
}
