package router

import (
	"context"
	"errors"
	"net"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/test/bufconn"

	grpcctx "github.com/dtroode/jobboard/internal/api/grpc/context"
	"github.com/dtroode/jobboard/internal/identity"
	"github.com/dtroode/jobboard/internal/mocks"
	"github.com/dtroode/jobboard/internal/model"
	"github.com/dtroode/jobboard/internal/testutil"
)

func TestRouter_Register(t *testing.T) {
	t.Parallel()

	r := New(nil, nil, grpcctx.NewManager(), nil, testutil.MakeNoopLogger())
	s := r.Register()
	require.NotNil(t, s)

	info := s.GetServiceInfo()
	assert.Contains(t, info, identity.ServiceName)
	assert.Contains(t, info, "grpc.health.v1.Health")
}

func dial(t *testing.T, s *grpc.Server) *grpc.ClientConn {
	t.Helper()

	lis := bufconn.Listen(1 << 20)
	go func() { _ = s.Serve(lis) }()
	t.Cleanup(s.Stop)

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func TestRouter_IdentityRoundTrip(t *testing.T) {
	t.Parallel()

	uid := uuid.New()
	authn := mocks.NewAuthenticator(t)
	svc := mocks.NewAuthService(t)

	authn.On("Authenticate", mock.Anything, "good").Return(uid, nil)
	authn.On("Authenticate", mock.Anything, "bad").Return(uuid.Nil, errors.New("token is expired"))
	svc.On("Me", mock.Anything, uid).Return(model.User{
		ID:       uid,
		Email:    "poster@example.com",
		Username: "poster",
		Role:     model.RoleJobPoster,
	}, nil)

	s := New(svc, authn, grpcctx.NewManager(), nil, testutil.MakeNoopLogger()).Register()
	client := identity.NewGRPCClient(dial(t, s))

	id, err := client.FetchIdentity(context.Background(), "good")
	require.NoError(t, err)
	assert.Equal(t, uid.String(), id.ID)
	assert.Equal(t, model.RoleJobPoster, id.Role)
	assert.False(t, id.MustChangePassword)

	_, err = client.FetchIdentity(context.Background(), "bad")
	assert.ErrorIs(t, err, model.ErrIdentityFetch)
}

func TestRouter_HealthSkipsAuth(t *testing.T) {
	t.Parallel()

	s := New(nil, mocks.NewAuthenticator(t), grpcctx.NewManager(), nil, testutil.MakeNoopLogger()).Register()
	conn := dial(t, s)

	resp, err := healthpb.NewHealthClient(conn).Check(context.Background(), &healthpb.HealthCheckRequest{Service: identity.ServiceName})
	require.NoError(t, err)
	assert.Equal(t, healthpb.HealthCheckResponse_SERVING, resp.Status)
}
