package router

import (
	"context"
	"strings"

	"github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors"
	"github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/auth"
	"github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/selector"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"github.com/dtroode/jobboard/internal/api/grpc/handler"
	"github.com/dtroode/jobboard/internal/api/grpc/middleware"
	"github.com/dtroode/jobboard/internal/identity"
	"github.com/dtroode/jobboard/internal/logger"
	"github.com/dtroode/jobboard/internal/model"
)

// Router wires the gRPC services of the identity backend.
type Router struct {
	identityService handler.IdentityService
	authenticator   middleware.Authenticator
	contextManager  model.ContextManager
	recorder        handler.LookupRecorder
	logger          *logger.Logger
}

// New creates new gRPC Router instance. recorder may be nil.
func New(
	identityService handler.IdentityService,
	authenticator middleware.Authenticator,
	contextManager model.ContextManager,
	recorder handler.LookupRecorder,
	logger *logger.Logger,
) *Router {
	return &Router{
		identityService: identityService,
		authenticator:   authenticator,
		contextManager:  contextManager,
		recorder:        recorder,
		logger:          logger,
	}
}

// authRequired selects the methods guarded by bearer authentication.
func authRequired(_ context.Context, c interceptors.CallMeta) bool {
	return strings.HasPrefix(c.FullMethod(), "/"+identity.ServiceName+"/")
}

// Register builds the gRPC server with logging and authentication interceptors
// and registers the identity and health services.
func (r *Router) Register(opts ...grpc.ServerOption) *grpc.Server {
	logging := middleware.NewLogging(r.logger)
	authenticate := middleware.NewAuthenticate(r.authenticator, r.contextManager, r.logger)

	opts = append(opts,
		grpc.ChainUnaryInterceptor(
			logging.HandleGRPC,
			selector.UnaryServerInterceptor(
				auth.UnaryServerInterceptor(authenticate.AuthFunc),
				selector.MatchFunc(authRequired),
			),
		),
		grpc.ChainStreamInterceptor(
			selector.StreamServerInterceptor(
				auth.StreamServerInterceptor(authenticate.AuthFunc),
				selector.MatchFunc(authRequired),
			),
		),
	)

	s := grpc.NewServer(opts...)
	r.registerIdentityRoutes(s)
	r.registerHealth(s)

	return s
}

func (r *Router) registerIdentityRoutes(server *grpc.Server) {
	identityHandler := handler.NewIdentity(r.identityService, r.contextManager, r.recorder, r.logger)
	handler.RegisterIdentityServer(server, identityHandler)
}

func (r *Router) registerHealth(server *grpc.Server) {
	hs := health.NewServer()
	hs.SetServingStatus(identity.ServiceName, healthpb.HealthCheckResponse_SERVING)
	healthpb.RegisterHealthServer(server, hs)
}
