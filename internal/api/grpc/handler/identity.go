package handler

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/dtroode/jobboard/internal/identity"
	"github.com/dtroode/jobboard/internal/logger"
	"github.com/dtroode/jobboard/internal/model"
)

// IdentityService looks up the current state of a user.
type IdentityService interface {
	Me(ctx context.Context, userID uuid.UUID) (model.User, error)
}

// LookupRecorder receives identity lookup outcomes.
type LookupRecorder interface {
	RecordIdentityLookup(transport, outcome string)
}

// IdentityServer is the server API of the jobboard.v1.Identity service.
type IdentityServer interface {
	Me(ctx context.Context, in *emptypb.Empty) (*structpb.Struct, error)
}

// IdentityServiceDesc describes jobboard.v1.Identity. Messages are well-known
// types, the user payload travels as a Struct shaped like the REST body.
var IdentityServiceDesc = grpc.ServiceDesc{
	ServiceName: identity.ServiceName,
	HandlerType: (*IdentityServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "Me",
			Handler:    meHandler,
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "jobboard/v1/identity.proto",
}

// RegisterIdentityServer registers srv on s.
func RegisterIdentityServer(s grpc.ServiceRegistrar, srv IdentityServer) {
	s.RegisterService(&IdentityServiceDesc, srv)
}

func meHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(emptypb.Empty)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(IdentityServer).Me(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: identity.MeMethod,
	}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(IdentityServer).Me(ctx, req.(*emptypb.Empty))
	}
	return interceptor(ctx, in, info, handler)
}

// Identity handles gRPC identity lookups.
type Identity struct {
	service        IdentityService
	contextManager model.ContextManager
	recorder       LookupRecorder
	logger         *logger.Logger
}

var _ IdentityServer = (*Identity)(nil)

// NewIdentity creates a new Identity handler. recorder may be nil.
func NewIdentity(service IdentityService, contextManager model.ContextManager, recorder LookupRecorder, logger *logger.Logger) *Identity {
	return &Identity{
		service:        service,
		contextManager: contextManager,
		recorder:       recorder,
		logger:         logger,
	}
}

// Me returns the authenticated user in the same shape as GET /auth/me.
func (h *Identity) Me(ctx context.Context, _ *emptypb.Empty) (*structpb.Struct, error) {
	userID, ok := h.contextManager.GetUserIDFromContext(ctx)
	if !ok {
		h.record("unauthenticated")
		return nil, status.Error(codes.Unauthenticated, "user is not authenticated")
	}

	h.logger.Debug("Identity handler: processing me request", "user_id", userID.String())

	user, err := h.service.Me(ctx, userID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			h.record("not_found")
		} else {
			h.record("error")
		}
		h.logger.Error("Identity handler: me failed",
			"user_id", userID.String(),
			"error", err.Error())
		return nil, handleError(err)
	}

	out, err := identity.ToStruct(identity.MeResponse{User: identity.FromIdentity(user.Identity())})
	if err != nil {
		h.record("error")
		return nil, handleError(err)
	}

	h.record("success")
	return out, nil
}

func (h *Identity) record(outcome string) {
	if h.recorder != nil {
		h.recorder.RecordIdentityLookup("grpc", outcome)
	}
}
