package identity

import (
	"context"
	"fmt"

	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/dtroode/jobboard/internal/model"
)

const (
	// ServiceName is the gRPC service serving identity lookups.
	ServiceName = "jobboard.v1.Identity"
	// MeMethod is the full gRPC method name of the identity lookup.
	MeMethod = "/" + ServiceName + "/Me"
)

// GRPCClient resolves identities through the gRPC identity service.
type GRPCClient struct {
	conn grpc.ClientConnInterface
}

var _ model.IdentityFetcher = (*GRPCClient)(nil)

// NewGRPCClient creates a client on an established connection.
func NewGRPCClient(conn grpc.ClientConnInterface) *GRPCClient {
	return &GRPCClient{conn: conn}
}

// FetchIdentity calls Identity/Me with the token in the authorization metadata.
func (c *GRPCClient) FetchIdentity(ctx context.Context, token string) (model.Identity, error) {
	ctx = metadata.AppendToOutgoingContext(ctx, "authorization", "Bearer "+token)

	out := &structpb.Struct{}
	if err := c.conn.Invoke(ctx, MeMethod, &emptypb.Empty{}, out); err != nil {
		return model.Identity{}, fmt.Errorf("%w: %v", model.ErrIdentityFetch, err)
	}

	resp, err := FromStruct(out)
	if err != nil {
		return model.Identity{}, fmt.Errorf("%w: %v", model.ErrIdentityFetch, err)
	}
	if resp.User == nil || resp.User.ID == "" {
		return model.Identity{}, fmt.Errorf("%w: response has no user", model.ErrIdentityFetch)
	}

	return resp.User.Identity(), nil
}
