package model

import (
	"context"

	"github.com/google/uuid"
)

// ContextManager carries the authenticated user ID from the auth middleware
// to the handlers. The HTTP API keeps it in context values, the gRPC API in
// incoming metadata.
type ContextManager interface {
	SetUserIDToContext(ctx context.Context, userID uuid.UUID) context.Context
	GetUserIDFromContext(ctx context.Context) (uuid.UUID, bool)
}
