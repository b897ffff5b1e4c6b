package middleware

import (
	"context"

	"github.com/google/uuid"

	"github.com/dtroode/jobboard/internal/model"
)

// ContextManager keeps the authenticated user ID in request contexts.
type ContextManager struct{}

var _ model.ContextManager = ContextManager{}

func (ContextManager) SetUserIDToContext(ctx context.Context, userID uuid.UUID) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

func (ContextManager) GetUserIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(userIDKey).(uuid.UUID)
	if !ok || id == uuid.Nil {
		return uuid.Nil, false
	}
	return id, true
}
