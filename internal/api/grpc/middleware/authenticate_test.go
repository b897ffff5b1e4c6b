package middleware

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	"github.com/dtroode/jobboard/internal/mocks"
	"github.com/dtroode/jobboard/internal/testutil"
)

func TestAuthenticate_AuthFunc(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		authHeader string
		wantToken  string
		authUserID uuid.UUID
		authErr    error
		wantErr    bool
	}{
		{
			name:    "missing authorization header",
			wantErr: true,
		},
		{
			name:       "non bearer scheme",
			authHeader: "Basic dXNlcjpwYXNz",
			wantErr:    true,
		},
		{
			name:       "rejected token",
			authHeader: "Bearer expired",
			wantToken:  "expired",
			authErr:    errors.New("token is expired"),
			wantErr:    true,
		},
		{
			name:       "nil user id from token",
			authHeader: "Bearer tok",
			wantToken:  "tok",
			authUserID: uuid.Nil,
			wantErr:    true,
		},
		{
			name:       "valid token",
			authHeader: "Bearer tok",
			wantToken:  "tok",
			authUserID: uuid.New(),
		},
		{
			name:       "lowercase scheme",
			authHeader: "bearer tok",
			wantToken:  "tok",
			authUserID: uuid.New(),
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cm := mocks.NewContextManager(t)
			if !tt.wantErr {
				cm.On("SetUserIDToContext", mock.Anything, tt.authUserID).Return(context.Background())
			}

			authenticator := mocks.NewAuthenticator(t)
			if tt.wantToken != "" {
				authenticator.On("Authenticate", mock.Anything, tt.wantToken).Return(tt.authUserID, tt.authErr)
			}
			m := NewAuthenticate(authenticator, cm, testutil.MakeNoopLogger())

			ctx := context.Background()
			if tt.authHeader != "" {
				ctx = metadata.NewIncomingContext(ctx, metadata.Pairs("authorization", tt.authHeader))
			}

			newCtx, err := m.AuthFunc(ctx)

			if tt.wantErr {
				st, ok := status.FromError(err)
				assert.True(t, ok)
				assert.Equal(t, codes.Unauthenticated, st.Code())
				assert.Nil(t, newCtx)
				return
			}
			assert.NoError(t, err)
			assert.NotNil(t, newCtx)
		})
	}
}
