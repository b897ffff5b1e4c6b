package handler

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"

	"github.com/dtroode/jobboard/internal/identity"
	"github.com/dtroode/jobboard/internal/mocks"
	"github.com/dtroode/jobboard/internal/model"
	"github.com/dtroode/jobboard/internal/testutil"
)

type lookups map[string]int

func (l lookups) RecordIdentityLookup(transport, outcome string) { l[transport+"/"+outcome]++ }

func TestIdentity_Me(t *testing.T) {
	t.Parallel()

	uid := uuid.New()
	svc := mocks.NewAuthService(t)
	cm := mocks.NewContextManager(t)
	rec := lookups{}

	cm.On("GetUserIDFromContext", mock.Anything).Return(uid, true)
	svc.On("Me", mock.Anything, uid).Return(model.User{
		ID:               uid,
		Email:            "seeker@example.com",
		Username:         "seeker",
		Role:             model.RoleJobSeeker,
		FirstLogin:       true,
		OnboardingStatus: model.OnboardingInProgress,
		Profile:          model.Profile{FirstName: "Ada"},
	}, nil)

	h := NewIdentity(svc, cm, rec, testutil.MakeNoopLogger())
	out, err := h.Me(context.Background(), &emptypb.Empty{})
	require.NoError(t, err)

	resp, err := identity.FromStruct(out)
	require.NoError(t, err)
	require.NotNil(t, resp.User)
	assert.Equal(t, uid.String(), resp.User.ID)
	assert.Equal(t, "job_seeker", resp.User.Role)
	assert.True(t, resp.User.FirstLogin)
	assert.Equal(t, "in_progress", resp.User.OnboardingStatus)
	assert.Equal(t, "Ada", resp.User.FirstName)
	assert.Equal(t, 1, rec["grpc/success"])
}

func TestIdentity_Me_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		hasUser     bool
		svcErr      error
		wantCode    codes.Code
		wantOutcome string
	}{
		{name: "no user in context", hasUser: false, wantCode: codes.Unauthenticated, wantOutcome: "grpc/unauthenticated"},
		{name: "user deleted", hasUser: true, svcErr: model.ErrNotFound, wantCode: codes.NotFound, wantOutcome: "grpc/not_found"},
		{name: "store failure", hasUser: true, svcErr: errors.New("db down"), wantCode: codes.Internal, wantOutcome: "grpc/error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			uid := uuid.New()
			svc := mocks.NewAuthService(t)
			cm := mocks.NewContextManager(t)
			rec := lookups{}

			if tt.hasUser {
				cm.On("GetUserIDFromContext", mock.Anything).Return(uid, true)
				svc.On("Me", mock.Anything, uid).Return(model.User{}, tt.svcErr)
			} else {
				cm.On("GetUserIDFromContext", mock.Anything).Return(uuid.Nil, false)
			}

			h := NewIdentity(svc, cm, rec, testutil.MakeNoopLogger())
			out, err := h.Me(context.Background(), &emptypb.Empty{})
			assert.Nil(t, out)
			assert.Equal(t, tt.wantCode, status.Code(err))
			assert.Equal(t, 1, rec[tt.wantOutcome])
		})
	}
}
