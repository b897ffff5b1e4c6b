// Package identity talks to the identity backend on behalf of clients and
// defines the user payload both sides exchange.
package identity

import (
	"encoding/json"
	"fmt"

	"google.golang.org/protobuf/types/known/structpb"

	"github.com/dtroode/jobboard/internal/model"
)

// User is the wire representation of an identity.
type User struct {
	ID               string `json:"id"`
	Email            string `json:"email"`
	Username         string `json:"username"`
	DisplayName      string `json:"displayName,omitempty"`
	Role             string `json:"role"`
	FirstLogin       bool   `json:"firstLogin"`
	IsSuperAdmin     bool   `json:"isSuperAdmin,omitempty"`
	OnboardingStatus string `json:"onboardingStatus,omitempty"`
	model.Profile
}

// MeResponse is the body of GET /auth/me.
type MeResponse struct {
	User *User `json:"user"`
}

// LoginRequest is the body of POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse is the body returned by POST /auth/login and POST /auth/change-password.
type LoginResponse struct {
	Token string `json:"token"`
	User  *User  `json:"user,omitempty"`
}

// FromIdentity converts an identity to its wire form.
func FromIdentity(id model.Identity) *User {
	return &User{
		ID:               id.ID,
		Email:            id.Email,
		Username:         id.Username,
		DisplayName:      id.DisplayName,
		Role:             string(id.Role),
		FirstLogin:       id.MustChangePassword,
		IsSuperAdmin:     id.IsSuperAdmin,
		OnboardingStatus: string(id.OnboardingState),
		Profile:          id.Profile,
	}
}

// Identity converts the wire form back to an identity.
func (u *User) Identity() model.Identity {
	display := u.DisplayName
	if display == "" {
		display = u.Username
	}
	return model.Identity{
		ID:                 u.ID,
		Email:              u.Email,
		Username:           u.Username,
		DisplayName:        display,
		Role:               model.ParseRole(u.Role),
		MustChangePassword: u.FirstLogin,
		OnboardingState:    model.OnboardingState(u.OnboardingStatus),
		IsSuperAdmin:       u.IsSuperAdmin,
		Profile:            u.Profile,
	}
}

// ToStruct encodes a MeResponse as a protobuf Struct for the gRPC transport.
func ToStruct(resp MeResponse) (*structpb.Struct, error) {
	raw, err := json.Marshal(resp)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal identity: %w", err)
	}
	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, fmt.Errorf("failed to unmarshal identity: %w", err)
	}
	s, err := structpb.NewStruct(m)
	if err != nil {
		return nil, fmt.Errorf("failed to build struct: %w", err)
	}
	return s, nil
}

// FromStruct decodes a MeResponse from a protobuf Struct.
func FromStruct(s *structpb.Struct) (MeResponse, error) {
	var resp MeResponse
	raw, err := json.Marshal(s.AsMap())
	if err != nil {
		return resp, fmt.Errorf("failed to marshal struct: %w", err)
	}
	if err := json.Unmarshal(raw, &resp); err != nil {
		return resp, fmt.Errorf("failed to decode identity: %w", err)
	}
	return resp, nil
}
