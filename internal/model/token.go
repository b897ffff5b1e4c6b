package model

import (
	"time"

	"github.com/google/uuid"
)

// TokenManager issues and verifies signed access tokens on the backend.
type TokenManager interface {
	GenerateAccessToken(user User) (string, error)
	ParseAccessToken(token string) (uuid.UUID, error)
}

// TokenDecoder reads a token payload without verifying its signature.
// The result is only fit for client-side routing decisions.
type TokenDecoder interface {
	Decode(token string) (Claims, error)
}

// Claims is the decoded payload of an access token.
type Claims struct {
	UserID           string
	Email            string
	Username         string
	Role             Role
	FirstLogin       bool
	IsSuperAdmin     bool
	OnboardingStatus OnboardingState
	IssuedAt         *time.Time
	ExpiresAt        *time.Time
}

// Expired reports whether the token expiry is at or before now.
// Tokens without an expiry never expire.
func (c Claims) Expired(now time.Time) bool {
	if c.ExpiresAt == nil {
		return false
	}
	return !c.ExpiresAt.After(now)
}

// Identity derives the principal described by the claims.
func (c Claims) Identity() Identity {
	return Identity{
		ID:                 c.UserID,
		Email:              c.Email,
		Username:           c.Username,
		DisplayName:        c.Username,
		Role:               c.Role,
		MustChangePassword: c.FirstLogin,
		OnboardingState:    c.OnboardingStatus,
		IsSuperAdmin:       c.IsSuperAdmin,
	}
}
