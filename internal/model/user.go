package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// UserStore defines persistence operations for users.
type UserStore interface {
	GetByEmail(ctx context.Context, email string) (User, error)
	GetByID(ctx context.Context, id uuid.UUID) (User, error)
	Create(ctx context.Context, user User) (User, error)
	UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash []byte, firstLogin bool) error
	UpdateOnboarding(ctx context.Context, id uuid.UUID, state OnboardingState) error
}

// User represents a stored account with authentication material.
type User struct {
	ID               uuid.UUID
	Email            string
	Username         string
	PasswordHash     []byte
	Role             Role
	FirstLogin       bool
	IsSuperAdmin     bool
	OnboardingStatus OnboardingState
	Profile          Profile
	CreatedAt        time.Time
	UpdatedAt        time.Time
	DeletedAt        *time.Time
}

// Identity projects the stored user onto the client-facing identity.
func (u User) Identity() Identity {
	display := u.Username
	if u.Profile.FirstName != "" || u.Profile.LastName != "" {
		display = joinName(u.Profile.FirstName, u.Profile.LastName)
	}
	return Identity{
		ID:                 u.ID.String(),
		Email:              u.Email,
		Username:           u.Username,
		DisplayName:        display,
		Role:               u.Role,
		MustChangePassword: u.FirstLogin,
		OnboardingState:    u.OnboardingStatus,
		IsSuperAdmin:       u.IsSuperAdmin,
		Profile:            u.Profile,
	}
}

func joinName(first, last string) string {
	switch {
	case first == "":
		return last
	case last == "":
		return first
	}
	return first + " " + last
}

// ProvisionParams describes an account created by an administrator.
type ProvisionParams struct {
	Email             string
	Username          string
	Role              Role
	TemporaryPassword string
	Profile           Profile
}
