package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/dtroode/jobboard/internal/logger"
	"github.com/dtroode/jobboard/internal/model"
)

const minPasswordLength = 8

// LoginRecorder receives login outcomes for metrics.
type LoginRecorder interface {
	RecordLogin(outcome string)
}

type nopRecorder struct{}

func (nopRecorder) RecordLogin(string) {}

// Auth implements the identity backend: credential checks, token issuing and
// the account changes that affect client routing.
type Auth struct {
	userStore  model.UserStore
	tokens     model.TokenManager
	bcryptCost int
	recorder   LoginRecorder
	logger     *logger.Logger
	now        func() time.Time

	// dummyHash is compared against for unknown emails so that both login
	// failures cost one bcrypt comparison.
	dummyHash []byte
}

// NewAuth creates the auth service. recorder may be nil.
func NewAuth(
	userStore model.UserStore,
	tokens model.TokenManager,
	bcryptCost int,
	recorder LoginRecorder,
	logger *logger.Logger,
) *Auth {
	if recorder == nil {
		recorder = nopRecorder{}
	}
	if bcryptCost == 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	dummyHash, err := bcrypt.GenerateFromPassword([]byte(uuid.NewString()), bcryptCost)
	if err != nil {
		logger.Error("Auth service: failed to prepare dummy hash", "error", err.Error())
	}
	return &Auth{
		userStore:  userStore,
		tokens:     tokens,
		bcryptCost: bcryptCost,
		recorder:   recorder,
		logger:     logger,
		now:        time.Now,
		dummyHash:  dummyHash,
	}
}

// Login checks credentials and issues an access token.
func (a *Auth) Login(ctx context.Context, email, password string) (string, model.User, error) {
	email = normalizeEmail(email)
	a.logger.Debug("Auth service: login attempt", "email", email)

	user, err := a.userStore.GetByEmail(ctx, email)
	if errors.Is(err, model.ErrNotFound) {
		_ = bcrypt.CompareHashAndPassword(a.dummyHash, []byte(password))
		a.recorder.RecordLogin("unknown_user")
		return "", model.User{}, model.ErrInvalidCredentials
	}
	if err != nil {
		a.recorder.RecordLogin("error")
		return "", model.User{}, fmt.Errorf("failed to get user by email: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword(user.PasswordHash, []byte(password)); err != nil {
		a.logger.Info("Auth service: wrong password", "email", email)
		a.recorder.RecordLogin("wrong_password")
		return "", model.User{}, model.ErrInvalidCredentials
	}

	token, err := a.tokens.GenerateAccessToken(user)
	if err != nil {
		a.recorder.RecordLogin("error")
		return "", model.User{}, fmt.Errorf("failed to issue token: %w", err)
	}

	a.recorder.RecordLogin("success")
	a.logger.Info("Auth service: login succeeded",
		"user_id", user.ID.String(),
		"role", string(user.Role),
		"first_login", user.FirstLogin)

	return token, user, nil
}

// Authenticate resolves a bearer token to the user ID it was issued for.
func (a *Auth) Authenticate(_ context.Context, token string) (uuid.UUID, error) {
	return a.tokens.ParseAccessToken(token)
}

// Me returns the current state of the user.
func (a *Auth) Me(ctx context.Context, userID uuid.UUID) (model.User, error) {
	user, err := a.userStore.GetByID(ctx, userID)
	if err != nil {
		return model.User{}, fmt.Errorf("failed to get user by id: %w", err)
	}
	return user, nil
}

// ChangePassword replaces the password, clears the first-login flag and
// returns a token reflecting the new state.
func (a *Auth) ChangePassword(ctx context.Context, userID uuid.UUID, current, next string) (string, error) {
	if len(next) < minPasswordLength {
		return "", fmt.Errorf("%w: password must be at least %d characters", model.ErrInvalidInput, minPasswordLength)
	}

	user, err := a.userStore.GetByID(ctx, userID)
	if err != nil {
		return "", fmt.Errorf("failed to get user by id: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword(user.PasswordHash, []byte(current)); err != nil {
		return "", model.ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(next), a.bcryptCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}

	if err := a.userStore.UpdatePassword(ctx, userID, hash, false); err != nil {
		return "", fmt.Errorf("failed to update password: %w", err)
	}

	user.PasswordHash = hash
	user.FirstLogin = false

	token, err := a.tokens.GenerateAccessToken(user)
	if err != nil {
		return "", fmt.Errorf("failed to issue token: %w", err)
	}

	a.logger.Info("Auth service: password changed", "user_id", userID.String())

	return token, nil
}

// UpdateOnboarding records the onboarding progress of a job seeker.
func (a *Auth) UpdateOnboarding(ctx context.Context, userID uuid.UUID, state model.OnboardingState) (model.User, error) {
	if !state.Valid() {
		return model.User{}, fmt.Errorf("%w: unknown onboarding status %q", model.ErrInvalidInput, state)
	}

	user, err := a.userStore.GetByID(ctx, userID)
	if err != nil {
		return model.User{}, fmt.Errorf("failed to get user by id: %w", err)
	}
	if user.Role != model.RoleJobSeeker {
		return model.User{}, model.ErrForbidden
	}

	if err := a.userStore.UpdateOnboarding(ctx, userID, state); err != nil {
		return model.User{}, fmt.Errorf("failed to update onboarding: %w", err)
	}

	user.OnboardingStatus = state
	return user, nil
}

// Provision creates an account on behalf of an administrator. The account must
// change its password on first login.
func (a *Auth) Provision(ctx context.Context, actorID uuid.UUID, params model.ProvisionParams) (model.User, error) {
	actor, err := a.userStore.GetByID(ctx, actorID)
	if err != nil {
		return model.User{}, fmt.Errorf("failed to get actor: %w", err)
	}
	if actor.Role != model.RoleAdmin {
		return model.User{}, model.ErrForbidden
	}

	user, err := a.createUser(ctx, params, false)
	if err != nil {
		return model.User{}, err
	}

	a.logger.Info("Auth service: user provisioned",
		"actor_id", actorID.String(),
		"user_id", user.ID.String(),
		"role", string(user.Role))

	return user, nil
}

// BootstrapAdmin creates a super admin with the given credentials unless the email is taken.
func (a *Auth) BootstrapAdmin(ctx context.Context, email, password string) error {
	_, err := a.userStore.GetByEmail(ctx, normalizeEmail(email))
	if err == nil {
		return nil
	}
	if !errors.Is(err, model.ErrNotFound) {
		return fmt.Errorf("failed to look up bootstrap admin: %w", err)
	}

	user, err := a.createUser(ctx, model.ProvisionParams{
		Email:             email,
		Username:          "admin",
		Role:              model.RoleAdmin,
		TemporaryPassword: password,
	}, true)
	if err != nil {
		return fmt.Errorf("failed to create bootstrap admin: %w", err)
	}

	a.logger.Info("Auth service: bootstrap admin created", "user_id", user.ID.String(), "email", user.Email)
	return nil
}

func (a *Auth) createUser(ctx context.Context, params model.ProvisionParams, superAdmin bool) (model.User, error) {
	email := normalizeEmail(params.Email)
	if email == "" || !strings.Contains(email, "@") {
		return model.User{}, fmt.Errorf("%w: invalid email", model.ErrInvalidInput)
	}
	if !params.Role.Valid() {
		return model.User{}, fmt.Errorf("%w: unknown role %q", model.ErrInvalidInput, params.Role)
	}
	if len(params.TemporaryPassword) < minPasswordLength {
		return model.User{}, fmt.Errorf("%w: password must be at least %d characters", model.ErrInvalidInput, minPasswordLength)
	}

	if _, err := a.userStore.GetByEmail(ctx, email); err == nil {
		return model.User{}, model.ErrEmailTaken
	} else if !errors.Is(err, model.ErrNotFound) {
		return model.User{}, fmt.Errorf("failed to get user by email: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(params.TemporaryPassword), a.bcryptCost)
	if err != nil {
		return model.User{}, fmt.Errorf("failed to hash password: %w", err)
	}

	username := params.Username
	if username == "" {
		username, _, _ = strings.Cut(email, "@")
	}

	user := model.User{
		ID:           uuid.New(),
		Email:        email,
		Username:     username,
		PasswordHash: hash,
		Role:         params.Role,
		FirstLogin:   true,
		IsSuperAdmin: superAdmin,
		Profile:      params.Profile,
		CreatedAt:    a.now(),
		UpdatedAt:    a.now(),
	}
	if user.Role == model.RoleJobSeeker {
		user.OnboardingStatus = model.OnboardingNotStarted
	}

	saved, err := a.userStore.Create(ctx, user)
	if err != nil {
		return model.User{}, fmt.Errorf("failed to create user: %w", err)
	}
	return saved, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
