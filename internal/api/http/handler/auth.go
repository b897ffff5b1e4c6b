// Package handler implements the HTTP endpoints of the identity backend.
package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"

	"github.com/dtroode/jobboard/internal/api/http/middleware"
	"github.com/dtroode/jobboard/internal/api/http/response"
	"github.com/dtroode/jobboard/internal/identity"
	"github.com/dtroode/jobboard/internal/logger"
	"github.com/dtroode/jobboard/internal/model"
)

const maxBodySize = 1 << 20

// AuthService defines the account operations exposed over HTTP.
type AuthService interface {
	Login(ctx context.Context, email, password string) (string, model.User, error)
	Me(ctx context.Context, userID uuid.UUID) (model.User, error)
	ChangePassword(ctx context.Context, userID uuid.UUID, current, next string) (string, error)
	UpdateOnboarding(ctx context.Context, userID uuid.UUID, state model.OnboardingState) (model.User, error)
	Provision(ctx context.Context, actorID uuid.UUID, params model.ProvisionParams) (model.User, error)
}

// LookupRecorder receives identity lookup outcomes.
type LookupRecorder interface {
	RecordIdentityLookup(transport, outcome string)
}

// ChangePasswordRequest is the body of POST /auth/change-password.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

// OnboardingRequest is the body of PATCH /auth/onboarding.
type OnboardingRequest struct {
	Status string `json:"status"`
}

// Auth serves the /auth endpoints.
type Auth struct {
	service        AuthService
	contextManager model.ContextManager
	recorder       LookupRecorder
	logger         *logger.Logger
}

// NewAuth creates a new Auth handler. recorder may be nil.
func NewAuth(service AuthService, contextManager model.ContextManager, recorder LookupRecorder, logger *logger.Logger) *Auth {
	return &Auth{
		service:        service,
		contextManager: contextManager,
		recorder:       recorder,
		logger:         logger,
	}
}

// Login handles POST /auth/login.
func (h *Auth) Login(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	var req identity.LoginRequest
	if !decode(w, r, &req, requestID) {
		return
	}
	if req.Email == "" || req.Password == "" {
		response.Err(w, http.StatusBadRequest, "INVALID_INPUT", "email and password are required", requestID)
		return
	}

	token, user, err := h.service.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if !errors.Is(err, model.ErrInvalidCredentials) {
			h.logger.Error("Auth handler: login failed", "error", err.Error(), "request_id", requestID)
		}
		handleError(w, err, requestID)
		return
	}

	response.JSON(w, http.StatusOK, identity.LoginResponse{
		Token: token,
		User:  identity.FromIdentity(user.Identity()),
	})
}

// Me handles GET /auth/me.
func (h *Auth) Me(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	userID, ok := h.userID(w, r)
	if !ok {
		h.record("unauthenticated")
		return
	}

	user, err := h.service.Me(r.Context(), userID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			h.record("not_found")
		} else {
			h.record("error")
			h.logger.Error("Auth handler: me failed", "user_id", userID.String(), "error", err.Error())
		}
		handleError(w, err, requestID)
		return
	}

	h.record("success")
	response.JSON(w, http.StatusOK, identity.MeResponse{User: identity.FromIdentity(user.Identity())})
}

// ChangePassword handles POST /auth/change-password. The response carries a
// token with the first-login flag cleared.
func (h *Auth) ChangePassword(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	var req ChangePasswordRequest
	if !decode(w, r, &req, requestID) {
		return
	}

	token, err := h.service.ChangePassword(r.Context(), userID, req.CurrentPassword, req.NewPassword)
	if err != nil {
		handleError(w, err, requestID)
		return
	}

	response.JSON(w, http.StatusOK, identity.LoginResponse{Token: token})
}

// UpdateOnboarding handles PATCH /auth/onboarding.
func (h *Auth) UpdateOnboarding(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	var req OnboardingRequest
	if !decode(w, r, &req, requestID) {
		return
	}

	user, err := h.service.UpdateOnboarding(r.Context(), userID, model.OnboardingState(req.Status))
	if err != nil {
		handleError(w, err, requestID)
		return
	}

	h.logger.Info("Auth handler: onboarding updated", "user_id", userID.String(), "status", req.Status)
	response.JSON(w, http.StatusOK, identity.MeResponse{User: identity.FromIdentity(user.Identity())})
}

func (h *Auth) userID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	userID, ok := h.contextManager.GetUserIDFromContext(r.Context())
	if !ok {
		response.Err(w, http.StatusUnauthorized, "UNAUTHORIZED", "User is not authenticated", middleware.GetRequestID(r.Context()))
		return uuid.Nil, false
	}
	return userID, true
}

func (h *Auth) record(outcome string) {
	if h.recorder != nil {
		h.recorder.RecordIdentityLookup("http", outcome)
	}
}

func decode(w http.ResponseWriter, r *http.Request, v any, requestID string) bool {
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodySize)).Decode(v); err != nil {
		response.Err(w, http.StatusBadRequest, "INVALID_JSON", "Request body must be valid JSON", requestID)
		return false
	}
	return true
}
