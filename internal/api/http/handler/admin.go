package handler

import (
	"net/http"

	"github.com/dtroode/jobboard/internal/api/http/middleware"
	"github.com/dtroode/jobboard/internal/api/http/response"
	"github.com/dtroode/jobboard/internal/identity"
	"github.com/dtroode/jobboard/internal/logger"
	"github.com/dtroode/jobboard/internal/model"
)

// ProvisionRequest is the body of POST /admin/users.
type ProvisionRequest struct {
	Email             string        `json:"email"`
	Username          string        `json:"username"`
	Role              string        `json:"role"`
	TemporaryPassword string        `json:"temporaryPassword"`
	Profile           model.Profile `json:"profile"`
}

// Admin serves the /admin endpoints.
type Admin struct {
	service        AuthService
	contextManager model.ContextManager
	logger         *logger.Logger
}

func NewAdmin(service AuthService, contextManager model.ContextManager, logger *logger.Logger) *Admin {
	return &Admin{service: service, contextManager: contextManager, logger: logger}
}

// ProvisionUser handles POST /admin/users. The new account must change its
// password on first login.
func (h *Admin) ProvisionUser(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	actorID, ok := h.contextManager.GetUserIDFromContext(r.Context())
	if !ok {
		response.Err(w, http.StatusUnauthorized, "UNAUTHORIZED", "User is not authenticated", requestID)
		return
	}

	var req ProvisionRequest
	if !decode(w, r, &req, requestID) {
		return
	}

	user, err := h.service.Provision(r.Context(), actorID, model.ProvisionParams{
		Email:             req.Email,
		Username:          req.Username,
		Role:              model.ParseRole(req.Role),
		TemporaryPassword: req.TemporaryPassword,
		Profile:           req.Profile,
	})
	if err != nil {
		handleError(w, err, requestID)
		return
	}

	response.JSON(w, http.StatusCreated, identity.MeResponse{User: identity.FromIdentity(user.Identity())})
}
