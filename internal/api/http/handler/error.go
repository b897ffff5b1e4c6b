package handler

import (
	"errors"
	"net/http"

	"github.com/dtroode/jobboard/internal/api/http/response"
	"github.com/dtroode/jobboard/internal/model"
)

func handleError(w http.ResponseWriter, err error, requestID string) {
	switch {
	case errors.Is(err, model.ErrInvalidCredentials):
		response.Err(w, http.StatusUnauthorized, "INVALID_CREDENTIALS", "Invalid email or password", requestID)
	case errors.Is(err, model.ErrNotFound):
		response.Err(w, http.StatusNotFound, "NOT_FOUND", "User not found", requestID)
	case errors.Is(err, model.ErrForbidden):
		response.Err(w, http.StatusForbidden, "FORBIDDEN", "Operation not permitted for this role", requestID)
	case errors.Is(err, model.ErrEmailTaken):
		response.Err(w, http.StatusConflict, "EMAIL_TAKEN", "Email is already registered", requestID)
	case errors.Is(err, model.ErrInvalidInput):
		response.Err(w, http.StatusBadRequest, "INVALID_INPUT", err.Error(), requestID)
	default:
		response.Err(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", requestID)
	}
}
