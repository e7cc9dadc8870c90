package handler

// RESPONSE HELPERS:
// Every handler answers with writeJSON or writeError, so every error
// response has the same shape:
//
//	{"error": "conflict", "code": "email_taken", "message": "...", "field": "email"}
//
// "error" is the category, "code" (when present) the precise condition,
// "field" (when present) the form field a client should highlight.

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/sakif/bookie/internal/apperror"
)

type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

// writeJSON sends data with the given status. Headers must be set before
// WriteHeader; anything set afterwards is silently dropped.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			// Headers are already sent; all we can do is log.
			zap.L().Error("failed to encode JSON response", zap.Error(err))
		}
	}
}

// writeError maps a domain error to an HTTP status and body.
//
// errors.Is walks the whole chain, so a service error like
//
//	fmt.Errorf("service/event: creating event: %w", apperror.NotFound(...))
//
// still maps to 404.
func writeError(w http.ResponseWriter, err error) {
	var appErr *apperror.AppError
	if !errors.As(err, &appErr) {
		zap.L().Error("unhandled error", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{
			Error:   "internal_error",
			Message: "An internal error occurred",
		})
		return
	}

	status, kind := statusFor(err)
	resp := ErrorResponse{
		Error:   kind,
		Code:    apperror.Code(err),
		Message: appErr.Message,
		Field:   appErr.Field,
	}
	if status == http.StatusServiceUnavailable {
		// The message names the driver failure; keep it in the logs.
		zap.L().Warn("store unavailable", zap.Error(err))
		resp.Message = "service temporarily unavailable"
	}
	writeJSON(w, status, resp)
}

func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, apperror.ErrValidation):
		return http.StatusBadRequest, "validation_error"
	case errors.Is(err, apperror.ErrUnauthorized):
		return http.StatusUnauthorized, "unauthorized"
	case errors.Is(err, apperror.ErrForbidden):
		return http.StatusForbidden, "forbidden"
	case errors.Is(err, apperror.ErrNotFound):
		return http.StatusNotFound, "not_found"
	case errors.Is(err, apperror.ErrConflict):
		return http.StatusConflict, "conflict"
	case errors.Is(err, apperror.ErrUnavailable):
		return http.StatusServiceUnavailable, "unavailable"
	}
	return http.StatusInternalServerError, "internal_error"
}
