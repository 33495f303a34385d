package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/sharevid/video-share-api/internal/usecase"
)

// respond writes the uniform JSON envelope {success, message, ...extra}.
func (s *Server) respond(w http.ResponseWriter, status int, success bool, message string, extra map[string]any) {
	envelope := map[string]any{
		"success": success,
		"message": message,
	}
	for key, value := range extra {
		envelope[key] = value
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(envelope); err != nil {
		s.logger.Error().Err(err).Int("status", status).Msg("failed to encode response body")
	}
}

// respondError translates usecase errors into envelope responses. Expected
// business-rule failures map to 4xx with their message; anything else is
// logged server-side and reported as a generic server error.
func (s *Server) respondError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, usecase.ErrUserAlreadyExists):
		s.respond(w, http.StatusConflict, false, "User already exists", nil)
	case errors.Is(err, usecase.ErrUserNotFound):
		s.respond(w, http.StatusBadRequest, false, "User does not exist", nil)
	case errors.Is(err, usecase.ErrInvalidCredentials):
		s.respond(w, http.StatusUnauthorized, false, "Invalid credentials", nil)
	case errors.Is(err, usecase.ErrTokenNotFound):
		s.respond(w, http.StatusBadRequest, false, "Invalid or expired token", nil)
	case errors.Is(err, usecase.ErrVideoNotFound):
		s.respond(w, http.StatusNotFound, false, "Video not found", nil)
	case errors.Is(err, usecase.ErrNotOwner):
		s.respond(w, http.StatusForbidden, false, "You are not allowed to modify this video", nil)
	case errors.Is(err, usecase.ErrFileRequired):
		s.respond(w, http.StatusBadRequest, false, "Please select a file", nil)
	case errors.Is(err, usecase.ErrGoogleUnavailable):
		s.respond(w, http.StatusBadRequest, false, "Google sign-in is not configured", nil)
	default:
		s.logger.Error().Err(err).Msg("request failed")
		s.respond(w, http.StatusInternalServerError, false, "Something went wrong", nil)
	}
}

// decodeJSON decodes a request body, reporting a client error on malformed
// input. Returns false when a response has already been written.
func (s *Server) decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		s.respond(w, http.StatusBadRequest, false, "Invalid request body", nil)
		return false
	}

	return true
}

// validatePayload runs struct validation, reporting the first violation.
// Returns false when a response has already been written.
func (s *Server) validatePayload(w http.ResponseWriter, payload any) bool {
	if message := s.validate.Struct(payload); message != "" {
		s.respond(w, http.StatusBadRequest, false, message, nil)
		return false
	}

	return true
}
