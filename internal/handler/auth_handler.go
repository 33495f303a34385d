package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/sharevid/video-share-api/internal/payload"
)

// SignUpHandler handles POST /api/v1/auth/sign-up.
func (s *Server) SignUpHandler(w http.ResponseWriter, r *http.Request) {
	var req payload.SignUpRequest
	if !s.decodeJSON(w, r, &req) || !s.validatePayload(w, &req) {
		return
	}

	if err := s.authUsecase.SignUp(r.Context(), req.Email, req.Password); err != nil {
		s.respondError(w, err)
		return
	}

	s.respond(w, http.StatusOK, true, "User created successfully", nil)
}

// SignInHandler handles POST /api/v1/auth/sign-in.
func (s *Server) SignInHandler(w http.ResponseWriter, r *http.Request) {
	var req payload.SignInRequest
	if !s.decodeJSON(w, r, &req) || !s.validatePayload(w, &req) {
		return
	}

	result, err := s.authUsecase.SignIn(r.Context(), req.Email, req.Password)
	if err != nil {
		s.respondError(w, err)
		return
	}

	s.respond(w, http.StatusOK, true, "Logged in successfully", map[string]any{
		"user": payload.SignedInUser{
			Token: result.Token,
			Name:  result.Name,
			Email: result.Email,
		},
	})
}

// GoogleSignInHandler handles POST /api/v1/auth/google.
func (s *Server) GoogleSignInHandler(w http.ResponseWriter, r *http.Request) {
	var req payload.GoogleSignInRequest
	if !s.decodeJSON(w, r, &req) || !s.validatePayload(w, &req) {
		return
	}

	result, err := s.authUsecase.GoogleSignIn(r.Context(), req.IDToken)
	if err != nil {
		s.respondError(w, err)
		return
	}

	s.respond(w, http.StatusOK, true, "Logged in successfully", map[string]any{
		"user": payload.SignedInUser{
			Token: result.Token,
			Name:  result.Name,
			Email: result.Email,
		},
	})
}

// VerifyUserHandler handles GET /api/v1/auth/verify-user/{token}.
func (s *Server) VerifyUserHandler(w http.ResponseWriter, r *http.Request) {
	token := chi.URLParam(r, "token")
	if token == "" {
		s.respond(w, http.StatusBadRequest, false, "No such validation token found", nil)
		return
	}

	if err := s.authUsecase.VerifyUser(r.Context(), token); err != nil {
		s.respondError(w, err)
		return
	}

	s.respond(w, http.StatusOK, true, "Validation successful", nil)
}

// SendResetPasswordEmailHandler handles POST /api/v1/auth/send-reset-password-email.
func (s *Server) SendResetPasswordEmailHandler(w http.ResponseWriter, r *http.Request) {
	var req payload.SendResetPasswordEmailRequest
	if !s.decodeJSON(w, r, &req) || !s.validatePayload(w, &req) {
		return
	}

	if err := s.authUsecase.SendResetPasswordEmail(r.Context(), req.Email); err != nil {
		s.respondError(w, err)
		return
	}

	s.respond(w, http.StatusOK, true, "Check your email to reset your password", nil)
}

// ResetPasswordHandler handles POST /api/v1/auth/reset-password/{token}.
func (s *Server) ResetPasswordHandler(w http.ResponseWriter, r *http.Request) {
	token := chi.URLParam(r, "token")
	if token == "" {
		s.respond(w, http.StatusBadRequest, false, "Invalid or expired token", nil)
		return
	}

	var req payload.ResetPasswordRequest
	if !s.decodeJSON(w, r, &req) || !s.validatePayload(w, &req) {
		return
	}

	if err := s.authUsecase.ResetPassword(r.Context(), token, req.Password); err != nil {
		s.respondError(w, err)
		return
	}

	s.respond(w, http.StatusOK, true, "Password reset successfully", nil)
}
