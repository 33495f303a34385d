package handler

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/sharevid/video-share-api/internal/model"
)

type contextKey struct{}

var currentUserKey = contextKey{}

// AuthMiddleware rejects requests without a valid bearer token. On success the
// current user record (password hash never exposed) is stored in the request
// context.
func (s *Server) AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user := s.resolveBearer(r)
		if user == nil {
			s.respond(w, http.StatusUnauthorized, false, "Please sign in to continue", nil)
			return
		}

		ctx := context.WithValue(r.Context(), currentUserKey, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// OptionalAuthMiddleware resolves a bearer token when one is present but lets
// unauthenticated requests through.
func (s *Server) OptionalAuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if user := s.resolveBearer(r); user != nil {
			r = r.WithContext(context.WithValue(r.Context(), currentUserKey, user))
		}

		next.ServeHTTP(w, r)
	})
}

// CurrentUser returns the authenticated user stored by the auth middleware,
// or nil for unauthenticated requests.
func CurrentUser(ctx context.Context) *model.User {
	if user, ok := ctx.Value(currentUserKey).(*model.User); ok {
		return user
	}
	return nil
}

// resolveBearer validates the Authorization header and resolves the embedded
// identity to the current user record.
func (s *Server) resolveBearer(r *http.Request) *model.User {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return nil
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return nil
	}

	claims, err := s.jwtAuth.ValidateToken(parts[1])
	if err != nil {
		return nil
	}

	user, err := s.users.GetUser(r.Context(), claims.UserID)
	if err != nil {
		return nil
	}

	return user
}

// RequestLogger attaches a request id and logs every request with its status
// and duration.
func (s *Server) RequestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get("X-Request-ID")
		if requestID == "" {
			requestID = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", requestID)

		start := time.Now()
		recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(recorder, r)

		s.logger.Info().
			Str("request_id", requestID).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", recorder.status).
			Dur("duration", time.Since(start)).
			Msg("request completed")
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}
