package handler

import (
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// NewRouter builds the versioned REST surface. Bearer-protected routes sit
// behind the auth middleware; the download and metadata routes stay public.
func NewRouter(s *Server, corsOrigins string) chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(s.RequestLogger)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   strings.Split(corsOrigins, ","),
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Get("/health", s.HealthCheckHandler)

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/sign-up", s.SignUpHandler)
			r.Post("/sign-in", s.SignInHandler)
			r.Post("/google", s.GoogleSignInHandler)
			r.Get("/verify-user/{token}", s.VerifyUserHandler)
			r.Post("/send-reset-password-email", s.SendResetPasswordEmailHandler)
			r.Post("/reset-password/{token}", s.ResetPasswordHandler)
		})

		r.Route("/user", func(r chi.Router) {
			r.Use(s.AuthMiddleware)
			r.Get("/details", s.GetUserDetailsHandler)
			r.Post("/update-profile", s.UpdateProfileHandler)
			r.Get("/get-latest-videos", s.GetLatestVideosHandler)
		})

		r.Route("/aws", func(r chi.Router) {
			r.Use(s.AuthMiddleware)
			r.Post("/upload", s.UploadHandler)
			r.Put("/video/update/{videoId}", s.UpdateVideoHandler)
			r.Delete("/video/delete/{videoId}", s.DeleteVideoHandler)
		})

		r.Get("/fetch-latest-6-videos", s.FetchLatestVideosHandler)

		r.Route("/video", func(r chi.Router) {
			r.Get("/download/{videoId}", s.DownloadVideoHandler)
			r.Get("/search", s.SearchVideosHandler)
			r.With(s.OptionalAuthMiddleware).Get("/{videoId}", s.GetVideoHandler)
		})
	})

	return r
}
