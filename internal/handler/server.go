package handler

import (
	"github.com/rs/zerolog"

	"github.com/sharevid/video-share-api/internal/auth"
	"github.com/sharevid/video-share-api/internal/repository"
	"github.com/sharevid/video-share-api/internal/usecase"
	"github.com/sharevid/video-share-api/internal/validation"
)

// Server holds the HTTP handlers and their dependencies.
type Server struct {
	logger   *zerolog.Logger
	jwtAuth  auth.JWTAuthenticator
	users    repository.UserRepository
	validate *validation.Validator

	authUsecase  usecase.AuthUsecase
	userUsecase  usecase.UserUsecase
	videoUsecase usecase.VideoUsecase
}

// NewServer creates a new Server instance.
func NewServer(
	logger *zerolog.Logger,
	jwtAuth auth.JWTAuthenticator,
	users repository.UserRepository,
	validate *validation.Validator,
	authUsecase usecase.AuthUsecase,
	userUsecase usecase.UserUsecase,
	videoUsecase usecase.VideoUsecase,
) *Server {
	return &Server{
		logger:       logger,
		jwtAuth:      jwtAuth,
		users:        users,
		validate:     validate,
		authUsecase:  authUsecase,
		userUsecase:  userUsecase,
		videoUsecase: videoUsecase,
	}
}
