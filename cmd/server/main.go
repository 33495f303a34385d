package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/sharevid/video-share-api/internal/auth"
	"github.com/sharevid/video-share-api/internal/config"
	"github.com/sharevid/video-share-api/internal/database"
	"github.com/sharevid/video-share-api/internal/handler"
	"github.com/sharevid/video-share-api/internal/mailer"
	"github.com/sharevid/video-share-api/internal/provider"
	"github.com/sharevid/video-share-api/internal/repository"
	"github.com/sharevid/video-share-api/internal/storage"
	"github.com/sharevid/video-share-api/internal/usecase"
	"github.com/sharevid/video-share-api/internal/validation"
)

const shutdownTimeout = 10 * time.Second

func main() {
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	if err := run(context.Background(), &logger); err != nil {
		logger.Fatal().Err(err).Msg("server exited with error")
	}
}

func run(ctx context.Context, logger *zerolog.Logger) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	client, db, err := database.Connect(ctx, cfg.MongoURI, cfg.MongoDatabase)
	if err != nil {
		return err
	}
	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			logger.Error().Err(err).Msg("failed to disconnect from mongodb")
		}
	}()
	logger.Info().Str("database", cfg.MongoDatabase).Msg("connected to mongodb")

	store, err := storage.NewS3Storage(ctx, cfg.Storage)
	if err != nil {
		return err
	}
	logger.Info().Str("bucket", cfg.Storage.Bucket).Msg("object storage ready")

	userRepo := repository.NewUserMongoRepository(ctx, logger, db)
	videoRepo := repository.NewVideoMongoRepository(ctx, logger, db)

	jwtAuth := auth.NewJWTAuthenticator(cfg.JWTSecret, cfg.JWTIssuer, cfg.TokenExpiresIn)
	accountMailer := mailer.NewAccountMailer(mailer.NewMailer(logger), cfg.AppURL)

	var google usecase.GoogleVerifier
	if cfg.GoogleClientID != "" {
		google = provider.NewGoogleTokenVerifier(cfg.GoogleClientID)
	}

	validate, err := validation.New()
	if err != nil {
		return err
	}

	authUsecase := usecase.NewAuthUsecase(userRepo, jwtAuth, accountMailer, google, logger)
	userUsecase := usecase.NewUserUsecase(userRepo)
	videoUsecase := usecase.NewVideoUsecase(videoRepo, userRepo, store, logger)

	server := handler.NewServer(logger, jwtAuth, userRepo, validate, authUsecase, userUsecase, videoUsecase)
	router := handler.NewRouter(server, cfg.CORSOrigins)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Port),
		Handler: router,
	}

	srvErr := make(chan error, 1)
	go func() {
		srvErr <- srv.ListenAndServe()
	}()

	logger.Info().Int("port", cfg.Port).Msg("starting http server")

	signalCh := make(chan os.Signal, 1)
	signal.Notify(signalCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-signalCh:
		logger.Info().Str("signal", sig.String()).Msg("received signal, shutting down")
	case err := <-srvErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	return srv.Shutdown(shutdownCtx)
}
