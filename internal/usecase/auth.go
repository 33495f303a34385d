package usecase

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/sharevid/video-share-api/internal/auth"
	"github.com/sharevid/video-share-api/internal/mailer"
	"github.com/sharevid/video-share-api/internal/model"
	"github.com/sharevid/video-share-api/internal/repository"
	"github.com/sharevid/video-share-api/internal/security"
)

// AuthUsecase defines the authentication and account lifecycle use cases.
type AuthUsecase interface {
	SignUp(ctx context.Context, email, password string) error
	SignIn(ctx context.Context, email, password string) (*SignInResult, error)
	GoogleSignIn(ctx context.Context, idToken string) (*SignInResult, error)
	VerifyUser(ctx context.Context, token string) error
	SendResetPasswordEmail(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, token, newPassword string) error
}

// SignInResult carries the issued bearer token and the minimal profile
// returned to the client.
type SignInResult struct {
	Token string
	Name  string
	Email string
}

// GoogleVerifier resolves a Google ID token to the verified account email.
type GoogleVerifier interface {
	VerifiedEmail(ctx context.Context, idToken string) (string, error)
}

var (
	ErrUserAlreadyExists  = errors.New("user already exists")
	ErrUserNotFound       = errors.New("user does not exist")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenNotFound      = errors.New("verification token not found")
	ErrGoogleUnavailable  = errors.New("google sign-in is not configured")
)

type authUsecase struct {
	userRepo repository.UserRepository
	jwtAuth  auth.JWTAuthenticator
	mail     *mailer.AccountMailer
	google   GoogleVerifier
	logger   *zerolog.Logger
}

// NewAuthUsecase creates a new AuthUsecase instance. google may be nil when
// Google sign-in is not configured.
func NewAuthUsecase(
	userRepo repository.UserRepository,
	jwtAuth auth.JWTAuthenticator,
	mail *mailer.AccountMailer,
	google GoogleVerifier,
	logger *zerolog.Logger,
) AuthUsecase {
	return &authUsecase{
		userRepo: userRepo,
		jwtAuth:  jwtAuth,
		mail:     mail,
		google:   google,
		logger:   logger,
	}
}

func (u *authUsecase) SignUp(ctx context.Context, email, password string) error {
	passwordHash, err := security.HashPassword(password)
	if err != nil {
		return err
	}

	token, err := generateVerificationToken()
	if err != nil {
		return err
	}

	user, err := u.userRepo.CreateUser(ctx, &model.User{
		Email:             email,
		PasswordHash:      passwordHash,
		VerificationToken: token,
	})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrUserAlreadyExists
		}

		return err
	}

	// A failed dispatch does not roll back the created (unverified) user.
	if err := u.mail.SendVerificationEmail(user.Email, token); err != nil {
		u.logger.Warn().Err(err).Str("email", user.Email).Msg("failed to send verification email")
	}

	return nil
}

func (u *authUsecase) SignIn(ctx context.Context, email, password string) (*SignInResult, error) {
	user, err := u.userRepo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrUserNotFound
		}

		return nil, err
	}

	if ok, err := security.VerifyPassword(password, user.PasswordHash); err != nil {
		return nil, err
	} else if !ok {
		return nil, ErrInvalidCredentials
	}

	return u.issueToken(user)
}

func (u *authUsecase) GoogleSignIn(ctx context.Context, idToken string) (*SignInResult, error) {
	if u.google == nil {
		return nil, ErrGoogleUnavailable
	}

	email, err := u.google.VerifiedEmail(ctx, idToken)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	user, err := u.userRepo.GetUserByEmail(ctx, email)
	if err == nil {
		return u.issueToken(user)
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, err
	}

	// First Google sign-in: provision an account with an unguessable local
	// password. Google has already verified the address.
	randomSecret, err := generateVerificationToken()
	if err != nil {
		return nil, err
	}

	passwordHash, err := security.HashPassword(randomSecret)
	if err != nil {
		return nil, err
	}

	token, err := generateVerificationToken()
	if err != nil {
		return nil, err
	}

	user, err = u.userRepo.CreateUser(ctx, &model.User{
		Email:             email,
		PasswordHash:      passwordHash,
		VerificationToken: token,
		Verified:          true,
	})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrUserAlreadyExists
		}

		return nil, err
	}

	return u.issueToken(user)
}

func (u *authUsecase) VerifyUser(ctx context.Context, token string) error {
	user, err := u.userRepo.GetUserByToken(ctx, token)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ErrTokenNotFound
		}

		return err
	}

	verified := true
	if _, err := u.userRepo.UpdateUser(ctx, user.ID.Hex(), repository.UpdateUserParams{
		Verified: &verified,
	}); err != nil {
		return err
	}

	return nil
}

func (u *authUsecase) SendResetPasswordEmail(ctx context.Context, email string) error {
	user, err := u.userRepo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ErrUserNotFound
		}

		return err
	}

	// Rotate the token so earlier links stop working before the new one is
	// mailed out.
	token, err := generateVerificationToken()
	if err != nil {
		return err
	}

	if _, err := u.userRepo.UpdateUser(ctx, user.ID.Hex(), repository.UpdateUserParams{
		VerificationToken: &token,
	}); err != nil {
		return err
	}

	return u.mail.SendPasswordResetEmail(user.Email, token)
}

func (u *authUsecase) ResetPassword(ctx context.Context, token, newPassword string) error {
	user, err := u.userRepo.GetUserByToken(ctx, token)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ErrTokenNotFound
		}

		return err
	}

	passwordHash, err := security.HashPassword(newPassword)
	if err != nil {
		return err
	}

	// Store the hash of the new password and rotate the token so the reset
	// link cannot be replayed.
	rotated, err := generateVerificationToken()
	if err != nil {
		return err
	}

	if _, err := u.userRepo.UpdateUser(ctx, user.ID.Hex(), repository.UpdateUserParams{
		PasswordHash:      &passwordHash,
		VerificationToken: &rotated,
	}); err != nil {
		return err
	}

	return nil
}

func (u *authUsecase) issueToken(user *model.User) (*SignInResult, error) {
	token, err := u.jwtAuth.GenerateToken(user.ID.Hex(), user.Email)
	if err != nil {
		return nil, err
	}

	return &SignInResult{
		Token: token,
		Name:  user.Name,
		Email: user.Email,
	}, nil
}

// generateVerificationToken returns an opaque random hex string.
func generateVerificationToken() (string, error) {
	bytes := make([]byte, 16)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return hex.EncodeToString(bytes), nil
}
