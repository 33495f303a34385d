package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sharevid/video-share-api/internal/auth"
	"github.com/sharevid/video-share-api/internal/mailer"
	"github.com/sharevid/video-share-api/internal/security"
)

func newAuthFixture(t *testing.T, google GoogleVerifier) (AuthUsecase, *memUserRepo, *fakeSender) {
	t.Helper()

	userRepo := newMemUserRepo()
	sender := &fakeSender{}
	jwtAuth := auth.NewJWTAuthenticator("test-secret", "video-share-api", time.Hour)
	logger := zerolog.Nop()

	uc := NewAuthUsecase(userRepo, jwtAuth, mailer.NewAccountMailer(sender, "http://localhost:3000"), google, &logger)

	return uc, userRepo, sender
}

func TestSignUpStoresHashedPassword(t *testing.T) {
	uc, userRepo, sender := newAuthFixture(t, nil)
	ctx := context.Background()

	err := uc.SignUp(ctx, "alice@example.com", "s3cretpass")
	require.NoError(t, err)

	user, err := userRepo.GetUserByEmail(ctx, "alice@example.com")
	require.NoError(t, err)

	assert.NotEqual(t, "s3cretpass", user.PasswordHash)
	assert.False(t, user.Verified)
	assert.NotEmpty(t, user.VerificationToken)

	ok, err := security.VerifyPassword("s3cretpass", user.PasswordHash)
	require.NoError(t, err)
	assert.True(t, ok)

	require.Len(t, sender.emails, 1)
	assert.Equal(t, []string{"alice@example.com"}, sender.emails[0].to)
	assert.Contains(t, sender.emails[0].body, user.VerificationToken)
}

func TestSignUpDuplicateEmail(t *testing.T) {
	uc, _, _ := newAuthFixture(t, nil)
	ctx := context.Background()

	require.NoError(t, uc.SignUp(ctx, "alice@example.com", "s3cretpass"))

	err := uc.SignUp(ctx, "alice@example.com", "anotherpass")
	assert.ErrorIs(t, err, ErrUserAlreadyExists)
}

func TestSignUpSucceedsWhenEmailFails(t *testing.T) {
	uc, userRepo, sender := newAuthFixture(t, nil)
	sender.err = errors.New("smtp unreachable")
	ctx := context.Background()

	err := uc.SignUp(ctx, "alice@example.com", "s3cretpass")
	require.NoError(t, err)

	_, err = userRepo.GetUserByEmail(ctx, "alice@example.com")
	assert.NoError(t, err)
}

func TestSignInRoundTrip(t *testing.T) {
	uc, userRepo, _ := newAuthFixture(t, nil)
	ctx := context.Background()

	require.NoError(t, uc.SignUp(ctx, "alice@example.com", "s3cretpass"))

	result, err := uc.SignIn(ctx, "alice@example.com", "s3cretpass")
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", result.Email)
	require.NotEmpty(t, result.Token)

	jwtAuth := auth.NewJWTAuthenticator("test-secret", "video-share-api", time.Hour)
	claims, err := jwtAuth.ValidateToken(result.Token)
	require.NoError(t, err)

	user, err := userRepo.GetUserByEmail(ctx, "alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID.Hex(), claims.UserID)
	assert.Equal(t, "alice@example.com", claims.Email)
}

func TestSignInWrongPassword(t *testing.T) {
	uc, _, _ := newAuthFixture(t, nil)
	ctx := context.Background()

	require.NoError(t, uc.SignUp(ctx, "alice@example.com", "s3cretpass"))

	_, err := uc.SignIn(ctx, "alice@example.com", "wrongpass")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestSignInUnknownEmail(t *testing.T) {
	uc, _, _ := newAuthFixture(t, nil)

	_, err := uc.SignIn(context.Background(), "nobody@example.com", "whatever")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

type stubGoogleVerifier struct {
	email string
	err   error
}

func (v *stubGoogleVerifier) VerifiedEmail(_ context.Context, _ string) (string, error) {
	return v.email, v.err
}

func TestGoogleSignInProvisionsAccount(t *testing.T) {
	uc, userRepo, _ := newAuthFixture(t, &stubGoogleVerifier{email: "bob@example.com"})
	ctx := context.Background()

	result, err := uc.GoogleSignIn(ctx, "google-id-token")
	require.NoError(t, err)
	assert.Equal(t, "bob@example.com", result.Email)
	assert.NotEmpty(t, result.Token)

	user, err := userRepo.GetUserByEmail(ctx, "bob@example.com")
	require.NoError(t, err)
	assert.True(t, user.Verified)
	assert.NotEmpty(t, user.PasswordHash)
}

func TestGoogleSignInExistingAccount(t *testing.T) {
	uc, userRepo, _ := newAuthFixture(t, &stubGoogleVerifier{email: "alice@example.com"})
	ctx := context.Background()

	require.NoError(t, uc.SignUp(ctx, "alice@example.com", "s3cretpass"))
	before, err := userRepo.GetUserByEmail(ctx, "alice@example.com")
	require.NoError(t, err)

	result, err := uc.GoogleSignIn(ctx, "google-id-token")
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", result.Email)

	after, err := userRepo.GetUserByEmail(ctx, "alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, before.ID, after.ID)
}

func TestGoogleSignInRejectedToken(t *testing.T) {
	uc, _, _ := newAuthFixture(t, &stubGoogleVerifier{err: errors.New("audience mismatch")})

	_, err := uc.GoogleSignIn(context.Background(), "bad-token")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestGoogleSignInNotConfigured(t *testing.T) {
	uc, _, _ := newAuthFixture(t, nil)

	_, err := uc.GoogleSignIn(context.Background(), "google-id-token")
	assert.ErrorIs(t, err, ErrGoogleUnavailable)
}

func TestVerifyUser(t *testing.T) {
	uc, userRepo, _ := newAuthFixture(t, nil)
	ctx := context.Background()

	require.NoError(t, uc.SignUp(ctx, "alice@example.com", "s3cretpass"))
	user, err := userRepo.GetUserByEmail(ctx, "alice@example.com")
	require.NoError(t, err)

	require.NoError(t, uc.VerifyUser(ctx, user.VerificationToken))

	user, err = userRepo.GetUserByEmail(ctx, "alice@example.com")
	require.NoError(t, err)
	assert.True(t, user.Verified)
}

func TestVerifyUserUnknownToken(t *testing.T) {
	uc, _, _ := newAuthFixture(t, nil)

	err := uc.VerifyUser(context.Background(), "deadbeef")
	assert.ErrorIs(t, err, ErrTokenNotFound)
}

func TestSendResetPasswordEmailRotatesToken(t *testing.T) {
	uc, userRepo, sender := newAuthFixture(t, nil)
	ctx := context.Background()

	require.NoError(t, uc.SignUp(ctx, "alice@example.com", "s3cretpass"))
	before, err := userRepo.GetUserByEmail(ctx, "alice@example.com")
	require.NoError(t, err)
	oldToken := before.VerificationToken

	require.NoError(t, uc.SendResetPasswordEmail(ctx, "alice@example.com"))

	after, err := userRepo.GetUserByEmail(ctx, "alice@example.com")
	require.NoError(t, err)
	assert.NotEqual(t, oldToken, after.VerificationToken)

	// The mailed link must carry the rotated token, not the stale one.
	require.Len(t, sender.emails, 2)
	assert.Contains(t, sender.emails[1].body, after.VerificationToken)
}

func TestSendResetPasswordEmailUnknownEmail(t *testing.T) {
	uc, _, _ := newAuthFixture(t, nil)

	err := uc.SendResetPasswordEmail(context.Background(), "nobody@example.com")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestResetPasswordStoresNewHashAndRotatesToken(t *testing.T) {
	uc, userRepo, _ := newAuthFixture(t, nil)
	ctx := context.Background()

	require.NoError(t, uc.SignUp(ctx, "alice@example.com", "oldpassword"))
	require.NoError(t, uc.SendResetPasswordEmail(ctx, "alice@example.com"))

	user, err := userRepo.GetUserByEmail(ctx, "alice@example.com")
	require.NoError(t, err)
	resetToken := user.VerificationToken

	require.NoError(t, uc.ResetPassword(ctx, resetToken, "newpassword"))

	// Old credentials stop working, new ones work, and the link is one-shot.
	_, err = uc.SignIn(ctx, "alice@example.com", "oldpassword")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = uc.SignIn(ctx, "alice@example.com", "newpassword")
	assert.NoError(t, err)

	err = uc.ResetPassword(ctx, resetToken, "anotherpassword")
	assert.ErrorIs(t, err, ErrTokenNotFound)
}
