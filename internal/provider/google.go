package provider

import (
	"context"
	"errors"
	"net/http"

	"google.golang.org/api/oauth2/v2"
	"google.golang.org/api/option"
)

var (
	ErrInvalidGoogleAudience = errors.New("invalid google audience")
	ErrEmailNotVerified      = errors.New("google account email is not verified")
)

// GoogleTokenVerifier validates Google ID tokens for "Sign in with Google".
type GoogleTokenVerifier struct {
	clientID string
}

// NewGoogleTokenVerifier creates a verifier bound to the application's OAuth
// client ID.
func NewGoogleTokenVerifier(clientID string) *GoogleTokenVerifier {
	return &GoogleTokenVerifier{clientID: clientID}
}

// VerifyIDToken validates the ID token with Google and returns its token info.
// The token's audience must match the configured client ID.
func (p *GoogleTokenVerifier) VerifyIDToken(ctx context.Context, idToken string) (*oauth2.Tokeninfo, error) {
	oauth2Service, err := oauth2.NewService(ctx, option.WithHTTPClient(&http.Client{}))
	if err != nil {
		return nil, err
	}

	tokenInfoCall := oauth2Service.Tokeninfo()
	tokenInfoCall.IdToken(idToken)
	tokenInfo, err := tokenInfoCall.Do()
	if err != nil {
		return nil, err
	}

	if tokenInfo.Audience != p.clientID {
		return nil, ErrInvalidGoogleAudience
	}

	if !tokenInfo.VerifiedEmail {
		return nil, ErrEmailNotVerified
	}

	return tokenInfo, nil
}

// VerifiedEmail validates the ID token and returns the account email.
func (p *GoogleTokenVerifier) VerifiedEmail(ctx context.Context, idToken string) (string, error) {
	tokenInfo, err := p.VerifyIDToken(ctx, idToken)
	if err != nil {
		return "", err
	}

	return tokenInfo.Email, nil
}
