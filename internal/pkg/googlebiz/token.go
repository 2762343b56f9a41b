package googlebiz

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"github.com/StorePulse/StorePulse/internal/pkg/env"
)

var (
	// ErrNotConnected means no credential exists for the user; the caller
	// should tell the client to run the connect flow.
	ErrNotConnected = errors.New("googlebiz: google business profile not connected")
	// ErrAuthExpired means the stored refresh token was rejected by the token
	// endpoint. The only recovery is a reconnect, not a retry.
	ErrAuthExpired = errors.New("googlebiz: refresh token expired or revoked")
)

// BusinessScope is the Business Profile management scope.
const BusinessScope = "https://www.googleapis.com/auth/business.manage"

func oauthConfig(scopes []string) *oauth2.Config {
	if len(scopes) == 0 {
		scopes = []string{BusinessScope}
	}
	return &oauth2.Config{
		ClientID:     env.GetEnv("GOOGLE_KEY", ""),
		ClientSecret: env.GetEnv("GOOGLE_SECRET", ""),
		Endpoint:     google.Endpoint,
		Scopes:       scopes,
	}
}

// NewAuthenticatedClient builds an http.Client that mints short-lived access
// tokens from the stored refresh token on demand. The refresh token itself is
// the only persisted secret.
func NewAuthenticatedClient(ctx context.Context, refreshToken string, scopes []string) (*http.Client, error) {
	if refreshToken == "" {
		return nil, ErrNotConnected
	}

	cfg := oauthConfig(scopes)
	ts := cfg.TokenSource(ctx, &oauth2.Token{RefreshToken: refreshToken})

	// Mint once up front so an expired/revoked token surfaces as a typed
	// error instead of failing on the first API call.
	if _, err := ts.Token(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAuthExpired, err)
	}

	return oauth2.NewClient(ctx, ts), nil
}
