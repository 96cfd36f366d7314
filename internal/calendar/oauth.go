package calendar

import (
	"context"
	"errors"
	"fmt"

	"github.com/recrearnolar/recrear_bot/internal/config"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	gcal "google.golang.org/api/calendar/v3"
)

func OAuthConfig(creds *config.GoogleCredentials) *oauth2.Config {
	return &oauth2.Config{
		ClientID:     creds.ClientID,
		ClientSecret: creds.ClientSecret,
		RedirectURL:  creds.RedirectURI,
		Scopes:       []string{gcal.CalendarScope},
		Endpoint:     google.Endpoint,
	}
}

// AuthURL is the consent page that yields an offline (refreshable) code.
func AuthURL(creds *config.GoogleCredentials) string {
	return OAuthConfig(creds).AuthCodeURL("recrear-bot", oauth2.AccessTypeOffline, oauth2.ApprovalForce)
}

// Exchange trades a consent code for credentials carrying a refresh token.
func Exchange(ctx context.Context, creds *config.GoogleCredentials, code string) (*config.GoogleCredentials, error) {
	tok, err := OAuthConfig(creds).Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("exchange auth code: %w", err)
	}
	if tok.RefreshToken == "" {
		return nil, errors.New("google returned no refresh token; revoke access and retry")
	}

	out := *creds
	out.RefreshToken = tok.RefreshToken
	return &out, nil
}
