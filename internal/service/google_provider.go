package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"quizlink/internal/config"
	"quizlink/internal/dto"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

const googleUserInfoURL = "https://www.googleapis.com/oauth2/v2/userinfo"

var (
	ErrFailedToExchangeToken = errors.New("failed to exchange oauth token")
	ErrFailedToGetUserInfo   = errors.New("failed to get user info from google")
)

// GoogleProvider performs the provider side of the OAuth2 authorization-code flow.
type GoogleProvider interface {
	AuthCodeURL(state string) string
	// FetchProfile exchanges the authorization code and reads the signed-in user's profile.
	FetchProfile(ctx context.Context, code string) (*dto.GoogleUserInfo, error)
}

type googleProvider struct {
	oauth2Config *oauth2.Config
	userInfoURL  string
}

// NewGoogleProvider creates a GoogleProvider for the configured OAuth client.
func NewGoogleProvider(cfg config.GoogleOAuthConfig) GoogleProvider {
	return newGoogleProvider(&oauth2.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		RedirectURL:  cfg.RedirectURL,
		Scopes: []string{
			"https://www.googleapis.com/auth/userinfo.email",
			"https://www.googleapis.com/auth/userinfo.profile",
		},
		Endpoint: google.Endpoint,
	}, googleUserInfoURL)
}

func newGoogleProvider(oauth2Config *oauth2.Config, userInfoURL string) *googleProvider {
	return &googleProvider{oauth2Config: oauth2Config, userInfoURL: userInfoURL}
}

func (p *googleProvider) AuthCodeURL(state string) string {
	return p.oauth2Config.AuthCodeURL(state, oauth2.AccessTypeOnline)
}

func (p *googleProvider) FetchProfile(ctx context.Context, code string) (*dto.GoogleUserInfo, error) {
	token, err := p.oauth2Config.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFailedToExchangeToken, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.userInfoURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFailedToGetUserInfo, err)
	}
	resp, err := p.oauth2Config.Client(ctx, token).Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFailedToGetUserInfo, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d", ErrFailedToGetUserInfo, resp.StatusCode)
	}

	var userInfo dto.GoogleUserInfo
	if err := json.NewDecoder(resp.Body).Decode(&userInfo); err != nil {
		return nil, fmt.Errorf("failed to decode user info: %w", err)
	}
	if userInfo.Email == "" {
		return nil, fmt.Errorf("%w: profile has no email", ErrFailedToGetUserInfo)
	}
	return &userInfo, nil
}
