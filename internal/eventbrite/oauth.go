package eventbrite

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"golang.org/x/oauth2"
)

// OAuthHandler performs the Eventbrite authorization-code flow.
// Eventbrite expects client credentials in the POST body, not basic auth,
// so the endpoint is pinned to AuthStyleInParams.
type OAuthHandler struct {
	conf    *oauth2.Config
	timeout time.Duration
}

// OAuthConfig holds the settings needed for the code exchange.
type OAuthConfig struct {
	ClientID     string
	ClientSecret string
	RedirectURI  string
	// AuthURL and TokenURL override the Eventbrite defaults, for tests.
	AuthURL  string
	TokenURL string
	// Timeout bounds the token endpoint call.
	Timeout time.Duration
}

// NewOAuthHandler creates a new Eventbrite OAuth handler.
func NewOAuthHandler(cfg OAuthConfig) *OAuthHandler {
	authURL := cfg.AuthURL
	if authURL == "" {
		authURL = "https://www.eventbrite.com/oauth/authorize"
	}
	tokenURL := cfg.TokenURL
	if tokenURL == "" {
		tokenURL = "https://www.eventbrite.com/oauth/token"
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	return &OAuthHandler{
		conf: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURI,
			Endpoint: oauth2.Endpoint{
				AuthURL:   authURL,
				TokenURL:  tokenURL,
				AuthStyle: oauth2.AuthStyleInParams,
			},
		},
		timeout: timeout,
	}
}

// AuthURL constructs the Eventbrite authorization URL for the consent
// redirect. The state parameter is echoed back on the callback.
func (h *OAuthHandler) AuthURL(state string) string {
	return h.conf.AuthCodeURL(state)
}

// ExchangeCode exchanges an authorization code for an access token.
// Exactly one POST is issued; a provider failure surfaces to the caller
// without retries.
func (h *OAuthHandler) ExchangeCode(ctx context.Context, code string) (string, error) {
	client := &http.Client{Timeout: h.timeout}
	ctx = context.WithValue(ctx, oauth2.HTTPClient, client)

	token, err := h.conf.Exchange(ctx, code)
	if err != nil {
		return "", fmt.Errorf("exchange authorization code: %w", err)
	}
	if token.AccessToken == "" {
		return "", fmt.Errorf("token response missing access token")
	}

	return token.AccessToken, nil
}
