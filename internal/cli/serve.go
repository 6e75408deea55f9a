package cli

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/britecal/internal/config"
	"github.com/custodia-labs/britecal/internal/eventbrite"
	"github.com/custodia-labs/britecal/internal/server"
)

var configPath string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the britecal HTTP server",
	Long: `Start the HTTP server exposing the OAuth callback and the calendar
export endpoint.

Required environment (or .env file):
  CLIENT_ID      Eventbrite OAuth app client id
  CLIENT_SECRET  Eventbrite OAuth app client secret
  FRONTEND_URL   where the callback redirects with the access token
  REDIRECT_URI   callback URL registered with the OAuth app`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&configPath, "config", "", "path to optional TOML config file")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	oauth := eventbrite.NewOAuthHandler(eventbrite.OAuthConfig{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		RedirectURI:  cfg.RedirectURI,
		AuthURL:      cfg.AuthURL,
		TokenURL:     cfg.TokenURL,
		Timeout:      cfg.HTTPTimeout,
	})

	client := eventbrite.NewClient(eventbrite.ClientConfig{
		BaseURL:  cfg.APIBaseURL,
		Timeout:  cfg.HTTPTimeout,
		PageSize: cfg.PageSize,
		RateLimit: eventbrite.RateLimitConfig{
			RequestsPerSecond: cfg.RequestsPerSecond,
			BurstSize:         cfg.BurstSize,
		},
	})

	srv, err := server.New(cfg, oauth, client)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cmd.Printf("britecal %s\n", version)
	return srv.ListenAndServe(ctx)
}
