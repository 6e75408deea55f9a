// Package server exposes the HTTP surface: the OAuth consent round trip and
// the calendar export. Every request is a single stateless transaction; the
// access token travels with the request and is never stored.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/custodia-labs/britecal/internal/config"
	"github.com/custodia-labs/britecal/internal/eventbrite"
	"github.com/custodia-labs/britecal/internal/logger"
)

// OrderLister fetches the user's orders with a caller-supplied access token.
type OrderLister interface {
	ListOrders(ctx context.Context, accessToken string) ([]eventbrite.Order, error)
}

// CodeExchanger completes the OAuth authorization-code flow.
type CodeExchanger interface {
	AuthURL(state string) string
	ExchangeCode(ctx context.Context, code string) (string, error)
}

// Server handles the britecal HTTP endpoints.
type Server struct {
	cfg            *config.Config
	oauth          CodeExchanger
	orders         OrderLister
	frontendOrigin string
}

// New creates a server from the loaded configuration.
func New(cfg *config.Config, oauth CodeExchanger, orders OrderLister) (*Server, error) {
	origin, err := cfg.FrontendOrigin()
	if err != nil {
		return nil, err
	}

	return &Server{
		cfg:            cfg,
		oauth:          oauth,
		orders:         orders,
		frontendOrigin: origin,
	}, nil
}

// Handler returns the routed handler with middleware applied.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/oauth/login", s.handleOAuthLogin)
	mux.HandleFunc("/oauth/callback", s.handleOAuthCallback)
	mux.HandleFunc("/events/ical", s.handleCalendarExport)
	mux.HandleFunc("/healthz", s.handleHealthz)

	return s.requestLog(s.cors(mux))
}

// ListenAndServe runs the HTTP server until the context is cancelled.
// Read, write, and idle timeouts are set explicitly so a stalled client can
// never pin a connection open indefinitely.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:         s.cfg.ListenAddr,
		Handler:      s.Handler(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: s.cfg.HTTPTimeout + 10*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server: listening on %s", s.cfg.ListenAddr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}
