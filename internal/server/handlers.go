package server

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/google/uuid"

	"github.com/custodia-labs/britecal/internal/eventbrite"
	"github.com/custodia-labs/britecal/internal/ical"
	"github.com/custodia-labs/britecal/internal/logger"
)

// handleOAuthLogin redirects the browser to Eventbrite's consent page.
func (s *Server) handleOAuthLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	http.Redirect(w, r, s.oauth.AuthURL(uuid.NewString()), http.StatusFound)
}

// handleOAuthCallback receives the provider redirect, exchanges the
// authorization code for an access token, and sends the browser on to the
// frontend with the token attached. No outbound call is made when the code
// is missing.
func (s *Server) handleOAuthCallback(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	query := r.URL.Query()
	if errParam := query.Get("error"); errParam != "" {
		logger.Warn("oauth: provider returned error %q", errParam)
		http.Error(w, fmt.Sprintf("authorization failed: %s", errParam), http.StatusBadRequest)
		return
	}

	code := query.Get("code")
	if code == "" {
		http.Error(w, "missing code parameter", http.StatusBadRequest)
		return
	}

	token, err := s.oauth.ExchangeCode(r.Context(), code)
	if err != nil {
		logger.Error("oauth: code exchange failed: %v", err)
		http.Error(w, "token exchange failed", http.StatusBadGateway)
		return
	}

	redirect := s.cfg.FrontendURL + "?access_token=" + url.QueryEscape(token)
	http.Redirect(w, r, redirect, http.StatusFound)
}

// handleCalendarExport fetches the user's orders with the supplied token and
// returns them as an iCalendar download. Zero orders produce a valid empty
// calendar; any provider or build failure fails the whole request with no
// partial body written.
func (s *Server) handleCalendarExport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	token := r.URL.Query().Get("access_token")
	if token == "" {
		http.Error(w, "missing access_token parameter", http.StatusBadRequest)
		return
	}

	orders, err := s.orders.ListOrders(r.Context(), token)
	if err != nil {
		logger.Error("calendar: listing orders failed: %v", err)
		if errors.Is(err, eventbrite.ErrUnauthorised) {
			http.Error(w, "invalid or expired access token", http.StatusUnauthorized)
			return
		}
		http.Error(w, "fetching orders failed", http.StatusBadGateway)
		return
	}

	cal, err := ical.FromOrders(orders)
	if err != nil {
		logger.Error("calendar: building calendar failed: %v", err)
		http.Error(w, "building calendar failed", http.StatusInternalServerError)
		return
	}

	body, err := ical.Encode(cal)
	if err != nil {
		logger.Error("calendar: encoding calendar failed: %v", err)
		http.Error(w, "encoding calendar failed", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", ical.MIMEType+"; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+ical.Filename+`"`)
	w.Header().Set("Content-Length", strconv.Itoa(len(body)))
	if _, err := w.Write(body); err != nil {
		logger.Warn("calendar: writing response failed: %v", err)
	}
}
