package server

import (
	"net/http"
	"net/url"

	"github.com/jrsteele09/hospital-portal/backend"
	apperrors "github.com/jrsteele09/hospital-portal/internal/errors"
	"github.com/jrsteele09/hospital-portal/internal/validation"
	"github.com/jrsteele09/hospital-portal/routes"
	"github.com/jrsteele09/hospital-portal/session"
	"github.com/rs/zerolog/log"
)

const (
	msgSessionExpired     = "Your session has expired, please log in again"
	msgBackendUnavailable = "The hospital service is unavailable, please try again shortly"
	msgInvalidForm        = "Invalid form data"
)

// redirectSuccess helper for htmx-aware success redirects
func redirectSuccess(w http.ResponseWriter, r *http.Request, path string) {
	if isHTMXRequest(r) {
		w.Header().Set("HX-Redirect", path)
		w.WriteHeader(http.StatusNoContent)
		return
	}
	http.Redirect(w, r, path, http.StatusSeeOther)
}

// redirectWithError helper for htmx-aware error redirects
func redirectWithError(w http.ResponseWriter, r *http.Request, path, errorMsg string) {
	redirectSuccess(w, r, withQuery(path, queryError, errorMsg))
}

func redirectWithNotice(w http.ResponseWriter, r *http.Request, path, notice string) {
	redirectSuccess(w, r, withQuery(path, queryNotice, notice))
}

func withQuery(path, key, value string) string {
	return path + "?" + url.Values{key: []string{value}}.Encode()
}

// isHTMXRequest checks if the request was initiated by HTMX
func isHTMXRequest(r *http.Request) bool {
	return r.Header.Get("HX-Request") == "true"
}

// userMessage turns a backend or validation error into text fit for a page
func userMessage(err error) string {
	var fieldErrs validation.FieldErrors
	if apperrors.As(err, &fieldErrs) {
		return fieldErrs.Error()
	}
	var apiErr *backend.APIError
	if apperrors.As(err, &apiErr) && apiErr.StatusCode < http.StatusInternalServerError {
		return apiErr.Message
	}
	if backend.IsAuthFailure(err) {
		return msgSessionExpired
	}
	return msgBackendUnavailable
}

// handleActionError answers a failed form action. Credentials the backend no
// longer accepts end the session and send the user to log in again, anything
// else goes back to the page with a message.
func (s *Server) handleActionError(w http.ResponseWriter, r *http.Request, snap session.Snapshot, page string, err error) {
	if s.endSessionIfRejected(w, r, snap, err) {
		return
	}
	log.Err(err).Str("request_id", RequestID(r.Context())).Str("path", r.URL.Path).Msg("Action failed")
	redirectWithError(w, r, page, userMessage(err))
}

// endSessionIfRejected logs out and redirects when err means the tokens were refused
func (s *Server) endSessionIfRejected(w http.ResponseWriter, r *http.Request, snap session.Snapshot, err error) bool {
	if !backend.IsAuthFailure(err) {
		return false
	}
	log.Warn().Err(err).Str("role", snap.Role.String()).Msg("Backend rejected the session, logging out")
	s.session.Logout(r.Context())
	redirectWithError(w, r, routes.RoleLogin(snap.Role), msgSessionExpired)
	return true
}
