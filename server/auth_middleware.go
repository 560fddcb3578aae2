package server

import (
	"context"
	"net/http"
	"time"

	"github.com/jrsteele09/hospital-portal/guard"
	"github.com/jrsteele09/hospital-portal/roles"
	"github.com/jrsteele09/hospital-portal/session"
	"github.com/rs/zerolog/log"
)

// readyTimeout bounds how long a request waits for the persisted session to load
const readyTimeout = 5 * time.Second

type snapshotKey struct{}

// RequireRole gates a page on the session. It waits for the session to be
// initialised, then lets the guard decide. roles.None admits any logged in user.
// An allowed request carries the snapshot the decision was made on.
func (s *Server) RequireRole(required roles.Role) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			ctx, cancel := context.WithTimeout(r.Context(), readyTimeout)
			err := s.session.WaitReady(ctx)
			cancel()
			if err != nil {
				log.Err(err).Str("request_id", RequestID(r.Context())).Msg("RequireRole: Session not ready")
				http.Error(w, "503 - Session is still loading", http.StatusServiceUnavailable)
				return
			}

			snap := s.session.Snapshot()
			decision := guard.Decide(required, snap)
			s.metrics.GuardDecision(required.String(), string(decision.Outcome))

			if !decision.Allowed() {
				log.Debug().
					Str("required_role", required.String()).
					Str("role", snap.Role.String()).
					Str("target", decision.Target).
					Msg("RequireRole: Redirecting")
				redirectSuccess(w, r, decision.Target)
				return
			}

			next(w, r.WithContext(context.WithValue(r.Context(), snapshotKey{}, snap)))
		}
	}
}

// snapshotFrom returns the snapshot RequireRole admitted the request with
func snapshotFrom(r *http.Request) session.Snapshot {
	snap, _ := r.Context().Value(snapshotKey{}).(session.Snapshot)
	return snap
}
