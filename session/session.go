package session

import (
	"context"
	"sync"

	"github.com/jrsteele09/hospital-portal/credentials"
	apperrors "github.com/jrsteele09/hospital-portal/internal/errors"
	"github.com/jrsteele09/hospital-portal/profiles"
	"github.com/jrsteele09/hospital-portal/roles"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

// Transition events reported to the Recorder
const (
	EventInitialize = "initialize"
	EventLogin      = "login"
	EventLogout     = "logout"
	EventReload     = "reload"
)

// Recorder receives one call per completed transition
type Recorder interface {
	SessionTransition(event string)
}

// Snapshot is a point-in-time copy of the session. Profile is nil when no profile is held.
type Snapshot struct {
	Role    roles.Role
	Profile *profiles.Profile
}

// Active is derived from the role and profile, it is never tracked on its own
func (s Snapshot) Active() bool {
	return s.Role.Valid() && s.Profile != nil
}

// State is the single source of truth for who is using the portal. It is created
// once per process and handed to whatever needs it.
type State struct {
	store    *credentials.Store
	recorder Recorder

	// transition serialises store writes with the in-memory update that follows them
	transition sync.Mutex

	mu   sync.RWMutex
	snap Snapshot

	once  sync.Once
	ready chan struct{}
}

// New returns a logged-out State backed by store. recorder may be nil.
func New(store *credentials.Store, recorder Recorder) *State {
	return &State{
		store:    store,
		recorder: recorder,
		ready:    make(chan struct{}),
	}
}

// Initialize reads the persisted session once. A profile and role together make
// the session active. Anything less is cleared from the store and the session
// starts logged out. When the store cannot be read the session also starts
// logged out but the store is left untouched. Later calls do nothing.
func (s *State) Initialize(ctx context.Context) {
	s.once.Do(func() {
		defer close(s.ready)

		s.transition.Lock()
		defer s.transition.Unlock()

		snap, err := s.readStore(ctx)
		switch {
		case err != nil:
			log.Err(err).Msg("Failed to read credentials, starting logged out")
		case !snap.Active():
			// drops leftovers such as tokens without a profile or a malformed profile
			s.store.ClearTokens(ctx)
		}
		s.set(snap)
		s.record(EventInitialize)
		log.Debug().Bool("active", snap.Active()).Str("role", snap.Role.String()).Msg("Session restored")
	})
}

// Ready is closed once Initialize has completed
func (s *State) Ready() <-chan struct{} {
	return s.ready
}

// WaitReady blocks until Initialize has completed or ctx is done
func (s *State) WaitReady(ctx context.Context) error {
	select {
	case <-s.ready:
		return nil
	case <-ctx.Done():
		return apperrors.Wrapf(apperrors.ErrSessionNotReady, "session.WaitReady %v", ctx.Err())
	}
}

// Login persists the tokens, profile and role in one write and makes the
// session active with them. The latest call wins. An invalid role is ignored.
func (s *State) Login(ctx context.Context, profile profiles.Profile, tokens credentials.Tokens, role roles.Role) {
	if !role.Valid() {
		log.Err(apperrors.ErrInvalidRole).Str("role", string(role)).Msg("Login: Ignoring invalid role")
		return
	}

	s.transition.Lock()
	defer s.transition.Unlock()

	s.store.SetSession(ctx, tokens, profile, role)
	s.set(Snapshot{Role: role, Profile: &profile})
	s.record(EventLogin)
	log.Info().Str("role", role.String()).Str("uid", profile.UID).Msg("Logged in")
}

// Logout clears the store and resets to the logged-out default. Safe on an empty store.
func (s *State) Logout(ctx context.Context) {
	s.transition.Lock()
	defer s.transition.Unlock()

	s.store.ClearTokens(ctx)
	s.set(Snapshot{})
	s.record(EventLogout)
	log.Info().Msg("Logged out")
}

// Reload re-derives the session from the store, picking up changes made by
// another process sharing it. Partial credentials read as logged out but are
// left in place, another writer may be midway through a login.
func (s *State) Reload(ctx context.Context) {
	s.transition.Lock()
	defer s.transition.Unlock()

	snap, err := s.readStore(ctx)
	if err != nil {
		log.Err(err).Msg("Reload: Failed to read credentials")
	}
	s.set(snap)
	s.record(EventReload)
	log.Debug().Bool("active", snap.Active()).Str("role", snap.Role.String()).Msg("Session reloaded")
}

func (s *State) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snap := Snapshot{Role: s.snap.Role}
	if s.snap.Profile != nil {
		profile := *s.snap.Profile
		snap.Profile = &profile
	}
	return snap
}

func (s *State) IsActive() bool {
	return s.Snapshot().Active()
}

func (s *State) Role() roles.Role {
	return s.Snapshot().Role
}

func (s *State) Profile() (profiles.Profile, bool) {
	snap := s.Snapshot()
	if snap.Profile == nil {
		return profiles.Profile{}, false
	}
	return *snap.Profile, true
}

func (s *State) readStore(ctx context.Context) (Snapshot, error) {
	profile, role, ok, err := s.store.LoadUserData(ctx)
	if err != nil {
		return Snapshot{}, errors.Wrap(err, "State.readStore")
	}
	if !ok {
		return Snapshot{}, nil
	}
	return Snapshot{Role: role, Profile: &profile}, nil
}

func (s *State) set(snap Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snap = snap
}

func (s *State) record(event string) {
	if s.recorder != nil {
		s.recorder.SessionTransition(event)
	}
}
