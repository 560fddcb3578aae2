package credentials

import (
	"context"
	"encoding/json"

	"github.com/jrsteele09/hospital-portal/profiles"
	"github.com/jrsteele09/hospital-portal/roles"
	"github.com/rs/zerolog/log"
)

// Store persists the session credentials: the token pair, the serialised
// profile and the role. Every method apart from LoadUserData is total. Storage
// failures are logged and absorbed, reads that fail are reported as absent.
type Store struct {
	storage Storage
}

func NewStore(storage Storage) *Store {
	return &Store{storage: storage}
}

// SetTokens overwrites both tokens in one write. No shape or expiry validation is done.
func (s *Store) SetTokens(ctx context.Context, access, refresh string) {
	s.setMany(ctx, map[string]string{
		KeyAccessToken:  access,
		KeyRefreshToken: refresh,
	})
}

// SetUserData serialises the profile and stores it alongside the role in one write
func (s *Store) SetUserData(ctx context.Context, profile profiles.Profile, role roles.Role) {
	data, err := json.Marshal(profile)
	if err != nil {
		log.Err(err).Msg("Failed to serialise profile")
		return
	}
	s.setMany(ctx, map[string]string{
		KeyUserData: string(data),
		KeyUserRole: string(role),
	})
}

// SetSession writes the tokens, profile and role in a single SetMany call so a
// process sharing the storage never sees some of them without the others
func (s *Store) SetSession(ctx context.Context, tokens Tokens, profile profiles.Profile, role roles.Role) {
	data, err := json.Marshal(profile)
	if err != nil {
		log.Err(err).Msg("Failed to serialise profile")
		return
	}
	s.setMany(ctx, map[string]string{
		KeyAccessToken:  tokens.Access,
		KeyRefreshToken: tokens.Refresh,
		KeyUserData:     string(data),
		KeyUserRole:     string(role),
	})
}

// LoadUserData reads the profile and role together. ok is false when either is
// missing or malformed. A non-nil error means the storage could not be read, so
// what is actually persisted is unknown.
func (s *Store) LoadUserData(ctx context.Context) (profiles.Profile, roles.Role, bool, error) {
	rawProfile, hasProfile, err := s.lookup(ctx, KeyUserData)
	if err != nil {
		return profiles.Profile{}, roles.None, false, err
	}
	rawRole, hasRole, err := s.lookup(ctx, KeyUserRole)
	if err != nil {
		return profiles.Profile{}, roles.None, false, err
	}
	if !hasProfile || !hasRole {
		return profiles.Profile{}, roles.None, false, nil
	}
	profile, ok := decodeProfile(rawProfile)
	if !ok {
		return profiles.Profile{}, roles.None, false, nil
	}
	role, ok := decodeRole(rawRole)
	if !ok {
		return profiles.Profile{}, roles.None, false, nil
	}
	return profile, role, true, nil
}

// GetUserData returns the stored profile. Missing or malformed data is reported as absent.
func (s *Store) GetUserData(ctx context.Context) (profiles.Profile, bool) {
	raw, ok := s.get(ctx, KeyUserData)
	if !ok {
		return profiles.Profile{}, false
	}
	return decodeProfile(raw)
}

// GetUserRole returns the stored role. Values other than doctor or patient are reported as absent.
func (s *Store) GetUserRole(ctx context.Context) (roles.Role, bool) {
	raw, ok := s.get(ctx, KeyUserRole)
	if !ok {
		return roles.None, false
	}
	return decodeRole(raw)
}

func (s *Store) GetAccessToken(ctx context.Context) (string, bool) {
	return s.get(ctx, KeyAccessToken)
}

func (s *Store) GetRefreshToken(ctx context.Context) (string, bool) {
	return s.get(ctx, KeyRefreshToken)
}

// ClearTokens removes the tokens, profile and role in a single Remove call
func (s *Store) ClearTokens(ctx context.Context) {
	if err := s.storage.Remove(ctx, Keys...); err != nil {
		log.Err(err).Msg("Failed to clear credentials")
	}
}

// IsAuthenticated reports whether an access token is present. It never checks validity or expiry.
func (s *Store) IsAuthenticated(ctx context.Context) bool {
	_, ok := s.GetAccessToken(ctx)
	return ok
}

func (s *Store) get(ctx context.Context, key string) (string, bool) {
	value, ok, err := s.lookup(ctx, key)
	if err != nil {
		log.Err(err).Str("key", key).Msg("Credential read failed, treating as absent")
		return "", false
	}
	return value, ok
}

// lookup treats an empty value as absent and passes storage errors through
func (s *Store) lookup(ctx context.Context, key string) (string, bool, error) {
	value, ok, err := s.storage.Get(ctx, key)
	if err != nil {
		return "", false, err
	}
	if !ok || value == "" {
		return "", false, nil
	}
	return value, true, nil
}

func (s *Store) setMany(ctx context.Context, values map[string]string) {
	if err := s.storage.SetMany(ctx, values); err != nil {
		log.Err(err).Msg("Credential write failed")
	}
}

func decodeProfile(raw string) (profiles.Profile, bool) {
	var profile profiles.Profile
	if err := json.Unmarshal([]byte(raw), &profile); err != nil {
		log.Warn().Err(err).Msg("Stored profile is malformed, treating as absent")
		return profiles.Profile{}, false
	}
	return profile, true
}

func decodeRole(raw string) (roles.Role, bool) {
	role, ok := roles.Parse(raw)
	if !ok {
		log.Warn().Str("role", raw).Msg("Unknown stored role, treating as absent")
	}
	return role, ok
}
