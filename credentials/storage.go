package credentials

import "context"

// Persisted key names. The layout is flat and string keyed.
const (
	KeyAccessToken  = "access_token"
	KeyRefreshToken = "refresh_token"
	KeyUserData     = "user_data"
	KeyUserRole     = "user_role"
)

// Keys lists every key the credential store owns
var Keys = []string{KeyAccessToken, KeyRefreshToken, KeyUserData, KeyUserRole}

// Storage is the durable key-value capability behind the credential Store.
// Implementations must make SetMany and a multi-key Remove atomic: no Get may
// observe some of the keys written or removed and others not.
type Storage interface {
	// Get returns the value and whether the key exists
	Get(ctx context.Context, key string) (string, bool, error)

	// Set creates or overwrites a key
	Set(ctx context.Context, key, value string) error

	// SetMany creates or overwrites every key in values in one write
	SetMany(ctx context.Context, values map[string]string) error

	// Remove deletes the keys, missing keys are not an error
	Remove(ctx context.Context, keys ...string) error
}
