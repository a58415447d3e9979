package credentials

import "fmt"

// Store kinds accepted by NewStore
const (
	StoreFile    = "file"
	StoreKeyring = "keyring"
)

// RefreshTokenStore persists the single long-lived refresh token between runs
type RefreshTokenStore interface {
	// Load returns the cached refresh token. ok is false when nothing is cached.
	Load() (token string, ok bool, err error)
	// Save overwrites the cached refresh token.
	Save(token string) error
	// Clear removes the cached refresh token. Clearing an empty store is not an error.
	Clear() error
}

// NewStore returns the store backend for kind, keyed by appName
func NewStore(kind, appName string) (RefreshTokenStore, error) {
	switch kind {
	case StoreFile, "":
		return NewDefaultFSStore(appName), nil
	case StoreKeyring:
		return NewKeyringStore(appName), nil
	default:
		return nil, fmt.Errorf("unknown token store %q (expected %q or %q)", kind, StoreFile, StoreKeyring)
	}
}
