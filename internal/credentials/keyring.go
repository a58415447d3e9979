package credentials

import (
	"errors"
	"fmt"

	"github.com/zalando/go-keyring"
)

const keyringUser = "refresh_token"

// KeyringStore keeps the refresh token in the OS keychain
// (macOS Keychain, Secret Service on Linux, Windows Credential Manager)
type KeyringStore struct {
	service string
}

func NewKeyringStore(service string) *KeyringStore {
	return &KeyringStore{service: service}
}

func (k *KeyringStore) Load() (string, bool, error) {
	token, err := keyring.Get(k.service, keyringUser)
	if errors.Is(err, keyring.ErrNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to read refresh token from keyring: %w", err)
	}
	if token == "" {
		return "", false, nil
	}
	return token, true, nil
}

func (k *KeyringStore) Save(token string) error {
	if err := keyring.Set(k.service, keyringUser, token); err != nil {
		return fmt.Errorf("failed to store refresh token in keyring: %w", err)
	}
	return nil
}

func (k *KeyringStore) Clear() error {
	err := keyring.Delete(k.service, keyringUser)
	if err != nil && !errors.Is(err, keyring.ErrNotFound) {
		return fmt.Errorf("failed to delete refresh token from keyring: %w", err)
	}
	return nil
}
