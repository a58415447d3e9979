package credentials

import (
	"errors"
	"fmt"
	"os"
	"strings"
)

// FSStore keeps the refresh token as the raw contents of a single file
type FSStore struct {
	path    string
	pathErr error
}

func NewFSStore(path string) *FSStore {
	return &FSStore{path: path}
}

// NewDefaultFSStore stores the token under the per-user cache directory.
// A home directory that cannot be resolved surfaces on Load and Save.
func NewDefaultFSStore(appName string) *FSStore {
	path, err := CachePath(appName)
	return &FSStore{path: path, pathErr: err}
}

// Path returns the cache file location, empty if it could not be resolved
func (f *FSStore) Path() string {
	return f.path
}

func (f *FSStore) cacheFile() (string, error) {
	if f.pathErr != nil {
		return "", f.pathErr
	}
	if err := EnsureParentDir(f.path); err != nil {
		return "", err
	}
	return f.path, nil
}

func (f *FSStore) Load() (string, bool, error) {
	path, err := f.cacheFile()
	if err != nil {
		return "", false, err
	}
	b, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to read token cache: %w", err)
	}
	token := strings.TrimSpace(string(b))
	if token == "" {
		return "", false, nil
	}
	return token, true, nil
}

// Save writes token verbatim, replacing any previous content
func (f *FSStore) Save(token string) error {
	path, err := f.cacheFile()
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, []byte(token), 0600); err != nil {
		return fmt.Errorf("failed to write token cache: %w", err)
	}
	return nil
}

func (f *FSStore) Clear() error {
	if f.pathErr != nil {
		return f.pathErr
	}
	if err := os.Remove(f.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to remove token cache: %w", err)
	}
	return nil
}
