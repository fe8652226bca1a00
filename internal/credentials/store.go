// Package credentials stores provider API keys. The OS keychain is the
// primary backend; when it is unavailable (headless machines, CI) keys fall
// back to mode-0600 files under the user's config directory. Keys are never
// logged or printed.
package credentials

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/zalando/go-keyring"
)

const service = "resume-tailor"

// MissingError reports that no key is stored for a provider anywhere.
type MissingError struct {
	Provider string
}

func (e *MissingError) Error() string {
	return fmt.Sprintf("no API key stored for provider %q; run `tailor key set %s` or set the environment variable", e.Provider, e.Provider)
}

// Store reads and writes provider keys.
type Store struct {
	// dir is the file fallback location, default ~/.resume-tailor.
	dir string

	// keychain calls are swappable for tests.
	keyringGet    func(service, user string) (string, error)
	keyringSet    func(service, user, password string) error
	keyringDelete func(service, user string) error
}

// NewStore returns a Store using the OS keychain with the default file
// fallback directory.
func NewStore() (*Store, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve home directory: %w", err)
	}
	return &Store{
		dir:           filepath.Join(home, ".resume-tailor"),
		keyringGet:    keyring.Get,
		keyringSet:    keyring.Set,
		keyringDelete: keyring.Delete,
	}, nil
}

// Get returns the stored key for provider, preferring the keychain over the
// file fallback. Returns *MissingError when neither has one.
func (s *Store) Get(provider string) (string, error) {
	if key, err := s.keyringGet(service, provider); err == nil && key != "" {
		return key, nil
	}

	data, err := os.ReadFile(s.keyFile(provider))
	if err == nil {
		if key := strings.TrimSpace(string(data)); key != "" {
			return key, nil
		}
	}

	return "", &MissingError{Provider: provider}
}

// Set stores the key for provider. The keychain is tried first; when it
// fails the key is written to the fallback file instead.
func (s *Store) Set(provider, key string) error {
	key = strings.TrimSpace(key)
	if key == "" {
		return fmt.Errorf("refusing to store an empty key for provider %q", provider)
	}

	if err := s.keyringSet(service, provider, key); err == nil {
		return nil
	}

	if err := os.MkdirAll(s.dir, 0o700); err != nil {
		return fmt.Errorf("failed to create credential directory: %w", err)
	}
	if err := os.WriteFile(s.keyFile(provider), []byte(key+"\n"), 0o600); err != nil {
		return fmt.Errorf("failed to write credential file: %w", err)
	}
	return nil
}

// Clear removes the key for provider from both backends. Clearing a provider
// that has no key is not an error.
func (s *Store) Clear(provider string) error {
	_ = s.keyringDelete(service, provider)

	err := os.Remove(s.keyFile(provider))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove credential file: %w", err)
	}
	return nil
}

func (s *Store) keyFile(provider string) string {
	return filepath.Join(s.dir, provider+".key")
}
