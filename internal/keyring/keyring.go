// Package keyring stores the analysis service API key in the OS keyring.
//
// The key is the single external secret the application needs. Storing it
// in the keyring keeps it out of shell history and config files; the
// INTAKE_API_KEY environment variable remains available as a fallback for
// headless machines without a keyring daemon.
package keyring

import (
	"errors"
	"fmt"
	"os"

	"github.com/zalando/go-keyring"

	"github.com/julianstephens/intake/internal/constants"
)

var (
	// ErrNotFound is returned when no API key is stored anywhere
	ErrNotFound = errors.New("API key not found in keyring")
	// ErrKeyringUnavailable is returned when the OS keyring is not available
	ErrKeyringUnavailable = errors.New("OS keyring is not available")
)

// GetAPIKey retrieves the analysis API key, preferring the OS keyring and
// falling back to the environment. Returns ErrNotFound if neither is set.
func GetAPIKey() (string, error) {
	key, err := keyring.Get(constants.AppName, constants.KeyringUser)
	if err == nil && key != "" {
		return key, nil
	}

	if env := os.Getenv(constants.APIKeyEnvVar); env != "" {
		return env, nil
	}

	if err == keyring.ErrNotFound || err == nil {
		return "", ErrNotFound
	}
	return "", fmt.Errorf("%w: %v", ErrKeyringUnavailable, err)
}

// SetAPIKey stores the analysis API key in the OS keyring.
func SetAPIKey(key string) error {
	if key == "" {
		return errors.New("API key cannot be empty")
	}
	if err := keyring.Set(constants.AppName, constants.KeyringUser, key); err != nil {
		return fmt.Errorf("failed to store API key in keyring: %w", err)
	}
	return nil
}

// DeleteAPIKey removes the analysis API key from the OS keyring.
func DeleteAPIKey() error {
	err := keyring.Delete(constants.AppName, constants.KeyringUser)
	if err != nil {
		if err == keyring.ErrNotFound {
			return ErrNotFound
		}
		return fmt.Errorf("failed to delete API key from keyring: %w", err)
	}
	return nil
}

// IsAvailable checks if the OS keyring is available on the current system.
// This is a best-effort check and may not catch all failure scenarios.
func IsAvailable() bool {
	_, err := keyring.Get(constants.AppName, "test-availability")
	return err == nil || err == keyring.ErrNotFound
}
