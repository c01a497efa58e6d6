package system

import (
	"errors"
	"fmt"

	"github.com/julianstephens/intake/internal/cli"
	"github.com/julianstephens/intake/internal/keyring"
)

// KeySetCmd stores the analysis API key in the OS keyring
type KeySetCmd struct {
	Key string `arg:"" help:"API key for the image analysis service."`
}

func (cmd *KeySetCmd) Run(ctx *cli.Context) error {
	if cmd.Key == "" {
		return errors.New("API key must not be empty")
	}

	if err := keyring.SetAPIKey(cmd.Key); err != nil {
		return fmt.Errorf("failed to store API key in keyring: %w", err)
	}

	fmt.Println("✓ API key stored successfully in OS keyring")
	return nil
}

// KeyShowCmd shows whether an API key is stored, without printing it
type KeyShowCmd struct{}

func (cmd *KeyShowCmd) Run(ctx *cli.Context) error {
	key, err := keyring.GetAPIKey()
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return errors.New("no API key found. Use 'intake key set' to store one")
		}
		return fmt.Errorf("failed to retrieve API key: %w", err)
	}

	fmt.Printf("API key is configured: %s\n", maskKey(key))
	return nil
}

// KeyDeleteCmd removes the analysis API key from the OS keyring
type KeyDeleteCmd struct{}

func (cmd *KeyDeleteCmd) Run(ctx *cli.Context) error {
	err := keyring.DeleteAPIKey()
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return errors.New("no API key found in keyring")
		}
		return fmt.Errorf("failed to delete API key from keyring: %w", err)
	}

	fmt.Println("✓ API key deleted from OS keyring")
	return nil
}

// KeyStatusCmd checks the availability of the OS keyring
type KeyStatusCmd struct{}

func (cmd *KeyStatusCmd) Run(ctx *cli.Context) error {
	if keyring.IsAvailable() {
		fmt.Println("✓ OS keyring is available")

		_, err := keyring.GetAPIKey()
		if err == nil {
			fmt.Println("✓ API key is stored")
		} else if errors.Is(err, keyring.ErrNotFound) {
			fmt.Println("ℹ No API key stored")
		}
	} else {
		fmt.Println("❌ OS keyring is not available on this system")
		return errors.New("keyring unavailable")
	}
	return nil
}

// maskKey shows only the last four characters of a key
func maskKey(key string) string {
	if len(key) <= 4 {
		return "****"
	}
	return "****" + key[len(key)-4:]
}
