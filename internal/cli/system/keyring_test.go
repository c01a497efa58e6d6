package system

import (
	"testing"

	gokeyring "github.com/zalando/go-keyring"

	"github.com/julianstephens/intake/internal/constants"
	"github.com/julianstephens/intake/internal/keyring"
)

func TestKeySetCmd(t *testing.T) {
	gokeyring.MockInit()
	defer func() { _ = keyring.DeleteAPIKey() }()

	tests := []struct {
		name      string
		key       string
		wantError bool
	}{
		{
			name:      "valid key",
			key:       "test-api-key-1234",
			wantError: false,
		},
		{
			name:      "empty key",
			key:       "",
			wantError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := &KeySetCmd{Key: tt.key}
			err := cmd.Run(nil)

			if tt.wantError && err == nil {
				t.Error("expected error, got nil")
			}
			if !tt.wantError && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestKeySetThenShowAndDelete(t *testing.T) {
	gokeyring.MockInit()
	t.Setenv(constants.APIKeyEnvVar, "")

	setCmd := &KeySetCmd{Key: "test-api-key-9876"}
	if err := setCmd.Run(nil); err != nil {
		t.Fatalf("set command failed: %v", err)
	}

	showCmd := &KeyShowCmd{}
	if err := showCmd.Run(nil); err != nil {
		t.Errorf("show command failed: %v", err)
	}

	deleteCmd := &KeyDeleteCmd{}
	if err := deleteCmd.Run(nil); err != nil {
		t.Errorf("delete command failed: %v", err)
	}

	// Second delete should report nothing to delete
	if err := deleteCmd.Run(nil); err == nil {
		t.Error("delete on empty keyring should fail")
	}

	if err := showCmd.Run(nil); err == nil {
		t.Error("show after delete should fail")
	}
}

func TestMaskKey(t *testing.T) {
	tests := []struct {
		key  string
		want string
	}{
		{"abcdefgh1234", "****1234"},
		{"abc", "****"},
		{"", "****"},
	}

	for _, tt := range tests {
		if got := maskKey(tt.key); got != tt.want {
			t.Errorf("maskKey(%q) = %q, want %q", tt.key, got, tt.want)
		}
	}
}
