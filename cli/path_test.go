package cli

import (
	"errors"
	"path/filepath"
	"testing"
)

func TestUserDir(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	tests := []struct {
		name string
		base func() (string, error)
		want string
	}{
		{
			name: "base",
			base: func() (string, error) { return "/etc/xdg", nil },
			want: filepath.Join("/etc/xdg", "schemaflag"),
		},
		{
			name: "home_fallback",
			base: func() (string, error) { return "", errors.New("unset") },
			want: filepath.Join(home, ".config", "schemaflag"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := userDir(tt.base, ".config"); got != tt.want {
				t.Errorf("userDir() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestConfigPath(t *testing.T) {
	if got, want := configPath(baseConfig+".yaml"), filepath.Join(configDir(), "config.yaml"); got != want {
		t.Errorf("configPath() = %q, want %q", got, want)
	}
}
