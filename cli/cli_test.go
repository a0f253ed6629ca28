package cli

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/ardnew/schemaflag/cli/cmd"
	"github.com/ardnew/schemaflag/log"
	"github.com/ardnew/schemaflag/schema"
)

func TestMain(m *testing.M) {
	dir, err := os.MkdirTemp("", "schemaflag-cli-test-*")
	if err != nil {
		panic(err)
	}

	// Keep runtime directories out of the user's home.
	os.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	os.Setenv("XDG_CACHE_HOME", filepath.Join(dir, "cache"))

	code := m.Run()

	os.RemoveAll(dir)
	os.Exit(code)
}

func TestRun(t *testing.T) {
	path := filepath.Join(t.TempDir(), "train.yaml")

	if err := Run(context.Background(), func(int) {}, "init", path); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	tests := []struct {
		name    string
		args    []string
		wantErr error
	}{
		{
			name: "flags",
			args: []string{"--schema", path, "flags"},
		},
		{
			name: "parse",
			args: []string{"-s", path, "parse", "-o", "json", "--", "--data", "a", "b"},
		},
		{
			name: "parse_default_command",
			args: []string{"-s", path, "--", "--data", "a"},
		},
		{
			name:    "missing_required",
			args:    []string{"-s", path, "parse"},
			wantErr: schema.ErrMissingRequired,
		},
		{
			name:    "no_schema",
			args:    []string{"flags"},
			wantErr: cmd.ErrNoSchema,
		},
		{
			name:    "init_exists",
			args:    []string{"init", path},
			wantErr: cmd.ErrFileExists,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Run(context.Background(), func(int) {}, tt.args...)
			if tt.wantErr == nil && err != nil {
				t.Fatalf("Run(%v) error = %v", tt.args, err)
			}

			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Fatalf("Run(%v) error = %v, want %v", tt.args, err, tt.wantErr)
			}
		})
	}
}

func TestLogScan(t *testing.T) {
	t.Cleanup(func() { log.Config(log.WithDefaults(os.Stderr)) })

	tests := []struct {
		name       string
		args       []string
		wantLevel  log.Level
		wantFormat log.Format
		wantPretty bool
		wantCaller bool
	}{
		{
			name:       "defaults",
			args:       []string{"parse", "--", "--lr", "1"},
			wantLevel:  log.DefaultLevel,
			wantFormat: log.DefaultFormat,
			wantPretty: true,
		},
		{
			name:       "separate_values",
			args:       []string{"--log-level", "debug", "--log-format", "json"},
			wantLevel:  log.LevelDebug,
			wantFormat: log.FormatJSON,
			wantPretty: true,
		},
		{
			name:       "assigned_values",
			args:       []string{"parse", "--log-level=trace", "--no-log-pretty", "--log-caller"},
			wantLevel:  log.LevelTrace,
			wantFormat: log.DefaultFormat,
			wantCaller: true,
		},
		{
			name:       "negated_assignment",
			args:       []string{"--no-log-pretty=false", "--log-caller=false"},
			wantLevel:  log.DefaultLevel,
			wantFormat: log.DefaultFormat,
			wantPretty: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			log.Config(log.WithDefaults(os.Stderr))

			cfg := logConfig{Pretty: true}
			cfg.scan(tt.args)

			if got := log.Default().Level(); got != tt.wantLevel {
				t.Errorf("level = %v, want %v", got, tt.wantLevel)
			}

			if got := log.Default().Format(); got != tt.wantFormat {
				t.Errorf("format = %v, want %v", got, tt.wantFormat)
			}

			if cfg.Pretty != tt.wantPretty {
				t.Errorf("pretty = %v, want %v", cfg.Pretty, tt.wantPretty)
			}

			if cfg.Caller != tt.wantCaller {
				t.Errorf("caller = %v, want %v", cfg.Caller, tt.wantCaller)
			}
		})
	}
}
