package cmd

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/goccy/go-yaml"

	"github.com/ardnew/schemaflag/schema"
)

func TestParseRun(t *testing.T) {
	dir := t.TempDir()
	train := writeFile(t, dir, "train.yaml", trainYAML)
	eval := writeFile(t, dir, "eval.yaml", evalYAML)

	tests := []struct {
		name    string
		paths   []string
		cmd     Parse
		want    map[string][]map[string]any
		wantErr error
	}{
		{
			name:  "broadcast",
			paths: []string{train},
			cmd:   Parse{Format: "json", Args: []string{"--data", "d.csv"}},
			want: map[string][]map[string]any{
				"train": {
					{"epochs": 10.0, "lr": 0.01, "data": "d.csv"},
					{"epochs": 10.0, "lr": 0.01, "data": "d.csv"},
				},
			},
		},
		{
			name:  "positional_with_count",
			paths: []string{train},
			cmd:   Parse{Format: "json", Count: 3, Args: []string{"--data", "x", "--epochs", "1", "2", "3"}},
			want: map[string][]map[string]any{
				"train": {
					{"epochs": 1.0, "lr": 0.01, "data": "x"},
					{"epochs": 2.0, "lr": 0.01, "data": "x"},
					{"epochs": 3.0, "lr": 0.01, "data": "x"},
				},
			},
		},
		{
			name:  "two_schemas_prefixed",
			paths: []string{train, eval},
			cmd:   Parse{Format: "json", Args: []string{"--data", "x", "--eval.lr", "0.25", "--train.lr", "1"}},
			want: map[string][]map[string]any{
				"train": {
					{"epochs": 10.0, "lr": 1.0, "data": "x"},
					{"epochs": 10.0, "lr": 1.0, "data": "x"},
				},
				"eval": {
					{"lr": 0.25, "seed": 1.0},
				},
			},
		},
		{
			name:    "missing_required",
			paths:   []string{train},
			cmd:     Parse{Format: "json"},
			wantErr: schema.ErrMissingRequired,
		},
		{
			name:    "mismatch",
			paths:   []string{train},
			cmd:     Parse{Format: "json", Args: []string{"--data", "x", "--epochs", "1", "2", "3"}},
			wantErr: schema.ErrInstanceCountMismatch,
		},
		{
			name:    "invalid_count",
			paths:   []string{train},
			cmd:     Parse{Format: "json", Count: -1},
			wantErr: schema.ErrInvalidCount,
		},
		{
			name:    "no_schema",
			cmd:     Parse{Format: "json"},
			wantErr: ErrNoSchema,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer

			err := tt.cmd.Run(testContext(t, &out, tt.paths...))
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Parse.Run() error = %v, want %v", err, tt.wantErr)
				}

				return
			}

			if err != nil {
				t.Fatalf("Parse.Run() error = %v", err)
			}

			var got map[string][]map[string]any
			if err := json.Unmarshal(out.Bytes(), &got); err != nil {
				t.Fatalf("output is not JSON: %v\n%s", err, out.String())
			}

			if len(got) != len(tt.want) {
				t.Fatalf("got %d schemas, want %d", len(got), len(tt.want))
			}

			for dest, want := range tt.want {
				if len(got[dest]) != len(want) {
					t.Fatalf("%s: got %d instances, want %d", dest, len(got[dest]), len(want))
				}

				for i := range want {
					for k, v := range want[i] {
						if got[dest][i][k] != v {
							t.Errorf("%s[%d].%s = %v, want %v", dest, i, k, got[dest][i][k], v)
						}
					}
				}
			}
		})
	}
}

func TestParseFormats(t *testing.T) {
	train := writeFile(t, t.TempDir(), "train.yaml", trainYAML)
	args := []string{"--data", "a", "b"}

	tests := []struct {
		format string
		check  func(t *testing.T, out string)
	}{
		{"yaml", func(t *testing.T, out string) {
			var got map[string][]map[string]any
			if err := yaml.Unmarshal([]byte(out), &got); err != nil {
				t.Fatalf("output is not YAML: %v\n%s", err, out)
			}

			if len(got["train"]) != 2 || got["train"][1]["data"] != "b" {
				t.Errorf("unexpected YAML output:\n%s", out)
			}

			if strings.Index(out, "epochs") > strings.Index(out, "data") {
				t.Errorf("fields out of declaration order:\n%s", out)
			}
		}},
		{"text", func(t *testing.T, out string) {
			for _, want := range []string{"train (2)", "epochs", "lr", "data", "a", "b"} {
				if !strings.Contains(out, want) {
					t.Errorf("text output missing %q:\n%s", want, out)
				}
			}
		}},
		{"dump", func(t *testing.T, out string) {
			for _, want := range []string{`"train"`, `"data"`, `(string) (len=1) "a"`} {
				if !strings.Contains(out, want) {
					t.Errorf("dump output missing %q:\n%s", want, out)
				}
			}
		}},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			var out bytes.Buffer

			cmd := Parse{Format: tt.format, Args: args}
			if err := cmd.Run(testContext(t, &out, train)); err != nil {
				t.Fatalf("Parse.Run() error = %v", err)
			}

			tt.check(t, out.String())
		})
	}
}

func TestParseUnknownFormat(t *testing.T) {
	train := writeFile(t, t.TempDir(), "train.yaml", trainYAML)

	var out bytes.Buffer

	cmd := Parse{Format: "xml", Args: []string{"--data", "a"}}
	if err := cmd.Run(testContext(t, &out, train)); !errors.Is(err, ErrUnknownStyle) {
		t.Errorf("Parse.Run() error = %v, want %v", err, ErrUnknownStyle)
	}
}

func TestParseHelp(t *testing.T) {
	train := writeFile(t, t.TempDir(), "train.yaml", trainYAML)

	var out bytes.Buffer

	cmd := Parse{Format: "json", Args: []string{"--help"}}
	if err := cmd.Run(testContext(t, &out, train)); err != nil {
		t.Fatalf("Parse.Run() error = %v", err)
	}

	if !strings.Contains(out.String(), "Usage:") {
		t.Errorf("Parse.Run() output should contain usage, got %q", out.String())
	}

	if strings.Contains(out.String(), `"data"`) {
		t.Errorf("Parse.Run() should print no instances after help, got %q", out.String())
	}
}
