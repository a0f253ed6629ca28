package cmd

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/ardnew/schemaflag/schema"
)

func TestFlagsRun(t *testing.T) {
	dir := t.TempDir()
	train := writeFile(t, dir, "train.yaml", trainYAML)
	eval := writeFile(t, dir, "eval.yaml", evalYAML)

	var out bytes.Buffer

	cmd := Flags{}
	if err := cmd.Run(testContext(t, &out, train, eval)); err != nil {
		t.Fatalf("Flags.Run() error = %v", err)
	}

	got := out.String()

	for _, want := range []string{
		"FLAG", "DEFAULT",
		"--epochs", "--train.lr", "--eval.lr", "--seed", "--data",
		"train.data", "required", "0.5",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("flags output missing %q:\n%s", want, got)
		}
	}
}

func TestFlagsNoSchema(t *testing.T) {
	var out bytes.Buffer

	cmd := Flags{}
	if err := cmd.Run(testContext(t, &out)); !errors.Is(err, ErrNoSchema) {
		t.Errorf("Flags.Run() error = %v, want %v", err, ErrNoSchema)
	}
}

func TestFlagsInvalidSchema(t *testing.T) {
	bad := writeFile(t, t.TempDir(), "bad.yaml", "name: bad\nfields:\n  - name: x\n    type: complex\n")

	var out bytes.Buffer

	cmd := Flags{}
	if err := cmd.Run(testContext(t, &out, bad)); !errors.Is(err, ErrRegister) {
		t.Errorf("Flags.Run() error = %v, want %v", err, ErrRegister)
	}
}

func TestFlagsDuplicateSchemaName(t *testing.T) {
	dir := t.TempDir()
	first := writeFile(t, dir, "first.yaml", "name: cfg\nfields:\n  - name: a\n    type: int\n    default: 1\n")
	second := writeFile(t, dir, "second.yaml", "name: cfg\nfields:\n  - name: b\n    type: int\n    default: 2\n")

	var out bytes.Buffer

	cmd := Flags{}

	err := cmd.Run(testContext(t, &out, first, second))
	if !errors.Is(err, ErrRegister) || !errors.Is(err, schema.ErrDuplicateDestination) {
		t.Errorf("Flags.Run() error = %v, want %v", err, schema.ErrDuplicateDestination)
	}
}
