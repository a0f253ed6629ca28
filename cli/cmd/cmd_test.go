package cmd

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/alecthomas/kong"
)

const trainYAML = `name: train
count: 2
fields:
  - name: epochs
    type: int
    default: 10
  - name: lr
    type: float
    default: 0.01
  - name: data
    type: string
`

const evalYAML = `name: eval
fields:
  - name: lr
    type: float
    default: 0.5
  - name: seed
    type: int
    default: 1
`

// writeFile writes content to name under dir and returns its path.
func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	return path
}

// testContext returns a context holding a kong context that writes to out,
// and the schema files in paths.
func testContext(t *testing.T, out *bytes.Buffer, paths ...string) context.Context {
	t.Helper()

	var cli struct{}

	parser, err := kong.New(&cli,
		kong.Writers(out, out),
		kong.Exit(func(int) {}),
	)
	if err != nil {
		t.Fatal(err)
	}

	ktx, err := parser.Parse(nil)
	if err != nil {
		t.Fatal(err)
	}

	return WithSchemaFiles(WithContext(context.Background(), ktx), paths)
}

// TestWithSchemaFilesEmpty tests that an empty path list stores nil.
func TestWithSchemaFilesEmpty(t *testing.T) {
	for _, paths := range [][]string{nil, {}} {
		if files := schemaFilesFrom(WithSchemaFiles(context.Background(), paths)); files != nil {
			t.Errorf("WithSchemaFiles(%v) should store nil, got %v", paths, files.Paths())
		}
	}
}

// TestWithSchemaFilesDocuments tests reading documents from multiple files.
func TestWithSchemaFilesDocuments(t *testing.T) {
	dir := t.TempDir()
	train := writeFile(t, dir, "train.yaml", trainYAML)
	eval := writeFile(t, dir, "eval.yaml", evalYAML)

	files := schemaFilesFrom(WithSchemaFiles(context.Background(), []string{train, eval}))
	if files == nil {
		t.Fatal("WithSchemaFiles should store files for valid paths")
	}

	docs, err := files.Documents()
	if err != nil {
		t.Fatalf("Documents() error: %v", err)
	}

	if len(docs) != 2 {
		t.Fatalf("got %d documents, want 2", len(docs))
	}

	for i, want := range []string{"train", "eval"} {
		if docs[i].Name != want {
			t.Errorf("docs[%d].Name = %q, want %q", i, docs[i].Name, want)
		}
	}
}

// TestWithSchemaFilesDuplicates tests that paths naming the same file are read
// once.
func TestWithSchemaFilesDuplicates(t *testing.T) {
	dir := t.TempDir()
	train := writeFile(t, dir, "train.yaml", trainYAML)

	link := filepath.Join(dir, "link.yaml")
	if err := os.Symlink(train, link); err != nil {
		t.Skipf("symlinks unsupported: %v", err)
	}

	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}

	rel, err := filepath.Rel(wd, train)
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name  string
		paths []string
	}{
		{"same_path", []string{train, train}},
		{"relative_absolute", []string{rel, train}},
		{"symlink", []string{link, train}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			files := schemaFilesFrom(WithSchemaFiles(context.Background(), tt.paths))
			if files == nil {
				t.Fatal("expected schema files")
			}

			if got := files.Paths(); len(got) != 1 {
				t.Errorf("got paths %v, want exactly one", got)
			}
		})
	}
}

// TestWithSchemaFilesStdinLast tests that all "-" paths collapse into one
// stdin source placed last.
func TestWithSchemaFilesStdinLast(t *testing.T) {
	train := writeFile(t, t.TempDir(), "train.yaml", trainYAML)

	files := schemaFilesFrom(WithSchemaFiles(context.Background(), []string{"-", train, "-"}))
	if files == nil {
		t.Fatal("expected schema files")
	}

	got := files.Paths()
	if len(got) != 2 {
		t.Fatalf("got paths %v, want 2", got)
	}

	if got[len(got)-1] != stdinSource {
		t.Errorf("last path = %q, want %q", got[len(got)-1], stdinSource)
	}
}

// TestWithSchemaFilesNonexistent tests that missing files are skipped.
func TestWithSchemaFilesNonexistent(t *testing.T) {
	dir := t.TempDir()
	train := writeFile(t, dir, "train.yaml", trainYAML)
	missing := filepath.Join(dir, "missing.yaml")

	files := schemaFilesFrom(WithSchemaFiles(context.Background(), []string{missing, train}))
	if files == nil {
		t.Fatal("expected schema files")
	}

	if got := files.Paths(); len(got) != 1 || got[0] == missing {
		t.Errorf("got paths %v, want only %q", got, train)
	}

	if files := schemaFilesFrom(WithSchemaFiles(context.Background(), []string{missing})); files != nil {
		t.Errorf("all nonexistent paths should store nil, got %v", files.Paths())
	}
}
