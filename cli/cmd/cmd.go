package cmd

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"syscall"

	"github.com/alecthomas/kong"

	"github.com/ardnew/schemaflag/schema"
)

// ContextKey is used to store a [kong.Context] value in [context.Context].
type contextKey struct{}

// WithContext returns a new context.Context containing the given kong.Context.
func WithContext(ctx context.Context, ktx *kong.Context) context.Context {
	return context.WithValue(ctx, contextKey{}, ktx)
}

func kongContextFrom(ctx context.Context) *kong.Context {
	ktx, ok := ctx.Value(contextKey{}).(*kong.Context)
	if !ok || ktx == nil {
		return nil
	}

	return ktx
}

type (
	schemaFilesKey struct{}
	schemaFiles    struct {
		paths    []string
		hasStdin bool
	}

	// SchemaFiles is the set of schema documents named on the command line.
	SchemaFiles interface {
		IsZero() bool
		Paths() []string
		Documents() ([]*schema.Document, error)
	}
)

// IsZero reports whether there are no schema files.
func (s *schemaFiles) IsZero() bool { return len(s.paths) == 0 && !s.hasStdin }

// Paths returns the resolved path of each schema file in order, with
// [stdinSource] last if stdin was included.
func (s *schemaFiles) Paths() []string {
	paths := s.paths[:len(s.paths):len(s.paths)]
	if s.hasStdin {
		paths = append(paths, stdinSource)
	}

	return paths
}

// Documents reads one schema document from each file in order.
// Stdin is read last.
func (s *schemaFiles) Documents() ([]*schema.Document, error) {
	docs := make([]*schema.Document, 0, len(s.paths)+1)

	for _, path := range s.Paths() {
		doc, err := readDocument(path)
		if err != nil {
			return nil, ErrReadSchema.
				With(slog.String("file", path)).
				Wrap(err)
		}

		docs = append(docs, doc)
	}

	return docs, nil
}

func readDocument(path string) (*schema.Document, error) {
	if path == stdinSource {
		return schema.ReadDocument(os.Stdin)
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return schema.ReadDocument(file)
}

// fileKey uniquely identifies a file by its device and inode numbers.
// This handles deduplication across symlinks, absolute/relative paths, and
// special device files.
type fileKey struct {
	dev uint64
	ino uint64
}

// stdinSource is the special source indicator for reading from stdin.
const stdinSource = "-"

// WithSchemaFiles returns a new context.Context containing the schema files
// named by paths.
//
// Paths naming the same file, through symlinks or relative paths, are read
// once. All occurrences of "-" are replaced with a single stdin source placed
// last.
func WithSchemaFiles(ctx context.Context, paths []string) context.Context {
	return context.WithValue(ctx, schemaFilesKey{}, buildSchemaFiles(paths))
}

func buildSchemaFiles(paths []string) SchemaFiles {
	if len(paths) == 0 {
		return nil
	}

	var files schemaFiles

	files.paths = make([]string, 0, len(paths))
	seen := make(map[fileKey]struct{})

	stdinKey, _ := statFileKey(os.Stdin.Stat())

	for _, path := range paths {
		if path == stdinSource {
			seen[stdinKey] = struct{}{}

			continue
		}

		resolved, ok := resolveUniqueFile(path, seen)
		if !ok {
			continue
		}

		files.paths = append(files.paths, resolved)
	}

	// Stdin may have been included via "-" or as a named file.
	// Both of which will be represented by stdinKey in seen.
	_, files.hasStdin = seen[stdinKey]

	if files.IsZero() {
		return nil
	}

	return &files
}

// resolveUniqueFile returns the resolved path of the file at path if it hasn't
// been seen before.
// It returns false if the file is a duplicate or does not exist.
func resolveUniqueFile(path string, seen map[fileKey]struct{}) (string, bool) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", false
	}

	resolved, err := filepath.EvalSymlinks(absPath)
	if err != nil {
		return "", false
	}

	key, ok := statFileKey(os.Stat(resolved))
	if !ok {
		return "", false
	}

	if _, exists := seen[key]; exists {
		return "", false
	}

	seen[key] = struct{}{}

	return resolved, true
}

// statFileKey creates a fileKey from the result of a stat call.
// Returns false if err is non-nil or the underlying Sys() data is not of type
// *syscall.Stat_t.
func statFileKey(info os.FileInfo, err error) (key fileKey, ok bool) {
	if err != nil {
		return key, false
	}

	stat, ok := info.Sys().(*syscall.Stat_t)
	if !ok {
		return key, false
	}

	//nolint:unconvert // Dev is not uint64 on every platform
	return fileKey{dev: uint64(stat.Dev), ino: stat.Ino}, true
}

// schemaFilesFrom retrieves the schema files stored in ctx by
// WithSchemaFiles. Returns nil if none were stored.
func schemaFilesFrom(ctx context.Context) SchemaFiles {
	s, _ := ctx.Value(schemaFilesKey{}).(SchemaFiles)

	return s
}

// output returns the writer for command output.
func output(ctx context.Context) io.Writer {
	if ktx := kongContextFrom(ctx); ktx != nil && ktx.Stdout != nil {
		return ktx.Stdout
	}

	return os.Stdout
}
