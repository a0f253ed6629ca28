package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/goccy/go-yaml"

	"github.com/ardnew/schemaflag/log"
)

// resolve is a [kong.ConfigurationLoader] that parses YAML config files.
//
// It can be used with [kong.Configuration] like this:
//
//	kong.Configuration(resolve, "/path/to/config.yaml")
//
// Keys name flags without the leading dashes. Hyphens and underscores are
// interchangeable, and nested mappings are joined with hyphens, so these are
// equivalent:
//
//	log-level: debug
//	log_level: debug
//	log:
//	  level: debug
//
// Command-line flags override config file values. A file that cannot be
// parsed is logged and ignored.
func resolve(r io.Reader) (kong.Resolver, error) {
	var doc map[string]any

	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if !errors.Is(err, io.EOF) {
			log.Warn("ignoring configuration file", slog.String("error", err.Error()))
		}

		return config{}, nil
	}

	cfg := make(config)
	cfg.flatten("", doc)

	return cfg, nil
}

// config implements [kong.Resolver] for YAML configs.
// Keys are normalized with [normalizeKey].
type config map[string]any

// Validate implements [kong.Resolver].
func (r config) Validate(*kong.Application) error {
	// No validation needed - the config was already parsed successfully
	return nil
}

// Resolve implements [kong.Resolver].
func (r config) Resolve(
	_ *kong.Context,
	_ *kong.Path,
	flag *kong.Flag,
) (any, error) {
	// Not found - return nil to let Kong use defaults
	return r[normalizeKey(flag.Name)], nil
}

// flatten stores each leaf of node under its hyphen-joined key path.
func (r config) flatten(prefix string, node map[string]any) {
	for key, value := range node {
		key = normalizeKey(key)
		if prefix != "" {
			key = prefix + "-" + key
		}

		if m, ok := value.(map[string]any); ok {
			r.flatten(key, m)

			continue
		}

		r[key] = scalar(value)
	}
}

func normalizeKey(key string) string {
	return strings.ReplaceAll(strings.ToLower(key), "_", "-")
}

// scalar converts decoded YAML values to what Kong can parse.
// Kong requires numbers as strings for parsing.
func scalar(value any) any {
	switch v := value.(type) {
	case int64:
		return strconv.FormatInt(v, 10)
	case uint64:
		return strconv.FormatUint(v, 10)
	case int:
		return strconv.Itoa(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case []any:
		out := make([]any, len(v))
		for i, e := range v {
			out[i] = scalar(e)
		}

		return out
	case nil, bool, string:
		return v
	default:
		return fmt.Sprint(v)
	}
}
