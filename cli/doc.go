// Package cli contains the command line interface for schemaflag.
//
// # Usage
//
// Each schema document named with --schema is registered under its own name.
// Arguments after "--" are parsed against the flags synthesized for all of
// them:
//
//	schemaflag init train.yaml
//	schemaflag flags -s train.yaml
//	schemaflag -s train.yaml parse -n 3 -o yaml -- --data a.csv --lr 0.1 0.2 0.3
//
// When two schemas share a field name, both flags are prefixed with the
// schema name, as in --train.lr and --eval.lr.
//
// # Configuration
//
// Global flags may also be set in $XDG_CONFIG_HOME/schemaflag/config.yaml
// (or config.json). Keys are flag names, with hyphens or underscores, and
// nested mappings join with hyphens:
//
//	log:
//	  level: debug
//	  format: json
//	schema:
//	  - ~/schemas/train.yaml
//
// Command-line flags override config file values.
//
// # Logging Options
//
//   - --log-level: Set minimum log level (trace, debug, info, warn, error)
//   - --log-format: Set log output format (text, json)
//   - --log-time-layout: Set timestamp format (RFC3339, Kitchen, ms, none, etc.)
//   - --log-caller: Include caller information in log output
//   - --[no-]log-pretty: Colorize text output and indent JSON output
//
// # Profiling Options
//
// Profiling is only available when built with the pprof build tag:
//
//	go build -tags pprof -o schemaflag .
//
//   - --pprof-mode: Enable profiling (allocs, block, clock, cpu, goroutine,
//     heap, mem, mutex, thread, trace)
//   - --pprof-dir: Set profile output directory (default:
//     ~/.cache/schemaflag/pprof)
package cli
