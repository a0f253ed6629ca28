// Package log provides a concurrency-safe leveled logger based on
// [log/slog].
//
// Output format, timestamp layout and caller information are fixed when a
// [Logger] is created, using functional options. A Logger is immutable:
// [Logger.Wrap] and [Logger.With] return new loggers.
//
// # Basic Usage
//
//	logger := log.Make(os.Stderr,
//		log.WithLevel(log.LevelDebug),
//		log.WithFormat(log.FormatJSON),
//		log.WithTimeLayout("RFC3339Nano"))
//
//	logger.Info("instances built", slog.String("dest", "train"))
//
// # Package Default
//
// The package-level functions such as [Info] and [DebugContext] log with a
// default Logger writing to [os.Stderr]. [Config] reconfigures it:
//
//	log.Config(log.WithLevel(log.ParseLevel("trace")))
//
// # Levels
//
// [LevelTrace] sits below [LevelDebug]. Levels are reported in lower case,
// so trace messages read "trace" rather than slog's "DEBUG-4".
//
// # Pretty Output
//
// With [WithPretty], text output is colorized with lipgloss when writing to a
// terminal, and JSON output is indented.
package log
