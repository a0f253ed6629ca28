package log

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
)

func TestPackage_LogFunctions_UseDefaultLogger(t *testing.T) {
	original := Default()
	defer func() {
		defaultMutex.Lock()
		defaultLog = original
		defaultMutex.Unlock()
	}()

	var buf bytes.Buffer

	Config(WithOutput(&buf), WithLevel(LevelTrace), WithFormat(FormatJSON), WithPretty(false))

	ctx := context.Background()

	tests := []struct {
		name  string
		fn    func(string, ...slog.Attr)
		level string
	}{
		{"Trace", Trace, "trace"},
		{"Debug", Debug, "debug"},
		{"Info", Info, "info"},
		{"Warn", Warn, "warn"},
		{"Error", Error, "error"},
		{"TraceContext", func(m string, a ...slog.Attr) { TraceContext(ctx, m, a...) }, "trace"},
		{"DebugContext", func(m string, a ...slog.Attr) { DebugContext(ctx, m, a...) }, "debug"},
		{"InfoContext", func(m string, a ...slog.Attr) { InfoContext(ctx, m, a...) }, "info"},
		{"WarnContext", func(m string, a ...slog.Attr) { WarnContext(ctx, m, a...) }, "warn"},
		{"ErrorContext", func(m string, a ...slog.Attr) { ErrorContext(ctx, m, a...) }, "error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf.Reset()
			tt.fn("package message", slog.String("key", "value"))

			out := buf.String()
			for _, want := range []string{"package message", `"level":"` + tt.level + `"`, `"key":"value"`} {
				if !strings.Contains(out, want) {
					t.Errorf("expected %q in output: %s", want, out)
				}
			}
		})
	}
}

func TestPackage_Config_KeepsEarlierOptions(t *testing.T) {
	original := Default()
	defer func() {
		defaultMutex.Lock()
		defaultLog = original
		defaultMutex.Unlock()
	}()

	var buf bytes.Buffer

	Config(WithOutput(&buf), WithFormat(FormatJSON))
	Config(WithLevel(LevelDebug))

	if Default().Format() != FormatJSON {
		t.Errorf("expected format json, got %v", Default().Format())
	}

	Debug("kept")

	if !strings.Contains(buf.String(), "kept") {
		t.Errorf("expected output in configured writer, got %q", buf.String())
	}
}
