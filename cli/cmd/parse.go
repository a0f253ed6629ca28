package cmd

import (
	"context"
	"errors"
	"log/slog"

	"github.com/ardnew/schemaflag/log"
	"github.com/ardnew/schemaflag/schema"
)

// Parse builds the instances of every schema from the given arguments and
// prints them.
type Parse struct {
	Count  int      `help:"Instances per schema, overriding each document's count" short:"n"`
	Format string   `default:"text" enum:"text,json,yaml,dump" help:"Output format (${enum})" short:"o"`
	Args   []string `arg:"" help:"Arguments for the schema flags, after '--'" optional:""`
}

// Run executes the parse command.
func (p *Parse) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	parser, err := newParser(ctx, "parse", p.Count)
	if err != nil {
		return err
	}

	res, err := parser.Parse(p.Args)
	if errors.Is(err, schema.ErrHelp) {
		// Usage was printed and the exit function returned.
		return nil
	}

	if err != nil {
		return ErrParse.Wrap(err)
	}

	format, ok := formats[p.Format]
	if !ok {
		return ErrUnknownStyle.With(slog.String("format", p.Format))
	}

	if err := format(output(ctx), res); err != nil {
		return ErrFormat.With(slog.String("format", p.Format)).Wrap(err)
	}

	log.DebugContext(ctx, "instances printed",
		slog.String("format", p.Format),
		slog.Int("args", len(p.Args)),
	)

	return nil
}
