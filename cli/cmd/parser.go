package cmd

import (
	"context"
	"log/slog"

	"github.com/ardnew/schemaflag/log"
	"github.com/ardnew/schemaflag/pkg"
	"github.com/ardnew/schemaflag/schema"
)

// newParser reads every schema file in ctx and registers each document under
// its own name. A positive count overrides the count of every document.
func newParser(ctx context.Context, command string, count int) (*schema.Parser, error) {
	files := schemaFilesFrom(ctx)
	if files == nil || files.IsZero() {
		return nil, ErrNoSchema.With(slog.String("command", command))
	}

	docs, err := files.Documents()
	if err != nil {
		return nil, err
	}

	opts := []schema.Option{
		schema.WithName(pkg.Name + " " + command),
		schema.WithDescription(pkg.Description),
		schema.WithLogger(log.Default()),
		schema.WithAutoPrefix(),
	}

	if ktx := kongContextFrom(ctx); ktx != nil {
		opts = append(opts,
			schema.WithWriters(ktx.Stdout, ktx.Stderr),
			schema.WithExit(ktx.Exit),
		)
	}

	p := schema.NewParser(opts...)

	for _, doc := range docs {
		s, err := doc.Schema()
		if err != nil {
			return nil, ErrRegister.With(slog.String("schema", doc.Name)).Wrap(err)
		}

		ro := doc.RegisterOptions()
		if count != 0 {
			ro = append(ro, schema.WithCount(count))
		}

		if _, err := p.Register(s, doc.Name, ro...); err != nil {
			return nil, ErrRegister.With(slog.String("schema", doc.Name)).Wrap(err)
		}
	}

	log.DebugContext(ctx, "schemas registered",
		slog.String("command", command),
		slog.Int("schemas", len(docs)),
	)

	return p, nil
}
