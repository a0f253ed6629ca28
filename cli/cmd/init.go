package cmd

import (
	"context"
	"log/slog"
	"os"

	"github.com/ardnew/schemaflag/log"
	"github.com/ardnew/schemaflag/schema"
)

// defaultFileMode is the permission mode of written schema files.
const defaultFileMode os.FileMode = 0o644

// Init writes an example schema document.
type Init struct {
	Force bool   `help:"Overwrite an existing file" short:"f"`
	File  string `arg:"" default:"-" help:"Output file or '-' for stdout"`
}

// Example returns the schema written by the init command.
func Example() *schema.Schema {
	return schema.MustNew("train",
		schema.Optional("epochs", schema.Int, 10).
			Describe("number of passes over the data set").
			Where("value > 0"),
		schema.Optional("lr", schema.Float, 0.01).
			Describe("learning rate"),
		schema.Optional("shape", schema.Tuple(schema.Int, 2), []int{28, 28}).
			Describe("input width and height"),
		schema.Optional("layers", schema.List(schema.Int), []int{64}).
			Describe("hidden layer sizes"),
		schema.Required("data", schema.String).
			Describe("path to the training data"),
		schema.Optional("verbose", schema.Bool, false),
	)
}

// Run executes the init command.
func (i *Init) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	doc := schema.DocumentOf(Example())
	doc.Count = 2

	buf, err := doc.Marshal()
	if err != nil {
		return ErrWriteSchema.Wrap(err)
	}

	if i.File == "" || i.File == stdinSource {
		_, err = output(ctx).Write(buf)

		return err
	}

	// Check if file exists and force not set
	_, err = os.Stat(i.File)
	if err == nil && !i.Force {
		return ErrWriteSchema.
			With(slog.String("file", i.File)).
			With(slog.Bool("exists", true)).
			Wrap(ErrFileExists)
	}

	if err := os.WriteFile(i.File, buf, defaultFileMode); err != nil {
		return ErrWriteSchema.
			With(slog.String("file", i.File)).
			Wrap(err)
	}

	log.DebugContext(ctx, "wrote schema file",
		slog.String("path", i.File),
		slog.String("schema", doc.Name),
	)

	return nil
}
