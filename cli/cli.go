package cli

import (
	"context"

	"github.com/alecthomas/kong"

	"github.com/ardnew/schemaflag/cli/cmd"
	"github.com/ardnew/schemaflag/pkg"
)

// CLI is the top-level command-line interface for schemaflag.
type CLI struct {
	Log   logConfig   `embed:"" group:"log"   prefix:"log-"`
	Pprof pprofConfig `embed:"" group:"pprof" prefix:"pprof-"`

	Version kong.VersionFlag `help:"Print version and exit" short:"V"`

	Schema []string `help:"Schema document file(s) or '-' for stdin" name:"schema" short:"s" type:"existingfile"`

	Init  cmd.Init  `cmd:"" help:"Write an example schema document"`
	Flags cmd.Flags `cmd:"" help:"List the flags synthesized for each schema"`

	Parse cmd.Parse `cmd:"" default:"withargs" help:"Build schema instances from arguments"`
}

// options returns the Kong options of the schemaflag command. Commands receive
// the context.Context returned by provide when they run.
func (c *CLI) options(provide func() context.Context, exit func(int)) []kong.Option {
	config := configPath(baseConfig)

	return []kong.Option{
		kong.Name(pkg.Name),
		kong.Description(pkg.Description),
		kong.UsageOnError(),
		kong.Exit(exit),
		kong.ExplicitGroups([]kong.Group{c.Log.group(), c.Pprof.group()}),
		kong.BindSingletonProvider(provide),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			Summary:             true,
			Tree:                true,
			NoExpandSubcommands: true,
		}),
		kong.Configuration(kong.JSON, config+".json"),
		kong.Configuration(resolve, config+".yaml", config+".yml"),
		kong.Vars{"version": pkg.Version()}.
			CloneWith(c.Log.vars()).
			CloneWith(c.Pprof.vars()),
	}
}

// Run executes the schemaflag CLI with the given context and arguments.
// Kong calls exit after printing help or the version.
func Run(
	ctx context.Context,
	exit func(code int),
	args ...string,
) error {
	if err := mkdirAllRequired(); err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var cli CLI

	// Boolean logger flags have no TextUnmarshaler, so apply all of them
	// before Kong can log anything.
	cli.Log.scan(args)

	// The provider reads ctx when a command runs, after the values below are
	// added to it.
	parser, err := kong.New(&cli, cli.options(func() context.Context { return ctx }, exit)...)
	if err != nil {
		return err
	}

	ktx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	// Config files may have set logger flags the scan did not see.
	cli.Log.start(ctx)

	defer cli.Pprof.start(ctx)()

	ctx = cmd.WithSchemaFiles(cmd.WithContext(ctx, ktx), cli.Schema)

	return ktx.Run(ctx, &cli)
}
