package schema

import (
	"io"
	"os"

	"github.com/ardnew/schemaflag/log"
)

// Option applies a configuration option to a [Parser].
type Option func(config) config

// config holds the configuration options for a Parser.
type config struct {
	name        string
	description string
	exit        func(int)
	stdout      io.Writer
	stderr      io.Writer
	logger      *log.Logger
	autoPrefix  bool
}

func makeConfig(opts ...Option) config {
	c := config{
		name:   "schemaflag",
		exit:   os.Exit,
		stdout: os.Stdout,
		stderr: os.Stderr,
	}

	for _, opt := range opts {
		c = opt(c)
	}

	return c
}

// log returns the configured logger, falling back to the package default of
// [log] at the time of the call.
func (c config) log() log.Logger {
	if c.logger != nil {
		return *c.logger
	}

	return log.Default()
}

// WithName sets the program name shown in help output.
func WithName(name string) Option {
	return func(c config) config {
		c.name = name

		return c
	}
}

// WithDescription sets the description shown in help output.
func WithDescription(description string) Option {
	return func(c config) config {
		c.description = description

		return c
	}
}

// WithExit sets the function called after help is printed.
// The default is [os.Exit].
func WithExit(exit func(int)) Option {
	return func(c config) config {
		if exit != nil {
			c.exit = exit
		}

		return c
	}
}

// WithWriters sets the writers for help and usage output.
// A nil writer leaves the corresponding default in place.
func WithWriters(stdout, stderr io.Writer) Option {
	return func(c config) config {
		if stdout != nil {
			c.stdout = stdout
		}

		if stderr != nil {
			c.stderr = stderr
		}

		return c
	}
}

// WithLogger sets the logger for registration and parse events.
func WithLogger(logger log.Logger) Option {
	return func(c config) config {
		c.logger = &logger

		return c
	}
}

// WithAutoPrefix resolves flag name conflicts between registrations by
// prefixing every conflicting flag with its destination name, as in
// "--train.lr" and "--eval.lr". Without it, a conflicting registration fails
// with [ErrDuplicateFlag].
func WithAutoPrefix() Option {
	return func(c config) config {
		c.autoPrefix = true

		return c
	}
}

// RegisterOption applies a configuration option to one registration.
type RegisterOption func(regConfig) regConfig

type regConfig struct {
	count  int
	prefix string
}

// WithCount sets the number of instances to build, which defaults to 1.
func WithCount(n int) RegisterOption {
	return func(c regConfig) regConfig {
		c.count = n

		return c
	}
}

// WithPrefix sets a prefix prepended to every flag name of the registration.
func WithPrefix(prefix string) RegisterOption {
	return func(c regConfig) regConfig {
		c.prefix = prefix

		return c
	}
}
