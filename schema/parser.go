package schema

import (
	"iter"
	"log/slog"
	"sync"

	"github.com/mattn/go-shellwords"
)

// Parser maps registered schemas onto command-line flags and builds schema
// instances from parsed arguments.
//
// Registration and parsing may be called from multiple goroutines. Parse only
// reads the registry, so concurrent Parse calls do not block each other.
type Parser struct {
	config

	mutex *sync.RWMutex
	regs  []*Registration
	dests map[Destination]*Registration
}

// NewParser creates an empty Parser.
func NewParser(opts ...Option) *Parser {
	return &Parser{
		config: makeConfig(opts...),
		mutex:  &sync.RWMutex{},
		dests:  make(map[Destination]*Registration),
	}
}

// Register adds schema s under the destination name dest.
//
// Each field of s becomes the Destination {dest, field}. If any of them is
// already registered, Register fails with [ErrDuplicateDestination] without
// changing the parser; earlier registrations remain usable. Register fails
// with [ErrDuplicateFlag] if a synthesized flag name is already taken, and
// with [ErrInvalidCount] if the instance count is below 1.
func (p *Parser) Register(
	s *Schema,
	dest string,
	opts ...RegisterOption,
) (*Registration, error) {
	if s == nil {
		return nil, ErrInvalidField.With(slog.String("reason", "nil schema"))
	}

	cfg := regConfig{count: 1}
	for _, opt := range opts {
		cfg = opt(cfg)
	}

	if cfg.count < 1 {
		return nil, ErrInvalidCount.With(
			slog.String("dest", dest),
			slog.Int("count", cfg.count),
		)
	}

	reg := &Registration{
		schema: s,
		dest:   dest,
		count:  cfg.count,
		prefix: cfg.prefix,
	}

	p.mutex.Lock()
	defer p.mutex.Unlock()

	if err := p.admit(reg); err != nil {
		return nil, err
	}

	p.log().Debug("schema registered",
		slog.String("dest", dest),
		slog.Any("schema", s),
		slog.Int("count", reg.count),
	)

	return reg, nil
}

// admit checks every Destination of reg, and the flag names it adds, before
// inserting any of them.
func (p *Parser) admit(reg *Registration) error {
	// A destination name holds one schema, whatever its fields.
	for _, r := range p.regs {
		if r.dest == reg.dest {
			return ErrDuplicateDestination.With(
				slog.String("dest", reg.dest),
				slog.String("schema", reg.schema.name),
				slog.String("registered", r.schema.name),
			)
		}
	}

	dests := reg.destinations()

	for _, d := range dests {
		if _, dup := p.dests[d]; dup {
			return ErrDuplicateDestination.With(slog.String("dest", d.String()))
		}
	}

	if _, err := synthesize(append(p.regs[:len(p.regs):len(p.regs)], reg), p.autoPrefix); err != nil {
		return err
	}

	for _, d := range dests {
		p.dests[d] = reg
	}

	p.regs = append(p.regs, reg)

	return nil
}

// Registrations returns an iterator over the registrations in order.
func (p *Parser) Registrations() iter.Seq[*Registration] {
	p.mutex.RLock()
	regs := p.regs[:len(p.regs):len(p.regs)]
	p.mutex.RUnlock()

	return func(yield func(*Registration) bool) {
		for _, r := range regs {
			if !yield(r) {
				return
			}
		}
	}
}

// Flags returns the flags synthesized for every registration, in
// registration and field order.
func (p *Parser) Flags() ([]Flag, error) {
	p.mutex.RLock()
	defer p.mutex.RUnlock()

	return synthesize(p.regs, p.autoPrefix)
}

// Parse parses args and builds the instances of every registration.
//
// Either every instance of every registration is built, or an error is
// returned and no instance is. If args request help and the exit function
// returns, the error is [ErrHelp].
func (p *Parser) Parse(args []string) (*Result, error) {
	p.mutex.RLock()
	defer p.mutex.RUnlock()

	flags, err := synthesize(p.regs, p.autoPrefix)
	if err != nil {
		return nil, err
	}

	p.log().Trace("flags synthesized",
		slog.Int("flags", len(flags)),
		slog.Int("args", len(args)),
	)

	raw, err := p.dispatch(flags, args)
	if err != nil {
		return nil, err
	}

	res := &Result{
		regs:      p.regs[:len(p.regs):len(p.regs)],
		instances: make(map[*Registration][]Instance, len(p.regs)),
	}

	// Flags are grouped by registration, in field order.
	next := 0

	for _, reg := range p.regs {
		n := reg.schema.Len()

		instances, err := reg.build(flags[next:next+n], raw[next:next+n])
		if err != nil {
			return nil, err
		}

		next += n
		res.instances[reg] = instances

		p.log().Debug("instances built",
			slog.String("dest", reg.dest),
			slog.Int("count", len(instances)),
		)
	}

	return res, nil
}

// ParseString splits line into arguments, honoring shell quoting, and
// parses them.
func (p *Parser) ParseString(line string) (*Result, error) {
	args, err := shellwords.Parse(line)
	if err != nil {
		return nil, ErrDispatch.Wrap(err).With(slog.String("line", line))
	}

	return p.Parse(args)
}

// Result holds the instances built by one [Parser.Parse] call.
type Result struct {
	regs      []*Registration
	instances map[*Registration][]Instance
}

// Instances returns the instances built for reg, or nil if reg was not
// registered when the result was parsed.
func (r *Result) Instances(reg *Registration) []Instance {
	return r.instances[reg]
}

// Lookup returns the instances built for the registration named dest.
func (r *Result) Lookup(dest string) ([]Instance, bool) {
	for _, reg := range r.regs {
		if reg.dest == dest {
			return r.instances[reg], true
		}
	}

	return nil, false
}

// All returns an iterator over each registration and its instances, in
// registration order.
func (r *Result) All() iter.Seq2[*Registration, []Instance] {
	return func(yield func(*Registration, []Instance) bool) {
		for _, reg := range r.regs {
			if !yield(reg, r.instances[reg]) {
				return
			}
		}
	}
}

// Build registers s under its own name with n instances on a new Parser,
// then parses args.
func Build(s *Schema, n int, args []string, opts ...Option) ([]Instance, error) {
	p := NewParser(opts...)

	reg, err := p.Register(s, s.Name(), WithCount(n))
	if err != nil {
		return nil, err
	}

	res, err := p.Parse(args)
	if err != nil {
		return nil, err
	}

	return res.Instances(reg), nil
}

// BuildString is like [Build] but splits line into arguments, honoring
// shell quoting.
func BuildString(s *Schema, n int, line string, opts ...Option) ([]Instance, error) {
	args, err := shellwords.Parse(line)
	if err != nil {
		return nil, ErrDispatch.Wrap(err).With(slog.String("line", line))
	}

	return Build(s, n, args, opts...)
}
