package schema

import (
	"fmt"
	"log/slog"
	"reflect"
	"strconv"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/sahilm/fuzzy"
)

// valuesMapper names the kong mapper that collects flag values.
const valuesMapper = "schemaflag-values"

// occurrences is the field type of every flag in a dispatch grammar: the
// tokens following each occurrence of the flag, nil if it never occurred.
type occurrences = [][]string

// grammar builds a struct type kong can parse, with one field per flag.
func grammar(flags []Flag) reflect.Type {
	fields := make([]reflect.StructField, len(flags))

	for i, f := range flags {
		tag := fmt.Sprintf(`name:%q help:%q placeholder:%q type:%q`,
			f.Name, escapeHelp(f.Usage()), f.Placeholder(), valuesMapper)

		fields[i] = reflect.StructField{
			Name: "F" + strconv.Itoa(i),
			Type: reflect.TypeFor[occurrences](),
			Tag:  reflect.StructTag(tag),
		}
	}

	return reflect.StructOf(fields)
}

// escapeHelp keeps kong from interpolating variables in help text.
func escapeHelp(s string) string {
	return strings.ReplaceAll(s, "${", "$${")
}

// decodeValues is a [kong.MapperFunc] that greedily appends the value tokens
// following one occurrence of a flag.
//
// Consumption stops at the end of input or at the first token that looks like
// a flag. Negative numbers are values, not flags.
func decodeValues(ctx *kong.DecodeContext, target reflect.Value) error {
	tokens := []string{}

	for {
		t := ctx.Scan.Peek()
		if t.IsEOL() || !isValue(t) {
			break
		}

		tokens = append(tokens, fmt.Sprint(ctx.Scan.Pop().Value))
	}

	target.Set(reflect.Append(target, reflect.ValueOf(tokens)))

	return nil
}

func isValue(t kong.Token) bool {
	if t.IsValue() {
		return true
	}

	s, ok := t.Value.(string)

	return ok && t.Type == kong.UntypedToken && isNumber(s)
}

func isNumber(s string) bool {
	_, err := strconv.ParseFloat(s, 64)

	return err == nil
}

// dispatch parses args against flags with kong and returns the occurrences
// collected for each flag, indexed like flags.
func (c config) dispatch(flags []Flag, args []string) ([]occurrences, error) {
	if err := checkUnknown(flags, args); err != nil {
		return nil, err
	}

	target := reflect.New(grammar(flags))

	// Kong only exits after printing help.
	var helped bool

	parser, err := kong.New(target.Interface(),
		kong.Name(c.name),
		kong.Description(c.description),
		kong.Exit(func(code int) {
			helped = true

			c.exit(code)
		}),
		kong.Writers(c.stdout, c.stderr),
		kong.NamedMapper(valuesMapper, kong.MapperFunc(decodeValues)),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
	)
	if err != nil {
		return nil, ErrDispatch.Wrap(err)
	}

	_, err = parser.Parse(args)

	switch {
	case helped:
		return nil, ErrHelp
	case err != nil:
		return nil, ErrDispatch.Wrap(err)
	}

	raw := make([]occurrences, len(flags))
	for i := range flags {
		raw[i], _ = target.Elem().Field(i).Interface().(occurrences)
	}

	return raw, nil
}

// checkUnknown rejects the first long flag in args that names no flag,
// suggesting the closest known names.
func checkUnknown(flags []Flag, args []string) error {
	known := make(map[string]struct{}, len(flags)+1)
	names := make([]string, 0, len(flags))

	known[helpFlag] = struct{}{}

	for _, f := range flags {
		known[f.Name] = struct{}{}
		names = append(names, f.Name)
	}

	for _, arg := range args {
		if arg == "--" {
			return nil
		}

		name, ok := strings.CutPrefix(arg, "--")
		if !ok {
			continue
		}

		name, _, _ = strings.Cut(name, "=")
		if _, ok := known[name]; ok {
			continue
		}

		attrs := []slog.Attr{slog.String("flag", arg)}
		if suggest := suggestions(name, names); len(suggest) > 0 {
			attrs = append(attrs, slog.String("suggest", strings.Join(suggest, ", ")))
		}

		return ErrUnknownFlag.With(attrs...)
	}

	return nil
}

// maxSuggestions bounds the names reported for an unknown flag.
const maxSuggestions = 3

func suggestions(name string, names []string) []string {
	matches := fuzzy.Find(name, names)

	out := make([]string, 0, min(len(matches), maxSuggestions))
	for _, m := range matches {
		if len(out) == maxSuggestions {
			break
		}

		out = append(out, "--"+m.Str)
	}

	return out
}
