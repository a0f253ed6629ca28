package cmd

import (
	"context"
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// Flags prints the flags synthesized for every schema.
type Flags struct {
	Count int `help:"Instances per schema, overriding each document's count" short:"n"`
}

// Run executes the flags command.
func (f *Flags) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	parser, err := newParser(ctx, "flags", f.Count)
	if err != nil {
		return err
	}

	flags, err := parser.Flags()
	if err != nil {
		return ErrRegister.Wrap(err)
	}

	w := output(ctx)
	r := lipgloss.NewRenderer(w)
	name := r.NewStyle().Bold(true).Padding(0, 1)
	required := r.NewStyle().Foreground(lipgloss.Color("1")).Padding(0, 1)
	cell := r.NewStyle().Padding(0, 1)

	rows := make([][]string, len(flags))
	for i, flag := range flags {
		def := "required"
		if !flag.Required {
			def = fmt.Sprint(flag.Default)
		}

		rows[i] = []string{
			"--" + flag.Name,
			flag.Placeholder(),
			flag.Dest.String(),
			def,
			flag.Help,
		}
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(r.NewStyle().Faint(true)).
		Headers("FLAG", "VALUES", "DESTINATION", "DEFAULT", "HELP").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow, col == 0:
				return name
			case col == 3 && flags[row].Required:
				return required
			default:
				return cell
			}
		})

	_, err = fmt.Fprintln(w, t.Render())

	return err
}
