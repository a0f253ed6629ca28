package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/davecgh/go-spew/spew"
	"github.com/goccy/go-yaml"

	"github.com/ardnew/schemaflag/schema"
)

// formatter writes the instances of a parse result.
type formatter func(w io.Writer, res *schema.Result) error

//nolint:gochecknoglobals
var formats = map[string]formatter{
	"text": formatText,
	"json": formatJSON,
	"yaml": formatYAML,
	"dump": formatDump,
}

// fieldNames returns the field names of reg in declaration order.
func fieldNames(reg *schema.Registration) []string {
	var names []string
	for f := range reg.Schema().Fields() {
		names = append(names, f.Name)
	}

	return names
}

// instanceMaps returns the instances of res keyed by destination.
func instanceMaps(res *schema.Result) map[string][]map[string]any {
	out := make(map[string][]map[string]any)

	for reg, instances := range res.All() {
		maps := make([]map[string]any, len(instances))
		for i, inst := range instances {
			maps[i] = inst.Map()
		}

		out[reg.Dest()] = maps
	}

	return out
}

func formatJSON(w io.Writer, res *schema.Result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	return enc.Encode(instanceMaps(res))
}

// formatYAML keeps registrations and fields in declaration order.
func formatYAML(w io.Writer, res *schema.Result) error {
	var doc yaml.MapSlice

	for reg, instances := range res.All() {
		names := fieldNames(reg)
		list := make([]yaml.MapSlice, len(instances))

		for i, inst := range instances {
			for _, name := range names {
				list[i] = append(list[i], yaml.MapItem{Key: name, Value: inst.Value(name)})
			}
		}

		doc = append(doc, yaml.MapItem{Key: reg.Dest(), Value: list})
	}

	enc := yaml.NewEncoder(w, yaml.IndentSequence(true))
	if err := enc.Encode(doc); err != nil {
		return err
	}

	return enc.Close()
}

func formatDump(w io.Writer, res *schema.Result) error {
	cfg := spew.ConfigState{
		Indent:                  "  ",
		SortKeys:                true,
		DisablePointerAddresses: true,
		DisableCapacities:       true,
	}

	cfg.Fdump(w, instanceMaps(res))

	return nil
}

// formatText writes one table per registration with a row per instance.
func formatText(w io.Writer, res *schema.Result) error {
	r := lipgloss.NewRenderer(w)
	title := r.NewStyle().Bold(true)
	header := r.NewStyle().Bold(true).Padding(0, 1)
	cell := r.NewStyle().Padding(0, 1)

	for reg, instances := range res.All() {
		names := fieldNames(reg)

		t := table.New().
			Border(lipgloss.NormalBorder()).
			BorderStyle(r.NewStyle().Faint(true)).
			Headers(append([]string{"#"}, names...)...).
			StyleFunc(func(row, _ int) lipgloss.Style {
				if row == table.HeaderRow {
					return header
				}

				return cell
			})

		for i, inst := range instances {
			row := []string{strconv.Itoa(i)}
			for _, name := range names {
				row = append(row, fmt.Sprint(inst.Value(name)))
			}

			t.Row(row...)
		}

		if _, err := fmt.Fprintf(w, "%s\n%s\n",
			title.Render(fmt.Sprintf("%s (%d)", reg.Dest(), len(instances))),
			t.Render(),
		); err != nil {
			return err
		}
	}

	return nil
}
