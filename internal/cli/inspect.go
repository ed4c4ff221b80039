package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/plotwire/plotwire/pkg/dataset"
	"github.com/plotwire/plotwire/pkg/widget"
)

// inspectCommand creates the "inspect" command: an interactive browser
// over the resolved traces of a figure.
func (c *CLI) inspectCommand() *cobra.Command {
	var (
		flags mappingFlags
		plain bool
	)

	cmd := &cobra.Command{
		Use:   "inspect <data-file>",
		Short: "Browse the resolved traces of a figure interactively",
		Long: `Inspect builds a figure, resolves its deferred mappings, and lists the
resulting traces: one row per trace with its type, mode, name, and point
count. Useful for checking how split mappings partition the data before
embedding the widget anywhere.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			w, err := flags.buildWidget(args[0])
			if err != nil {
				return err
			}
			rf, err := widget.Build(w.Figure)
			if err != nil {
				return err
			}

			rows := traceRows(rf)
			if plain {
				for _, row := range rows {
					fmt.Printf("%-3s %-14s %-10s %-18s %s\n",
						row.index, row.traceType, row.mode, row.name, row.points)
				}
				return nil
			}

			model := newTraceListModel(rows)
			_, err = tea.NewProgram(model, tea.WithContext(cmd.Context())).Run()
			return err
		},
	}

	flags.register(cmd)
	cmd.Flags().BoolVar(&plain, "plain", false, "print the trace table without the interactive UI")

	return cmd
}

// traceRow is one display row of the inspector.
type traceRow struct {
	index     string
	traceType string
	mode      string
	name      string
	points    string
}

// traceRows flattens a resolved figure into display rows.
func traceRows(rf *widget.RenderableFigure) []traceRow {
	rows := make([]traceRow, 0, len(rf.Data))
	for i, tr := range rf.Data {
		rows = append(rows, traceRow{
			index:     fmt.Sprintf("%d", i),
			traceType: stringField(tr, "type"),
			mode:      stringField(tr, "mode"),
			name:      stringField(tr, "name"),
			points:    fmt.Sprintf("%d pts", pointCount(tr)),
		})
	}
	return rows
}

func stringField(tr widget.Trace, key string) string {
	if s, ok := tr[key].(string); ok && s != "" {
		return s
	}
	return "—"
}

// pointCount reports the length of the trace's x column, falling back to y.
func pointCount(tr widget.Trace) int {
	for _, key := range []string{"x", "y", "lon", "lat"} {
		switch v := tr[key].(type) {
		case dataset.Column:
			return len(v)
		case []any:
			return len(v)
		case []float64:
			return len(v)
		}
	}
	return 0
}
