package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/plotwire/plotwire/pkg/chart"
	"github.com/plotwire/plotwire/pkg/dendro"
)

// dendroCommand creates the "dendro" command: clustering tree in, figure out.
func (c *CLI) dendroCommand() *cobra.Command {
	var (
		opts   dendro.Options
		format string
		output string
	)

	cmd := &cobra.Command{
		Use:   "dendro <tree-file>",
		Short: "Lay out a hierarchical clustering tree as a figure",
		Long: `Dendro reads a clustering tree from a JSON file and composes a figure
with selectable internal nodes: brushing a node selects the leaf labels it
subtends in every linked widget sharing the same selection group.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())
			prog := newProgress(logger)

			tree, err := dendro.ReadTreeFile(args[0])
			if err != nil {
				return err
			}
			logger.Debug("tree loaded", "leaves", tree.LeafCount())

			w, err := chart.Dendrogram(tree, opts)
			if err != nil {
				return err
			}

			var data []byte
			switch format {
			case formatHTML:
				data, err = renderHTML(w)
			case formatJSON:
				data, err = w.RenderJSON()
			default:
				return fmt.Errorf("unknown format %q: want html or json", format)
			}
			if err != nil {
				return err
			}

			if output == "" || output == "-" {
				_, err = os.Stdout.Write(data)
				return err
			}
			if err := os.WriteFile(output, data, 0644); err != nil {
				return err
			}

			prog.done(fmt.Sprintf("Laid out %d leaves", tree.LeafCount()))
			printSuccess("Dendrogram written")
			printFile(output)
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.SelectionGroup, "group", dendro.DefaultSelectionGroup, "selection group linking brushed nodes to other widgets")
	cmd.Flags().Float64Var(&opts.XMin, "xmin", dendro.DefaultXMin, "lower bound of the height axis, leaves room for labels")
	cmd.Flags().Float64Var(&opts.Width, "width", dendro.DefaultWidth, "figure width in pixels")
	cmd.Flags().Float64Var(&opts.Height, "height", dendro.DefaultHeight, "figure height in pixels")
	cmd.Flags().StringVarP(&format, "format", "f", formatHTML, "output format: html or json")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout)")

	return cmd
}
