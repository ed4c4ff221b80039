package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/plotwire/plotwire/pkg/cache"
	"github.com/plotwire/plotwire/pkg/dendro"
)

// Snapshot output formats.
const (
	formatSVG = "svg"
	formatPNG = "png"
)

// snapshotCommand creates the "snapshot" command: static tree rendering
// through Graphviz, no charting library involved.
func (c *CLI) snapshotCommand() *cobra.Command {
	var (
		format  string
		output  string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "snapshot <tree-file>",
		Short: "Render a static SVG or PNG of a clustering tree",
		Long: `Snapshot reads a clustering tree from a JSON file and renders a static
image of its structure. Unlike dendro output, snapshots are not
interactive: they suit READMEs, docs, and quick terminal-adjacent checks.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if format != formatSVG && format != formatPNG {
				return fmt.Errorf("unknown format %q: want svg or png", format)
			}

			logger := loggerFromContext(cmd.Context())
			prog := newProgress(logger)

			raw, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			tree, err := dendro.ParseTree(raw)
			if err != nil {
				return err
			}

			store := c.newCache(cmd, noCache)
			defer store.Close()
			key := cache.NewDefaultKeyer().SnapshotKey(cache.Hash(raw), format)

			spin := newSpinnerWithContext(cmd.Context(), "Rendering snapshot...")
			spin.Start()
			data, err := cache.GetOrCompute(cmd.Context(), store, key, cacheTTL(), func() ([]byte, error) {
				dot := dendro.ToDOT(tree)
				if format == formatPNG {
					return dendro.RenderPNG(dot)
				}
				return dendro.RenderSVG(dot)
			})
			if err != nil {
				spin.StopWithError("Rendering failed")
				return err
			}
			spin.Stop()

			if output == "" {
				output = "snapshot." + format
			}
			if err := os.WriteFile(output, data, 0644); err != nil {
				return err
			}

			prog.done(fmt.Sprintf("Rendered %d leaves", tree.LeafCount()))
			printSuccess("Snapshot written")
			printFile(output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", formatSVG, "output format: svg or png")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default snapshot.<format>)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "bypass the artifact cache")

	return cmd
}
