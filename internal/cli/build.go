package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/plotwire/plotwire/pkg/cache"
	"github.com/plotwire/plotwire/pkg/figure"
	"github.com/plotwire/plotwire/pkg/widget"
)

// Output formats for the build command.
const (
	formatHTML = "html"
	formatJSON = "json"
)

// buildCommand creates the "build" command: data file in, widget out.
func (c *CLI) buildCommand() *cobra.Command {
	var (
		flags   mappingFlags
		format  string
		output  string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "build <data-file>",
		Short: "Assemble a figure from a CSV or JSON data file",
		Long: `Build reads a tabular data file, binds the given column mappings, and
writes the packaged widget as a self-contained HTML page or as raw figure
JSON. Column mappings stay deferred until the figure is rendered, so the
same invocation works for any column types the mapping rules accept.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())
			prog := newProgress(logger)

			w, err := flags.buildWidget(args[0])
			if err != nil {
				return err
			}

			var data []byte
			switch format {
			case formatHTML:
				data, err = renderHTML(w)
			case formatJSON:
				data, err = renderJSON(cmd, c, w, args[0], noCache)
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

			prog.done(fmt.Sprintf("Built %s figure", format))
			printSuccess("Figure written")
			printFile(output)
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVarP(&format, "format", "f", formatHTML, "output format: html or json")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "bypass the artifact cache")

	return cmd
}

// renderHTML writes the widget as a self-contained page. HTML output is
// never cached: each packaging mints a fresh element identifier.
func renderHTML(w *widget.Widget) ([]byte, error) {
	var buf bytes.Buffer
	if err := widget.WriteHTML(&buf, w); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// renderJSON resolves the figure to its wire form, caching the artifact by
// input-file content and figure shape.
func renderJSON(cmd *cobra.Command, c *CLI, w *widget.Widget, path string, noCache bool) ([]byte, error) {
	store := c.newCache(cmd, noCache)
	defer store.Close()

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	key := renderCacheKey(raw, w.Figure)

	return cache.GetOrCompute(cmd.Context(), store, key, cacheTTL(), func() ([]byte, error) {
		return w.RenderJSON()
	})
}

// renderCacheKey keys a rendered artifact by the input file bytes and the
// figure's shape fingerprint.
func renderCacheKey(raw []byte, fig *figure.Figure) string {
	shape := figureShape(fig)
	return cache.NewDefaultKeyer().RenderKey(cache.Hash(append(raw, shape...)))
}

// figureShape fingerprints the parts of a figure that affect its rendered
// form. Dataset identifiers and pointer identities must stay out of the
// fingerprint: identifiers differ between otherwise identical figures, so
// the fingerprint walks attribute sets in bind order and serializes the
// layout through its wire form.
func figureShape(fig *figure.Figure) string {
	var b strings.Builder
	for _, id := range fig.Order {
		as := fig.AttributeSets[id]
		fmt.Fprintf(&b, "type=%s;", as.Type)
		for _, aes := range figure.Aesthetics {
			m, ok := as.Mappings[aes]
			if !ok {
				continue
			}
			if m.IsColumn() {
				fmt.Fprintf(&b, "%s=%s;", aes, m.Expr)
			} else {
				fmt.Fprintf(&b, "%s=%v;", aes, m.Value)
			}
		}
		fmt.Fprintf(&b, "scales=%+v;extra=%v|", as.Scales, as.Extra)
	}
	layout, _ := json.Marshal(fig.Layout.Wire())
	b.Write(layout)
	return b.String()
}
