package cli

import (
	"github.com/spf13/cobra"

	"github.com/plotwire/plotwire/pkg/chart"
	"github.com/plotwire/plotwire/pkg/dataset"
	"github.com/plotwire/plotwire/pkg/errors"
	"github.com/plotwire/plotwire/pkg/figure"
	"github.com/plotwire/plotwire/pkg/widget"
)

// Figure modes selectable from the command line.
const (
	modeCartesian = "cartesian"
	modeGeo       = "geo"
	modeTileMap   = "tilemap"
)

// validModes is the set of accepted --mode values.
var validModes = map[string]bool{
	modeCartesian: true,
	modeGeo:       true,
	modeTileMap:   true,
}

// mappingFlags collects the column-mapping and figure options shared by
// the build, serve, and inspect commands.
type mappingFlags struct {
	x        string
	y        string
	text     string
	color    string
	symbol   string
	linetype string
	size     string
	split    string
	frame    string

	traceType string
	colors    []string
	alpha     float64
	width     float64
	height    float64
	source    string

	mode  string
	token string
}

// register wires the flags onto cmd.
func (f *mappingFlags) register(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.StringVarP(&f.x, "x", "x", "", "column mapped to the x position")
	flags.StringVarP(&f.y, "y", "y", "", "column mapped to the y position")
	flags.StringVar(&f.text, "text", "", "column mapped to hover text")
	flags.StringVar(&f.color, "color", "", "column or constant mapped to color")
	flags.StringVar(&f.symbol, "symbol", "", "column mapped to marker symbol")
	flags.StringVar(&f.linetype, "linetype", "", "column mapped to line style")
	flags.StringVar(&f.size, "size", "", "numeric column mapped to marker size")
	flags.StringVar(&f.split, "split", "", "column splitting rows into separate traces")
	flags.StringVar(&f.frame, "frame", "", "column assigning rows to animation frames")

	flags.StringVar(&f.traceType, "type", "", "trace type hint (scatter, bar, ...)")
	flags.StringSliceVar(&f.colors, "colors", nil, "palette overriding the default colors")
	flags.Float64Var(&f.alpha, "alpha", figure.DefaultAlpha, "trace opacity in [0,1]")
	flags.Float64Var(&f.width, "width", 0, "figure width in pixels (0 = auto-size)")
	flags.Float64Var(&f.height, "height", 0, "figure height in pixels (0 = auto-size)")
	flags.StringVar(&f.source, "source", figure.DefaultEventSource, "event source label")

	flags.StringVar(&f.mode, "mode", modeCartesian, "figure mode: cartesian, geo, or tilemap")
	flags.StringVar(&f.token, "token", "", "tile access token (tilemap mode)")
}

// attrs assembles the attribute bag. Column flags become deferred column
// expressions; everything else passes through as plain values.
func (f *mappingFlags) attrs() figure.Attrs {
	attrs := figure.Attrs{}

	columns := map[string]string{
		"x":               f.x,
		"y":               f.y,
		"text":            f.text,
		figure.KeyColor:    f.color,
		figure.KeySymbol:   f.symbol,
		figure.KeyLinetype: f.linetype,
		figure.KeySize:     f.size,
		figure.KeySplit:    f.split,
		figure.KeyFrame:    f.frame,
	}
	for key, col := range columns {
		if col != "" {
			attrs[key] = dataset.Col(col)
		}
	}

	if f.traceType != "" {
		attrs[figure.KeyType] = f.traceType
	}
	if len(f.colors) > 0 {
		attrs[figure.KeyColors] = f.colors
	}
	if f.alpha != figure.DefaultAlpha {
		attrs[figure.KeyAlpha] = f.alpha
	}
	if f.width > 0 {
		attrs[figure.KeyWidth] = f.width
	}
	if f.height > 0 {
		attrs[figure.KeyHeight] = f.height
	}
	if f.source != figure.DefaultEventSource {
		attrs[figure.KeySource] = f.source
	}
	if f.mode == modeTileMap && f.token != "" {
		attrs["token"] = f.token
	}

	return attrs
}

// buildWidget loads the data file and assembles the packaged widget for
// the selected mode.
func (f *mappingFlags) buildWidget(path string) (*widget.Widget, error) {
	if f.mode != "" && !validModes[f.mode] {
		return nil, errors.New(errors.ErrCodeInvalidInput,
			"unknown mode %q: want cartesian, geo, or tilemap", f.mode)
	}

	tbl, err := dataset.ReadFile(path)
	if err != nil {
		return nil, err
	}

	switch f.mode {
	case modeGeo:
		return chart.Geo(tbl, f.attrs())
	case modeTileMap:
		return chart.TileMap(tbl, f.attrs())
	default:
		return chart.New(tbl, f.attrs())
	}
}
