package dendro

import (
	"fmt"

	"github.com/plotwire/plotwire/pkg/dataset"
	"github.com/plotwire/plotwire/pkg/figure"
)

// ===== Options =====

// Options controls dendrogram figure composition.
type Options struct {
	// SelectionGroup links brushed node selections to other widgets.
	SelectionGroup string

	// XMin is the lower bound of the height axis, in plot units. Negative
	// values leave room for the leaf labels drawn at plot x = 0.
	XMin float64

	// Width and Height are the figure dimensions in pixels.
	Width  float64
	Height float64

	validated bool
}

// Option defaults.
const (
	DefaultSelectionGroup = "A"
	DefaultXMin           = -50
	DefaultWidth          = 500
	DefaultHeight         = 500
)

// extendFactor pads axis ranges so extreme points do not sit on the frame.
const extendFactor = 0.05

// SetDefaults fills zero-valued fields with the documented defaults.
// Idempotent.
func (o *Options) SetDefaults() {
	if o.validated {
		return
	}
	if o.SelectionGroup == "" {
		o.SelectionGroup = DefaultSelectionGroup
	}
	if o.XMin == 0 {
		o.XMin = DefaultXMin
	}
	if o.Width == 0 {
		o.Width = DefaultWidth
	}
	if o.Height == 0 {
		o.Height = DefaultHeight
	}
	o.validated = true
}

// ===== Figure composition =====

// Layout turns a clustering tree into a figure of three layered traces:
// tree edges as lines, selectable internal nodes as markers, and leaf
// labels as text. The plot is horizontal: merge heights run along the plot
// x-axis and leaf positions along the plot y-axis.
func Layout(t *Tree, opts Options) (*figure.Figure, error) {
	if err := t.Validate(); err != nil {
		return nil, err
	}
	opts.SetDefaults()

	fig := &figure.Figure{
		Datasets:       make(map[string]figure.Source),
		AttributeSets:  make(map[string]*figure.AttributeSet),
		Layout:         figure.NewLayout(),
		EventSource:    figure.DefaultEventSource,
		SelectionGroup: opts.SelectionGroup,
	}

	if err := bindEdges(fig, t); err != nil {
		return nil, err
	}
	if err := bindNodes(fig, t); err != nil {
		return nil, err
	}
	if err := bindLeafLabels(fig, t); err != nil {
		return nil, err
	}

	applyFixedLayout(&fig.Layout, t, opts)
	return fig, nil
}

// bindEdges binds the line trace: every tree edge as a segment, separated
// by gap markers so a single trace draws the whole skeleton.
func bindEdges(fig *figure.Figure, t *Tree) error {
	segs := Segments(t)
	x := make(dataset.Column, 0, len(segs)*3)
	y := make(dataset.Column, 0, len(segs)*3)
	for _, s := range segs {
		// Heights on plot x, positions on plot y.
		x = append(x, s.Y0, s.Y1, dataset.NaN)
		y = append(y, s.X0, s.X1, dataset.NaN)
	}

	tbl, err := dataset.FromColumns([]string{"x", "y"}, map[string]dataset.Column{"x": x, "y": y})
	if err != nil {
		return err
	}

	as := figure.NewAttributeSet()
	as.Type = "scatter"
	as.Extra["x"] = dataset.Col("x")
	as.Extra["y"] = dataset.Col("y")
	as.Extra["mode"] = "lines"
	as.Extra["hoverinfo"] = "none"
	as.Extra["line"] = map[string]any{"color": "#555555", "width": 1}
	as.Extra["showlegend"] = false
	fig.Bind(tbl, as)
	return nil
}

// bindNodes binds the marker trace: one selectable point per internal row
// of the coordinate table, keyed by the row's attached leaf-label set. The
// coordinate table owns label attachment, so duplicate merge heights
// resolve the same way here as everywhere else.
func bindNodes(fig *figure.Figure, t *Tree) error {
	rows := Coordinates(t)

	x := make(dataset.Column, 0, len(rows))
	y := make(dataset.Column, 0, len(rows))
	text := make(dataset.Column, 0, len(rows))
	keys := make([]any, 0, len(rows))
	for _, r := range rows {
		if r.Y == 0 {
			continue
		}
		x = append(x, r.Y)
		y = append(y, r.X)
		text = append(text, fmt.Sprintf("members: %d", r.Members()))
		keys = append(keys, r.Labels)
	}

	tbl, err := dataset.FromColumns([]string{"x", "y", "text"},
		map[string]dataset.Column{"x": x, "y": y, "text": text})
	if err != nil {
		return err
	}

	as := figure.NewAttributeSet()
	as.Type = "scatter"
	as.Extra["x"] = dataset.Col("x")
	as.Extra["y"] = dataset.Col("y")
	as.Extra["text"] = dataset.Col("text")
	as.Extra["mode"] = "markers"
	as.Extra["hoverinfo"] = "text"
	as.Extra["key"] = keys
	as.Extra["marker"] = map[string]any{"color": "#555555", "size": 8}
	as.Extra["showlegend"] = false
	fig.Bind(tbl, as)
	return nil
}

// bindLeafLabels binds the text trace: leaf labels at plot x = 0, anchored
// to the left of their leaf positions.
func bindLeafLabels(fig *figure.Figure, t *Tree) error {
	labels := t.Leaves()
	x := make(dataset.Column, 0, len(labels))
	y := make(dataset.Column, 0, len(labels))
	text := make(dataset.Column, 0, len(labels))
	for i, label := range labels {
		x = append(x, 0.0)
		y = append(y, float64(i+1))
		text = append(text, label)
	}

	tbl, err := dataset.FromColumns([]string{"x", "y", "text"},
		map[string]dataset.Column{"x": x, "y": y, "text": text})
	if err != nil {
		return err
	}

	as := figure.NewAttributeSet()
	as.Type = "scatter"
	as.Extra["x"] = dataset.Col("x")
	as.Extra["y"] = dataset.Col("y")
	as.Extra["text"] = dataset.Col("text")
	as.Extra["mode"] = "text"
	as.Extra["textposition"] = "middle left"
	as.Extra["hoverinfo"] = "none"
	as.Extra["showlegend"] = false
	fig.Bind(tbl, as)
	return nil
}

// applyFixedLayout installs the fixed interactive-selection layout: set
// dimensions, rectangular-select drag mode, and blank axes whose ranges
// cover the tree with a small pad.
func applyFixedLayout(l *figure.Layout, t *Tree, opts Options) {
	w, h := opts.Width, opts.Height
	l.Width = &w
	l.Height = &h
	l.DragMode = figure.DragModeSelect

	hmax := 0.0
	if hs := t.Heights(); len(hs) > 0 {
		hmax = hs[len(hs)-1]
	}
	xr := extendRange(0, hmax)
	xr[0] = opts.XMin
	yr := extendRange(1, float64(t.LeafCount()))

	l.XAxis = &figure.Axis{Range: &xr}
	l.YAxis = &figure.Axis{Range: &yr}
}

// extendRange pads a [lo, hi] interval on both ends.
func extendRange(lo, hi float64) [2]float64 {
	pad := (hi - lo) * extendFactor
	return [2]float64{lo - pad, hi + pad}
}

