package widget

import (
	"github.com/google/uuid"

	"github.com/plotwire/plotwire/pkg/errors"
	"github.com/plotwire/plotwire/pkg/figure"
)

// Dependency names of the static assets attached to every widget.
const (
	DepPolyfill  = "typedarray-polyfill"
	DepCrosstalk = "crosstalk"
	DepCharting  = "plotly"
)

// Dependency describes one static asset the host must load before
// rendering.
type Dependency struct {
	Name       string `json:"name"`
	Version    string `json:"version"`
	Src        string `json:"src"`
	Script     string `json:"script"`
	Stylesheet string `json:"stylesheet,omitempty"`
}

// defaultDependencies returns the asset list in its fixed load order:
// numeric-array polyfill, cross-widget selection support, charting bundle.
// The order is fixed for reproducibility even when the host loader
// reorders by its own dependency graph.
func defaultDependencies() []Dependency {
	return []Dependency{
		{
			Name:    DepPolyfill,
			Version: "0.5.1",
			Src:     "lib/typedarray",
			Script:  "typedarray.min.js",
		},
		{
			Name:       DepCrosstalk,
			Version:    "1.2.0",
			Src:        "lib/crosstalk",
			Script:     "js/crosstalk.min.js",
			Stylesheet: "css/crosstalk.min.css",
		},
		{
			Name:       DepCharting,
			Version:    "2.29.1",
			Src:        "lib/plotly",
			Script:     "plotly.min.js",
			Stylesheet: "plotly-htmlwidgets.css",
		},
	}
}

// SizingPolicy tells the host how to size the widget when the figure does
// not fix its own dimensions.
type SizingPolicy struct {
	FillContainer bool    `json:"fill"`
	DefaultWidth  string  `json:"defaultWidth"`
	DefaultHeight float64 `json:"defaultHeight"`
}

// DefaultSizingPolicy returns the policy used for all figures.
func DefaultSizingPolicy() SizingPolicy {
	return SizingPolicy{FillContainer: true, DefaultWidth: "100%", DefaultHeight: 400}
}

// Widget is a packaged figure: the figure record plus rendering metadata.
type Widget struct {
	// Figure is the wrapped figure record.
	Figure *figure.Figure

	// ElementID is the DOM element the widget renders into.
	ElementID string

	// Width and Height mirror the layout sizing. Nil means auto-size.
	Width  *float64
	Height *float64

	// SizingPolicy applies when Width/Height are unset.
	SizingPolicy SizingPolicy

	// Dependencies is the ordered static asset list.
	Dependencies []Dependency
}

// Package wraps a figure into a widget. Handed an already-packaged widget
// it returns it unchanged, so packaging is idempotent.
func Package(v any) (*Widget, error) {
	switch x := v.(type) {
	case *Widget:
		return x, nil
	case *figure.Figure:
		if x == nil {
			return nil, errors.New(errors.ErrCodeInvalidWidget, "cannot package a nil figure")
		}
		if err := x.Validate(); err != nil {
			return nil, err
		}
		return &Widget{
			Figure:       x,
			ElementID:    "plotwire-" + uuid.NewString(),
			Width:        x.Layout.Width,
			Height:       x.Layout.Height,
			SizingPolicy: DefaultSizingPolicy(),
			Dependencies: defaultDependencies(),
		}, nil
	default:
		return nil, errors.New(errors.ErrCodeInvalidWidget,
			"cannot package %T (want *figure.Figure or *widget.Widget)", v)
	}
}

// RemovePolyfill returns a widget without the numeric-array polyfill
// dependency. Pure: the input widget is left untouched. Applying it twice
// yields the same dependency list as applying it once.
func RemovePolyfill(w *Widget) *Widget {
	out := *w
	out.Dependencies = make([]Dependency, 0, len(w.Dependencies))
	for _, d := range w.Dependencies {
		if d.Name == DepPolyfill {
			continue
		}
		out.Dependencies = append(out.Dependencies, d)
	}
	return &out
}

// Render runs the pre-render build step and returns the wire figure.
// It runs once per call; hosts re-rendering the widget call it again.
func (w *Widget) Render() (*RenderableFigure, error) {
	return Build(w.Figure)
}

// RenderJSON renders the widget and serializes the wire figure.
func (w *Widget) RenderJSON() ([]byte, error) {
	rf, err := w.Render()
	if err != nil {
		return nil, err
	}
	return rf.MarshalJSON()
}
