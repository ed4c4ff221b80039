// Package chart is the public construction API: it assembles figures from
// tabular data and hands back packaged widgets ready for embedding.
//
// Callers never see an unpackaged figure. Every constructor runs the
// figure through the widget packager before returning, so the result
// always carries its sizing policy, asset dependencies, and pre-render
// hook.
//
// # Usage
//
//	tbl, _ := dataset.FromColumns(...)
//	w, err := chart.New(tbl, figure.Attrs{
//	    "x":     dataset.Col("wt"),
//	    "y":     dataset.Col("mpg"),
//	    "color": dataset.Col("cyl"),
//	})
//	_ = widget.WriteHTML(os.Stdout, w)
package chart

import (
	"os"

	"github.com/plotwire/plotwire/pkg/config"
	"github.com/plotwire/plotwire/pkg/dendro"
	"github.com/plotwire/plotwire/pkg/errors"
	"github.com/plotwire/plotwire/pkg/figure"
	"github.com/plotwire/plotwire/pkg/widget"
)

// ===== Generic constructor =====

// New builds a figure from tabular data and an attribute bag, then
// packages it as a widget.
func New(data any, attrs figure.Attrs) (*widget.Widget, error) {
	fig, err := figure.New(data, attrs)
	if err != nil {
		return nil, err
	}
	return widget.Package(fig)
}

// ===== Mode specializers =====

// Geo builds a figure in geographic map mode. Longitude/latitude inputs
// are remapped into the builder's generic x/y convention and the layout is
// tagged so the renderer draws a geographic projection.
func Geo(data any, attrs figure.Attrs) (*widget.Widget, error) {
	fig, err := figure.New(data, attrs)
	if err != nil {
		return nil, err
	}
	fig.Layout.MapType = figure.MapTypeGeo
	adaptCoordinates(fig.AttributeSets[fig.CurrentDatasetID])
	return widget.Package(fig)
}

// TileMap builds a figure in tile-map mode. The required access credential
// is resolved from the attribute bag, then the environment, then the
// config file; construction fails before packaging when none is found.
func TileMap(data any, attrs figure.Attrs) (*widget.Widget, error) {
	attrs = cloneAttrs(attrs)
	token, _ := attrs["token"].(string)
	delete(attrs, "token")

	fig, err := figure.New(data, attrs)
	if err != nil {
		return nil, err
	}

	token, err = resolveTileToken(token)
	if err != nil {
		return nil, err
	}

	fig.Layout.MapType = figure.MapTypeTile
	fig.Layout.TileToken = token
	adaptCoordinates(fig.AttributeSets[fig.CurrentDatasetID])
	return widget.Package(fig)
}

// ===== Tree constructor =====

// Dendrogram lays out a hierarchical clustering tree and packages it as a
// widget with the fixed interactive-selection layout.
func Dendrogram(tree *dendro.Tree, opts dendro.Options) (*widget.Widget, error) {
	fig, err := dendro.Layout(tree, opts)
	if err != nil {
		return nil, err
	}
	return widget.Package(fig)
}

// ===== Helpers =====

// adaptCoordinates remaps longitude/latitude inputs into the generic x/y
// convention the builder stores.
func adaptCoordinates(as *figure.AttributeSet) {
	if as == nil {
		return
	}
	if v, ok := as.Extra["lon"]; ok {
		as.Extra["x"] = v
		delete(as.Extra, "lon")
	}
	if v, ok := as.Extra["lat"]; ok {
		as.Extra["y"] = v
		delete(as.Extra, "lat")
	}
}

// resolveTileToken resolves the tile access credential: explicit value,
// then environment, then config file.
func resolveTileToken(explicit string) (string, error) {
	if explicit != "" {
		return explicit, nil
	}
	if v := os.Getenv(config.EnvTileToken); v != "" {
		return v, nil
	}
	if cfg, err := config.LoadDefault(); err == nil && cfg.TileToken != "" {
		return cfg.TileToken, nil
	}
	return "", errors.New(errors.ErrCodeMissingToken,
		"tile-map mode needs an access token: pass token, set %s, or configure tile_token",
		config.EnvTileToken)
}

func cloneAttrs(attrs figure.Attrs) figure.Attrs {
	out := make(figure.Attrs, len(attrs))
	for k, v := range attrs {
		out[k] = v
	}
	return out
}
