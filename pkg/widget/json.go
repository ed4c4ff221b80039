package widget

import (
	"encoding/json"
	"math"

	"github.com/plotwire/plotwire/pkg/dataset"
	"github.com/plotwire/plotwire/pkg/errors"
	"github.com/plotwire/plotwire/pkg/figure"
)

// MarshalJSON serializes the wire figure with figure-specific rules rather
// than generic encoding: numeric arrays stay compact, and NaN or infinite
// values become null so the charting library renders gaps instead of
// failing to parse.
func (f *RenderableFigure) MarshalJSON() ([]byte, error) {
	doc := map[string]any{
		"data":   sanitizeTraces(f.Data),
		"layout": sanitizeValue(f.Layout),
	}
	if f.Source != "" {
		doc["source"] = f.Source
	}
	b, err := json.Marshal(doc)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode figure")
	}
	return b, nil
}

// UnmarshalRenderable decodes a serialized wire figure, e.g. one written by
// the CLI, for inspection or serving.
func UnmarshalRenderable(data []byte) (*RenderableFigure, error) {
	var doc struct {
		Data   []Trace        `json:"data"`
		Layout map[string]any `json:"layout"`
		Source string         `json:"source"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode figure")
	}
	return &RenderableFigure{Data: doc.Data, Layout: doc.Layout, Source: doc.Source}, nil
}

func sanitizeTraces(traces []Trace) []any {
	out := make([]any, len(traces))
	for i, tr := range traces {
		out[i] = sanitizeValue(map[string]any(tr))
	}
	return out
}

// sanitizeValue walks the structure replacing non-finite floats with nil.
func sanitizeValue(v any) any {
	switch x := v.(type) {
	case float64:
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return nil
		}
		return x
	case []float64:
		out := make([]any, len(x))
		for i, f := range x {
			out[i] = sanitizeValue(f)
		}
		return out
	case dataset.Column:
		out := make([]any, len(x))
		for i, c := range x {
			out[i] = sanitizeValue(c)
		}
		return out
	case []any:
		out := make([]any, len(x))
		for i, e := range x {
			out[i] = sanitizeValue(e)
		}
		return out
	case [][]any:
		out := make([]any, len(x))
		for i, e := range x {
			out[i] = sanitizeValue(e)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(x))
		for k, e := range x {
			out[k] = sanitizeValue(e)
		}
		return out
	case figure.Axis:
		return sanitizeAxis(x)
	default:
		return v
	}
}

// sanitizeAxis keeps axis encoding stable regardless of how the layout was
// assembled.
func sanitizeAxis(a figure.Axis) map[string]any {
	m := map[string]any{
		"title":          a.Title,
		"showline":       a.ShowLine,
		"showgrid":       a.ShowGrid,
		"showticklabels": a.ShowTickLabels,
		"zeroline":       a.ZeroLine,
	}
	if a.Range != nil {
		m["range"] = []any{a.Range[0], a.Range[1]}
	}
	return m
}
