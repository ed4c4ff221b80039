package widget

import (
	"context"
	"time"

	"github.com/plotwire/plotwire/pkg/dataset"
	"github.com/plotwire/plotwire/pkg/errors"
	"github.com/plotwire/plotwire/pkg/figure"
	"github.com/plotwire/plotwire/pkg/observability"
)

// Trace is one renderable data series in wire form.
type Trace map[string]any

// RenderableFigure is the fully-resolved figure handed to the charting
// library: deferred mappings evaluated, layout in wire form.
type RenderableFigure struct {
	Data   []Trace
	Layout map[string]any

	// Source is the event source label for interaction correlation.
	Source string
}

// Build resolves a figure's deferred mappings against its bound datasets
// and produces the wire figure. The host calls this exactly once per render
// pass; repeated calls are safe and independent.
func Build(fig *figure.Figure) (*RenderableFigure, error) {
	ctx := context.Background()
	observability.Figure().OnBuildStart(ctx, fig.CurrentDatasetID)
	start := time.Now()

	rf, err := build(fig)

	traces := 0
	if rf != nil {
		traces = len(rf.Data)
	}
	observability.Figure().OnBuildComplete(ctx, fig.CurrentDatasetID, traces, time.Since(start), err)
	return rf, err
}

func build(fig *figure.Figure) (*RenderableFigure, error) {
	if err := fig.Validate(); err != nil {
		return nil, err
	}

	var data []Trace
	for _, id := range fig.Order {
		tbl, err := fig.Datasets[id]()
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidDataset, err, "materialize dataset %s", id)
		}
		traces, err := buildTraces(tbl, fig.AttributeSets[id], fig.SelectionGroup)
		if err != nil {
			return nil, err
		}
		data = append(data, traces...)
	}

	return &RenderableFigure{
		Data:   data,
		Layout: fig.Layout.Wire(),
		Source: fig.EventSource,
	}, nil
}

// rowGroup is one split partition: the trace name and the row indices it
// covers. Nil indices mean all rows.
type rowGroup struct {
	name string
	idx  []int
}

// buildTraces turns one attribute set into wire traces, one per split
// group.
func buildTraces(tbl dataset.Table, as *figure.AttributeSet, selectionGroup string) ([]Trace, error) {
	n := tbl.Len()

	base, err := resolveExtras(tbl, as)
	if err != nil {
		return nil, err
	}

	base["type"] = traceType(as, base)
	if base["type"] == "scatter" {
		if _, ok := base["mode"]; !ok {
			base["mode"] = "markers"
		}
	}

	groups, err := splitGroups(tbl, as, n)
	if err != nil {
		return nil, err
	}

	var out []Trace
	for _, g := range groups {
		tr := subsetTrace(base, g.idx, n)
		if g.name != "" {
			tr["name"] = g.name
		}
		if err := applyAesthetics(tr, tbl, as, g.idx, n); err != nil {
			return nil, err
		}
		if as.Scales.Alpha != figure.DefaultAlpha {
			tr["opacity"] = as.Scales.Alpha
		}
		if selectionGroup != "" {
			tr["set"] = selectionGroup
		}
		out = append(out, tr)
	}
	return out, nil
}

// resolveExtras evaluates expression-valued pass-through attributes.
func resolveExtras(tbl dataset.Table, as *figure.AttributeSet) (Trace, error) {
	tr := make(Trace, len(as.Extra))
	for k, v := range as.Extra {
		if e, ok := v.(dataset.Expr); ok {
			col, err := e.Eval(tbl)
			if err != nil {
				return nil, err
			}
			tr[k] = col
			continue
		}
		tr[k] = v
	}
	return tr, nil
}

// traceType returns the type hint or the inferred default: scatter for
// numeric y values, bar for categorical ones.
func traceType(as *figure.AttributeSet, base Trace) string {
	if as.Type != "" {
		return as.Type
	}
	if y, ok := base["y"].(dataset.Column); ok && !y.IsNumeric() {
		return "bar"
	}
	return "scatter"
}

// splitGroups partitions rows on the split mapping. Without a split mapping
// every row lands in a single unnamed group.
func splitGroups(tbl dataset.Table, as *figure.AttributeSet, n int) ([]rowGroup, error) {
	m, ok := as.Mappings[figure.AesSplit]
	if !ok {
		return []rowGroup{{}}, nil
	}

	col, err := m.Resolve(tbl, n)
	if err != nil {
		return nil, err
	}
	labels := col.Strings()

	// Stable first-seen order keeps trace order deterministic.
	var groups []rowGroup
	index := make(map[string]int)
	for i, label := range labels {
		gi, ok := index[label]
		if !ok {
			gi = len(groups)
			index[label] = gi
			groups = append(groups, rowGroup{name: label})
		}
		groups[gi].idx = append(groups[gi].idx, i)
	}
	return groups, nil
}

// applyAesthetics resolves the remaining deferred mappings into the trace's
// marker and line blocks.
func applyAesthetics(tr Trace, tbl dataset.Table, as *figure.AttributeSet, idx []int, n int) error {
	marker := make(map[string]any)
	line := make(map[string]any)

	if m, ok := as.Mappings[figure.AesColor]; ok {
		col, err := m.Resolve(tbl, n)
		if err != nil {
			return err
		}
		if !m.IsColumn() {
			marker["color"] = m.Value
		} else if floats, numeric := col.Floats(); numeric {
			marker["color"] = subsetFloats(floats, idx)
			marker["colorscale"] = paletteScale(as.Scales.Colors)
		} else {
			marker["color"] = subsetStrings(assignVocabulary(col.Strings(), as.Scales.Colors), idx)
		}
	}

	if m, ok := as.Mappings[figure.AesSymbol]; ok {
		col, err := m.Resolve(tbl, n)
		if err != nil {
			return err
		}
		if !m.IsColumn() {
			marker["symbol"] = m.Value
		} else {
			marker["symbol"] = subsetStrings(assignVocabulary(col.Strings(), as.Scales.Symbols), idx)
		}
	}

	if m, ok := as.Mappings[figure.AesSize]; ok {
		col, err := m.Resolve(tbl, n)
		if err != nil {
			return err
		}
		floats, numeric := col.Floats()
		if !numeric {
			return errors.New(errors.ErrCodeInvalidInput, "size mapping must be numeric")
		}
		marker["size"] = subsetFloats(rescale(floats, as.Scales.Sizes), idx)
	}

	if m, ok := as.Mappings[figure.AesLinetype]; ok {
		col, err := m.Resolve(tbl, n)
		if err != nil {
			return err
		}
		if !m.IsColumn() {
			line["dash"] = m.Value
		} else {
			// The charting library takes one dash style per trace, so a
			// column mapping uses the group's first row.
			dashes := assignVocabulary(col.Strings(), as.Scales.Linetypes)
			first := 0
			if len(idx) > 0 {
				first = idx[0]
			}
			if first < len(dashes) {
				line["dash"] = dashes[first]
			}
		}
	}

	if m, ok := as.Mappings[figure.AesFrame]; ok {
		col, err := m.Resolve(tbl, n)
		if err != nil {
			return err
		}
		tr["frame"] = subsetColumn(col, idx)
	}

	if len(marker) > 0 {
		tr["marker"] = mergeBlock(tr["marker"], marker)
	}
	if len(line) > 0 {
		tr["line"] = mergeBlock(tr["line"], line)
	}
	return nil
}

// mergeBlock folds computed fields into a pass-through marker/line block
// without clobbering explicit user keys.
func mergeBlock(existing any, computed map[string]any) map[string]any {
	prior, ok := existing.(map[string]any)
	if !ok {
		return computed
	}
	for k, v := range computed {
		if _, taken := prior[k]; !taken {
			prior[k] = v
		}
	}
	return prior
}

// assignVocabulary maps distinct labels (first-seen order) onto a
// vocabulary, cycling when there are more labels than entries.
func assignVocabulary(labels []string, vocab []string) []string {
	if len(vocab) == 0 {
		return labels
	}
	assigned := make(map[string]string)
	next := 0
	out := make([]string, len(labels))
	for i, label := range labels {
		v, ok := assigned[label]
		if !ok {
			v = vocab[next%len(vocab)]
			assigned[label] = v
			next++
		}
		out[i] = v
	}
	return out
}

// paletteScale converts a palette into an evenly-spaced colorscale.
func paletteScale(colors []string) [][]any {
	if len(colors) == 0 {
		return nil
	}
	if len(colors) == 1 {
		return [][]any{{0.0, colors[0]}, {1.0, colors[0]}}
	}
	out := make([][]any, len(colors))
	for i, c := range colors {
		out[i] = []any{float64(i) / float64(len(colors)-1), c}
	}
	return out
}

// rescale maps values linearly onto the target range. A constant input
// column lands on the range midpoint.
func rescale(vals []float64, to [2]float64) []float64 {
	lo, hi := minMax(vals)
	out := make([]float64, len(vals))
	if hi == lo {
		mid := (to[0] + to[1]) / 2
		for i := range out {
			out[i] = mid
		}
		return out
	}
	for i, v := range vals {
		out[i] = to[0] + (v-lo)/(hi-lo)*(to[1]-to[0])
	}
	return out
}

func minMax(vals []float64) (lo, hi float64) {
	first := true
	for _, v := range vals {
		if v != v { // NaN
			continue
		}
		if first {
			lo, hi = v, v
			first = false
			continue
		}
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	return lo, hi
}

// subsetTrace copies the base trace, slicing row-aligned arrays down to the
// group's rows. Scalars and non-row values copy through.
func subsetTrace(base Trace, idx []int, n int) Trace {
	tr := make(Trace, len(base))
	for k, v := range base {
		tr[k] = subsetValue(v, idx, n)
	}
	return tr
}

func subsetValue(v any, idx []int, n int) any {
	if idx == nil {
		return v
	}
	switch x := v.(type) {
	case dataset.Column:
		if len(x) == n {
			return subsetColumn(x, idx)
		}
	case []float64:
		if len(x) == n {
			return subsetFloats(x, idx)
		}
	case []string:
		if len(x) == n {
			return subsetStrings(x, idx)
		}
	case []any:
		if len(x) == n {
			out := make([]any, len(idx))
			for i, j := range idx {
				out[i] = x[j]
			}
			return out
		}
	}
	return v
}

func subsetColumn(col dataset.Column, idx []int) dataset.Column {
	if idx == nil {
		return col
	}
	out := make(dataset.Column, len(idx))
	for i, j := range idx {
		out[i] = col[j]
	}
	return out
}

func subsetFloats(vals []float64, idx []int) []float64 {
	if idx == nil {
		return vals
	}
	out := make([]float64, len(idx))
	for i, j := range idx {
		out[i] = vals[j]
	}
	return out
}

func subsetStrings(vals []string, idx []int) []string {
	if idx == nil {
		return vals
	}
	out := make([]string, len(idx))
	for i, j := range idx {
		out[i] = vals[j]
	}
	return out
}
