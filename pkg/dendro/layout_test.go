package dendro

import (
	"math"
	"reflect"
	"testing"

	"github.com/plotwire/plotwire/pkg/errors"
	"github.com/plotwire/plotwire/pkg/figure"
)

func assertRange(t *testing.T, axis string, got, want [2]float64) {
	t.Helper()
	for i := range got {
		if math.Abs(got[i]-want[i]) > 1e-9 {
			t.Errorf("%s range = %v, want %v", axis, got, want)
			return
		}
	}
}

// ===== Options =====

func TestOptionsSetDefaults(t *testing.T) {
	var opts Options
	opts.SetDefaults()

	if opts.SelectionGroup != "A" {
		t.Errorf("SelectionGroup = %q, want A", opts.SelectionGroup)
	}
	if opts.XMin != -50 {
		t.Errorf("XMin = %v, want -50", opts.XMin)
	}
	if opts.Width != 500 || opts.Height != 500 {
		t.Errorf("dimensions = %v x %v, want 500 x 500", opts.Width, opts.Height)
	}

	opts.Width = 800
	opts.SetDefaults()
	if opts.Width != 800 {
		t.Errorf("SetDefaults() not idempotent: Width = %v", opts.Width)
	}
}

// ===== Layout =====

func TestLayoutRejectsInvalidTree(t *testing.T) {
	_, err := Layout(&Tree{}, Options{})
	if !errors.Is(err, errors.ErrCodeInvalidTree) {
		t.Fatalf("Layout() = %v, want INVALID_TREE", err)
	}
}

func TestLayoutTraces(t *testing.T) {
	fig, err := Layout(fourLeafTree(), Options{})
	if err != nil {
		t.Fatalf("Layout() error = %v", err)
	}
	if err := fig.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}

	if len(fig.Order) != 3 {
		t.Fatalf("bound %d datasets, want 3 layered traces", len(fig.Order))
	}

	edges := fig.AttributeSets[fig.Order[0]]
	markers := fig.AttributeSets[fig.Order[1]]
	text := fig.AttributeSets[fig.Order[2]]

	if got := edges.Extra["mode"]; got != "lines" {
		t.Errorf("edge trace mode = %v, want lines", got)
	}
	if got := edges.Extra["hoverinfo"]; got != "none" {
		t.Errorf("edge trace hoverinfo = %v, want none", got)
	}

	if got := markers.Extra["mode"]; got != "markers" {
		t.Errorf("marker trace mode = %v, want markers", got)
	}
	keys, ok := markers.Extra["key"].([]any)
	if !ok {
		t.Fatalf("marker trace key = %T, want []any", markers.Extra["key"])
	}
	if len(keys) != 3 {
		t.Fatalf("marker trace has %d keys, want 3 candidates", len(keys))
	}
	wantKeys := [][]string{
		{"a", "b"},
		{"c", "d"},
		{"a", "b", "c", "d"},
	}
	for i, want := range wantKeys {
		if !reflect.DeepEqual(keys[i], want) {
			t.Errorf("candidate key %d = %v, want %v", i, keys[i], want)
		}
	}

	if got := text.Extra["mode"]; got != "text" {
		t.Errorf("text trace mode = %v, want text", got)
	}
	if got := text.Extra["textposition"]; got != "middle left" {
		t.Errorf("text trace textposition = %v, want middle left", got)
	}
}

func TestLayoutMarkerKeysDuplicateHeights(t *testing.T) {
	// Two merges at the same height: marker keys must follow the
	// coordinate table's lookup-by-height attachment, where the later
	// candidate overwrites the earlier, rather than each node's own set.
	tree := node(2,
		node(1, leaf("a"), leaf("b")),
		node(1, leaf("c"), leaf("d")),
	)

	fig, err := Layout(tree, Options{})
	if err != nil {
		t.Fatalf("Layout() error = %v", err)
	}

	markers := fig.AttributeSets[fig.Order[1]]
	keys, ok := markers.Extra["key"].([]any)
	if !ok {
		t.Fatalf("marker trace key = %T, want []any", markers.Extra["key"])
	}
	want := [][]string{
		{"c", "d"},
		{"c", "d"},
		{"a", "b", "c", "d"},
	}
	if len(keys) != len(want) {
		t.Fatalf("marker trace has %d keys, want %d", len(keys), len(want))
	}
	for i, w := range want {
		if !reflect.DeepEqual(keys[i], w) {
			t.Errorf("marker key %d = %v, want %v", i, keys[i], w)
		}
	}
}

func TestLayoutMarkerPositions(t *testing.T) {
	fig, err := Layout(fourLeafTree(), Options{})
	if err != nil {
		t.Fatalf("Layout() error = %v", err)
	}

	tbl, err := fig.Datasets[fig.Order[1]]()
	if err != nil {
		t.Fatalf("materialize marker dataset: %v", err)
	}

	x, err := tbl.Column("x")
	if err != nil {
		t.Fatal(err)
	}
	y, err := tbl.Column("y")
	if err != nil {
		t.Fatal(err)
	}

	// Heights on plot x, leaf-position midpoints on plot y.
	xs, ok := x.Floats()
	if !ok {
		t.Fatal("marker x column is not numeric")
	}
	ys, ok := y.Floats()
	if !ok {
		t.Fatal("marker y column is not numeric")
	}
	if want := []float64{1, 2, 3}; !reflect.DeepEqual(xs, want) {
		t.Errorf("marker x = %v, want %v", xs, want)
	}
	if want := []float64{1.5, 3.5, 2.5}; !reflect.DeepEqual(ys, want) {
		t.Errorf("marker y = %v, want %v", ys, want)
	}
}

func TestLayoutLeafLabelTrace(t *testing.T) {
	fig, err := Layout(fourLeafTree(), Options{})
	if err != nil {
		t.Fatalf("Layout() error = %v", err)
	}

	tbl, err := fig.Datasets[fig.Order[2]]()
	if err != nil {
		t.Fatalf("materialize text dataset: %v", err)
	}

	x, _ := tbl.Column("x")
	labels, _ := tbl.Column("text")

	xs, ok := x.Floats()
	if !ok {
		t.Fatal("leaf label x column is not numeric")
	}
	for i, v := range xs {
		if v != 0 {
			t.Errorf("leaf label %d at plot x = %v, want 0", i, v)
		}
	}
	if got := labels.Strings(); !reflect.DeepEqual(got, []string{"a", "b", "c", "d"}) {
		t.Errorf("leaf labels = %v, want [a b c d]", got)
	}
}

func TestLayoutFixedLayout(t *testing.T) {
	fig, err := Layout(fourLeafTree(), Options{})
	if err != nil {
		t.Fatalf("Layout() error = %v", err)
	}

	l := fig.Layout
	if l.DragMode != figure.DragModeSelect {
		t.Errorf("DragMode = %q, want select", l.DragMode)
	}
	if l.Width == nil || *l.Width != 500 {
		t.Errorf("Width = %v, want 500", l.Width)
	}
	if l.Height == nil || *l.Height != 500 {
		t.Errorf("Height = %v, want 500", l.Height)
	}

	if l.XAxis == nil || l.YAxis == nil {
		t.Fatal("axes not set")
	}
	if l.XAxis.ShowTickLabels || l.YAxis.ShowTickLabels {
		t.Error("axes must stay blank: tick labels shown")
	}
	if l.XAxis.ShowLine || l.XAxis.ShowGrid || l.XAxis.ZeroLine {
		t.Error("x axis must stay blank")
	}

	// Height axis: lower bound from XMin, upper bound 3 padded by 5%.
	assertRange(t, "x", *l.XAxis.Range, [2]float64{-50, 3.15})
	// Position axis: [1, 4] padded by 5% of the span on both ends.
	assertRange(t, "y", *l.YAxis.Range, [2]float64{0.85, 4.15})
}

func TestLayoutSelectionGroup(t *testing.T) {
	fig, err := Layout(fourLeafTree(), Options{SelectionGroup: "clusters"})
	if err != nil {
		t.Fatalf("Layout() error = %v", err)
	}
	if fig.SelectionGroup != "clusters" {
		t.Errorf("SelectionGroup = %q, want clusters", fig.SelectionGroup)
	}
	if fig.EventSource != figure.DefaultEventSource {
		t.Errorf("EventSource = %q, want %q", fig.EventSource, figure.DefaultEventSource)
	}
}
