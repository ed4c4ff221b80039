package widget

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/plotwire/plotwire/pkg/dataset"
	"github.com/plotwire/plotwire/pkg/figure"
	"github.com/plotwire/plotwire/pkg/observability"
)

func TestBuildResolvesColumnExpressions(t *testing.T) {
	fig := testFigure(t, figure.Attrs{
		"x": dataset.Col("x"),
		"y": dataset.Col("y"),
	})

	rf, err := Build(fig)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if len(rf.Data) != 1 {
		t.Fatalf("traces = %d, want 1", len(rf.Data))
	}

	x, ok := rf.Data[0]["x"].(dataset.Column)
	if !ok {
		t.Fatalf("x type = %T, want resolved column", rf.Data[0]["x"])
	}
	if len(x) != 4 || x[3] != 4.0 {
		t.Errorf("x = %v, want resolved values", x)
	}

	if rf.Data[0]["type"] != "scatter" {
		t.Errorf("type = %v, want inferred scatter", rf.Data[0]["type"])
	}
}

func TestBuildInfersBarForCategoricalY(t *testing.T) {
	fig := testFigure(t, figure.Attrs{
		"x": dataset.Col("x"),
		"y": dataset.Col("species"),
	})

	rf, err := Build(fig)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if rf.Data[0]["type"] != "bar" {
		t.Errorf("type = %v, want inferred bar", rf.Data[0]["type"])
	}

	// An explicit hint wins over inference.
	fig = testFigure(t, figure.Attrs{
		"x":    dataset.Col("x"),
		"y":    dataset.Col("species"),
		"type": "scatter",
	})
	rf, err = Build(fig)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if rf.Data[0]["type"] != "scatter" {
		t.Errorf("type = %v, want explicit scatter", rf.Data[0]["type"])
	}
}

func TestBuildSplit(t *testing.T) {
	fig := testFigure(t, figure.Attrs{
		"x":     dataset.Col("x"),
		"y":     dataset.Col("y"),
		"split": dataset.Col("species"),
	})

	rf, err := Build(fig)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if len(rf.Data) != 2 {
		t.Fatalf("traces = %d, want one per split group (2)", len(rf.Data))
	}

	// First-seen order: group a before group b.
	if rf.Data[0]["name"] != "a" || rf.Data[1]["name"] != "b" {
		t.Errorf("trace names = %v, %v; want a, b", rf.Data[0]["name"], rf.Data[1]["name"])
	}

	xa := rf.Data[0]["x"].(dataset.Column)
	if len(xa) != 2 || xa[0] != 1.0 || xa[1] != 2.0 {
		t.Errorf("group a x = %v, want [1 2]", xa)
	}
	xb := rf.Data[1]["x"].(dataset.Column)
	if len(xb) != 2 || xb[0] != 3.0 {
		t.Errorf("group b x = %v, want [3 4]", xb)
	}
}

func TestBuildSizeRescalesToRange(t *testing.T) {
	fig := testFigure(t, figure.Attrs{
		"x":    dataset.Col("x"),
		"y":    dataset.Col("y"),
		"size": dataset.Col("y"),
	})

	rf, err := Build(fig)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	marker := rf.Data[0]["marker"].(map[string]any)
	sizes := marker["size"].([]float64)

	// y spans [2,8]; sizes must span the default [10,100].
	if sizes[0] != 10 {
		t.Errorf("min size = %v, want 10", sizes[0])
	}
	if sizes[len(sizes)-1] != 100 {
		t.Errorf("max size = %v, want 100", sizes[len(sizes)-1])
	}
}

func TestBuildCategoricalColorUsesPalette(t *testing.T) {
	fig := testFigure(t, figure.Attrs{
		"x":     dataset.Col("x"),
		"y":     dataset.Col("y"),
		"color": dataset.Col("species"),
	})

	rf, err := Build(fig)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	marker := rf.Data[0]["marker"].(map[string]any)
	colors := marker["color"].([]string)

	if len(colors) != 4 {
		t.Fatalf("colors = %d, want 4", len(colors))
	}
	if colors[0] != colors[1] || colors[2] != colors[3] {
		t.Error("rows in the same category must share a color")
	}
	if colors[0] == colors[2] {
		t.Error("distinct categories must get distinct colors")
	}
	if colors[0] != figure.DefaultColors[0] {
		t.Errorf("first category color = %q, want palette head %q", colors[0], figure.DefaultColors[0])
	}
}

func TestBuildNumericColorUsesColorscale(t *testing.T) {
	fig := testFigure(t, figure.Attrs{
		"x":     dataset.Col("x"),
		"y":     dataset.Col("y"),
		"color": dataset.Col("y"),
	})

	rf, err := Build(fig)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	marker := rf.Data[0]["marker"].(map[string]any)
	if _, ok := marker["colorscale"]; !ok {
		t.Error("numeric color mapping must attach a colorscale")
	}
	if _, ok := marker["color"].([]float64); !ok {
		t.Errorf("numeric color = %T, want []float64", marker["color"])
	}
}

func TestBuildConstantMappings(t *testing.T) {
	fig := testFigure(t, figure.Attrs{
		"x":     dataset.Col("x"),
		"y":     dataset.Col("y"),
		"color": "red",
	})

	rf, err := Build(fig)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	marker := rf.Data[0]["marker"].(map[string]any)
	if marker["color"] != "red" {
		t.Errorf("constant color = %v, want red", marker["color"])
	}
}

func TestBuildSharedTableTagsTraces(t *testing.T) {
	tbl, _ := dataset.FromColumns([]string{"x"}, map[string]dataset.Column{"x": {1.0}})
	fig, err := figure.New(dataset.Share(tbl, "grp"), figure.Attrs{"x": dataset.Col("x")})
	if err != nil {
		t.Fatalf("figure.New() error = %v", err)
	}

	rf, err := Build(fig)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if rf.Data[0]["set"] != "grp" {
		t.Errorf("set = %v, want grp", rf.Data[0]["set"])
	}
}

type buildCounter struct {
	observability.NoopFigureHooks
	starts int
}

func (c *buildCounter) OnBuildStart(context.Context, string) { c.starts++ }

func TestBuildRunsOncePerRender(t *testing.T) {
	counter := &buildCounter{}
	observability.SetFigureHooks(counter)
	defer observability.SetFigureHooks(nil)

	fig := testFigure(t, figure.Attrs{"x": dataset.Col("x"), "y": dataset.Col("y")})

	// Packaging alone must not trigger the build step.
	w, err := Package(fig)
	if err != nil {
		t.Fatalf("Package() error = %v", err)
	}
	if counter.starts != 0 {
		t.Errorf("builds after packaging = %d, want 0", counter.starts)
	}

	// Each render pass runs the build step exactly once.
	if _, err := w.Render(); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if counter.starts != 1 {
		t.Errorf("builds after first render = %d, want 1", counter.starts)
	}
	if _, err := w.Render(); err != nil {
		t.Fatalf("second Render() error = %v", err)
	}
	if counter.starts != 2 {
		t.Errorf("builds after second render = %d, want 2", counter.starts)
	}
}

func TestMarshalEncodesNaNAsNull(t *testing.T) {
	tbl, _ := dataset.FromColumns(
		[]string{"x"},
		map[string]dataset.Column{"x": {1.0, nil, 3.0}},
	)
	fig, err := figure.New(tbl, figure.Attrs{"x": dataset.Col("x")})
	if err != nil {
		t.Fatalf("figure.New() error = %v", err)
	}

	w, _ := Package(fig)
	raw, err := w.RenderJSON()
	if err != nil {
		t.Fatalf("RenderJSON() error = %v", err)
	}

	if !strings.Contains(string(raw), "[1,null,3]") {
		t.Errorf("json = %s, want compact [1,null,3]", raw)
	}

	// The wire document must be valid generic JSON.
	var doc map[string]any
	if err := json.Unmarshal(raw, &doc); err != nil {
		t.Fatalf("round-trip: %v", err)
	}
	if _, ok := doc["data"]; !ok {
		t.Error("wire json missing data")
	}
	if _, ok := doc["layout"]; !ok {
		t.Error("wire json missing layout")
	}
}

func TestUnmarshalRenderable(t *testing.T) {
	raw := []byte(`{"data":[{"type":"scatter","x":[1,2]}],"layout":{"dragmode":"select"},"source":"A"}`)
	rf, err := UnmarshalRenderable(raw)
	if err != nil {
		t.Fatalf("UnmarshalRenderable() error = %v", err)
	}
	if len(rf.Data) != 1 || rf.Data[0]["type"] != "scatter" {
		t.Errorf("data = %v, want one scatter trace", rf.Data)
	}
	if rf.Source != "A" {
		t.Errorf("source = %q, want A", rf.Source)
	}
}

// Ensure the counter satisfies the hook interface.
var _ observability.FigureHooks = (*buildCounter)(nil)
