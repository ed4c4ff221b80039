package figure

import (
	"testing"
)

func TestLayoutWireDefaults(t *testing.T) {
	wire := NewLayout().Wire()

	margin, ok := wire["margin"].(Margin)
	if !ok {
		t.Fatalf("margin type = %T, want Margin", wire["margin"])
	}
	if margin != (Margin{B: 40, L: 60, T: 25, R: 10}) {
		t.Errorf("margin = %+v, want default", margin)
	}

	for _, key := range []string{"width", "height", "dragmode", "xaxis", "yaxis", "geo", "mapbox"} {
		if _, ok := wire[key]; ok {
			t.Errorf("wire layout contains %q, want absent", key)
		}
	}
}

func TestLayoutWireSizing(t *testing.T) {
	w, h := 800.0, 600.0
	l := NewLayout()
	l.Width, l.Height = &w, &h

	wire := l.Wire()
	if wire["width"] != 800.0 {
		t.Errorf("width = %v, want 800", wire["width"])
	}
	if wire["height"] != 600.0 {
		t.Errorf("height = %v, want 600", wire["height"])
	}
}

func TestLayoutWireMapTypes(t *testing.T) {
	l := NewLayout()
	l.MapType = MapTypeGeo
	if _, ok := l.Wire()["geo"]; !ok {
		t.Error("geo layout missing geo key")
	}

	l = NewLayout()
	l.MapType = MapTypeTile
	l.TileToken = "pk.test"
	tile, ok := l.Wire()["mapbox"].(map[string]any)
	if !ok {
		t.Fatal("tile layout missing mapbox key")
	}
	if tile["accesstoken"] != "pk.test" {
		t.Errorf("accesstoken = %v, want pk.test", tile["accesstoken"])
	}
}

func TestLayoutWireAxes(t *testing.T) {
	l := NewLayout()
	l.DragMode = DragModeSelect
	l.XAxis = &Axis{}
	l.YAxis = &Axis{Range: &[2]float64{0, 10}}

	wire := l.Wire()
	if wire["dragmode"] != "select" {
		t.Errorf("dragmode = %v, want select", wire["dragmode"])
	}
	x, ok := wire["xaxis"].(Axis)
	if !ok {
		t.Fatalf("xaxis type = %T, want Axis", wire["xaxis"])
	}
	if x.ShowTickLabels || x.ShowLine || x.ShowGrid || x.ZeroLine {
		t.Error("blank axis must show nothing")
	}
	y := wire["yaxis"].(Axis)
	if y.Range == nil || y.Range[1] != 10 {
		t.Errorf("yaxis range = %v, want [0 10]", y.Range)
	}
}

func TestLayoutWireExtraPassThrough(t *testing.T) {
	l := NewLayout()
	l.Extra = map[string]any{"hovermode": "closest"}
	if got := l.Wire()["hovermode"]; got != "closest" {
		t.Errorf("hovermode = %v, want closest", got)
	}
}
