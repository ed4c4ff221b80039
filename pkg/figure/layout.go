package figure

// Map-type tags for the layout. Empty means a regular cartesian plot.
const (
	MapTypeGeo  = "geo"
	MapTypeTile = "tilemap"
)

// Drag modes understood by the charting library.
const (
	DragModeZoom   = "zoom"
	DragModeSelect = "select"
)

// Margin is the plot margin in pixels.
type Margin struct {
	B float64 `json:"b"`
	L float64 `json:"l"`
	T float64 `json:"t"`
	R float64 `json:"r"`
}

// DefaultMargin returns the margin constants suited to a typical embedding
// context: {b:40, l:60, t:25, r:10}.
func DefaultMargin() Margin {
	return Margin{B: 40, L: 60, T: 25, R: 10}
}

// Axis is an axis specification. The zero value shows nothing: no line, no
// grid, no tick labels, no zero line.
type Axis struct {
	Title          string      `json:"title"`
	ShowLine       bool        `json:"showline"`
	ShowGrid       bool        `json:"showgrid"`
	ShowTickLabels bool        `json:"showticklabels"`
	ZeroLine       bool        `json:"zeroline"`
	Range          *[2]float64 `json:"range,omitempty"`
}

// Layout is the non-data visual configuration of a figure.
//
// Width and Height are pointers: nil means auto-size and must stay absent
// from the serialized layout, never defaulted to a number.
type Layout struct {
	Width     *float64
	Height    *float64
	Margin    Margin
	MapType   string // "", MapTypeGeo, or MapTypeTile
	TileToken string // access credential, tile-map mode only
	DragMode  string
	XAxis     *Axis
	YAxis     *Axis

	// Extra holds pass-through layout keys. They serialize opaquely and
	// may override nothing set above.
	Extra map[string]any
}

// NewLayout returns a layout with default margins.
func NewLayout() Layout {
	return Layout{Margin: DefaultMargin()}
}

// Wire converts the layout to its wire representation. Absent sizing stays
// absent; the map-type tag expands to the key the charting library expects.
func (l Layout) Wire() map[string]any {
	m := map[string]any{
		"margin": l.Margin,
	}
	if l.Width != nil {
		m["width"] = *l.Width
	}
	if l.Height != nil {
		m["height"] = *l.Height
	}
	if l.DragMode != "" {
		m["dragmode"] = l.DragMode
	}
	if l.XAxis != nil {
		m["xaxis"] = *l.XAxis
	}
	if l.YAxis != nil {
		m["yaxis"] = *l.YAxis
	}
	switch l.MapType {
	case MapTypeGeo:
		m["geo"] = map[string]any{}
	case MapTypeTile:
		tile := map[string]any{}
		if l.TileToken != "" {
			tile["accesstoken"] = l.TileToken
		}
		m["mapbox"] = tile
	}
	for k, v := range l.Extra {
		m[k] = v
	}
	return m
}
