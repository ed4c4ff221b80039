package figure

import "slices"

// Attrs is the raw attribute bag passed to the builder. Recognized keys are
// validated and lifted into the attribute set; unknown keys pass through
// opaquely to the serialized trace.
type Attrs map[string]any

// Recognized attribute keys.
const (
	// Trace type hint ("scatter", "bar", ...). Empty means infer.
	KeyType = "type"

	// Deferred visual mappings. Values may be dataset.Expr (column mapping)
	// or any other value (constant mapping).
	KeyColor    = "color"
	KeySymbol   = "symbol"
	KeyLinetype = "linetype"
	KeySize     = "size"
	KeySplit    = "split"
	KeyFrame    = "frame"

	// Scale controls for the mappings above.
	KeyColors    = "colors"
	KeyAlpha     = "alpha"
	KeySymbols   = "symbols"
	KeyLinetypes = "linetypes"
	KeySizes     = "sizes"

	// Sizing. Absent means auto-size, never zero.
	KeyWidth  = "width"
	KeyHeight = "height"

	// Event source label correlating interaction events back to the figure.
	KeySource = "source"
)

// Aesthetic names a deferred visual mapping slot.
type Aesthetic string

// The six deferred mapping slots.
const (
	AesColor    Aesthetic = KeyColor
	AesSymbol   Aesthetic = KeySymbol
	AesLinetype Aesthetic = KeyLinetype
	AesSize     Aesthetic = KeySize
	AesSplit    Aesthetic = KeySplit
	AesFrame    Aesthetic = KeyFrame
)

// Aesthetics lists the deferred mapping slots in canonical order.
var Aesthetics = []Aesthetic{AesColor, AesSymbol, AesLinetype, AesSize, AesSplit, AesFrame}

// deprecatedKeys maps retired option keys to the reason they were dropped.
// These are stripped from the attribute bag with a warning.
var deprecatedKeys = map[string]string{
	"filename":       "figure uploads were removed; write output locally instead",
	"fileopt":        "figure uploads were removed; write output locally instead",
	"world_readable": "figure uploads were removed; visibility no longer applies",
	"group":          "superseded by the split mapping",
	"inherit":        "attribute inheritance was removed",
}

// DeprecatedKeys returns the retired option keys in sorted order.
func DeprecatedKeys() []string {
	keys := make([]string, 0, len(deprecatedKeys))
	for k := range deprecatedKeys {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// clone returns a shallow copy so the builder can strip keys without
// mutating caller state.
func (a Attrs) clone() Attrs {
	out := make(Attrs, len(a))
	for k, v := range a {
		out[k] = v
	}
	return out
}
