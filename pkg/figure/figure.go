package figure

import (
	"fmt"
	"sync/atomic"

	"github.com/plotwire/plotwire/pkg/dataset"
	"github.com/plotwire/plotwire/pkg/errors"
)

// Source is a deferred data producer. Figures hold sources rather than
// materialized tables so that binding stays lazy until build time.
type Source func() (dataset.Table, error)

// Scales holds the scale-control parameters for the deferred mappings.
// They are always attached, defaulting to documented constants.
type Scales struct {
	Colors    []string   // palette for the color mapping
	Alpha     float64    // opacity, default 1
	Symbols   []string   // symbol vocabulary
	Linetypes []string   // linetype vocabulary
	Sizes     [2]float64 // marker size range, default [10, 100]
}

// Scale defaults.
const DefaultAlpha = 1.0

// DefaultSizes is the default marker size range.
var DefaultSizes = [2]float64{10, 100}

// DefaultColors is the default qualitative palette.
var DefaultColors = []string{
	"#66c2a5", "#fc8d62", "#8da0cb", "#e78ac3",
	"#a6d854", "#ffd92f", "#e5c494", "#b3b3b3",
}

// DefaultSymbols is the default symbol vocabulary.
var DefaultSymbols = []string{
	"circle", "square", "diamond", "cross", "x", "triangle-up",
}

// DefaultLinetypes is the default linetype vocabulary.
var DefaultLinetypes = []string{"solid", "dash", "dot", "dashdot"}

// defaultScales returns a fresh Scales with the documented defaults.
func defaultScales() Scales {
	return Scales{
		Colors:    DefaultColors,
		Alpha:     DefaultAlpha,
		Symbols:   DefaultSymbols,
		Linetypes: DefaultLinetypes,
		Sizes:     DefaultSizes,
	}
}

// AttributeSet is the bag of visual and data mappings for one bound dataset.
type AttributeSet struct {
	// Type is the trace type hint. Empty means infer at build time.
	Type string

	// Mappings holds only the aesthetics the caller supplied. An absent
	// aesthetic means "no mapping", distinct from "mapping to a default".
	Mappings map[Aesthetic]Mapping

	// Scales are always present.
	Scales Scales

	// Extra holds pass-through attributes (x, y, text, mode, unknown keys).
	// Values may be dataset.Expr, resolved at build time.
	Extra map[string]any
}

// Has reports whether the aesthetic was explicitly supplied.
func (a *AttributeSet) Has(aes Aesthetic) bool {
	_, ok := a.Mappings[aes]
	return ok
}

// Figure is the intermediate figure record.
//
// Invariants: every key in AttributeSets has a matching key in Datasets, and
// CurrentDatasetID always resolves to an entry in Datasets.
type Figure struct {
	// Datasets maps generated identifiers to deferred data producers.
	Datasets map[string]Source

	// Order lists dataset identifiers in bind order, for deterministic
	// build output.
	Order []string

	// CurrentDatasetID is the most recently bound dataset.
	CurrentDatasetID string

	// AttributeSets maps dataset identifiers to their attribute bags.
	AttributeSets map[string]*AttributeSet

	// Layout is shared across all traces.
	Layout Layout

	// EventSource correlates user-interaction events back to this figure.
	EventSource string

	// SelectionGroup links selections across widgets built from the same
	// shared table. Empty when the data was not shared.
	SelectionGroup string
}

// NewAttributeSet returns an empty attribute set with default scales.
func NewAttributeSet() *AttributeSet {
	return &AttributeSet{
		Mappings: make(map[Aesthetic]Mapping),
		Scales:   defaultScales(),
		Extra:    make(map[string]any),
	}
}

// Bind attaches a dataset and its attribute set under a fresh identifier
// and makes it the current dataset. Returns the generated identifier.
func (f *Figure) Bind(tbl dataset.Table, as *AttributeSet) string {
	id := nextDatasetID()
	if f.Datasets == nil {
		f.Datasets = make(map[string]Source)
	}
	if f.AttributeSets == nil {
		f.AttributeSets = make(map[string]*AttributeSet)
	}
	f.Datasets[id] = func() (dataset.Table, error) { return tbl, nil }
	f.AttributeSets[id] = as
	f.Order = append(f.Order, id)
	f.CurrentDatasetID = id
	return id
}

// CurrentDataset materializes the current dataset.
func (f *Figure) CurrentDataset() (dataset.Table, error) {
	src, ok := f.Datasets[f.CurrentDatasetID]
	if !ok {
		return nil, errors.New(errors.ErrCodeInternal,
			"current dataset %q is not bound", f.CurrentDatasetID)
	}
	return src()
}

// Validate checks the structural invariants.
func (f *Figure) Validate() error {
	if _, ok := f.Datasets[f.CurrentDatasetID]; !ok {
		return errors.New(errors.ErrCodeInternal,
			"current dataset %q is not bound", f.CurrentDatasetID)
	}
	for id := range f.AttributeSets {
		if _, ok := f.Datasets[id]; !ok {
			return errors.New(errors.ErrCodeInternal,
				"attribute set %q has no bound dataset", id)
		}
	}
	for _, id := range f.Order {
		if _, ok := f.Datasets[id]; !ok {
			return errors.New(errors.ErrCodeInternal,
				"ordered dataset %q is not bound", id)
		}
	}
	return nil
}

// idCounter backs dataset identifier generation. Process-wide, starts at
// zero, advanced atomically so multi-threaded hosts stay collision-free.
var idCounter atomic.Uint64

// nextDatasetID returns a fresh process-unique dataset identifier.
func nextDatasetID() string {
	return fmt.Sprintf("ds-%d", idCounter.Add(1))
}
