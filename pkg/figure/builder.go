package figure

import (
	"context"

	"github.com/plotwire/plotwire/pkg/dataset"
	"github.com/plotwire/plotwire/pkg/errors"
	"github.com/plotwire/plotwire/pkg/observability"
)

// DefaultEventSource is the event source label when none is supplied.
const DefaultEventSource = "A"

// New assembles a Figure from a dataset and an attribute bag.
//
// data must be a dataset.Table or a *dataset.Shared wrapper; anything else
// is a fatal input error reported immediately. Deprecated option keys are
// stripped with one warning each and never forwarded. The six deferred
// mappings are captured only when supplied; scale controls are always
// attached with documented defaults.
func New(data any, attrs Attrs) (*Figure, error) {
	tbl, group, err := resolveData(data)
	if err != nil {
		return nil, err
	}

	attrs = attrs.clone()
	stripDeprecated(attrs)

	id := nextDatasetID()

	as := &AttributeSet{
		Mappings: make(map[Aesthetic]Mapping),
		Scales:   defaultScales(),
		Extra:    make(map[string]any),
	}

	for _, aes := range Aesthetics {
		if v, ok := takeKey(attrs, string(aes)); ok {
			as.Mappings[aes] = asMapping(v, id)
		}
	}

	if err := applyScales(&as.Scales, attrs); err != nil {
		return nil, err
	}

	if v, ok := takeKey(attrs, KeyType); ok {
		s, ok := v.(string)
		if !ok {
			return nil, errors.New(errors.ErrCodeInvalidInput, "type must be a string, got %T", v)
		}
		as.Type = s
	}

	layout := NewLayout()
	if layout.Width, err = takeDimension(attrs, KeyWidth); err != nil {
		return nil, err
	}
	if layout.Height, err = takeDimension(attrs, KeyHeight); err != nil {
		return nil, err
	}

	source := DefaultEventSource
	if v, ok := takeKey(attrs, KeySource); ok {
		s, ok := v.(string)
		if !ok {
			return nil, errors.New(errors.ErrCodeInvalidInput, "source must be a string, got %T", v)
		}
		source = s
	}

	// Remaining keys pass through opaquely.
	for k, v := range attrs {
		as.Extra[k] = v
	}

	fig := &Figure{
		Datasets:         map[string]Source{id: func() (dataset.Table, error) { return tbl, nil }},
		Order:            []string{id},
		CurrentDatasetID: id,
		AttributeSets:    map[string]*AttributeSet{id: as},
		Layout:           layout,
		EventSource:      source,
		SelectionGroup:   group,
	}

	observability.Figure().OnConstruct(context.Background(), id, len(as.Mappings))
	return fig, nil
}

// resolveData validates the data argument and unwraps shared tables.
func resolveData(data any) (dataset.Table, string, error) {
	switch d := data.(type) {
	case *dataset.Shared:
		if d == nil || d.Table == nil {
			return nil, "", errors.New(errors.ErrCodeInvalidDataset, "shared table wraps no data")
		}
		return d.Table, d.Group, nil
	case dataset.Table:
		return d, "", nil
	default:
		return nil, "", errors.New(errors.ErrCodeInvalidDataset,
			"data must be a dataset.Table or *dataset.Shared, got %T", data)
	}
}

// stripDeprecated removes retired option keys, warning once per key present.
func stripDeprecated(attrs Attrs) {
	for _, key := range DeprecatedKeys() {
		if _, ok := attrs[key]; !ok {
			continue
		}
		logger().Warn("ignoring deprecated option", "key", key, "reason", deprecatedKeys[key])
		observability.Figure().OnDeprecatedOption(context.Background(), key)
		delete(attrs, key)
	}
}

// applyScales lifts supplied scale controls, leaving defaults otherwise.
func applyScales(s *Scales, attrs Attrs) error {
	if v, ok := takeKey(attrs, KeyColors); ok {
		vals, err := asStringList(KeyColors, v)
		if err != nil {
			return err
		}
		s.Colors = vals
	}
	if v, ok := takeKey(attrs, KeySymbols); ok {
		vals, err := asStringList(KeySymbols, v)
		if err != nil {
			return err
		}
		s.Symbols = vals
	}
	if v, ok := takeKey(attrs, KeyLinetypes); ok {
		vals, err := asStringList(KeyLinetypes, v)
		if err != nil {
			return err
		}
		s.Linetypes = vals
	}
	if v, ok := takeKey(attrs, KeyAlpha); ok {
		f, ok := asFloat(v)
		if !ok {
			return errors.New(errors.ErrCodeInvalidInput, "alpha must be numeric, got %T", v)
		}
		if f < 0 || f > 1 {
			return errors.New(errors.ErrCodeInvalidInput, "alpha must be in [0,1], got %v", f)
		}
		s.Alpha = f
	}
	if v, ok := takeKey(attrs, KeySizes); ok {
		r, err := asSizeRange(v)
		if err != nil {
			return err
		}
		s.Sizes = r
	}
	return nil
}

// takeKey removes and returns a key from the bag.
func takeKey(attrs Attrs, key string) (any, bool) {
	v, ok := attrs[key]
	if ok {
		delete(attrs, key)
	}
	return v, ok
}

// takeDimension lifts a width/height value. Absent stays nil (auto-size).
func takeDimension(attrs Attrs, key string) (*float64, error) {
	v, ok := takeKey(attrs, key)
	if !ok {
		return nil, nil
	}
	f, ok := asFloat(v)
	if !ok {
		return nil, errors.New(errors.ErrCodeInvalidInput, "%s must be numeric, got %T", key, v)
	}
	if f <= 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "%s must be positive, got %v", key, f)
	}
	return &f, nil
}

func asFloat(v any) (float64, bool) {
	switch x := v.(type) {
	case float64:
		return x, true
	case int:
		return float64(x), true
	default:
		return 0, false
	}
}

func asStringList(key string, v any) ([]string, error) {
	switch x := v.(type) {
	case []string:
		return x, nil
	case string:
		return []string{x}, nil
	default:
		return nil, errors.New(errors.ErrCodeInvalidInput, "%s must be a string list, got %T", key, v)
	}
}

func asSizeRange(v any) ([2]float64, error) {
	switch x := v.(type) {
	case [2]float64:
		return x, nil
	case []float64:
		if len(x) == 2 {
			return [2]float64{x[0], x[1]}, nil
		}
	}
	return [2]float64{}, errors.New(errors.ErrCodeInvalidInput,
		"sizes must be a two-element numeric range, got %v", v)
}
