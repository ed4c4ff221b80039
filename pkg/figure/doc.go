// Package figure defines the intermediate figure representation and the
// builder that assembles it from a dataset and an attribute bag.
//
// A [Figure] is not renderable by itself. It records which datasets are
// bound, which visual mappings were requested, and the layout configuration.
// Column mappings stay deferred: they name columns of the bound dataset and
// are only evaluated by the pre-render build step in pkg/widget.
//
// # Architecture
//
// The package sits between user input and the wire format:
//
//   - [Attrs]: raw user-supplied attribute bag
//   - [Figure], [AttributeSet], [Mapping]: intermediate representation
//   - pkg/widget: packaging and pre-render resolution to wire JSON
//
// # Deferred Mappings
//
// The six visual aesthetics (color, symbol, linetype, size, split, frame)
// are captured only when explicitly supplied. An absent mapping is absent
// from the attribute set, not present-and-empty, so later stages can tell
// "no mapping" apart from "mapping to a default".
//
// # Deprecated Options
//
// The upload-era options (filename, fileopt, world_readable) and the retired
// group and inherit options are stripped with a warning and never forwarded.
package figure
