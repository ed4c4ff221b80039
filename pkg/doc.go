// Package pkg provides the core libraries for plotwire figure binding.
//
// # Overview
//
// Plotwire turns tabular data plus column-to-visual mappings into
// declarative chart descriptions rendered by an external JavaScript
// charting library. The pkg directory is organized into five main areas:
//
//  1. [dataset] - Tabular data abstraction, column expressions, file loading
//  2. [figure] - Figure assembly: attribute bags, deferred mappings, layout
//  3. [widget] - Packaging, mapping resolution, wire serialization, HTML
//  4. [dendro] - Clustering-tree layout and static snapshot rendering
//  5. [chart] - The public construction API tying the above together
//
// Supporting packages: [cache] for rendered artifacts, [config] for tool
// configuration, [errors] for structured error codes, [observability] for
// instrumentation hooks, and [buildinfo] for version metadata.
//
// # Architecture
//
// The typical data flow:
//
//	Tabular data + attribute bag
//	         ↓
//	figure.New        deferred mappings captured, deprecated keys stripped
//	         ↓
//	widget.Package    sizing policy, asset dependencies, element identifier
//	         ↓
//	widget.Build      mappings resolved against the bound datasets
//	         ↓
//	{data, layout} wire JSON → HTML page or host renderer
//
// Figures stay lazy until build time: the six deferred mappings (color,
// symbol, linetype, size, split, frame) are stored as column expressions
// and only evaluated when the widget renders.
package pkg
