// Package dendro turns hierarchical clustering trees into figures.
//
// The adapter computes 2D coordinates for every tree node, associates each
// internal node with the set of leaf labels it subtends, and composes a
// figure of layered traces: line segments for tree edges, markers for
// internal nodes, and text for leaf labels. The figure uses a fixed
// interactive-selection layout (blank axes, rectangular-select drag mode)
// so that brushing internal nodes drives linked selection in other widgets
// sharing the same selection group.
//
// The plot is horizontal: merge heights run along the plot x-axis and leaf
// positions along the plot y-axis, leaving room at negative x for the leaf
// labels.
//
// # Known Limitations
//
// Internal nodes are matched to coordinate rows by merge height. Two
// internal nodes merging at exactly the same height therefore collide; the
// later candidate in ascending-height traversal order wins. This is a
// documented gap, not an error.
package dendro
