package dendro

// Coord is one row of the coordinate table: a node's position in tree
// space (x = leaf position, y = merge height), the leaf-label set attached
// to the node, and the derived member count.
type Coord struct {
	X float64
	Y float64

	// Labels is the leaf-label set attached to the node. For internal
	// nodes this is the set the node subtends; for leaf rows it is the
	// full leaf list (see Coordinates).
	Labels []string
}

// Members returns the size of the attached label set.
func (c Coord) Members() int { return len(c.Labels) }

// candidate is an internal node recorded during cut enumeration: its merge
// height and the leaf labels it subtends.
type candidate struct {
	node   *Tree
	height float64
	labels []string
}

// Segment is one tree edge in tree space.
type Segment struct {
	X0, Y0 float64
	X1, Y1 float64
}

// Coordinates computes the coordinate table for the tree: leaves at
// y = 0 with x = 1..n in left-to-right order, internal nodes at their merge
// height with x at the midpoint of their children. Rows appear leaves
// first, then internal nodes in post-order.
//
// Label attachment follows the lookup-by-height strategy: every coordinate
// row whose height matches a candidate internal node receives that
// candidate's label set. Candidates are processed in ascending height then
// left-to-right order, so when two internal nodes share a merge height the
// later one overwrites the earlier — a documented limitation of the
// strategy, kept deterministic by the fixed traversal order.
//
// Leaf rows all receive the full leaf-label list rather than their own
// singleton label. This mirrors the adapter's observed behavior and is
// preserved as-is pending clarification of the intended semantics.
func Coordinates(t *Tree) []Coord {
	positions := leafPositions(t)

	var leaves, internal []Coord
	var walk func(n *Tree) (x float64)
	walk = func(n *Tree) float64 {
		if n.IsLeaf() {
			x := positions[n]
			leaves = append(leaves, Coord{X: x, Y: 0})
			return x
		}
		lx := walk(n.Left)
		rx := walk(n.Right)
		x := (lx + rx) / 2
		internal = append(internal, Coord{X: x, Y: n.Height})
		return x
	}
	walk(t)

	rows := append(leaves, internal...)
	attachLabels(t, rows)
	return rows
}

// leafPositions assigns x = 1..n to leaves in left-to-right order.
func leafPositions(t *Tree) map[*Tree]float64 {
	positions := make(map[*Tree]float64)
	next := 1.0
	var walk func(n *Tree)
	walk = func(n *Tree) {
		if n.IsLeaf() {
			positions[n] = next
			next++
			return
		}
		walk(n.Left)
		walk(n.Right)
	}
	walk(t)
	return positions
}

// candidates enumerates internal nodes by cutting the tree at every
// positive merge height present, de-duplicated by structural identity.
func candidates(t *Tree) []candidate {
	seen := make(map[*Tree]bool)
	var out []candidate
	for _, h := range t.Heights() {
		for _, sub := range t.Cut(h) {
			if sub.IsLeaf() || seen[sub] {
				continue
			}
			seen[sub] = true
			out = append(out, candidate{node: sub, height: sub.Height, labels: sub.Leaves()})
		}
	}
	return out
}

// attachLabels fills the Labels column of the coordinate table.
func attachLabels(t *Tree, rows []Coord) {
	byHeight := make(map[float64][]string)
	for _, c := range candidates(t) {
		// Later candidates overwrite on duplicate heights.
		byHeight[c.height] = c.labels
	}

	allLeaves := t.Leaves()
	for i := range rows {
		if rows[i].Y == 0 {
			rows[i].Labels = allLeaves
			continue
		}
		if labels, ok := byHeight[rows[i].Y]; ok {
			rows[i].Labels = labels
		}
	}
}

// Segments returns the tree edges: for each internal node a crossbar at
// the merge height spanning its children, plus a drop from each child up
// to the crossbar.
func Segments(t *Tree) []Segment {
	positions := leafPositions(t)

	var out []Segment
	var walk func(n *Tree) (x float64)
	walk = func(n *Tree) float64 {
		if n.IsLeaf() {
			return positions[n]
		}
		lx := walk(n.Left)
		rx := walk(n.Right)

		out = append(out,
			Segment{X0: lx, Y0: n.Height, X1: rx, Y1: n.Height},
			Segment{X0: lx, Y0: n.Left.Height, X1: lx, Y1: n.Height},
			Segment{X0: rx, Y0: n.Right.Height, X1: rx, Y1: n.Height},
		)
		return (lx + rx) / 2
	}
	walk(t)
	return out
}
