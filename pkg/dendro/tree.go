package dendro

import (
	"encoding/json"
	"os"
	"slices"

	"github.com/plotwire/plotwire/pkg/errors"
)

// Tree is a node in a hierarchical clustering tree. Leaves carry a label
// and height zero; internal nodes carry the merge height at which their two
// children combine.
type Tree struct {
	Label  string  `json:"label,omitempty"`
	Height float64 `json:"height,omitempty"`
	Left   *Tree   `json:"left,omitempty"`
	Right  *Tree   `json:"right,omitempty"`
}

// IsLeaf reports whether the node has no children.
func (t *Tree) IsLeaf() bool { return t.Left == nil && t.Right == nil }

// Validate checks the structural invariants: leaves are labeled with height
// zero, internal nodes have two children and a merge height strictly above
// both children's heights.
func (t *Tree) Validate() error {
	if t == nil {
		return errors.New(errors.ErrCodeInvalidTree, "tree is nil")
	}
	if t.IsLeaf() {
		if t.Label == "" {
			return errors.New(errors.ErrCodeInvalidTree, "leaf without a label")
		}
		if t.Height != 0 {
			return errors.New(errors.ErrCodeInvalidTree,
				"leaf %q has height %v, want 0", t.Label, t.Height)
		}
		return nil
	}
	if t.Left == nil || t.Right == nil {
		return errors.New(errors.ErrCodeInvalidTree, "internal node must have two children")
	}
	if t.Height <= 0 {
		return errors.New(errors.ErrCodeInvalidTree,
			"internal node has non-positive merge height %v", t.Height)
	}
	for _, child := range []*Tree{t.Left, t.Right} {
		if child.Height >= t.Height {
			return errors.New(errors.ErrCodeInvalidTree,
				"child height %v not below parent merge height %v", child.Height, t.Height)
		}
		if err := child.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// Leaves returns the leaf labels in left-to-right order.
func (t *Tree) Leaves() []string {
	if t == nil {
		return nil
	}
	if t.IsLeaf() {
		return []string{t.Label}
	}
	return append(t.Left.Leaves(), t.Right.Leaves()...)
}

// LeafCount returns the number of leaves.
func (t *Tree) LeafCount() int {
	if t == nil {
		return 0
	}
	if t.IsLeaf() {
		return 1
	}
	return t.Left.LeafCount() + t.Right.LeafCount()
}

// Cut returns the maximal subtrees whose height does not exceed h, in
// left-to-right order. Cutting at the root's merge height returns the root
// itself.
func (t *Tree) Cut(h float64) []*Tree {
	if t == nil {
		return nil
	}
	if t.Height <= h {
		return []*Tree{t}
	}
	return append(t.Left.Cut(h), t.Right.Cut(h)...)
}

// Heights returns the distinct positive merge heights present in the tree,
// sorted ascending.
func (t *Tree) Heights() []float64 {
	set := make(map[float64]bool)
	t.collectHeights(set)
	out := make([]float64, 0, len(set))
	for h := range set {
		out = append(out, h)
	}
	slices.Sort(out)
	return out
}

func (t *Tree) collectHeights(set map[float64]bool) {
	if t == nil || t.IsLeaf() {
		return
	}
	set[t.Height] = true
	t.Left.collectHeights(set)
	t.Right.collectHeights(set)
}

// ParseTree decodes a tree from its JSON form.
func ParseTree(data []byte) (*Tree, error) {
	var t Tree
	if err := json.Unmarshal(data, &t); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidTree, err, "decode tree")
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return &t, nil
}

// ReadTreeFile reads and validates a tree from a JSON file.
func ReadTreeFile(path string) (*Tree, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
		}
		return nil, err
	}
	return ParseTree(data)
}
