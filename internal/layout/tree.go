// Package layout implements the per-workspace binary space partitioning
// tree. Nodes live in an arena and are addressed by NodeID; a leaf holds
// exactly one tiled window and a split holds two children.
package layout

import (
	"errors"
	"fmt"

	"github.com/Gaurav-Gosain/tilewm/internal/geom"
)

// WindowID identifies a window inside a tree.
type WindowID string

// NodeID is an index into the tree's node arena.
type NodeID int32

// NoNode marks an absent node (empty tree, root's parent).
const NoNode NodeID = -1

var (
	// ErrWindowNotFound is returned when an operation names a window that
	// has no leaf in the tree.
	ErrWindowNotFound = errors.New("window not in tree")
	// ErrDuplicateWindow is returned when inserting a window that already
	// has a leaf.
	ErrDuplicateWindow = errors.New("window already in tree")
	// ErrNotSplit is returned when a resize targets a leaf or a freed node.
	ErrNotSplit = errors.New("node is not a split")
	// ErrCorrupt is the panic value wrapped when the arena is internally
	// inconsistent.
	ErrCorrupt = errors.New("layout tree corrupt")
)

type nodeKind uint8

const (
	freeNode nodeKind = iota
	leafNode
	splitNode
)

type node struct {
	kind     nodeKind
	gen      uint32
	parent   NodeID
	children [2]NodeID
	axis     geom.Axis
	ratio    float64
	window   WindowID
	rect     geom.Rect
}

// Tree is a BSP tree for a single workspace. The zero value is not usable;
// call New.
type Tree struct {
	nodes  []node
	free   []NodeID
	root   NodeID
	leaves map[WindowID]NodeID
	ratio  float64
	bounds geom.Rect
}

// New returns an empty tree whose new splits start at ratio.
func New(ratio float64) *Tree {
	return &Tree{
		root:   NoNode,
		leaves: make(map[WindowID]NodeID),
		ratio:  geom.ClampRatio(ratio),
	}
}

// DefaultRatio returns the ratio given to newly created splits.
func (t *Tree) DefaultRatio() float64 { return t.ratio }

// SetDefaultRatio changes the ratio for future splits only.
func (t *Tree) SetDefaultRatio(r float64) { t.ratio = geom.ClampRatio(r) }

// Len returns the number of leaves.
func (t *Tree) Len() int { return len(t.leaves) }

// Empty reports whether the tree has no leaves.
func (t *Tree) Empty() bool { return t.root == NoNode }

// Root returns the root node, or NoNode.
func (t *Tree) Root() NodeID { return t.root }

// Bounds returns the rectangle passed to the last ComputeGeometries call.
func (t *Tree) Bounds() geom.Rect { return t.bounds }

// Contains reports whether w has a leaf.
func (t *Tree) Contains(w WindowID) bool {
	_, ok := t.leaves[w]
	return ok
}

// Leaf returns the leaf node holding w.
func (t *Tree) Leaf(w WindowID) (NodeID, bool) {
	id, ok := t.leaves[w]
	return id, ok
}

// Rect returns the last computed rectangle of w's leaf.
func (t *Tree) Rect(w WindowID) (geom.Rect, bool) {
	id, ok := t.leaves[w]
	if !ok {
		return geom.Rect{}, false
	}
	return t.nodes[id].rect, true
}

// IsSplit reports whether id refers to a live split node.
func (t *Tree) IsSplit(id NodeID) bool {
	return t.live(id) && t.nodes[id].kind == splitNode
}

// Ratio returns the ratio of split id.
func (t *Tree) Ratio(id NodeID) (float64, bool) {
	if !t.IsSplit(id) {
		return 0, false
	}
	return t.nodes[id].ratio, true
}

// Axis returns the axis of split id.
func (t *Tree) Axis(id NodeID) (geom.Axis, bool) {
	if !t.IsSplit(id) {
		return geom.Horizontal, false
	}
	return t.nodes[id].axis, true
}

// Parent returns the split directly above w's leaf, or NoNode when w is the
// root or absent.
func (t *Tree) Parent(w WindowID) NodeID {
	id, ok := t.leaves[w]
	if !ok {
		return NoNode
	}
	return t.nodes[id].parent
}

// Leaves returns the windows in left-to-right, top-to-bottom tree order.
func (t *Tree) Leaves() []WindowID {
	out := make([]WindowID, 0, len(t.leaves))
	var walk func(NodeID)
	walk = func(id NodeID) {
		n := &t.nodes[id]
		if n.kind == leafNode {
			out = append(out, n.window)
			return
		}
		walk(n.children[0])
		walk(n.children[1])
	}
	if t.root != NoNode {
		walk(t.root)
	}
	return out
}

// Insert adds w next to the target leaf. The new split's axis follows the
// longer side of the target's last computed rectangle. An unknown or empty
// target splits the root.
func (t *Tree) Insert(w, target WindowID) error {
	return t.insert(w, target, geom.Horizontal, false)
}

// InsertAxis is Insert with an explicit split axis.
func (t *Tree) InsertAxis(w, target WindowID, axis geom.Axis) error {
	return t.insert(w, target, axis, true)
}

func (t *Tree) insert(w, target WindowID, axis geom.Axis, forced bool) error {
	if t.Contains(w) {
		return fmt.Errorf("insert %q: %w", w, ErrDuplicateWindow)
	}
	if t.root == NoNode {
		id := t.alloc(node{kind: leafNode, parent: NoNode, window: w, rect: t.bounds})
		t.root = id
		t.leaves[w] = id
		return nil
	}
	anchor, ok := t.leaves[target]
	if !ok {
		anchor = t.root
	}
	if !forced {
		axis = geom.LongerAxis(t.nodes[anchor].rect)
	}
	t.splitAt(anchor, w, axis, 1, t.ratio)
	return nil
}

// splitAt replaces the subtree at anchor with a split holding the old
// subtree and a new leaf for w. side is the child slot of the new leaf.
func (t *Tree) splitAt(anchor NodeID, w WindowID, axis geom.Axis, side int, ratio float64) NodeID {
	rect := t.nodes[anchor].rect
	parent := t.nodes[anchor].parent

	leaf := t.alloc(node{kind: leafNode, window: w})
	split := t.alloc(node{kind: splitNode, axis: axis, ratio: geom.ClampRatio(ratio), parent: parent})

	if side == 0 {
		t.nodes[split].children = [2]NodeID{leaf, anchor}
	} else {
		t.nodes[split].children = [2]NodeID{anchor, leaf}
	}
	t.nodes[anchor].parent = split
	t.nodes[leaf].parent = split
	t.replaceChild(parent, anchor, split)
	t.leaves[w] = leaf
	t.layout(split, rect)
	return leaf
}

// Remove deletes w's leaf. Its parent split is replaced by the surviving
// sibling subtree, which inherits the parent's rectangle.
func (t *Tree) Remove(w WindowID) error {
	_, err := t.Detach(w)
	return err
}

// ComputeGeometries lays the tree out inside root and returns every
// window's rectangle. The result depends only on the tree and root.
func (t *Tree) ComputeGeometries(root geom.Rect) map[WindowID]geom.Rect {
	t.bounds = root
	out := make(map[WindowID]geom.Rect, len(t.leaves))
	if t.root == NoNode {
		return out
	}
	t.layout(t.root, root)
	for w, id := range t.leaves {
		out[w] = t.nodes[id].rect
	}
	return out
}

func (t *Tree) layout(id NodeID, r geom.Rect) {
	n := &t.nodes[id]
	n.rect = r
	if n.kind != splitNode {
		return
	}
	a, b := r.Split(n.axis, n.ratio)
	left, right := n.children[0], n.children[1]
	t.layout(left, a)
	t.layout(right, b)
}

func (t *Tree) alloc(n node) NodeID {
	if k := len(t.free); k > 0 {
		id := t.free[k-1]
		t.free = t.free[:k-1]
		n.gen = t.nodes[id].gen + 1
		t.nodes[id] = n
		return id
	}
	t.nodes = append(t.nodes, n)
	return NodeID(len(t.nodes) - 1)
}

func (t *Tree) release(id NodeID) {
	gen := t.nodes[id].gen
	t.nodes[id] = node{kind: freeNode, gen: gen, parent: NoNode}
	t.free = append(t.free, id)
}

func (t *Tree) live(id NodeID) bool {
	return id >= 0 && int(id) < len(t.nodes) && t.nodes[id].kind != freeNode
}

func (t *Tree) replaceChild(parent, old, repl NodeID) {
	if parent == NoNode {
		t.root = repl
		return
	}
	p := &t.nodes[parent]
	for i := range p.children {
		if p.children[i] == old {
			p.children[i] = repl
			return
		}
	}
	panic(fmt.Errorf("%w: node %d is not a child of %d", ErrCorrupt, old, parent))
}
