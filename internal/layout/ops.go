package layout

import (
	"fmt"

	"github.com/Gaurav-Gosain/tilewm/internal/geom"
)

// Anchor records where a detached leaf sat so it can be put back into the
// same structural position.
type Anchor struct {
	// Sibling is the subtree that took the parent's place.
	Sibling NodeID
	gen     uint32
	// Side is the child slot the leaf occupied.
	Side  int
	Axis  geom.Axis
	Ratio float64
	// Rect is the leaf's rectangle at detach time.
	Rect geom.Rect
	// Root is set when the leaf was the whole tree.
	Root bool
}

// Detach removes w like Remove and returns its anchor.
func (t *Tree) Detach(w WindowID) (Anchor, error) {
	id, ok := t.leaves[w]
	if !ok {
		return Anchor{Sibling: NoNode}, fmt.Errorf("remove %q: %w", w, ErrWindowNotFound)
	}
	leaf := t.nodes[id]
	anchor := Anchor{Sibling: NoNode, Rect: leaf.rect}
	delete(t.leaves, w)

	if leaf.parent == NoNode {
		t.root = NoNode
		t.release(id)
		anchor.Root = true
		return anchor, nil
	}

	parent := t.nodes[leaf.parent]
	side := 0
	if parent.children[1] == id {
		side = 1
	}
	sib := parent.children[1-side]
	anchor.Sibling = sib
	anchor.gen = t.nodes[sib].gen
	anchor.Side = side
	anchor.Axis = parent.axis
	anchor.Ratio = parent.ratio

	t.nodes[sib].parent = parent.parent
	t.replaceChild(parent.parent, leaf.parent, sib)
	t.layout(sib, parent.rect)
	t.release(id)
	t.release(leaf.parent)
	return anchor, nil
}

// Reattach puts w back at a. When the anchored sibling no longer exists the
// window is inserted next to fallback instead and exact is false.
func (t *Tree) Reattach(w WindowID, a Anchor, fallback WindowID) (exact bool, err error) {
	if t.Contains(w) {
		return false, fmt.Errorf("reattach %q: %w", w, ErrDuplicateWindow)
	}
	if a.Root && t.root == NoNode {
		return true, t.insert(w, "", geom.Horizontal, false)
	}
	if a.Sibling != NoNode && t.live(a.Sibling) && t.nodes[a.Sibling].gen == a.gen {
		t.splitAt(a.Sibling, w, a.Axis, a.Side, a.Ratio)
		return true, nil
	}
	return false, t.insert(w, fallback, geom.Horizontal, false)
}

// ResizeNode adds delta to split id's ratio, clamped to
// [geom.MinRatio, geom.MaxRatio], and returns the new ratio.
func (t *Tree) ResizeNode(id NodeID, delta float64) (float64, error) {
	if !t.IsSplit(id) {
		return 0, fmt.Errorf("resize node %d: %w", id, ErrNotSplit)
	}
	n := &t.nodes[id]
	n.ratio = geom.ClampRatio(n.ratio + delta)
	t.layout(id, n.rect)
	return n.ratio, nil
}

// SetRatio replaces split id's ratio.
func (t *Tree) SetRatio(id NodeID, ratio float64) error {
	if !t.IsSplit(id) {
		return fmt.Errorf("set ratio on node %d: %w", id, ErrNotSplit)
	}
	t.nodes[id].ratio = geom.ClampRatio(ratio)
	t.layout(id, t.nodes[id].rect)
	return nil
}

// Resize adjusts the split directly above w.
func (t *Tree) Resize(w WindowID, delta float64) error {
	if !t.Contains(w) {
		return fmt.Errorf("resize %q: %w", w, ErrWindowNotFound)
	}
	_, err := t.ResizeNode(t.Parent(w), delta)
	return err
}

// ResizeDirection grows w toward dir by moving the nearest ancestor split
// whose axis matches dir. Left and Up shrink that split's ratio, Right and
// Down grow it. It reports whether a split was found.
func (t *Tree) ResizeDirection(w WindowID, dir geom.Direction, delta float64) bool {
	id, ok := t.leaves[w]
	if !ok {
		return false
	}
	for p := t.nodes[id].parent; p != NoNode; p = t.nodes[p].parent {
		if t.nodes[p].axis != dir.Axis() {
			continue
		}
		if !dir.Forward() {
			delta = -delta
		}
		_, err := t.ResizeNode(p, delta)
		return err == nil
	}
	return false
}

// Neighbor returns the window adjacent to w in direction dir. Inside the
// target subtree it descends toward the side facing w; across splits of the
// other axis it follows the child covering w's center.
func (t *Tree) Neighbor(w WindowID, dir geom.Direction) (WindowID, bool) {
	id, ok := t.leaves[w]
	if !ok {
		return "", false
	}
	center := t.nodes[id].rect.Center()

	cur := id
	target := NoNode
	for p := t.nodes[cur].parent; p != NoNode; cur, p = p, t.nodes[p].parent {
		n := &t.nodes[p]
		if n.axis != dir.Axis() {
			continue
		}
		if dir.Forward() && n.children[0] == cur {
			target = n.children[1]
			break
		}
		if !dir.Forward() && n.children[1] == cur {
			target = n.children[0]
			break
		}
	}
	if target == NoNode {
		return "", false
	}

	for t.nodes[target].kind == splitNode {
		n := &t.nodes[target]
		if n.axis == dir.Axis() {
			if dir.Forward() {
				target = n.children[0]
			} else {
				target = n.children[1]
			}
			continue
		}
		second := t.nodes[n.children[1]].rect
		if n.axis == geom.Horizontal && center.X >= second.X ||
			n.axis == geom.Vertical && center.Y >= second.Y {
			target = n.children[1]
		} else {
			target = n.children[0]
		}
	}
	return t.nodes[target].window, true
}

// Swap exchanges the leaves of a and b. Rectangles stay with the leaves.
func (t *Tree) Swap(a, b WindowID) error {
	ia, ok := t.leaves[a]
	if !ok {
		return fmt.Errorf("swap %q: %w", a, ErrWindowNotFound)
	}
	ib, ok := t.leaves[b]
	if !ok {
		return fmt.Errorf("swap %q: %w", b, ErrWindowNotFound)
	}
	t.nodes[ia].window, t.nodes[ib].window = b, a
	t.leaves[a], t.leaves[b] = ib, ia
	return nil
}

// Rotate flips the axis of the split directly above w.
func (t *Tree) Rotate(w WindowID) bool {
	p := t.Parent(w)
	if p == NoNode {
		return false
	}
	n := &t.nodes[p]
	n.axis = n.axis.Flip()
	t.layout(p, n.rect)
	return true
}

// Equalize resets every split to the default ratio.
func (t *Tree) Equalize() {
	for i := range t.nodes {
		if t.nodes[i].kind == splitNode {
			t.nodes[i].ratio = t.ratio
		}
	}
	if t.root != NoNode {
		t.layout(t.root, t.nodes[t.root].rect)
	}
}

// Validate checks the arena's structural invariants.
func (t *Tree) Validate() error {
	if t.root == NoNode {
		if len(t.leaves) != 0 {
			return fmt.Errorf("%w: empty tree with %d leaves", ErrCorrupt, len(t.leaves))
		}
		return nil
	}
	if !t.live(t.root) || t.nodes[t.root].parent != NoNode {
		return fmt.Errorf("%w: bad root %d", ErrCorrupt, t.root)
	}
	seen := 0
	var walk func(id NodeID) error
	walk = func(id NodeID) error {
		n := &t.nodes[id]
		switch n.kind {
		case leafNode:
			seen++
			if got, ok := t.leaves[n.window]; !ok || got != id {
				return fmt.Errorf("%w: leaf %d (%q) not indexed", ErrCorrupt, id, n.window)
			}
			return nil
		case splitNode:
			if n.ratio < geom.MinRatio || n.ratio > geom.MaxRatio {
				return fmt.Errorf("%w: split %d ratio %v out of range", ErrCorrupt, id, n.ratio)
			}
			for _, c := range n.children {
				if !t.live(c) || t.nodes[c].parent != id {
					return fmt.Errorf("%w: split %d has bad child %d", ErrCorrupt, id, c)
				}
				if err := walk(c); err != nil {
					return err
				}
			}
			return nil
		default:
			return fmt.Errorf("%w: freed node %d reachable", ErrCorrupt, id)
		}
	}
	if err := walk(t.root); err != nil {
		return err
	}
	if seen != len(t.leaves) {
		return fmt.Errorf("%w: %d reachable leaves, %d indexed", ErrCorrupt, seen, len(t.leaves))
	}
	return nil
}
