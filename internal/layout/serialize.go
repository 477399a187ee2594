package layout

import "github.com/Gaurav-Gosain/tilewm/internal/geom"

// SerializedNode is a pointer-based copy of a tree used for state dumps and
// structural comparison.
type SerializedNode struct {
	Window WindowID        `json:"window,omitempty" yaml:"window,omitempty"`
	Axis   string          `json:"axis,omitempty" yaml:"axis,omitempty"`
	Ratio  float64         `json:"ratio,omitempty" yaml:"ratio,omitempty"`
	Rect   geom.Rect       `json:"rect" yaml:"rect"`
	First  *SerializedNode `json:"first,omitempty" yaml:"first,omitempty"`
	Second *SerializedNode `json:"second,omitempty" yaml:"second,omitempty"`
}

// Serialize copies the tree. An empty tree yields nil.
func (t *Tree) Serialize() *SerializedNode {
	if t.root == NoNode {
		return nil
	}
	return t.serialize(t.root)
}

func (t *Tree) serialize(id NodeID) *SerializedNode {
	n := &t.nodes[id]
	if n.kind == leafNode {
		return &SerializedNode{Window: n.window, Rect: n.rect}
	}
	return &SerializedNode{
		Axis:   n.axis.String(),
		Ratio:  n.ratio,
		Rect:   n.rect,
		First:  t.serialize(n.children[0]),
		Second: t.serialize(n.children[1]),
	}
}
