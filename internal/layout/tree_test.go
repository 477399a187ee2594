package layout

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"reflect"
	"testing"

	"github.com/Gaurav-Gosain/tilewm/internal/geom"
)

var screen = geom.R(0, 0, 1920, 1080)

// threeWay builds [a | [b / c]] on a 1920x1080 screen.
func threeWay(t *testing.T) *Tree {
	t.Helper()
	tr := New(0.5)
	tr.ComputeGeometries(screen)
	for _, step := range [][2]WindowID{{"a", ""}, {"b", "a"}, {"c", "b"}} {
		if err := tr.Insert(step[0], step[1]); err != nil {
			t.Fatalf("Insert(%s): %v", step[0], err)
		}
	}
	tr.ComputeGeometries(screen)
	return tr
}

// shape renders the structure without ratios or rectangles.
func shape(n *SerializedNode) string {
	if n == nil {
		return "()"
	}
	if n.Window != "" {
		return string(n.Window)
	}
	return fmt.Sprintf("(%c %s %s)", n.Axis[0], shape(n.First), shape(n.Second))
}

// =============================================================================
// Insert / Remove
// =============================================================================

func TestInsertSplitsLongerSide(t *testing.T) {
	tr := threeWay(t)

	want := map[WindowID]geom.Rect{
		"a": geom.R(0, 0, 960, 1080),
		"b": geom.R(960, 0, 960, 540),
		"c": geom.R(960, 540, 960, 540),
	}
	got := tr.ComputeGeometries(screen)
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ComputeGeometries() = %v, want %v", got, want)
	}
	if s := shape(tr.Serialize()); s != "(h a (v b c))" {
		t.Errorf("shape = %s", s)
	}
}

func TestInsertSquareLeafSplitsHorizontally(t *testing.T) {
	tr := New(0.5)
	tr.ComputeGeometries(geom.R(0, 0, 800, 800))
	_ = tr.Insert("a", "")
	_ = tr.Insert("b", "a")
	if ax, _ := tr.Axis(tr.Root()); ax != geom.Horizontal {
		t.Errorf("square leaf split on %v", ax)
	}
}

func TestInsertUnknownTargetSplitsRoot(t *testing.T) {
	tr := threeWay(t)
	if err := tr.Insert("d", "nope"); err != nil {
		t.Fatal(err)
	}
	if s := shape(tr.Serialize()); s != "(h (h a (v b c)) d)" {
		t.Errorf("shape = %s", s)
	}
}

func TestInsertDuplicate(t *testing.T) {
	tr := threeWay(t)
	if err := tr.Insert("b", "a"); !errors.Is(err, ErrDuplicateWindow) {
		t.Errorf("Insert duplicate err = %v", err)
	}
}

func TestRemoveCollapsesToSibling(t *testing.T) {
	tests := []struct {
		name   string
		remove WindowID
		shape  string
		rects  map[WindowID]geom.Rect
	}{
		{
			name:   "leaf beside split",
			remove: "a",
			shape:  "(v b c)",
			rects:  map[WindowID]geom.Rect{"b": geom.R(0, 0, 1920, 540), "c": geom.R(0, 540, 1920, 540)},
		},
		{
			name:   "leaf inside split",
			remove: "c",
			shape:  "(h a b)",
			rects:  map[WindowID]geom.Rect{"a": geom.R(0, 0, 960, 1080), "b": geom.R(960, 0, 960, 1080)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := threeWay(t)
			if err := tr.Remove(tt.remove); err != nil {
				t.Fatal(err)
			}
			if s := shape(tr.Serialize()); s != tt.shape {
				t.Errorf("shape = %s, want %s", s, tt.shape)
			}
			// Cached rects are already updated, before any recompute.
			for w, r := range tt.rects {
				if got, _ := tr.Rect(w); got != r {
					t.Errorf("Rect(%s) = %v, want %v", w, got, r)
				}
			}
			if err := tr.Validate(); err != nil {
				t.Error(err)
			}
		})
	}
}

func TestRemoveLastLeafEmptiesTree(t *testing.T) {
	tr := New(0.5)
	_ = tr.Insert("a", "")
	if err := tr.Remove("a"); err != nil {
		t.Fatal(err)
	}
	if !tr.Empty() || tr.Len() != 0 {
		t.Error("tree not empty after removing root leaf")
	}
	if err := tr.Remove("a"); !errors.Is(err, ErrWindowNotFound) {
		t.Errorf("second Remove err = %v", err)
	}
}

// =============================================================================
// Resize
// =============================================================================

func TestResizeClamps(t *testing.T) {
	tests := []struct {
		name  string
		delta float64
		want  float64
	}{
		{"grow past max", 0.9, geom.MaxRatio},
		{"shrink past min", -0.9, geom.MinRatio},
		{"zero", 0, 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := threeWay(t)
			got, err := tr.ResizeNode(tr.Root(), tt.delta)
			if err != nil {
				t.Fatal(err)
			}
			if got != tt.want {
				t.Errorf("ratio = %v, want %v", got, tt.want)
			}
			if tr.Len() != 3 {
				t.Error("resize changed structure")
			}
		})
	}
}

func TestResizeLeafIsError(t *testing.T) {
	tr := threeWay(t)
	leaf, _ := tr.Leaf("a")
	if _, err := tr.ResizeNode(leaf, 0.1); !errors.Is(err, ErrNotSplit) {
		t.Errorf("err = %v", err)
	}
}

func TestResizeDirection(t *testing.T) {
	tr := threeWay(t)

	if !tr.ResizeDirection("b", geom.Right, 0.1) {
		t.Fatal("no horizontal ancestor found for b")
	}
	if r, _ := tr.Rect("a"); r.W <= 960 {
		t.Errorf("a did not grow: %v", r)
	}
	if !tr.ResizeDirection("b", geom.Up, 0.1) {
		t.Fatal("no vertical ancestor found for b")
	}
	if r, _ := tr.Rect("b"); r.H >= 540 {
		t.Errorf("b did not shrink: %v", r)
	}
	if tr.ResizeDirection("a", geom.Down, 0.1) {
		t.Error("a has no vertical ancestor")
	}
}

// =============================================================================
// Detach / Reattach
// =============================================================================

func TestReattachRestoresExactPosition(t *testing.T) {
	tr := threeWay(t)
	before := tr.Serialize()
	rect, _ := tr.Rect("a")

	anchor, err := tr.Detach("a")
	if err != nil {
		t.Fatal(err)
	}
	tr.ComputeGeometries(screen)

	exact, err := tr.Reattach("a", anchor, "")
	if err != nil || !exact {
		t.Fatalf("Reattach() = %v, %v", exact, err)
	}
	tr.ComputeGeometries(screen)

	if !reflect.DeepEqual(tr.Serialize(), before) {
		t.Errorf("tree differs after round trip")
	}
	if got, _ := tr.Rect("a"); got != rect {
		t.Errorf("Rect(a) = %v, want %v", got, rect)
	}
}

func TestReattachAfterSiblingResize(t *testing.T) {
	tr := threeWay(t)
	shapeBefore := shape(tr.Serialize())
	rect, _ := tr.Rect("a")

	anchor, _ := tr.Detach("a")
	tr.ComputeGeometries(screen)
	if err := tr.Resize("b", 0.2); err != nil {
		t.Fatal(err)
	}

	exact, err := tr.Reattach("a", anchor, "")
	if err != nil || !exact {
		t.Fatalf("Reattach() = %v, %v", exact, err)
	}
	tr.ComputeGeometries(screen)

	if s := shape(tr.Serialize()); s != shapeBefore {
		t.Errorf("shape = %s, want %s", s, shapeBefore)
	}
	if got, _ := tr.Rect("a"); got != rect {
		t.Errorf("Rect(a) = %v, want %v", got, rect)
	}
}

func TestReattachStaleAnchorFallsBack(t *testing.T) {
	tr := New(0.5)
	tr.ComputeGeometries(screen)
	_ = tr.Insert("a", "")
	_ = tr.Insert("b", "a")

	anchor, _ := tr.Detach("a")
	_ = tr.Remove("b")
	_ = tr.Insert("d", "")

	exact, err := tr.Reattach("a", anchor, "d")
	if err != nil {
		t.Fatal(err)
	}
	if exact {
		t.Error("stale anchor reported exact")
	}
	if tr.Len() != 2 {
		t.Errorf("Len() = %d", tr.Len())
	}
}

// =============================================================================
// Navigation and restructuring
// =============================================================================

func TestNeighbor(t *testing.T) {
	tr := threeWay(t)

	tests := []struct {
		from WindowID
		dir  geom.Direction
		want WindowID
		ok   bool
	}{
		{"a", geom.Right, "c", true},
		{"b", geom.Left, "a", true},
		{"c", geom.Left, "a", true},
		{"c", geom.Up, "b", true},
		{"b", geom.Down, "c", true},
		{"a", geom.Left, "", false},
		{"b", geom.Up, "", false},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%s_%s", tt.from, tt.dir), func(t *testing.T) {
			got, ok := tr.Neighbor(tt.from, tt.dir)
			if got != tt.want || ok != tt.ok {
				t.Errorf("Neighbor(%s, %s) = %q, %v; want %q, %v", tt.from, tt.dir, got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestSwapRotateEqualize(t *testing.T) {
	tr := threeWay(t)
	ra, _ := tr.Rect("a")

	if err := tr.Swap("a", "c"); err != nil {
		t.Fatal(err)
	}
	if got, _ := tr.Rect("c"); got != ra {
		t.Errorf("c did not take a's rect: %v", got)
	}

	if !tr.Rotate("b") {
		t.Fatal("Rotate(b) = false")
	}
	if s := shape(tr.Serialize()); s != "(h c (h b a))" {
		t.Errorf("shape after rotate = %s", s)
	}

	_, _ = tr.ResizeNode(tr.Root(), 0.3)
	tr.Equalize()
	if r, _ := tr.Ratio(tr.Root()); r != 0.5 {
		t.Errorf("root ratio after Equalize = %v", r)
	}
	if err := tr.Validate(); err != nil {
		t.Error(err)
	}
}

// =============================================================================
// Invariants under random mutation
// =============================================================================

func TestRandomMutationsKeepInvariants(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 11))
	tr := New(0.5)
	tr.ComputeGeometries(screen)
	var live []WindowID
	next := 0

	for step := range 2000 {
		switch op := rng.IntN(10); {
		case op < 5 || len(live) == 0:
			w := WindowID(fmt.Sprintf("w%d", next))
			next++
			target := WindowID("")
			if len(live) > 0 {
				target = live[rng.IntN(len(live))]
			}
			if err := tr.Insert(w, target); err != nil {
				t.Fatalf("step %d: Insert: %v", step, err)
			}
			live = append(live, w)
		case op < 8:
			i := rng.IntN(len(live))
			if err := tr.Remove(live[i]); err != nil {
				t.Fatalf("step %d: Remove: %v", step, err)
			}
			live = append(live[:i], live[i+1:]...)
		default:
			w := live[rng.IntN(len(live))]
			_ = tr.Resize(w, rng.Float64()-0.5)
		}

		if err := tr.Validate(); err != nil {
			t.Fatalf("step %d: %v", step, err)
		}
		if tr.Len() != len(live) {
			t.Fatalf("step %d: Len() = %d, want %d", step, tr.Len(), len(live))
		}

		first := tr.ComputeGeometries(screen)
		second := tr.ComputeGeometries(screen)
		if !reflect.DeepEqual(first, second) {
			t.Fatalf("step %d: ComputeGeometries not idempotent", step)
		}
		area := 0
		for _, r := range first {
			area += r.W * r.H
		}
		if len(live) > 0 && area != screen.W*screen.H {
			t.Fatalf("step %d: leaves cover %d, want %d", step, area, screen.W*screen.H)
		}
	}
}
