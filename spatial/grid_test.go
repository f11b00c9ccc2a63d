package spatial

import (
	"testing"

	"github.com/lixenwraith/gridnav/core"
)

func TestAddRemove(t *testing.T) {
	g := NewGrid(4, 4)

	if !g.Add(1, 2, 2) {
		t.Fatal("Add in bounds must succeed")
	}
	if g.Add(2, -1, 0) {
		t.Error("Add out of bounds must fail")
	}
	if !g.HasAny(2, 2) {
		t.Error("cell must contain entity after Add")
	}

	g.Remove(1, 2, 2)
	if g.HasAny(2, 2) {
		t.Error("cell must be empty after Remove")
	}
}

func TestCellCapacitySoftClip(t *testing.T) {
	g := NewGrid(2, 2)
	for i := 0; i < MaxEntitiesPerCell; i++ {
		if !g.Add(Entity(i+1), 0, 0) {
			t.Fatalf("Add %d must succeed", i)
		}
	}
	if g.Add(99, 0, 0) {
		t.Error("Add beyond capacity must soft-clip")
	}
	if len(g.At(0, 0)) != MaxEntitiesPerCell {
		t.Error("cell count mismatch")
	}
}

func TestSwapRemoveKeepsDense(t *testing.T) {
	g := NewGrid(1, 1)
	g.Add(10, 0, 0)
	g.Add(20, 0, 0)
	g.Add(30, 0, 0)

	g.Remove(20, 0, 0)
	got := g.At(0, 0)
	if len(got) != 2 {
		t.Fatalf("want 2 entities, got %d", len(got))
	}
	// Swap-remove moves the last entity into the vacated slot
	if got[0] != 10 || got[1] != 30 {
		t.Errorf("unexpected layout %v", got)
	}
}

func TestForEachNeighbor(t *testing.T) {
	g := NewGrid(5, 5)
	g.Add(1, 2, 2)
	g.Add(2, 1, 2)
	g.Add(3, 3, 3)
	g.Add(4, 0, 0) // outside radius 1 of (2,2)

	var seen []Entity
	g.ForEachNeighbor(1, 2, 2, 1, func(e Entity, pos core.Point) {
		seen = append(seen, e)
	})

	if len(seen) != 2 {
		t.Fatalf("want 2 neighbors, got %v", seen)
	}
	// Row-major visit order: (1,2) before (3,3)
	if seen[0] != 2 || seen[1] != 3 {
		t.Errorf("unexpected order %v", seen)
	}
}

func TestMove(t *testing.T) {
	g := NewGrid(3, 3)
	g.Add(7, 0, 0)
	g.Move(7, 0, 0, 2, 1)
	if g.HasAny(0, 0) || !g.HasAny(2, 1) {
		t.Error("Move must relocate entity")
	}
}
