package engine

import (
	"testing"

	"github.com/lixenwraith/gridnav/grid"
	"github.com/lixenwraith/gridnav/vmath"
)

func TestWorldSpawnDestroy(t *testing.T) {
	g := grid.New(20, 20, vmath.FromInt(1), 0, 0)
	w := NewWorld(g)

	a := w.SpawnAgent(3, 4)
	b := w.SpawnAgent(5, 6)
	if a == b {
		t.Fatal("entity IDs must be unique")
	}
	if w.EntityCount() != 2 {
		t.Fatalf("count %d, want 2", w.EntityCount())
	}

	cell, ok := w.CellOf(a)
	if !ok || cell.X != 3 || cell.Y != 4 {
		t.Fatalf("agent cell %v ok=%v", cell, ok)
	}
	if !w.Resources.Spatial.HasAny(3, 4) {
		t.Fatal("spawn must register in the spatial index")
	}

	w.DestroyEntity(a)
	if w.EntityCount() != 1 {
		t.Fatalf("count %d after destroy, want 1", w.EntityCount())
	}
	if w.Resources.Spatial.HasAny(3, 4) {
		t.Fatal("destroy must clear the spatial index")
	}
	if _, ok := w.CellOf(a); ok {
		t.Fatal("destroyed entity still has a position")
	}
}

type countingSystem struct {
	priority int
	log      *[]int
}

func (c *countingSystem) Update()       { *c.log = append(*c.log, c.priority) }
func (c *countingSystem) Priority() int { return c.priority }

func TestWorldSystemOrder(t *testing.T) {
	g := grid.New(10, 10, vmath.FromInt(1), 0, 0)
	w := NewWorld(g)

	var log []int
	w.AddSystem(&countingSystem{priority: 20, log: &log})
	w.AddSystem(&countingSystem{priority: 10, log: &log})
	w.AddSystem(&countingSystem{priority: 15, log: &log})

	w.Update()
	if len(log) != 3 || log[0] != 10 || log[1] != 15 || log[2] != 20 {
		t.Fatalf("system order %v, want ascending priority", log)
	}
	if w.Resources.Tick != 1 {
		t.Fatalf("tick %d, want 1", w.Resources.Tick)
	}
}
