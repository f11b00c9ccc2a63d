package grid

import (
	"testing"

	"github.com/lixenwraith/gridnav/core"
	"github.com/lixenwraith/gridnav/vmath"
)

func TestCostAndBounds(t *testing.T) {
	g := New(4, 3, vmath.Scale, 0, 0)

	if g.Cost(0, 0) != CostFree {
		t.Error("new grid must be free")
	}
	if !g.IsBlocked(-1, 0) || !g.IsBlocked(0, 3) || !g.IsBlocked(4, 0) {
		t.Error("out-of-bounds cells must read blocked")
	}

	g.SetCost(2, 1, CostBlocked)
	if !g.IsBlocked(2, 1) {
		t.Error("SetCost blocked not applied")
	}
}

func TestVersionBumps(t *testing.T) {
	g := New(4, 4, vmath.Scale, 0, 0)
	v0 := g.Version()

	g.SetCost(1, 1, 7)
	if g.Version() != v0+1 {
		t.Error("SetCost must bump version once")
	}

	g.FillRect(core.Area{X: 0, Y: 0, Width: 2, Height: 2}, CostBlocked)
	if g.Version() != v0+2 {
		t.Error("FillRect must bump version once")
	}

	// Out-of-bounds write is a no-op
	g.SetCost(-1, -1, 3)
	if g.Version() != v0+2 {
		t.Error("out-of-bounds SetCost must not bump version")
	}
}

func TestFillRectClipped(t *testing.T) {
	g := New(3, 3, vmath.Scale, 0, 0)
	g.FillRect(core.Area{X: -2, Y: -2, Width: 10, Height: 10}, CostBlocked)
	for y := 0; y < 3; y++ {
		for x := 0; x < 3; x++ {
			if !g.IsBlocked(x, y) {
				t.Fatalf("cell (%d,%d) not blocked after full-cover fill", x, y)
			}
		}
	}
}

func TestWorldGridRoundTrip(t *testing.T) {
	g := New(10, 10, vmath.FromInt(2), vmath.FromInt(-4), vmath.FromInt(-4))

	for _, cell := range [][2]int{{0, 0}, {3, 7}, {9, 9}} {
		wx, wy := g.GridToWorld(cell[0], cell[1])
		gx, gy := g.WorldToGrid(wx, wy)
		if gx != cell[0] || gy != cell[1] {
			t.Errorf("round trip (%d,%d) -> (%d,%d)", cell[0], cell[1], gx, gy)
		}
	}
}

func TestResizeClears(t *testing.T) {
	g := New(4, 4, vmath.Scale, 0, 0)
	g.SetCost(1, 1, CostBlocked)
	v := g.Version()

	g.Resize(6, 5)
	if g.Width != 6 || g.Height != 5 {
		t.Error("resize dimensions not applied")
	}
	if g.IsBlocked(1, 1) {
		t.Error("resize must clear cells")
	}
	if g.Version() == v {
		t.Error("resize must bump version")
	}
}
