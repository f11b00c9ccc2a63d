package spatial

import (
	"github.com/lixenwraith/gridnav/core"
)

// MaxEntitiesPerCell is set to 15 so Cell fits exactly into 128 bytes
// (2 cache lines) when Entity is uint64:
// 15 * 8 (Entities) + 1 (Count) + 7 (Padding) = 128 bytes
const MaxEntitiesPerCell = 15

// Entity mirrors the engine entity handle to keep this package leaf-level
type Entity = uint64

// Cell holds a fixed number of entities in contiguous memory
type Cell struct {
	Count    uint8
	_        [7]byte // Padding for 8-byte alignment of Entities
	Entities [MaxEntitiesPerCell]Entity
}

// Grid is a dense 2D hash for neighbor queries without allocation
// Used by steering separation, never by the navigation graph build
type Grid struct {
	Width  int
	Height int
	Cells  []Cell // 1D array: index = y*Width + x
}

// NewGrid creates a grid with the specified dimensions
func NewGrid(width, height int) *Grid {
	return &Grid{
		Width:  width,
		Height: height,
		Cells:  make([]Cell, width*height),
	}
}

// Add inserts an entity at (x, y)
// O(1), returns false if bounds invalid or cell full (soft clip)
func (g *Grid) Add(e Entity, x, y int) bool {
	if x < 0 || x >= g.Width || y < 0 || y >= g.Height {
		return false
	}

	cell := &g.Cells[y*g.Width+x]
	if cell.Count < MaxEntitiesPerCell {
		cell.Entities[cell.Count] = e
		cell.Count++
		return true
	}
	return false
}

// Remove deletes an entity at (x, y)
// O(k) where k <= 15, swap-remove keeps cells densely packed
func (g *Grid) Remove(e Entity, x, y int) {
	if x < 0 || x >= g.Width || y < 0 || y >= g.Height {
		return
	}

	cell := &g.Cells[y*g.Width+x]
	for i := uint8(0); i < cell.Count; i++ {
		if cell.Entities[i] == e {
			cell.Count--
			if i < cell.Count {
				cell.Entities[i] = cell.Entities[cell.Count]
			}
			cell.Entities[cell.Count] = 0
			return
		}
	}
}

// Move relocates an entity between cells, no-op when cells are equal
func (g *Grid) Move(e Entity, fromX, fromY, toX, toY int) {
	if fromX == toX && fromY == toY {
		return
	}
	g.Remove(e, fromX, fromY)
	g.Add(e, toX, toY)
}

// At returns a slice view of entities at (x, y)
// Callers must copy before mutating the grid. O(1), nil if empty
func (g *Grid) At(x, y int) []Entity {
	if x < 0 || x >= g.Width || y < 0 || y >= g.Height {
		return nil
	}

	cell := &g.Cells[y*g.Width+x]
	if cell.Count == 0 {
		return nil
	}
	return cell.Entities[:cell.Count]
}

// HasAny returns true if at least one entity occupies (x, y). O(1)
func (g *Grid) HasAny(x, y int) bool {
	if x < 0 || x >= g.Width || y < 0 || y >= g.Height {
		return false
	}
	return g.Cells[y*g.Width+x].Count > 0
}

// ForEachNeighbor visits entities in the square neighborhood of radius r
// around (x, y), excluding entity self. Visit order is cell row-major then
// insertion order, deterministic for identical mutation sequences
func (g *Grid) ForEachNeighbor(self Entity, x, y, r int, fn func(e Entity, pos core.Point)) {
	for ny := y - r; ny <= y+r; ny++ {
		for nx := x - r; nx <= x+r; nx++ {
			for _, e := range g.At(nx, ny) {
				if e == self {
					continue
				}
				fn(e, core.Point{X: nx, Y: ny})
			}
		}
	}
}

// Clear removes all entities from all cells
func (g *Grid) Clear() {
	for i := range g.Cells {
		g.Cells[i].Count = 0
	}
}

// Resize reallocates the grid, dropping all entries
// Re-inserting entities is the position store's responsibility
func (g *Grid) Resize(width, height int) {
	g.Width = width
	g.Height = height
	g.Cells = make([]Cell, width*height)
}
