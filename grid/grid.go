package grid

import (
	"github.com/lixenwraith/gridnav/core"
	"github.com/lixenwraith/gridnav/vmath"
)

// Cell cost values. 0..254 are walkable with increasing traversal cost,
// 255 blocks navigation entirely
const (
	CostFree    uint8 = 0
	CostBlocked uint8 = 255
)

// CostGrid is the per-cell walkability map consumed read-only by the
// navigation graph. Mutation bumps Version; callers decide when to rebuild,
// the graph never rebuilds implicitly
type CostGrid struct {
	Width, Height int

	// CellSize is the world-unit edge length of one cell (Q32.32)
	CellSize int64
	// OriginX, OriginY is the world position of cell (0,0)'s corner (Q32.32)
	OriginX, OriginY int64

	costs   []uint8 // 1D array: index = y*Width + x
	version uint64
}

// New creates a grid with all cells free
func New(width, height int, cellSize, originX, originY int64) *CostGrid {
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	if cellSize <= 0 {
		cellSize = vmath.Scale
	}
	return &CostGrid{
		Width:    width,
		Height:   height,
		CellSize: cellSize,
		OriginX:  originX,
		OriginY:  originY,
		costs:    make([]uint8, width*height),
	}
}

// Index returns the flat array index for (x, y)
// Caller must ensure bounds
func (g *CostGrid) Index(x, y int) int {
	return y*g.Width + x
}

// InBounds reports whether (x, y) is a valid cell
func (g *CostGrid) InBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < g.Width && y < g.Height
}

// Cost returns the cell cost, CostBlocked for out-of-bounds cells
func (g *CostGrid) Cost(x, y int) uint8 {
	if !g.InBounds(x, y) {
		return CostBlocked
	}
	return g.costs[y*g.Width+x]
}

// IsBlocked reports whether the cell blocks navigation
// Out-of-bounds counts as blocked
func (g *CostGrid) IsBlocked(x, y int) bool {
	return g.Cost(x, y) == CostBlocked
}

// SetCost writes one cell and bumps the mutation version
func (g *CostGrid) SetCost(x, y int, cost uint8) {
	if !g.InBounds(x, y) {
		return
	}
	g.costs[y*g.Width+x] = cost
	g.version++
}

// FillRect writes cost over a rectangular area, clipped to bounds
// One version bump regardless of area size
func (g *CostGrid) FillRect(area core.Area, cost uint8) {
	x0, y0 := area.X, area.Y
	x1, y1 := area.X+area.Width, area.Y+area.Height
	if x0 < 0 {
		x0 = 0
	}
	if y0 < 0 {
		y0 = 0
	}
	if x1 > g.Width {
		x1 = g.Width
	}
	if y1 > g.Height {
		y1 = g.Height
	}
	for y := y0; y < y1; y++ {
		row := y * g.Width
		for x := x0; x < x1; x++ {
			g.costs[row+x] = cost
		}
	}
	g.version++
}

// Version returns the mutation counter
// A navigation graph built at version v is stale once Version() != v
func (g *CostGrid) Version() uint64 {
	return g.version
}

// Resize reallocates the grid with all cells free
// Destroys contents; callers must rebuild any derived structure
func (g *CostGrid) Resize(width, height int) {
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	g.Width = width
	g.Height = height
	g.costs = make([]uint8, width*height)
	g.version++
}

// WorldToGrid converts a Q32.32 world position to a cell coordinate
// Result may be out of bounds; callers check InBounds
func (g *CostGrid) WorldToGrid(wx, wy int64) (int, int) {
	return vmath.ToInt(vmath.Div(wx-g.OriginX, g.CellSize)),
		vmath.ToInt(vmath.Div(wy-g.OriginY, g.CellSize))
}

// GridToWorld converts a cell coordinate to the Q32.32 world position of
// the cell center
func (g *CostGrid) GridToWorld(x, y int) (int64, int64) {
	half := g.CellSize >> 1
	return g.OriginX + vmath.Mul(vmath.FromInt(x), g.CellSize) + half,
		g.OriginY + vmath.Mul(vmath.FromInt(y), g.CellSize) + half
}
