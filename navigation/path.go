package navigation

import (
	"github.com/lixenwraith/gridnav/core"
	"github.com/lixenwraith/gridnav/grid"
	"github.com/lixenwraith/gridnav/vmath"
)

// PathKind tags the per-agent path variant
type PathKind uint8

const (
	// PathNone is the explicit no-path state: goal unreachable and no
	// fallback portal available. Higher-level logic may re-request
	PathNone PathKind = iota

	// PathDirect holds only the goal; a straight line of sight exists
	PathDirect

	// PathLocal carries explicit waypoints from a bounded local A*
	PathLocal

	// PathHierarchical is resolved lazily against the routing arenas every
	// tick; no search happens at request time
	PathHierarchical
)

// Path is the navigation state attached to one agent. Replaced whenever a
// new request arrives or a rebuild invalidates the route
type Path struct {
	Kind PathKind

	// Goal in world coordinates (Q32.32)
	GoalX, GoalY int64

	// Goal location in the hierarchy, valid for PathHierarchical
	GoalCluster ClusterKey
	GoalRegion  RegionID

	// Waypoint cells for PathLocal; Cursor is the next one to visit
	Waypoints []core.Point
	Cursor    int

	// Build epoch the path was resolved against. A hierarchical path from
	// an older epoch references dead topology and must be reissued
	Epoch uint64
}

// Step is one tick's steering decision: the world position to move toward
type Step struct {
	TargetX, TargetY int64
	Arrived          bool
}

// lineOfSight reports whether the straight segment between two world
// positions crosses only walkable cells (Supercover DDA, no corner gaps)
func lineOfSight(g *grid.CostGrid, x1, y1, x2, y2 int64) bool {
	// Traverse in grid space so cell size and origin drop out
	gx1 := vmath.Div(x1-g.OriginX, g.CellSize)
	gy1 := vmath.Div(y1-g.OriginY, g.CellSize)
	gx2 := vmath.Div(x2-g.OriginX, g.CellSize)
	gy2 := vmath.Div(y2-g.OriginY, g.CellSize)

	t := vmath.NewGridTraverser(gx1, gy1, gx2, gy2)
	for t.Next() {
		x, y := t.Pos()
		if g.IsBlocked(x, y) {
			return false
		}
	}
	return true
}

// nearestWalkable substitutes the closest walkable cell for a blocked one
// by scanning rings of increasing Chebyshev radius in row-major order
// within each ring. Deterministic: first hit in scan order wins
func nearestWalkable(g *grid.CostGrid, p core.Point, maxRadius int) (core.Point, bool) {
	if !g.IsBlocked(p.X, p.Y) {
		return p, true
	}
	for r := 1; r <= maxRadius; r++ {
		for dy := -r; dy <= r; dy++ {
			for dx := -r; dx <= r; dx++ {
				if dx > -r && dx < r && dy > -r && dy < r {
					continue // Interior already scanned at a smaller radius
				}
				x, y := p.X+dx, p.Y+dy
				if !g.IsBlocked(x, y) {
					return core.Point{X: x, Y: y}, true
				}
			}
		}
	}
	return core.Point{}, false
}
