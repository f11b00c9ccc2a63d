package navigation

import (
	"github.com/lixenwraith/gridnav/core"
	"github.com/lixenwraith/gridnav/grid"
)

// PortalID is the stable integer identity of a portal graph node
// IDs ascend in cluster row-major scan order within one build
type PortalID int32

// NoPortal marks empty routing entries and failed lookups
const NoPortal PortalID = -1

// Portal is a walkable boundary run connecting two adjacent clusters.
// Portals are the only entities with edges in the portal graph. The owning
// cluster is always the row-major smaller key; Neighbor sits east or south
type Portal struct {
	ID       PortalID
	Cluster  ClusterKey
	Neighbor ClusterKey

	// First cell of the boundary run on the owning side
	StartX, StartY int
	// Run length in cells; adjacent candidates with matching regions on
	// both sides merge into one logical portal
	Span int
	// Horizontal runs extend along X (neighbor below), vertical along Y
	// (neighbor to the right)
	Horizontal bool

	// Region labels on each side of the boundary
	Region, NeighborRegion RegionID
}

// Other returns the cluster on the far side of key
func (p *Portal) Other(key ClusterKey) ClusterKey {
	if key == p.Cluster {
		return p.Neighbor
	}
	return p.Cluster
}

// RegionIn returns the region label on key's side
func (p *Portal) RegionIn(key ClusterKey) RegionID {
	if key == p.Cluster {
		return p.Region
	}
	return p.NeighborRegion
}

// Touches reports whether the portal lies on the boundary of key
func (p *Portal) Touches(key ClusterKey) bool {
	return key == p.Cluster || key == p.Neighbor
}

// Center returns the middle cell of the run on key's side
func (p *Portal) Center(key ClusterKey) (int, int) {
	half := p.Span / 2
	x, y := p.StartX, p.StartY
	if p.Horizontal {
		x += half
	} else {
		y += half
	}
	if key == p.Neighbor {
		if p.Horizontal {
			y++
		} else {
			x++
		}
	}
	return x, y
}

// Cells appends the run cells on key's side to dst, in run order
func (p *Portal) Cells(key ClusterKey, dst []core.Point) []core.Point {
	for i := 0; i < p.Span; i++ {
		x, y := p.StartX, p.StartY
		if p.Horizontal {
			x += i
		} else {
			y += i
		}
		if key == p.Neighbor {
			if p.Horizontal {
				y++
			} else {
				x++
			}
		}
		dst = append(dst, core.Point{X: x, Y: y})
	}
	return dst
}

// extractPortals emits the portals on cluster c's east and south boundaries
// in ascending cell order, appending nodes to the graph and the portal ID
// to both clusters' lists. Each shared boundary is processed exactly once,
// by the row-major smaller cluster, so IDs ascend globally with the scan
func (gr *Graph) extractPortals(g *grid.CostGrid, c *Cluster) {
	east := gr.ClusterAt(ClusterKey{X: c.Key.X + 1, Y: c.Key.Y})
	if east != nil {
		bx := c.Bounds.X + c.Bounds.Width - 1
		gr.extractBoundary(g, c, east, false, bx, c.Bounds.Y, c.Bounds.Height)
	}
	south := gr.ClusterAt(ClusterKey{X: c.Key.X, Y: c.Key.Y + 1})
	if south != nil {
		by := c.Bounds.Y + c.Bounds.Height - 1
		gr.extractBoundary(g, c, south, true, c.Bounds.X, by, c.Bounds.Width)
	}
}

// extractBoundary walks one shared edge of length n starting at (x0, y0)
// on the owning side. A run breaks when walkability or the region pair on
// either side changes
func (gr *Graph) extractBoundary(g *grid.CostGrid, own, neighbor *Cluster, horizontal bool, x0, y0, n int) {
	runStart := -1
	var runRegion, runNeighborRegion RegionID

	flush := func(end int) {
		if runStart < 0 {
			return
		}
		p := Portal{
			ID:             PortalID(len(gr.nodes)),
			Cluster:        own.Key,
			Neighbor:       neighbor.Key,
			StartX:         x0,
			StartY:         y0,
			Span:           end - runStart,
			Horizontal:     horizontal,
			Region:         runRegion,
			NeighborRegion: runNeighborRegion,
		}
		if horizontal {
			p.StartX = x0 + runStart
		} else {
			p.StartY = y0 + runStart
		}
		gr.nodes = append(gr.nodes, p)
		own.Portals = append(own.Portals, p.ID)
		neighbor.Portals = append(neighbor.Portals, p.ID)
		runStart = -1
	}

	for i := 0; i < n; i++ {
		cx, cy := x0, y0
		if horizontal {
			cx += i
		} else {
			cy += i
		}
		mx, my := cx, cy
		if horizontal {
			my++
		} else {
			mx++
		}

		if g.IsBlocked(cx, cy) || g.IsBlocked(mx, my) {
			flush(i)
			continue
		}
		r := own.RegionAt(cx, cy)
		nr := neighbor.RegionAt(mx, my)
		if runStart >= 0 && (r != runRegion || nr != runNeighborRegion) {
			flush(i)
		}
		if runStart < 0 {
			runStart = i
			runRegion = r
			runNeighborRegion = nr
		}
	}
	flush(n)
}
