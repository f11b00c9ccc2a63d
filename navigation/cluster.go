package navigation

import (
	"fmt"

	"github.com/lixenwraith/gridnav/core"
	"github.com/lixenwraith/gridnav/grid"
	"github.com/lixenwraith/gridnav/parameter"
)

// RegionID labels a walkable connected component inside one cluster
// Valid values are 0..MaxRegions-1
type RegionID uint8

// NoRegion marks blocked cells and failed region lookups
const NoRegion RegionID = 0xFF

// NoIsland marks regions not yet assigned to an island
const NoIsland int32 = -1

// ClusterKey identifies a cluster by its (column, row) in the cluster lattice
type ClusterKey struct {
	X, Y int
}

// Less orders keys row-major: ascending Y, then ascending X
// All deterministic cluster iteration uses this order
func (k ClusterKey) Less(o ClusterKey) bool {
	if k.Y != o.Y {
		return k.Y < o.Y
	}
	return k.X < o.X
}

// Cluster is a fixed-size square partition of the grid. It owns its region
// labels, the portal IDs on its boundary, and one cached integration field
// per portal. Rebuilt wholesale on every graph build
type Cluster struct {
	Key    ClusterKey
	Bounds core.Area // Cell bounds, clipped at the map edge

	RegionCount int

	// Portals on this cluster's boundary, ascending by ID
	Portals []PortalID

	regions []RegionID // Flat over Bounds, NoRegion for blocked cells
	islands []int32    // Island arena index per region, len RegionCount
	fields  []*Field   // Parallel to Portals
}

// RegionAt returns the region label of a global cell, NoRegion if the cell
// is outside this cluster or blocked
func (c *Cluster) RegionAt(x, y int) RegionID {
	if !c.Bounds.Contains(x, y) {
		return NoRegion
	}
	return c.regions[(y-c.Bounds.Y)*c.Bounds.Width+(x-c.Bounds.X)]
}

// IslandOf returns the island arena index of a region, NoIsland for
// invalid region IDs
func (c *Cluster) IslandOf(r RegionID) int32 {
	if int(r) >= len(c.islands) {
		return NoIsland
	}
	return c.islands[r]
}

// FieldFor returns the cached integration field of a portal on this
// cluster's boundary, nil if the portal is not on it
// Binary search over the ascending portal list
func (c *Cluster) FieldFor(p PortalID) *Field {
	lo, hi := 0, len(c.Portals)
	for lo < hi {
		mid := (lo + hi) / 2
		if c.Portals[mid] < p {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	if lo < len(c.Portals) && c.Portals[lo] == p {
		return c.fields[lo]
	}
	return nil
}

// decomposeRegions labels maximal 8-connected walkable components in
// row-major discovery order. First-discovered cell wins the next ascending
// label, so identical grids always produce identical labels
// Returns ErrRegionOverflow when the cluster exceeds MaxRegions
func (c *Cluster) decomposeRegions(g *grid.CostGrid) error {
	size := c.Bounds.Width * c.Bounds.Height
	if cap(c.regions) < size {
		c.regions = make([]RegionID, size)
	} else {
		c.regions = c.regions[:size]
	}
	for i := 0; i < size; i++ {
		c.regions[i] = NoRegion
	}

	w := c.Bounds.Width
	next := 0
	queue := make([]int32, 0, 128)

	for i := 0; i < size; i++ {
		if c.regions[i] != NoRegion {
			continue
		}
		sx := c.Bounds.X + i%w
		sy := c.Bounds.Y + i/w
		if g.IsBlocked(sx, sy) {
			continue
		}

		if next >= parameter.MaxRegions {
			return fmt.Errorf("%w: cluster (%d,%d)", ErrRegionOverflow, c.Key.X, c.Key.Y)
		}
		label := RegionID(next)
		next++

		// Flood fill confined to the cluster bounds
		queue = queue[:0]
		queue = append(queue, int32(i))
		c.regions[i] = label

		for len(queue) > 0 {
			cur := queue[0]
			queue = queue[1:]

			cx := c.Bounds.X + int(cur)%w
			cy := c.Bounds.Y + int(cur)/w
			for d := int8(0); d < DirCount; d++ {
				nx := cx + DirVectors[d][0]
				ny := cy + DirVectors[d][1]
				if !c.Bounds.Contains(nx, ny) || g.IsBlocked(nx, ny) {
					continue
				}
				if DirVectors[d][0] != 0 && DirVectors[d][1] != 0 {
					if g.IsBlocked(cx+DirVectors[d][0], cy) || g.IsBlocked(cx, cy+DirVectors[d][1]) {
						continue
					}
				}
				nIdx := int32((ny-c.Bounds.Y)*w + (nx - c.Bounds.X))
				if c.regions[nIdx] != NoRegion {
					continue
				}
				c.regions[nIdx] = label
				queue = append(queue, nIdx)
			}
		}
	}

	c.RegionCount = next
	c.islands = make([]int32, next)
	for i := range c.islands {
		c.islands[i] = NoIsland
	}
	return nil
}
