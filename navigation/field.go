package navigation

import (
	"github.com/lixenwraith/gridnav/core"
	"github.com/lixenwraith/gridnav/grid"
)

// Field is a cluster-local integration field: per-cell weighted cost to a
// portal plus the descent direction toward it. Computed once per portal
// during graph construction and cached; back-services both local route
// queries and routing-table precomputation without re-searching
type Field struct {
	Bounds core.Area

	Distances  []int32 // Flat over Bounds, costUnreachable when cut off
	Directions []int8  // Step direction toward the portal, DirNone if none
}

// newField allocates an uncomputed field over the cluster bounds
func newField(bounds core.Area) *Field {
	size := bounds.Width * bounds.Height
	f := &Field{
		Bounds:     bounds,
		Distances:  make([]int32, size),
		Directions: make([]int8, size),
	}
	for i := 0; i < size; i++ {
		f.Distances[i] = costUnreachable
		f.Directions[i] = DirNone
	}
	return f
}

// index converts global cell coords to the flat local index
// Caller must ensure Bounds.Contains(x, y)
func (f *Field) index(x, y int) int {
	return (y-f.Bounds.Y)*f.Bounds.Width + (x - f.Bounds.X)
}

// DistanceAt returns the weighted cost from (x, y) to the portal,
// -1 when out of bounds or unreachable
func (f *Field) DistanceAt(x, y int) int32 {
	if !f.Bounds.Contains(x, y) {
		return -1
	}
	d := f.Distances[f.index(x, y)]
	if d >= costUnreachable {
		return -1
	}
	return d
}

// DirectionAt returns the descent direction at (x, y), DirTarget on the
// portal cells themselves, DirNone when out of bounds or unreachable
func (f *Field) DirectionAt(x, y int) int8 {
	if !f.Bounds.Contains(x, y) {
		return DirNone
	}
	return f.Directions[f.index(x, y)]
}

// compute runs a multi-source weighted Dijkstra from the seed cells,
// restricted to Bounds, then derives descent directions from the distance
// gradient. Seeds are the portal's boundary run on this cluster's side
//
// Phase 1: Dijkstra with cardinal=10, diagonal=14 edge weights plus the
// entered cell's terrain cost
// Phase 2: Per-cell gradient, pick neighbor with minimum distance,
// ties resolved by direction index order
func (f *Field) compute(g *grid.CostGrid, seeds []core.Point, heap *minHeap) {
	size := f.Bounds.Width * f.Bounds.Height
	for i := 0; i < size; i++ {
		f.Distances[i] = costUnreachable
		f.Directions[i] = DirNone
	}

	h := (*heap)[:0]
	for _, s := range seeds {
		if !f.Bounds.Contains(s.X, s.Y) || g.IsBlocked(s.X, s.Y) {
			continue
		}
		idx := f.index(s.X, s.Y)
		f.Distances[idx] = 0
		f.Directions[idx] = DirTarget
		h.push(heapEntry{idx: int32(idx), dist: 0})
	}

	for len(h) > 0 {
		entry := h.pop()
		if entry.dist > f.Distances[entry.idx] {
			continue // Stale entry
		}

		cx := f.Bounds.X + int(entry.idx)%f.Bounds.Width
		cy := f.Bounds.Y + int(entry.idx)/f.Bounds.Width

		for d := int8(0); d < DirCount; d++ {
			nx := cx + DirVectors[d][0]
			ny := cy + DirVectors[d][1]
			if !f.Bounds.Contains(nx, ny) || g.IsBlocked(nx, ny) {
				continue
			}
			// Diagonal corner cutting prevention
			if DirVectors[d][0] != 0 && DirVectors[d][1] != 0 {
				if g.IsBlocked(cx+DirVectors[d][0], cy) || g.IsBlocked(cx, cy+DirVectors[d][1]) {
					continue
				}
			}

			nIdx := f.index(nx, ny)
			newDist := entry.dist + dirCosts[d] + int32(g.Cost(nx, ny))
			if newDist < f.Distances[nIdx] {
				f.Distances[nIdx] = newDist
				h.push(heapEntry{idx: int32(nIdx), dist: newDist})
			}
		}
	}

	// Gradient pass: point every reachable cell at its cheapest neighbor
	for y := f.Bounds.Y; y < f.Bounds.Y+f.Bounds.Height; y++ {
		for x := f.Bounds.X; x < f.Bounds.X+f.Bounds.Width; x++ {
			idx := f.index(x, y)
			dist := f.Distances[idx]
			if dist >= costUnreachable || dist == 0 {
				continue
			}

			bestDir := DirNone
			bestDist := dist
			for d := int8(0); d < DirCount; d++ {
				nx := x + DirVectors[d][0]
				ny := y + DirVectors[d][1]
				if !f.Bounds.Contains(nx, ny) {
					continue
				}
				nDist := f.Distances[f.index(nx, ny)]
				if nDist >= bestDist {
					continue
				}
				if DirVectors[d][0] != 0 && DirVectors[d][1] != 0 {
					if g.IsBlocked(x+DirVectors[d][0], y) || g.IsBlocked(x, y+DirVectors[d][1]) {
						continue
					}
				}
				bestDist = nDist
				bestDir = d
			}
			f.Directions[idx] = bestDir
		}
	}

	*heap = h
}
