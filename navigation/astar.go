package navigation

import (
	"github.com/lixenwraith/gridnav/core"
	"github.com/lixenwraith/gridnav/grid"
)

// octileHeuristic is the admissible 8-connected distance estimate matching
// the cardinal/diagonal edge weights
func octileHeuristic(x, y, gx, gy int) int32 {
	dx := x - gx
	if dx < 0 {
		dx = -dx
	}
	dy := y - gy
	if dy < 0 {
		dy = -dy
	}
	if dx < dy {
		dx, dy = dy, dx
	}
	return int32(costCardinal*(dx-dy) + costDiagonal*dy)
}

// localAStar runs a grid A* confined to bounds, returning the cell path
// from start to goal inclusive, nil when no path exists inside the window.
// Expansion order ties break by ascending flat index, so results are
// identical across runs
func localAStar(g *grid.CostGrid, bounds core.Area, start, goal core.Point, heap *minHeap) []core.Point {
	if !bounds.Contains(start.X, start.Y) || !bounds.Contains(goal.X, goal.Y) {
		return nil
	}
	if g.IsBlocked(start.X, start.Y) || g.IsBlocked(goal.X, goal.Y) {
		return nil
	}

	size := bounds.Width * bounds.Height
	gScore := make([]int32, size)
	cameFrom := make([]int32, size)
	for i := 0; i < size; i++ {
		gScore[i] = costUnreachable
		cameFrom[i] = -1
	}

	index := func(x, y int) int32 {
		return int32((y-bounds.Y)*bounds.Width + (x - bounds.X))
	}
	cellOf := func(idx int32) (int, int) {
		return bounds.X + int(idx)%bounds.Width, bounds.Y + int(idx)/bounds.Width
	}

	startIdx := index(start.X, start.Y)
	goalIdx := index(goal.X, goal.Y)
	gScore[startIdx] = 0

	h := (*heap)[:0]
	h.push(heapEntry{idx: startIdx, dist: octileHeuristic(start.X, start.Y, goal.X, goal.Y)})

	for len(h) > 0 {
		e := h.pop()
		if e.idx == goalIdx {
			break
		}
		cx, cy := cellOf(e.idx)
		if e.dist-octileHeuristic(cx, cy, goal.X, goal.Y) > gScore[e.idx] {
			continue // Stale entry
		}

		for d := int8(0); d < DirCount; d++ {
			nx := cx + DirVectors[d][0]
			ny := cy + DirVectors[d][1]
			if !bounds.Contains(nx, ny) || g.IsBlocked(nx, ny) {
				continue
			}
			if DirVectors[d][0] != 0 && DirVectors[d][1] != 0 {
				if g.IsBlocked(cx+DirVectors[d][0], cy) || g.IsBlocked(cx, cy+DirVectors[d][1]) {
					continue
				}
			}
			nIdx := index(nx, ny)
			tentative := gScore[e.idx] + dirCosts[d] + int32(g.Cost(nx, ny))
			if tentative < gScore[nIdx] {
				gScore[nIdx] = tentative
				cameFrom[nIdx] = e.idx
				h.push(heapEntry{idx: nIdx, dist: tentative + octileHeuristic(nx, ny, goal.X, goal.Y)})
			}
		}
	}
	*heap = h[:0]

	if gScore[goalIdx] >= costUnreachable {
		return nil
	}

	// Walk parents back, then reverse in place
	var path []core.Point
	for idx := goalIdx; idx >= 0; idx = cameFrom[idx] {
		x, y := cellOf(idx)
		path = append(path, core.Point{X: x, Y: y})
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

// localSearchBounds returns the clipped A* window around start and goal
func localSearchBounds(g *grid.CostGrid, start, goal core.Point, margin int) core.Area {
	x0, x1 := start.X, goal.X
	if x1 < x0 {
		x0, x1 = x1, x0
	}
	y0, y1 := start.Y, goal.Y
	if y1 < y0 {
		y0, y1 = y1, y0
	}
	x0 -= margin
	y0 -= margin
	x1 += margin
	y1 += margin
	if x0 < 0 {
		x0 = 0
	}
	if y0 < 0 {
		y0 = 0
	}
	if x1 >= g.Width {
		x1 = g.Width - 1
	}
	if y1 >= g.Height {
		y1 = g.Height - 1
	}
	return core.Area{X: x0, Y: y0, Width: x1 - x0 + 1, Height: y1 - y0 + 1}
}
