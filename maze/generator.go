package maze

import (
	"github.com/lixenwraith/gridnav/core"
	"github.com/lixenwraith/gridnav/grid"
	"github.com/lixenwraith/gridnav/vmath"
)

// Config controls maze generation. The same config always produces the
// same maze; there is no implicit random seeding
type Config struct {
	Width, Height int

	// Braiding in per-mille: 0 keeps a perfect tree, 1000 removes every
	// dead end it safely can. Plaza and pillar constraints take precedence
	Braiding int

	// RemoveBorders opens the outer boundary
	RemoveBorders bool

	Seed uint64
}

// Result is a generated maze carved into a cost grid
type Result struct {
	Grid       *grid.CostGrid
	Start, End core.Point
}

// Generate creates a stochastic topological maze as a cost grid with the
// given cell size. Dimensions round down to odd so walls line up
func Generate(cfg Config, cellSize int64) Result {
	rows := ensureOdd(cfg.Height)
	cols := ensureOdd(cfg.Width)

	walls := make([]bool, rows*cols)
	for i := range walls {
		walls[i] = true
	}

	rng := vmath.NewFastRand(cfg.Seed)

	start := core.Point{X: 1, Y: 1}
	end := core.Point{X: cols - 2, Y: rows - 2}
	if cfg.RemoveBorders {
		start = core.Point{X: (cols / 2) | 1, Y: (rows / 2) | 1}
		end = core.Point{X: cols - 1, Y: (rows / 2) | 1}
	}

	backtracker(walls, cols, rows, start, rng)

	if cfg.RemoveBorders {
		stripBorders(walls, cols, rows)
	}
	if cfg.Braiding > 0 {
		braid(walls, cols, rows, cfg.Braiding, rng)
	}

	walls[start.Y*cols+start.X] = false
	walls[end.Y*cols+end.X] = false

	g := grid.New(cols, rows, cellSize, 0, 0)
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			if walls[y*cols+x] {
				g.SetCost(x, y, grid.CostBlocked)
			}
		}
	}

	return Result{Grid: g, Start: start, End: end}
}

var ortho = [4][2]int{{0, -1}, {0, 1}, {-1, 0}, {1, 0}}
var jumps = [4][2]int{{0, -2}, {0, 2}, {-2, 0}, {2, 0}}

// backtracker carves a spanning tree over the odd-node lattice
func backtracker(walls []bool, cols, rows int, start core.Point, rng *vmath.FastRand) {
	if start.X < 0 || start.X >= cols || start.Y < 0 || start.Y >= rows {
		start = core.Point{X: 1, Y: 1}
	}

	stack := []core.Point{start}
	walls[start.Y*cols+start.X] = false

	var candidates [4][2]int
	for len(stack) > 0 {
		cur := stack[len(stack)-1]

		n := 0
		for _, d := range jumps {
			nx, ny := cur.X+d[0], cur.Y+d[1]
			if nx > 0 && nx < cols-1 && ny > 0 && ny < rows-1 && walls[ny*cols+nx] {
				candidates[n] = d
				n++
			}
		}

		if n == 0 {
			stack = stack[:len(stack)-1]
			continue
		}

		d := candidates[rng.Intn(n)]
		walls[(cur.Y+d[1]/2)*cols+cur.X+d[0]/2] = false
		walls[(cur.Y+d[1])*cols+cur.X+d[0]] = false
		stack = append(stack, core.Point{X: cur.X + d[0], Y: cur.Y + d[1]})
	}
}

// braid removes dead-end walls with the configured per-mille probability,
// skipping removals that would create 2x2 plazas or isolated wall pillars
func braid(walls []bool, cols, rows, perMille int, rng *vmath.FastRand) {
	for y := 1; y < rows-1; y += 2 {
		for x := 1; x < cols-1; x += 2 {
			if walls[y*cols+x] {
				continue
			}

			exits := 0
			for _, d := range ortho {
				if !walls[(y+d[1])*cols+x+d[0]] {
					exits++
				}
			}
			if exits != 1 || rng.Intn(1000) >= perMille {
				continue
			}

			var candidates [4]core.Point
			n := 0
			for _, jd := range jumps {
				nx, ny := x+jd[0], y+jd[1]
				wx, wy := x+jd[0]/2, y+jd[1]/2
				if nx < 0 || nx >= cols || ny < 0 || ny >= rows {
					continue
				}
				if !walls[ny*cols+nx] && walls[wy*cols+wx] &&
					safeToRemove(walls, cols, rows, wx, wy) {
					candidates[n] = core.Point{X: wx, Y: wy}
					n++
				}
			}
			if n > 0 {
				c := candidates[rng.Intn(n)]
				walls[c.Y*cols+c.X] = false
			}
		}
	}
}

// safeToRemove rejects wall removals that open a 2x2 plaza or leave an
// orthogonal wall with no remaining wall connection
func safeToRemove(walls []bool, cols, rows, x, y int) bool {
	isOpen := func(tx, ty int) bool {
		if tx < 0 || tx >= cols || ty < 0 || ty >= rows {
			return false
		}
		return !walls[ty*cols+tx]
	}

	if isOpen(x-1, y-1) && isOpen(x, y-1) && isOpen(x-1, y) {
		return false
	}
	if isOpen(x, y-1) && isOpen(x+1, y-1) && isOpen(x+1, y) {
		return false
	}
	if isOpen(x-1, y) && isOpen(x-1, y+1) && isOpen(x, y+1) {
		return false
	}
	if isOpen(x+1, y) && isOpen(x, y+1) && isOpen(x+1, y+1) {
		return false
	}

	for _, d := range ortho {
		nx, ny := x+d[0], y+d[1]
		if nx < 0 || nx >= cols || ny < 0 || ny >= rows || !walls[ny*cols+nx] {
			continue
		}
		connections := 0
		for _, d2 := range ortho {
			nnx, nny := nx+d2[0], ny+d2[1]
			if nnx == x && nny == y {
				continue
			}
			if nnx >= 0 && nnx < cols && nny >= 0 && nny < rows && walls[nny*cols+nnx] {
				connections++
			}
		}
		if connections == 0 {
			return false
		}
	}
	return true
}

func stripBorders(walls []bool, cols, rows int) {
	for x := 0; x < cols; x++ {
		walls[x] = false
		walls[(rows-1)*cols+x] = false
	}
	for y := 0; y < rows; y++ {
		walls[y*cols] = false
		walls[y*cols+cols-1] = false
	}
}

func ensureOdd(n int) int {
	if n < 3 {
		return 3
	}
	if n%2 == 0 {
		return n - 1
	}
	return n
}
