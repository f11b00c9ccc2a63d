package vmath

import (
	"math"
)

// ddaAxis carries Supercover DDA progress along one axis: the current and
// final cell, the step sign, and the parametric distance bookkeeping
type ddaAxis struct {
	cell, target int
	step         int
	tMax, tDelta int64
}

func newDDAAxis(from, to int64) ddaAxis {
	a := ddaAxis{cell: ToInt(from), target: ToInt(to), step: 1}

	d := to - from
	if d < 0 {
		a.step = -1
		d = -d
	}
	if d == 0 {
		// Axis never advances; tMax sentinel keeps it losing every compare
		a.tMax = math.MaxInt64
		return a
	}

	a.tDelta = Div(Scale, d)
	frac := from & Mask
	if a.step > 0 {
		frac = Scale - frac
	}
	a.tMax = Mul(frac, a.tDelta)
	return a
}

func (a *ddaAxis) advance() {
	a.cell += a.step
	a.tMax += a.tDelta
}

func (a *ddaAxis) atTarget() bool {
	return a.cell == a.target
}

// GridTraverser walks every cell a segment intersects (Supercover DDA),
// allocation-free. Backs line-of-sight checks over the cost grid
type GridTraverser struct {
	x, y    ddaAxis
	started bool
	done    bool
}

// NewGridTraverser prepares a walk from (x1, y1) to (x2, y2), Q32.32
// world units. The first Next reports the starting cell
func NewGridTraverser(x1, y1, x2, y2 int64) GridTraverser {
	return GridTraverser{
		x: newDDAAxis(x1, x2),
		y: newDDAAxis(y1, y2),
	}
}

// Next advances to the next intersected cell, reachable via Pos
// Returns false once the target cell has been reported
func (t *GridTraverser) Next() bool {
	if t.done {
		return false
	}
	if !t.started {
		t.started = true
		return true
	}
	if t.x.atTarget() && t.y.atTarget() {
		t.done = true
		return false
	}

	switch {
	case t.x.tMax < t.y.tMax:
		if !t.x.atTarget() {
			t.x.advance()
		} else {
			t.y.advance()
		}
	case t.y.tMax < t.x.tMax:
		if !t.y.atTarget() {
			t.y.advance()
		} else {
			t.x.advance()
		}
	default:
		// Exact corner crossing steps both axes
		if !t.x.atTarget() {
			t.x.advance()
		}
		if !t.y.atTarget() {
			t.y.advance()
		}
	}
	return true
}

// Pos returns the current cell coordinate
func (t *GridTraverser) Pos() (int, int) {
	return t.x.cell, t.y.cell
}
