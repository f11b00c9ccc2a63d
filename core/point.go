package core

// Point is an integer grid cell coordinate
type Point struct {
	X, Y int
}

// Area represents a rectangular grid region
type Area struct {
	X, Y          int // Top-left corner
	Width, Height int // Dimensions (minimum 1x1)
}

// Contains reports whether (x, y) lies inside the area
func (a Area) Contains(x, y int) bool {
	return x >= a.X && y >= a.Y && x < a.X+a.Width && y < a.Y+a.Height
}

// ChebyshevDist returns max(|dx|, |dy|) between two points
// Distance metric of 8-connected grid movement
func ChebyshevDist(a, b Point) int {
	dx := a.X - b.X
	if dx < 0 {
		dx = -dx
	}
	dy := a.Y - b.Y
	if dy < 0 {
		dy = -dy
	}
	if dx > dy {
		return dx
	}
	return dy
}
