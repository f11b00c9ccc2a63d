package vmath

// Normalize2D returns unit vector in Q32.32, zero-safe
// Uses DistanceApprox for performance (~4% error acceptable for steering)
func Normalize2D(x, y int64) (nx, ny int64) {
	mag := DistanceApprox(x, y)
	if mag == 0 {
		return 0, 0
	}
	return Div(x, mag), Div(y, mag)
}

// Magnitude returns vector length using DistanceApprox
func Magnitude(x, y int64) int64 {
	return DistanceApprox(x, y)
}

// MagnitudeSq returns squared magnitude without sqrt
func MagnitudeSq(x, y int64) int64 {
	return Mul(x, x) + Mul(y, y)
}

// ClampMagnitude limits vector to maxMag while preserving direction
// Returns unchanged vector if magnitude <= maxMag
func ClampMagnitude(x, y, maxMag int64) (cx, cy int64) {
	mag := Magnitude(x, y)
	if mag <= maxMag || mag == 0 {
		return x, y
	}
	scale := Div(maxMag, mag)
	return Mul(x, scale), Mul(y, scale)
}

// ScaleVector multiplies vector by scalar factor
func ScaleVector(x, y, factor int64) (sx, sy int64) {
	return Mul(x, factor), Mul(y, factor)
}

// DotProduct returns x1*x2 + y1*y2 in Q32.32
func DotProduct(x1, y1, x2, y2 int64) int64 {
	return Mul(x1, x2) + Mul(y1, y2)
}

// Perpendicular returns vector rotated 90 degrees counter-clockwise
func Perpendicular(x, y int64) (px, py int64) {
	return -y, x
}
