package simulation

import (
	"math"

	"netcoverage-sim/internal/common"
)

// DefaultArea is the nominal region area S.
const DefaultArea = 40000.0

// insideFactor pulls a projected point off the diamond boundary.
const insideFactor = 1 - 1e-9

// Region is a square of the given area centered at the origin, rotated by 45°.
// Positions are admissible when |x| + |y| < HalfDiagonal().
type Region struct {
	Area float64
}

// NewRegion creates a region of the given area. Area must be positive.
func NewRegion(area float64) Region {
	return Region{Area: area}
}

// Side returns the side length of the square.
func (r Region) Side() float64 {
	return math.Sqrt(r.Area)
}

// HalfDiagonal returns √2·side/2, the L1 radius of the diamond.
func (r Region) HalfDiagonal() float64 {
	return math.Sqrt2 * r.Side() / 2
}

// Bounds returns the bounding square of the diamond in [minX, maxX, minY, maxY] form.
func (r Region) Bounds() []float64 {
	h := r.HalfDiagonal()
	return []float64{-h, h, -h, h}
}

// Diameter returns the largest distance between two admissible points.
func (r Region) Diameter() float64 {
	return 2 * r.HalfDiagonal()
}

// Contains reports whether pos lies strictly inside the diamond.
func (r Region) Contains(pos common.Vector) bool {
	return pos.L1Norm() < r.HalfDiagonal()
}

// Clamp returns the admissible point nearest to pos. Points already inside are
// returned unchanged; others are projected onto the diamond edge and moved
// slightly inward so the strict inequality holds.
func (r Region) Clamp(pos common.Vector) common.Vector {
	if r.Contains(pos) {
		return pos.Clone()
	}
	h := r.HalfDiagonal()
	ax, ay := math.Abs(pos[0]), math.Abs(pos[1])

	// Orthogonal projection onto x + y = h within the quadrant.
	shift := (ax + ay - h) / 2
	px, py := ax-shift, ay-shift
	switch {
	case px < 0:
		px, py = 0, h
	case py < 0:
		px, py = h, 0
	}

	return common.Vector{
		math.Copysign(px*insideFactor, pos[0]),
		math.Copysign(py*insideFactor, pos[1]),
	}
}
