package common

import (
	"fmt"
	"math"
	"math/rand/v2"
	"strings"

	"gonum.org/v1/gonum/stat/distuv"
)

// Vector represents a point or vector in n-dimensional space.
type Vector []float64

// NewVector creates a new vector of a given dimension.
func NewVector(dimension int) Vector {
	return make(Vector, dimension)
}

// NewRandomVector draws a vector uniformly inside the axis-aligned box described by bounds.
// bounds should have dimension * 2 elements: [minX, maxX, minY, maxY, ...]
// All coordinates are drawn from src, so a seeded source gives a reproducible vector.
func NewRandomVector(dimension int, bounds []float64, src rand.Source) (Vector, error) {
	if len(bounds) != dimension*2 {
		return nil, fmt.Errorf("bounds length must be dimension * 2, got %d, expected %d", len(bounds), dimension*2)
	}
	v := NewVector(dimension)
	for i := 0; i < dimension; i++ {
		u := distuv.Uniform{Min: bounds[i*2], Max: bounds[i*2+1], Src: src}
		v[i] = u.Rand()
	}
	return v, nil
}

// Dimension returns the dimension of the vector.
func (v Vector) Dimension() int {
	return len(v)
}

// L1Norm returns the Manhattan norm |x1| + |x2| + ...
func (v Vector) L1Norm() float64 {
	sum := 0.0
	for _, val := range v {
		sum += math.Abs(val)
	}
	return sum
}

// String returns a string representation of the vector.
func (v Vector) String() string {
	strs := make([]string, len(v))
	for i, val := range v {
		strs[i] = fmt.Sprintf("%.3f", val)
	}
	return fmt.Sprintf("[%s]", strings.Join(strs, ", "))
}

// Clone creates a deep copy of the vector.
func (v Vector) Clone() Vector {
	clone := make(Vector, len(v))
	copy(clone, v)
	return clone
}
