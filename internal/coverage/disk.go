// Package coverage computes the exact area covered by a union of disks.
package coverage

import "math"

// Disk is a closed disk in the plane.
type Disk struct {
	X float64
	Y float64
	R float64
}

// Area returns πr².
func (d Disk) Area() float64 {
	return math.Pi * d.R * d.R
}

// Contains reports whether the point (x, y) lies strictly inside d.
func (d Disk) Contains(x, y float64) bool {
	dx, dy := x-d.X, y-d.Y
	return dx*dx+dy*dy < d.R*d.R
}

func (d Disk) centerDistance(o Disk) float64 {
	return math.Hypot(o.X-d.X, o.Y-d.Y)
}

// inside reports whether d lies within o. Identical disks count as inside each other.
func (d Disk) inside(o Disk) bool {
	return d.centerDistance(o)+d.R <= o.R
}
