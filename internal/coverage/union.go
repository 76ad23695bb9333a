package coverage

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
)

// UnionArea returns the area of the union of disks, counting overlaps once.
//
// The area is the boundary integral ½∮(x dy − y dx) taken over the arcs of each
// disk that are not inside any other disk. Disks with zero radius, disks
// contained in another disk and duplicates are dropped first. Cost is
// O(n² log n) for n disks.
func UnionArea(disks []Disk) float64 {
	kept := reduce(disks)
	if len(kept) == 0 {
		return 0
	}

	parts := make([]float64, 0, len(kept))
	for i, d := range kept {
		neighbors := make([]int, 0)
		angles := []float64{0, 2 * math.Pi}
		for j, o := range kept {
			if i == j {
				continue
			}
			dist := d.centerDistance(o)
			if dist >= d.R+o.R {
				continue
			}
			neighbors = append(neighbors, j)
			// reduce removed containment, so the boundaries cross at two points.
			base := math.Atan2(o.Y-d.Y, o.X-d.X)
			cos := (d.R*d.R + dist*dist - o.R*o.R) / (2 * d.R * dist)
			half := math.Acos(math.Max(-1, math.Min(1, cos)))
			angles = append(angles, normalizeAngle(base-half), normalizeAngle(base+half))
		}
		sort.Float64s(angles)

		for k := 0; k+1 < len(angles); k++ {
			a, b := angles[k], angles[k+1]
			if b-a <= 0 {
				continue
			}
			mid := (a + b) / 2
			mx, my := d.X+d.R*math.Cos(mid), d.Y+d.R*math.Sin(mid)
			if coveredBy(kept, neighbors, mx, my) {
				continue
			}
			parts = append(parts, arcIntegral(d, a, b))
		}
	}
	return floats.Sum(parts)
}

// Fraction returns UnionArea(disks)/area clamped to [0, 1].
func Fraction(disks []Disk, area float64) float64 {
	if area <= 0 {
		return 0
	}
	return math.Min(UnionArea(disks)/area, 1)
}

// reduce drops empty, contained and duplicate disks. Of two identical disks the
// first one is kept.
func reduce(disks []Disk) []Disk {
	kept := make([]Disk, 0, len(disks))
	for i, d := range disks {
		if d.R <= 0 {
			continue
		}
		covered := false
		for j, o := range disks {
			if i == j || o.R <= 0 {
				continue
			}
			if d == o {
				if j < i {
					covered = true
					break
				}
				continue
			}
			if d.inside(o) {
				covered = true
				break
			}
		}
		if !covered {
			kept = append(kept, d)
		}
	}
	return kept
}

func coveredBy(disks []Disk, candidates []int, x, y float64) bool {
	for _, j := range candidates {
		if disks[j].Contains(x, y) {
			return true
		}
	}
	return false
}

// arcIntegral evaluates ½∫(x dy − y dx) along d from angle a to b.
func arcIntegral(d Disk, a, b float64) float64 {
	return 0.5 * (d.R*d.X*(math.Sin(b)-math.Sin(a)) -
		d.R*d.Y*(math.Cos(b)-math.Cos(a)) +
		d.R*d.R*(b-a))
}

func normalizeAngle(a float64) float64 {
	a = math.Mod(a, 2*math.Pi)
	if a < 0 {
		a += 2 * math.Pi
	}
	return a
}
