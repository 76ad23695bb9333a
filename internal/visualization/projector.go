package visualization

import (
	"math"

	"netcoverage-sim/internal/report"
)

// Rect is a screen-space rectangle.
type Rect struct {
	X, Y, W, H float64
}

// Projector maps chart data coordinates into a screen rectangle.
// Screen Y grows downwards, data Y grows upwards.
type Projector struct {
	area   Rect
	minX   float64
	minY   float64
	scaleX float64
	scaleY float64
}

// NewProjector fits the extent of chart into area, keeping padding on every side.
func NewProjector(chart report.Chart, area Rect) Projector {
	p := Projector{area: area, scaleX: 1, scaleY: 1}

	minX, maxX, minY, maxY, ok := chart.Extent()
	if !ok {
		return p
	}
	// Values start at zero on both axes.
	minY = math.Min(minY, 0)

	worldWidth := maxX - minX
	worldHeight := maxY - minY
	if worldWidth == 0 {
		worldWidth = 1
	}
	if worldHeight == 0 {
		worldHeight = 1
	}

	p.minX = minX
	p.minY = minY
	p.scaleX = (area.W - 2*padding) / worldWidth
	p.scaleY = (area.H - 2*padding) / worldHeight
	if p.scaleX <= 0 || math.IsNaN(p.scaleX) || math.IsInf(p.scaleX, 0) {
		p.scaleX = 1
	}
	if p.scaleY <= 0 || math.IsNaN(p.scaleY) || math.IsInf(p.scaleY, 0) {
		p.scaleY = 1
	}
	return p
}

// ToScreen converts a data point to screen coordinates.
func (p Projector) ToScreen(x, y float64) (float32, float32) {
	sx := p.area.X + padding + (x-p.minX)*p.scaleX
	sy := p.area.Y + p.area.H - padding - (y-p.minY)*p.scaleY
	return float32(sx), float32(sy)
}

// Origin returns the screen position of the lower-left corner of the plot.
func (p Projector) Origin() (float32, float32) {
	return p.ToScreen(p.minX, p.minY)
}
