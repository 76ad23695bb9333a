package visualization

import (
	"fmt"
	"image/color"

	"netcoverage-sim/internal/experiment"
	"netcoverage-sim/internal/report"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

const (
	padding      = 50.0 // inner margin of each chart panel
	lineWidth    = 2.0
	markerRadius = 3.0
	axisWidth    = 1.0
)

var (
	backgroundColor = color.RGBA{230, 230, 230, 255}
	axisColor       = color.RGBA{40, 40, 40, 255}
	palette         = []color.RGBA{
		{31, 119, 180, 255},
		{255, 127, 14, 255},
		{44, 160, 44, 255},
		{214, 39, 40, 255},
		{148, 103, 189, 255},
		{140, 86, 75, 255},
		{227, 119, 194, 255},
		{127, 127, 127, 255},
		{188, 189, 34, 255},
		{23, 190, 207, 255},
	}
)

// ChartRenderer implements ebiten.Game and draws the components chart and the
// coverage chart side by side, one line per node count.
type ChartRenderer struct {
	components report.Chart
	coverage   report.Chart
	runID      string

	screenWidth  int
	screenHeight int
}

// NewChartRenderer creates a renderer for a finished sweep.
func NewChartRenderer(sweep experiment.Sweep) *ChartRenderer {
	components, coverage := report.Charts(sweep)
	return &ChartRenderer{
		components: components,
		coverage:   coverage,
		runID:      sweep.RunID,
	}
}

// Run opens a window and blocks until it is closed.
func (r *ChartRenderer) Run() error {
	ebiten.SetWindowSize(1400, 600)
	ebiten.SetWindowTitle("Wireless network simulation")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	if err := ebiten.RunGame(r); err != nil {
		return fmt.Errorf("chart window failed: %w", err)
	}
	return nil
}

// Update is called every tick. The sweep is finished, so there is nothing to advance.
func (r *ChartRenderer) Update() error {
	return nil
}

// Draw renders both panels.
func (r *ChartRenderer) Draw(screen *ebiten.Image) {
	screen.Fill(backgroundColor)

	half := float64(r.screenWidth) / 2
	h := float64(r.screenHeight)
	r.drawChart(screen, r.components, Rect{X: 0, Y: 0, W: half, H: h})
	r.drawChart(screen, r.coverage, Rect{X: half, Y: 0, W: half, H: h})
}

func (r *ChartRenderer) drawChart(screen *ebiten.Image, chart report.Chart, area Rect) {
	proj := NewProjector(chart, area)

	// Axes
	ox, oy := proj.Origin()
	right := float32(area.X + area.W - padding)
	top := float32(area.Y + padding)
	vector.StrokeLine(screen, ox, oy, right, oy, axisWidth, axisColor, true)
	vector.StrokeLine(screen, ox, oy, ox, top, axisWidth, axisColor, true)

	for i, line := range chart.Lines {
		c := palette[i%len(palette)]
		for k, p := range line.Points {
			x, y := proj.ToScreen(p.Radius, p.Value)
			if k > 0 {
				prev := line.Points[k-1]
				px, py := proj.ToScreen(prev.Radius, prev.Value)
				vector.StrokeLine(screen, px, py, x, y, lineWidth, c, true)
			}
			vector.DrawFilledCircle(screen, x, y, markerRadius, c, true)
		}
	}

	r.drawLabels(screen, chart, area, proj)
}

func (r *ChartRenderer) drawLabels(screen *ebiten.Image, chart report.Chart, area Rect, proj Projector) {
	ebitenutil.DebugPrintAt(screen, chart.Title, int(area.X+padding), int(area.Y+padding/4))
	ebitenutil.DebugPrintAt(screen, chart.YLabel, int(area.X+4), int(area.Y+padding/2+12))
	ebitenutil.DebugPrintAt(screen, chart.XLabel, int(area.X+area.W/2), int(area.Y+area.H-padding/2))

	if minX, maxX, minY, maxY, ok := chart.Extent(); ok {
		ox, oy := proj.Origin()
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("%.0f", minX), int(ox), int(oy)+4)
		mx, _ := proj.ToScreen(maxX, minY)
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("%.0f", maxX), int(mx)-12, int(oy)+4)
		_, my := proj.ToScreen(minX, maxY)
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("%.1f", maxY), int(area.X+4), int(my)-6)
	}

	// Legend
	lx := int(area.X + area.W - padding - 60)
	for i, line := range chart.Lines {
		ly := int(area.Y+padding) + i*14
		c := palette[i%len(palette)]
		vector.DrawFilledRect(screen, float32(lx-12), float32(ly+4), 8, 8, c, true)
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("n=%d", line.NodeCount), lx, ly)
	}
	if len(r.runID) >= 8 {
		ebitenutil.DebugPrintAt(screen, "run "+r.runID[:8], int(area.X+4), int(area.Y+area.H-16))
	}
}

// Layout is called when the window size changes.
func (r *ChartRenderer) Layout(outsideWidth, outsideHeight int) (int, int) {
	r.screenWidth = outsideWidth
	r.screenHeight = outsideHeight
	return r.screenWidth, r.screenHeight
}
