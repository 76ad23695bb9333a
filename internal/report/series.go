// Package report turns sweep results into chart series and terminal tables.
package report

import (
	"netcoverage-sim/internal/experiment"

	"gonum.org/v1/gonum/floats"
)

// Point is one sample of a line: mean radius against a measured value.
type Point struct {
	Radius float64
	Value  float64
}

// Line holds the points of a single node count, ordered by radius.
type Line struct {
	NodeCount int
	Points    []Point
}

// Chart is a set of lines sharing axes.
type Chart struct {
	Title  string
	XLabel string
	YLabel string
	Lines  []Line
}

// Charts groups the sweep cells by node count into the components chart and the
// coverage chart. Line order follows sweep.NodeCounts.
func Charts(sweep experiment.Sweep) (components, coverage Chart) {
	components = Chart{
		Title:  "Average weakly connected components",
		XLabel: "Mean radius (r)",
		YLabel: "Components",
	}
	coverage = Chart{
		Title:  "Coverage",
		XLabel: "Mean radius (r)",
		YLabel: "Coverage, %",
	}

	for _, n := range sweep.NodeCounts {
		compLine := Line{NodeCount: n}
		covLine := Line{NodeCount: n}
		for _, c := range sweep.Cells {
			if c.NodeCount != n {
				continue
			}
			compLine.Points = append(compLine.Points, Point{Radius: c.MeanRadius, Value: c.AvgComponents})
			covLine.Points = append(covLine.Points, Point{Radius: c.MeanRadius, Value: c.AvgCoveragePercent})
		}
		components.Lines = append(components.Lines, compLine)
		coverage.Lines = append(coverage.Lines, covLine)
	}
	return components, coverage
}

// Extent returns the bounding box of all points. ok is false when the chart has no points.
func (c Chart) Extent() (minX, maxX, minY, maxY float64, ok bool) {
	var xs, ys []float64
	for _, l := range c.Lines {
		for _, p := range l.Points {
			xs = append(xs, p.Radius)
			ys = append(ys, p.Value)
		}
	}
	if len(xs) == 0 {
		return 0, 0, 0, 0, false
	}
	return floats.Min(xs), floats.Max(xs), floats.Min(ys), floats.Max(ys), true
}
