package analysis

import (
	"fmt"

	"netcoverage-sim/internal/coverage"
	"netcoverage-sim/internal/network"
	"netcoverage-sim/internal/simulation"

	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/topo"
)

// TrialResult is the outcome of analysing one generated network.
type TrialResult struct {
	NumComponents   int
	CoveragePercent float64
}

// String representation for logging
func (r TrialResult) String() string {
	return fmt.Sprintf("components=%d coverage=%.2f%%", r.NumComponents, r.CoveragePercent)
}

// Analyzer measures connectivity and area coverage against a fixed region area.
type Analyzer struct {
	area float64
}

// NewAnalyzer creates an analyzer for a region of the given area.
func NewAnalyzer(area float64) *Analyzer {
	return &Analyzer{area: area}
}

// Analyze counts the weakly connected components of g and the percentage of the
// region covered by the nodes' disks.
func (a *Analyzer) Analyze(g *network.ReachabilityGraph, nodes []simulation.Node) TrialResult {
	return TrialResult{
		NumComponents:   CountComponents(g),
		CoveragePercent: CoveragePercent(nodes, a.area),
	}
}

// CountComponents returns the number of weakly connected components of g.
// An empty graph has zero components.
func CountComponents(g *network.ReachabilityGraph) int {
	if g.Order() == 0 {
		return 0
	}
	return len(topo.ConnectedComponents(graph.Undirect{G: g.Directed()}))
}

// CoveragePercent returns the union area of the nodes' disks as a percentage of
// area, capped at 100. Disks may reach outside the region, hence the cap.
func CoveragePercent(nodes []simulation.Node, area float64) float64 {
	disks := make([]coverage.Disk, len(nodes))
	for i, n := range nodes {
		disks[i] = coverage.Disk{X: n.X, Y: n.Y, R: n.Radius}
	}
	return coverage.Fraction(disks, area) * 100
}
