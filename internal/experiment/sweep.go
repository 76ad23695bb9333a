package experiment

import (
	"fmt"
	"strconv"
	"strings"

	"netcoverage-sim/internal/network"
	"netcoverage-sim/internal/simulation"
)

// DefaultTrials is the number of trials averaged into each sweep cell.
const DefaultTrials = 1000

// Range is a stepped integer range with an inclusive end.
type Range struct {
	Start int `toml:"start" yaml:"start"`
	End   int `toml:"end" yaml:"end"`
	Step  int `toml:"step" yaml:"step"`
}

// Values expands the range. A non-positive step or an end below the start
// yields an empty slice.
func (r Range) Values() []int {
	if r.Step <= 0 || r.End < r.Start {
		return []int{}
	}
	values := make([]int, 0, (r.End-r.Start)/r.Step+1)
	for v := r.Start; v <= r.End; v += r.Step {
		values = append(values, v)
	}
	return values
}

// String formats the range as start:end:step.
func (r Range) String() string {
	return fmt.Sprintf("%d:%d:%d", r.Start, r.End, r.Step)
}

// ParseRange parses "start:end:step".
func ParseRange(s string) (Range, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 3 {
		return Range{}, fmt.Errorf("expected start:end:step, got %q", s)
	}
	vals := make([]int, 3)
	for i, p := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return Range{}, fmt.Errorf("%q is not an integer", p)
		}
		vals[i] = v
	}
	return Range{Start: vals[0], End: vals[1], Step: vals[2]}, nil
}

// SweepConfig holds every parameter of a sweep. It is passed by value.
type SweepConfig struct {
	Nodes    Range
	Radius   Range
	Sigma    float64
	Area     float64
	Trials   int
	EdgeMode network.EdgeMode
	// Workers > 1 runs the trials of a cell on a goroutine pool.
	Workers int
	// Seed of the per-trial random streams. Zero picks a seed from the clock.
	Seed uint64
}

// DefaultSweepConfig returns the stock sweep parameters.
func DefaultSweepConfig() SweepConfig {
	return SweepConfig{
		Nodes:    Range{Start: 10, End: 100, Step: 10},
		Radius:   Range{Start: 0, End: 100, Step: 10},
		Sigma:    5,
		Area:     simulation.DefaultArea,
		Trials:   DefaultTrials,
		EdgeMode: network.EdgeSymmetric,
		Workers:  1,
	}
}

// SweepCell is the average over all trials of one (node count, mean radius) pair.
type SweepCell struct {
	NodeCount          int
	MeanRadius         float64
	AvgComponents      float64
	AvgCoveragePercent float64
	StdComponents      float64
	StdCoveragePercent float64
	Trials             int
}

// Sweep is the full result of a parameter sweep. Cells are ordered by node
// count first and mean radius second.
type Sweep struct {
	RunID       string
	Seed        uint64
	NodeCounts  []int
	RadiusMeans []int
	Cells       []SweepCell
}

// Cell returns the cell for the given parameters.
func (s Sweep) Cell(nodeCount, meanRadius int) (SweepCell, bool) {
	for _, c := range s.Cells {
		if c.NodeCount == nodeCount && c.MeanRadius == float64(meanRadius) {
			return c, true
		}
	}
	return SweepCell{}, false
}
