package experiment

import (
	"errors"
	"testing"

	"netcoverage-sim/internal/analysis"
	"netcoverage-sim/internal/network"

	log "github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quietLogger() log.FieldLogger {
	logger, _ := test.NewNullLogger()
	return logger
}

func smallConfig() SweepConfig {
	cfg := DefaultSweepConfig()
	cfg.Nodes = Range{Start: 10, End: 30, Step: 10}
	cfg.Radius = Range{Start: 0, End: 20, Step: 10}
	cfg.Sigma = 0
	cfg.Trials = 5
	cfg.Seed = 77
	return cfg
}

func TestRangeValues(t *testing.T) {
	tests := []struct {
		name string
		r    Range
		want []int
	}{
		{"inclusive end", Range{10, 30, 10}, []int{10, 20, 30}},
		{"unreachable end", Range{0, 25, 10}, []int{0, 10, 20}},
		{"single", Range{5, 5, 1}, []int{5}},
		{"zero step", Range{0, 10, 0}, []int{}},
		{"negative step", Range{10, 0, -2}, []int{}},
		{"end before start", Range{10, 0, 2}, []int{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.r.Values())
		})
	}
	assert.Equal(t, "10:30:10", Range{10, 30, 10}.String())
}

func TestParseRange(t *testing.T) {
	r, err := ParseRange("10:100:10")
	require.NoError(t, err)
	assert.Equal(t, Range{10, 100, 10}, r)

	r, err = ParseRange(" 0 : 20 : -5 ")
	require.NoError(t, err)
	assert.Equal(t, Range{0, 20, -5}, r)

	_, err = ParseRange("1:2")
	assert.Error(t, err)
	_, err = ParseRange("a:2:3")
	assert.Error(t, err)
}

func TestRunSweepShape(t *testing.T) {
	sweep, err := NewRunner(smallConfig(), WithLogger(quietLogger())).RunSweep()
	require.NoError(t, err)

	assert.Equal(t, []int{10, 20, 30}, sweep.NodeCounts)
	assert.Equal(t, []int{0, 10, 20}, sweep.RadiusMeans)
	require.Len(t, sweep.Cells, 9)
	assert.NotEmpty(t, sweep.RunID)
	assert.Equal(t, uint64(77), sweep.Seed)

	i := 0
	for _, n := range []int{10, 20, 30} {
		for _, r := range []float64{0, 10, 20} {
			c := sweep.Cells[i]
			assert.Equal(t, n, c.NodeCount)
			assert.Equal(t, r, c.MeanRadius)
			assert.Equal(t, 5, c.Trials)
			assert.GreaterOrEqual(t, c.AvgComponents, 1.0)
			assert.LessOrEqual(t, c.AvgComponents, float64(n))
			assert.GreaterOrEqual(t, c.AvgCoveragePercent, 0.0)
			assert.LessOrEqual(t, c.AvgCoveragePercent, 100.0)
			i++
		}
	}

	// sigma = 0 and mean radius 0: no edges and no coverage in any trial.
	for _, n := range sweep.NodeCounts {
		c, ok := sweep.Cell(n, 0)
		require.True(t, ok)
		assert.Equal(t, float64(n), c.AvgComponents)
		assert.Equal(t, 0.0, c.StdComponents)
		assert.Equal(t, 0.0, c.AvgCoveragePercent)
	}
	_, ok := sweep.Cell(40, 0)
	assert.False(t, ok)
}

func TestRunSweepDeterministic(t *testing.T) {
	cfg := smallConfig()
	cfg.Sigma = 5
	a, err := NewRunner(cfg, WithLogger(quietLogger())).RunSweep()
	require.NoError(t, err)
	b, err := NewRunner(cfg, WithLogger(quietLogger())).RunSweep()
	require.NoError(t, err)

	assert.NotEqual(t, a.RunID, b.RunID)
	assert.Equal(t, a.Cells, b.Cells)
}

func TestRunSweepParallelMatchesSerial(t *testing.T) {
	cfg := smallConfig()
	cfg.Sigma = 5
	cfg.Trials = 12
	serial, err := NewRunner(cfg, WithLogger(quietLogger())).RunSweep()
	require.NoError(t, err)

	cfg.Workers = 4
	parallel, err := NewRunner(cfg, WithLogger(quietLogger())).RunSweep()
	require.NoError(t, err)

	assert.Equal(t, serial.Cells, parallel.Cells)
}

func TestRunSweepEdgeModes(t *testing.T) {
	cfg := smallConfig()
	cfg.Sigma = 5
	sym, err := NewRunner(cfg, WithLogger(quietLogger())).RunSweep()
	require.NoError(t, err)

	cfg.EdgeMode = network.EdgeLegacy
	legacy, err := NewRunner(cfg, WithLogger(quietLogger())).RunSweep()
	require.NoError(t, err)

	// Same seed, same nodes: the extra edges can only merge components.
	for i := range sym.Cells {
		assert.LessOrEqual(t, sym.Cells[i].AvgComponents, legacy.Cells[i].AvgComponents)
		assert.Equal(t, sym.Cells[i].AvgCoveragePercent, legacy.Cells[i].AvgCoveragePercent)
	}
}

func TestRunSweepEmptyAxis(t *testing.T) {
	cfg := smallConfig()
	cfg.Radius = Range{Start: 0, End: 20, Step: 0}
	sweep, err := NewRunner(cfg, WithLogger(quietLogger())).RunSweep()
	require.NoError(t, err)
	assert.Empty(t, sweep.Cells)
	assert.Empty(t, sweep.RadiusMeans)
	assert.Equal(t, []int{10, 20, 30}, sweep.NodeCounts)
}

func TestRunSweepNoTrials(t *testing.T) {
	cfg := smallConfig()
	cfg.Trials = 0
	_, err := NewRunner(cfg, WithLogger(quietLogger())).RunSweep()
	assert.True(t, errors.Is(err, ErrNoTrials))
}

func TestRunSweepLogs(t *testing.T) {
	logger, hook := test.NewNullLogger()
	logger.SetLevel(log.DebugLevel)

	sweep, err := NewRunner(smallConfig(), WithLogger(logger)).RunSweep()
	require.NoError(t, err)

	entries := hook.AllEntries()
	require.Len(t, entries, 2+len(sweep.Cells))
	assert.Equal(t, "Starting sweep", entries[0].Message)
	assert.Equal(t, "Sweep finished", hook.LastEntry().Message)
	for _, e := range entries {
		assert.Equal(t, sweep.RunID, e.Data["run_id"])
	}
}

func TestRunSweepHelper(t *testing.T) {
	sweep, err := RunSweep(Range{0, 4, 2}, Range{5, 5, 1}, 1, 3)
	require.NoError(t, err)
	require.Len(t, sweep.Cells, 3)
	assert.Equal(t, 0.0, sweep.Cells[0].AvgComponents, "zero nodes give zero components")
	assert.Equal(t, 0.0, sweep.Cells[0].AvgCoveragePercent)
}

func TestNewRunnerDefaults(t *testing.T) {
	cfg := smallConfig()
	cfg.Seed = 0
	cfg.Workers = 0
	r := NewRunner(cfg)
	assert.NotZero(t, r.Config().Seed)
	assert.Equal(t, 1, r.Config().Workers)
}

func TestRunTrialZeroNodes(t *testing.T) {
	r := NewRunner(smallConfig(), WithLogger(quietLogger()))
	assert.Equal(t, analysis.TrialResult{}, r.RunTrial(0, 10, r.trialSource(0, 0)))
}

func TestAggregate(t *testing.T) {
	cell := aggregate(4, 10, []analysis.TrialResult{
		{NumComponents: 2, CoveragePercent: 10},
		{NumComponents: 4, CoveragePercent: 30},
	})
	assert.Equal(t, 3.0, cell.AvgComponents)
	assert.Equal(t, 20.0, cell.AvgCoveragePercent)
	assert.InDelta(t, 1.41421356, cell.StdComponents, 1e-6)
	assert.Equal(t, 2, cell.Trials)

	single := aggregate(4, 10, []analysis.TrialResult{{NumComponents: 2, CoveragePercent: 10}})
	assert.Equal(t, 2.0, single.AvgComponents)
	assert.Equal(t, 0.0, single.StdComponents)
}
