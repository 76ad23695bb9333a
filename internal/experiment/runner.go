package experiment

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"sync"
	"time"

	"netcoverage-sim/internal/analysis"
	"netcoverage-sim/internal/network"
	"netcoverage-sim/internal/simulation"

	"github.com/google/uuid"
	"github.com/panjf2000/ants/v2"
	log "github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/stat"
)

// ErrNoTrials is returned when a sweep is configured with fewer than one trial per cell.
var ErrNoTrials = errors.New("experiment: trials per cell must be at least 1")

// Option customizes a Runner.
type Option func(*Runner)

// WithLogger sets the logger used for sweep progress.
func WithLogger(logger log.FieldLogger) Option {
	return func(r *Runner) {
		r.logger = logger
	}
}

// Runner executes parameter sweeps.
type Runner struct {
	config   SweepConfig
	region   simulation.Region
	analyzer *analysis.Analyzer
	logger   log.FieldLogger
}

// NewRunner creates a runner for cfg.
func NewRunner(cfg SweepConfig, opts ...Option) *Runner {
	if cfg.Seed == 0 {
		cfg.Seed = uint64(time.Now().UnixNano())
	}
	if cfg.Workers < 1 {
		cfg.Workers = 1
	}
	r := &Runner{
		config:   cfg,
		region:   simulation.NewRegion(cfg.Area),
		analyzer: analysis.NewAnalyzer(cfg.Area),
		logger:   log.StandardLogger(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Config returns the effective configuration, including the chosen seed.
func (r *Runner) Config() SweepConfig {
	return r.config
}

// RunSweep runs the configured number of trials for every (node count, mean
// radius) pair and averages them. Node counts form the outer loop.
func RunSweep(nodes, radius Range, sigma float64, trials int) (Sweep, error) {
	cfg := DefaultSweepConfig()
	cfg.Nodes = nodes
	cfg.Radius = radius
	cfg.Sigma = sigma
	cfg.Trials = trials
	return NewRunner(cfg).RunSweep()
}

// RunSweep runs the sweep described by the runner's configuration.
func (r *Runner) RunSweep() (Sweep, error) {
	cfg := r.config
	if cfg.Trials < 1 {
		return Sweep{}, ErrNoTrials
	}

	sweep := Sweep{
		RunID:       uuid.NewString(),
		Seed:        cfg.Seed,
		NodeCounts:  cfg.Nodes.Values(),
		RadiusMeans: cfg.Radius.Values(),
	}
	logger := r.logger.WithField("run_id", sweep.RunID)
	logger.WithFields(log.Fields{
		"nodes":     cfg.Nodes.String(),
		"radius":    cfg.Radius.String(),
		"sigma":     cfg.Sigma,
		"trials":    cfg.Trials,
		"edge_mode": cfg.EdgeMode.String(),
		"workers":   cfg.Workers,
		"seed":      cfg.Seed,
	}).Info("Starting sweep")

	var pool *ants.Pool
	if cfg.Workers > 1 {
		var err error
		pool, err = ants.NewPool(cfg.Workers)
		if err != nil {
			return Sweep{}, fmt.Errorf("failed to create worker pool: %w", err)
		}
		defer pool.Release()
	}

	start := time.Now()
	sweep.Cells = make([]SweepCell, 0, len(sweep.NodeCounts)*len(sweep.RadiusMeans))
	cellIndex := 0
	for _, n := range sweep.NodeCounts {
		for _, mu := range sweep.RadiusMeans {
			cell, err := r.runCell(pool, cellIndex, n, float64(mu))
			if err != nil {
				return Sweep{}, fmt.Errorf("cell n=%d r=%d: %w", n, mu, err)
			}
			logger.WithFields(log.Fields{
				"nodes":          cell.NodeCount,
				"mean_radius":    cell.MeanRadius,
				"avg_components": cell.AvgComponents,
				"avg_coverage":   cell.AvgCoveragePercent,
			}).Debug("Cell finished")
			sweep.Cells = append(sweep.Cells, cell)
			cellIndex++
		}
	}

	logger.WithFields(log.Fields{
		"cells":    len(sweep.Cells),
		"duration": time.Since(start).String(),
	}).Info("Sweep finished")
	return sweep, nil
}

// RunTrial generates n nodes from src, builds their graph and analyzes it.
func (r *Runner) RunTrial(n int, mu float64, src rand.Source) analysis.TrialResult {
	nodes := simulation.NewSampler(r.region, src).GenerateNodes(n, mu, r.config.Sigma)
	g := network.BuildGraph(nodes, r.config.EdgeMode)
	return r.analyzer.Analyze(g, nodes)
}

// trialSource returns the independent random stream of one trial. Streams
// depend only on the seed and the trial's position in the sweep, so results do
// not depend on scheduling.
func (r *Runner) trialSource(cellIndex, trial int) rand.Source {
	stream := uint64(cellIndex)*uint64(r.config.Trials) + uint64(trial)
	return rand.NewPCG(r.config.Seed, stream)
}

func (r *Runner) runCell(pool *ants.Pool, cellIndex, n int, mu float64) (SweepCell, error) {
	trials := r.config.Trials
	results := make([]analysis.TrialResult, trials)

	if pool == nil {
		for t := 0; t < trials; t++ {
			results[t] = r.RunTrial(n, mu, r.trialSource(cellIndex, t))
		}
		return aggregate(n, mu, results), nil
	}

	var (
		wg       sync.WaitGroup
		errMu    sync.Mutex
		firstErr error
	)
	for t := 0; t < trials; t++ {
		wg.Add(1)
		err := pool.Submit(func() {
			defer wg.Done()
			results[t] = r.RunTrial(n, mu, r.trialSource(cellIndex, t))
		})
		if err != nil {
			wg.Done()
			errMu.Lock()
			if firstErr == nil {
				firstErr = fmt.Errorf("failed to submit trial %d: %w", t, err)
			}
			errMu.Unlock()
		}
	}
	wg.Wait()
	if firstErr != nil {
		return SweepCell{}, firstErr
	}
	return aggregate(n, mu, results), nil
}

// aggregate averages trial results. The reduction runs over the index-ordered
// slice, so it is independent of completion order.
func aggregate(n int, mu float64, results []analysis.TrialResult) SweepCell {
	components := make([]float64, len(results))
	coverages := make([]float64, len(results))
	for i, res := range results {
		components[i] = float64(res.NumComponents)
		coverages[i] = res.CoveragePercent
	}

	cell := SweepCell{
		NodeCount:  n,
		MeanRadius: mu,
		Trials:     len(results),
	}
	if len(results) == 0 {
		return cell
	}
	if len(results) == 1 {
		cell.AvgComponents = components[0]
		cell.AvgCoveragePercent = coverages[0]
		return cell
	}
	cell.AvgComponents, cell.StdComponents = stat.MeanStdDev(components, nil)
	cell.AvgCoveragePercent, cell.StdCoveragePercent = stat.MeanStdDev(coverages, nil)
	return cell
}
