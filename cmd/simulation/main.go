package main

import (
	"flag"
	"fmt"
	"os"

	"netcoverage-sim/internal/config"
	"netcoverage-sim/internal/experiment"
	"netcoverage-sim/internal/report"
	"netcoverage-sim/internal/visualization"

	log "github.com/sirupsen/logrus"
)

func main() {
	configPath := flag.String("config", "", "Path to a TOML or YAML configuration file")
	nodes := flag.String("nodes", "", "Node count range start:end:step")
	radius := flag.String("radius", "", "Mean radius range start:end:step")
	sigma := flag.Float64("sigma", -1, "Radius standard deviation")
	trials := flag.Int("trials", 0, "Trials per parameter cell")
	area := flag.Float64("area", 0, "Region area S")
	edgeMode := flag.String("edge-mode", "", "Edge rule: symmetric or legacy")
	workers := flag.Int("workers", 0, "Worker goroutines per cell (1 = sequential)")
	seed := flag.Uint64("seed", 0, "Random seed (0 = from clock)")
	logLevel := flag.String("log-level", "", "Log level")
	plot := flag.Bool("plot", false, "Open a chart window after the sweep")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// --- Flag overrides ---
	if *nodes != "" {
		if cfg.Nodes, err = experiment.ParseRange(*nodes); err != nil {
			log.Fatalf("Invalid -nodes: %v", err)
		}
	}
	if *radius != "" {
		if cfg.Radius, err = experiment.ParseRange(*radius); err != nil {
			log.Fatalf("Invalid -radius: %v", err)
		}
	}
	if *sigma >= 0 {
		cfg.Sigma = *sigma
	}
	if *trials > 0 {
		cfg.Trials = *trials
	}
	if *area > 0 {
		cfg.Area = *area
	}
	if *edgeMode != "" {
		cfg.EdgeMode = *edgeMode
	}
	if *workers > 0 {
		cfg.Workers = *workers
	}
	if *seed != 0 {
		cfg.Seed = *seed
	}
	if *logLevel != "" {
		cfg.LogLevel = *logLevel
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	config.SetupLogger(cfg)

	sweepCfg, err := cfg.Sweep()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	runner := experiment.NewRunner(sweepCfg)
	sweep, err := runner.RunSweep()
	if err != nil {
		log.Fatalf("Sweep failed: %v", err)
	}

	fmt.Println(report.Table(sweep))
	fmt.Printf("run %s, seed %d, %d cells\n", sweep.RunID, sweep.Seed, len(sweep.Cells))

	if *plot {
		if err := visualization.NewChartRenderer(sweep).Run(); err != nil {
			log.Errorf("Chart window: %v", err)
			os.Exit(1)
		}
	}
}
