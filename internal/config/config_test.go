package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"netcoverage-sim/internal/experiment"
	"netcoverage-sim/internal/network"

	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), *cfg)
	assert.Equal(t, experiment.Range{Start: 10, End: 100, Step: 10}, cfg.Nodes)
	assert.Equal(t, experiment.Range{Start: 0, End: 100, Step: 10}, cfg.Radius)
	assert.Equal(t, 5.0, cfg.Sigma)
	assert.Equal(t, 40000.0, cfg.Area)
	assert.Equal(t, 1000, cfg.Trials)
	assert.NoError(t, cfg.Validate())
}

func TestLoadTOML(t *testing.T) {
	path := writeFile(t, "sweep.toml", `
sigma = 2.5
trials = 50
edge_mode = "legacy"
seed = 99

[nodes]
start = 5
end = 25
step = 5
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, experiment.Range{Start: 5, End: 25, Step: 5}, cfg.Nodes)
	assert.Equal(t, Default().Radius, cfg.Radius, "unset table keeps its default")
	assert.Equal(t, 2.5, cfg.Sigma)
	assert.Equal(t, 50, cfg.Trials)
	assert.Equal(t, "legacy", cfg.EdgeMode)
	assert.Equal(t, uint64(99), cfg.Seed)
	assert.Equal(t, 40000.0, cfg.Area)
}

func TestLoadYAML(t *testing.T) {
	path := writeFile(t, "sweep.yaml", `
radius:
  start: 10
  end: 40
  step: 15
area: 10000
workers: 4
log_level: debug
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, experiment.Range{Start: 10, End: 40, Step: 15}, cfg.Radius)
	assert.Equal(t, 10000.0, cfg.Area)
	assert.Equal(t, 4, cfg.Workers)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, Default().Nodes, cfg.Nodes)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.True(t, errors.Is(err, ErrConfigNotFound))

	_, err = Load(writeFile(t, "sweep.json", `{}`))
	assert.True(t, errors.Is(err, ErrUnsupportedFormat))

	_, err = Load(writeFile(t, "broken.toml", `trials = "many"`))
	assert.Error(t, err)

	_, err = Load(writeFile(t, "broken.yaml", "trials: [1, 2"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		field  string
	}{
		{"zero trials", func(c *Config) { c.Trials = 0 }, "Trials"},
		{"negative sigma", func(c *Config) { c.Sigma = -1 }, "Sigma"},
		{"zero area", func(c *Config) { c.Area = 0 }, "Area"},
		{"no workers", func(c *Config) { c.Workers = 0 }, "Workers"},
		{"unknown edge mode", func(c *Config) { c.EdgeMode = "both" }, "EdgeMode"},
		{"unknown log level", func(c *Config) { c.LogLevel = "loud" }, "LogLevel"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.field)
		})
	}
}

func TestValidateAcceptsEmptyRanges(t *testing.T) {
	cfg := Default()
	cfg.Nodes = experiment.Range{Start: 10, End: 0, Step: 0}
	assert.NoError(t, cfg.Validate())
}

func TestSweep(t *testing.T) {
	cfg := Default()
	cfg.EdgeMode = "legacy"
	cfg.Seed = 7
	cfg.Workers = 3

	sc, err := cfg.Sweep()
	require.NoError(t, err)
	assert.Equal(t, network.EdgeLegacy, sc.EdgeMode)
	assert.Equal(t, cfg.Nodes, sc.Nodes)
	assert.Equal(t, cfg.Radius, sc.Radius)
	assert.Equal(t, cfg.Sigma, sc.Sigma)
	assert.Equal(t, cfg.Area, sc.Area)
	assert.Equal(t, cfg.Trials, sc.Trials)
	assert.Equal(t, uint64(7), sc.Seed)
	assert.Equal(t, 3, sc.Workers)

	cfg.EdgeMode = "sideways"
	_, err = cfg.Sweep()
	assert.Error(t, err)
}

func TestSetupLogger(t *testing.T) {
	defer func() {
		log.SetOutput(os.Stderr)
		log.SetLevel(log.InfoLevel)
	}()

	cfg := Default()
	cfg.LogLevel = "debug"
	cfg.LogFile = filepath.Join(t.TempDir(), "logs", "sim.log")
	SetupLogger(&cfg)
	assert.Equal(t, log.DebugLevel, log.GetLevel())

	log.Info("hello")
	data, err := os.ReadFile(cfg.LogFile)
	require.NoError(t, err)
	assert.Contains(t, string(data), "hello")

	cfg.LogLevel = "nonsense"
	cfg.LogFile = ""
	SetupLogger(&cfg)
	assert.Equal(t, log.InfoLevel, log.GetLevel())
}
