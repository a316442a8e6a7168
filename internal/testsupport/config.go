package testsupport

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"posreport/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*config.Config)

// NewConfig produces a config seeded with unique temp directories per test.
// The config round-trips through a TOML file and config.Load, so tests see
// the same normalization and validation the CLI does.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Paths.InputDir = filepath.Join(base, "input")
	cfgVal.Paths.OutputDir = filepath.Join(base, "runs")
	cfgVal.Paths.LogDir = filepath.Join(base, "logs")
	cfgVal.Reports.Charts = false

	for _, opt := range opts {
		opt(&cfgVal)
	}

	if err := os.MkdirAll(cfgVal.Paths.InputDir, 0o755); err != nil {
		t.Fatalf("mkdir input dir: %v", err)
	}

	encoded, err := toml.Marshal(cfgVal)
	if err != nil {
		t.Fatalf("marshal config: %v", err)
	}
	path := filepath.Join(base, "posreport.toml")
	if err := os.WriteFile(path, encoded, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, _, _, err := config.Load(path)
	if err != nil {
		t.Fatalf("config.Load: %v", err)
	}
	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("ensure directories: %v", err)
	}
	return cfg
}

// WithCutoffHour overrides the business-day cutoff.
func WithCutoffHour(hour int) ConfigOption {
	return func(c *config.Config) {
		c.Store.CutoffHour = hour
	}
}

// WithExcludedMonths marks calendar months as excluded from aggregation.
func WithExcludedMonths(months ...int) ConfigOption {
	return func(c *config.Config) {
		c.Store.ExcludedMonths = months
	}
}

// WithClipDurations enables stay-duration clipping at the given maximum.
func WithClipDurations(maxMinutes int) ConfigOption {
	return func(c *config.Config) {
		c.Store.ClipDurations = true
		c.Store.MaxDurationMinutes = maxMinutes
	}
}

// WithStrictTicketCount excludes zero-subtotal tickets from ticket counts.
func WithStrictTicketCount() ConfigOption {
	return func(c *config.Config) {
		c.Store.StrictTicketCount = true
	}
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Paths.InputDir)
}
