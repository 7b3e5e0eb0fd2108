package testsupport

import (
	"path/filepath"
	"testing"

	"romdex/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*config.Config)

// NewConfig produces a config seeded with unique temp directories per test.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.CatalogDir = filepath.Join(base, "catalogs")
	cfg.Paths.LogDir = filepath.Join(base, "logs")
	cfg.Paths.HistoryDir = filepath.Join(base, "history")
	cfg.Scan.Workers = 1

	for _, opt := range opts {
		opt(&cfg)
	}

	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("ensure directories: %v", err)
	}
	return &cfg
}

// WithWorkers overrides the identification worker count.
func WithWorkers(n int) ConfigOption {
	return func(c *config.Config) {
		c.Scan.Workers = n
	}
}
