package config

import (
	"os"
	"path/filepath"
	"runtime"
)

const (
	defaultScanWorkers = 0 // 0 resolves to runtime.NumCPU at normalize time
	defaultLogLevel    = "info"
	defaultLogFormat   = "console"
)

// Default returns the baseline configuration before any file overrides.
func Default() Config {
	return Config{
		Paths: Paths{
			CatalogDir: defaultDataDir("catalogs"),
			LogDir:     defaultDataDir("logs"),
			HistoryDir: defaultDataDir("history"),
		},
		Scan: Scan{
			Recursive: true,
			Workers:   defaultScanWorkers,
		},
		Rename: Rename{
			DryRun: false,
			Backup: false,
		},
		Logging: Logging{
			Level:  defaultLogLevel,
			Format: defaultLogFormat,
		},
	}
}

// ResolvedWorkers returns the effective identification worker count.
func (c *Config) ResolvedWorkers() int {
	if c.Scan.Workers > 0 {
		return c.Scan.Workers
	}
	return runtime.NumCPU()
}

func defaultDataDir(leaf string) string {
	if base, ok := os.LookupEnv("XDG_DATA_HOME"); ok && base != "" {
		return filepath.Join(base, "romdex", leaf)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join("~", ".local", "share", "romdex", leaf)
	}
	return filepath.Join(home, ".local", "share", "romdex", leaf)
}
