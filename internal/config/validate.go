package config

import (
	"fmt"
	"strings"
)

var validLogLevels = map[string]struct{}{
	"debug": {},
	"info":  {},
	"warn":  {},
	"error": {},
}

var validLogFormats = map[string]struct{}{
	"console": {},
	"json":    {},
}

// Validate checks the configuration for values the engines cannot work with.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Paths.CatalogDir) == "" {
		return fmt.Errorf("config: catalog_dir must be set")
	}
	if c.Scan.Workers < 0 {
		return fmt.Errorf("config: scan workers must not be negative, got %d", c.Scan.Workers)
	}
	if _, ok := validLogLevels[c.Logging.Level]; !ok {
		return fmt.Errorf("config: unsupported log level %q", c.Logging.Level)
	}
	if _, ok := validLogFormats[c.Logging.Format]; !ok {
		return fmt.Errorf("config: unsupported log format %q", c.Logging.Format)
	}
	return nil
}
