package logging

import (
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"romdex/internal/config"
)

// NewFromConfig creates a logger using application config defaults. When a log
// directory is configured the logger tees into romdex.log under it.
func NewFromConfig(cfg *config.Config) (*zap.Logger, error) {
	if cfg == nil {
		return New(Options{Level: "info", Format: "console", OutputPaths: []string{"stdout"}})
	}

	outputPaths := []string{"stdout"}
	if dir := strings.TrimSpace(cfg.Paths.LogDir); dir != "" {
		logPath := filepath.Join(dir, "romdex.log")
		if err := EnsureLogDir(logPath); err != nil {
			return nil, err
		}
		outputPaths = append(outputPaths, logPath)
	}

	return New(Options{
		Level:       cfg.Logging.Level,
		Format:      cfg.Logging.Format,
		OutputPaths: outputPaths,
	})
}
