package main

import (
	"strings"
	"sync"

	"go.uber.org/zap"

	"romdex/internal/catalog"
	"romdex/internal/config"
	"romdex/internal/history"
	"romdex/internal/logging"
)

type commandContext struct {
	configFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error

	loggerOnce sync.Once
	logger     *zap.Logger
	loggerErr  error
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{configFlag: configFlag}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

func (c *commandContext) ensureLogger() (*zap.Logger, error) {
	c.loggerOnce.Do(func() {
		cfg, err := c.ensureConfig()
		if err != nil {
			c.loggerErr = err
			return
		}
		c.logger, c.loggerErr = logging.NewFromConfig(cfg)
	})
	return c.logger, c.loggerErr
}

// loadCatalogs builds a store populated from the configured catalog
// directory. The load count is returned so commands can warn on empty stores.
func (c *commandContext) loadCatalogs() (*catalog.Store, int, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, 0, err
	}
	logger, err := c.ensureLogger()
	if err != nil {
		return nil, 0, err
	}
	store := catalog.NewStore(logger)
	count := store.LoadDirectory(cfg.Paths.CatalogDir)
	return store, count, nil
}

func (c *commandContext) openHistory() (*history.Store, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	return history.Open(cfg)
}
