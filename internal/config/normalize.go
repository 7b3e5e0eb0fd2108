package config

import "strings"

// normalize expands and cleans user-supplied values so the rest of the
// application never sees a relative or tilde path.
func (c *Config) normalize() error {
	var err error
	if c.Paths.CatalogDir, err = normalizePath(c.Paths.CatalogDir); err != nil {
		return err
	}
	if c.Paths.LogDir, err = normalizePath(c.Paths.LogDir); err != nil {
		return err
	}
	if c.Paths.HistoryDir, err = normalizePath(c.Paths.HistoryDir); err != nil {
		return err
	}

	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	return nil
}

func normalizePath(value string) (string, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return "", nil
	}
	return expandPath(trimmed)
}
