package config

import (
	"fmt"
	"strings"
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if err := c.Catalog.validate(); err != nil {
		return fmt.Errorf("catalog: %w", err)
	}

	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be in 1..65535 (got %d)", c.Server.Port)
	}

	if c.Server.RateLimitPerMinute < 0 {
		return fmt.Errorf("server.rate_limit_per_minute must be >= 0 (got %d)", c.Server.RateLimitPerMinute)
	}

	if c.Server.ReloadInterval < 0 {
		return fmt.Errorf("server.reload_interval must be >= 0 (got %s)", c.Server.ReloadInterval)
	}

	if c.Database.Enabled() && c.Database.MinConns > c.Database.MaxConns {
		return fmt.Errorf("database.min_conns (%d) must not exceed max_conns (%d)", c.Database.MinConns, c.Database.MaxConns)
	}

	switch strings.ToLower(c.Log.Format) {
	case "json", "text":
	default:
		return fmt.Errorf("log.format must be json or text (got %q)", c.Log.Format)
	}

	return nil
}

func (c *CatalogConfig) validate() error {
	if c.MaxWords <= 0 {
		return fmt.Errorf("max_words must be > 0 (got %d)", c.MaxWords)
	}
	if c.BatchSize <= 0 {
		return fmt.Errorf("batch_size must be > 0 (got %d)", c.BatchSize)
	}
	if strings.TrimSpace(c.FrequencyPath) == "" {
		return fmt.Errorf("frequency_path is required")
	}
	if strings.TrimSpace(c.DictionaryPath) == "" {
		return fmt.Errorf("dictionary_path is required")
	}
	return nil
}
