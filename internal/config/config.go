package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/aipanel/usage-ledger/internal/engine"
	"github.com/aipanel/usage-ledger/internal/occupancy"
	"github.com/aipanel/usage-ledger/internal/pricing"
)

// Config holds the optional YAML overrides for breakpoints, the
// auto-compact buffer, window sizes, and pricing entries. The zero value
// means "use built-in defaults everywhere".
type Config struct {
	Breakpoints       *occupancy.Breakpoints                    `yaml:"breakpoints"`
	AutoCompactBuffer int                                       `yaml:"auto_compact_buffer"`
	Windows           map[string]int                            `yaml:"windows"`
	Pricing           map[string]map[string]pricing.ModelRates `yaml:"pricing"`
}

// Load reads a YAML config file. A missing path (or empty string) returns
// the zero config; a present but malformed file is an error here, at load
// time, so aggregation itself never fails on configuration.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks the overrides for values that would make the projection
// nonsensical.
func (c *Config) Validate() error {
	if bp := c.Breakpoints; bp != nil {
		if bp.Medium <= 0 || bp.High <= bp.Medium || bp.Critical <= bp.High {
			return fmt.Errorf("breakpoints must satisfy 0 < medium < high < critical, got %+v", *bp)
		}
		if bp.Critical > 100 {
			return fmt.Errorf("breakpoints.critical must be <= 100, got %f", bp.Critical)
		}
	}
	if c.AutoCompactBuffer < 0 {
		return fmt.Errorf("auto_compact_buffer must be >= 0, got %d", c.AutoCompactBuffer)
	}
	for model, size := range c.Windows {
		if size <= 0 {
			return fmt.Errorf("windows.%s must be > 0, got %d", model, size)
		}
	}
	for eng, models := range c.Pricing {
		for model, r := range models {
			if r.InputPerMTok < 0 || r.OutputPerMTok < 0 || r.CacheWritePerMTok < 0 || r.CacheReadPerMTok < 0 {
				return fmt.Errorf("pricing.%s.%s has a negative rate", eng, model)
			}
		}
	}
	return nil
}

// PricingTable returns the built-in rate table with the config's entries
// merged on top.
func (c *Config) PricingTable() pricing.Table {
	table := pricing.Default()
	if len(c.Pricing) == 0 {
		return table
	}
	overrides := make(pricing.Table, len(c.Pricing))
	for eng, models := range c.Pricing {
		overrides[engine.Engine(eng)] = models
	}
	table.Merge(overrides)
	return table
}

// WindowTable returns the built-in window table with the config's entries
// merged on top.
func (c *Config) WindowTable() occupancy.WindowTable {
	table := occupancy.DefaultWindows()
	if len(c.Windows) > 0 {
		table.Merge(c.Windows)
	}
	return table
}
