package config

import (
	"errors"
	"fmt"
	"math"

	"depthsync/internal/geo"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateSync(); err != nil {
		return err
	}
	if err := c.validateMetadata(); err != nil {
		return err
	}
	if err := c.validateExiv2(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateSync() error {
	if math.IsNaN(c.Sync.ToleranceSeconds) || c.Sync.ToleranceSeconds < 0 {
		return errors.New("sync.tolerance_seconds must be zero or positive")
	}
	switch c.Sync.Units {
	case UnitsImperial, UnitsMetric:
	default:
		return fmt.Errorf("sync.units must be %q or %q, got %q", UnitsImperial, UnitsMetric, c.Sync.Units)
	}
	if _, err := ParseZone(c.Sync.Timezone); err != nil {
		return fmt.Errorf("sync.timezone: %w", err)
	}
	return nil
}

func (c *Config) validateMetadata() error {
	if c.Metadata.Coordinates == "" {
		return nil
	}
	if _, err := geo.ParsePair(c.Metadata.Coordinates); err != nil {
		return fmt.Errorf("metadata.coordinates: %w", err)
	}
	return nil
}

func (c *Config) validateExiv2() error {
	if c.Exiv2.TimeoutSeconds <= 0 {
		return errors.New("exiv2.timeout_seconds must be positive")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
		return nil
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
}
