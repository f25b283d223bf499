package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeSync()
	c.normalizeMetadata()
	c.normalizeExiv2()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	var err error
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeSync() {
	c.Sync.Units = strings.ToLower(strings.TrimSpace(c.Sync.Units))
	if c.Sync.Units == "" {
		c.Sync.Units = defaultUnits
	}
	// A leading space is how shells are convinced that "-08:00" is a value.
	c.Sync.Timezone = strings.TrimSpace(c.Sync.Timezone)
	if c.Sync.Timezone == "" {
		if value, ok := os.LookupEnv("DEPTHSYNC_TIMEZONE"); ok {
			c.Sync.Timezone = strings.TrimSpace(value)
		}
	}
	if c.Sync.Timezone == "" {
		c.Sync.Timezone = defaultTimezone
	}
	tags := make([]string, 0, len(c.Sync.TimestampTags))
	for _, tag := range c.Sync.TimestampTags {
		if tag = strings.TrimSpace(tag); tag != "" {
			tags = append(tags, tag)
		}
	}
	if len(tags) == 0 {
		tags = append(tags, DefaultTimestampTags...)
	}
	c.Sync.TimestampTags = tags
	if c.Sync.ProgressInterval <= 0 {
		c.Sync.ProgressInterval = defaultProgressInterval
	}
}

func (c *Config) normalizeMetadata() {
	c.Metadata.Author = strings.TrimSpace(c.Metadata.Author)
	c.Metadata.Description = strings.TrimSpace(c.Metadata.Description)
	c.Metadata.Comment = strings.TrimSpace(c.Metadata.Comment)
	c.Metadata.Subject = strings.TrimSpace(c.Metadata.Subject)
	c.Metadata.Location = strings.TrimSpace(c.Metadata.Location)
	c.Metadata.Coordinates = strings.TrimSpace(c.Metadata.Coordinates)
}

func (c *Config) normalizeExiv2() {
	c.Exiv2.Binary = strings.TrimSpace(c.Exiv2.Binary)
	if c.Exiv2.Binary == "" {
		c.Exiv2.Binary = defaultExivBinary
	}
}

func (c *Config) normalizeLogging() {
	format := strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch format {
	case "", "console", "text":
		c.Logging.Format = "console"
	case "json":
		c.Logging.Format = "json"
	default:
		c.Logging.Format = format
	}
	level := strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if level == "" {
		level = defaultLogLevel
	}
	c.Logging.Level = level
}
