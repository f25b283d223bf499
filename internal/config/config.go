package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains directory configuration.
type Paths struct {
	LogDir string `toml:"log_dir"`
}

// Sync contains the settings that drive photo/track correlation.
type Sync struct {
	// ToleranceSeconds is the largest accepted gap between a photo and the
	// next track sample.
	ToleranceSeconds float64 `toml:"tolerance_seconds"`
	// Units selects "imperial" (feet, Fahrenheit) or "metric" (metres, Celsius).
	Units string `toml:"units"`
	// Timezone is the zone the camera clock was set to: "+HH:MM", "-HH:MM" or an IANA name.
	Timezone string `toml:"timezone"`
	// OffsetSeconds corrects camera clock drift relative to the dive computer.
	OffsetSeconds int `toml:"offset_seconds"`
	// TimestampTags lists the EXIF keys tried, in order, for the capture time.
	TimestampTags    []string `toml:"timestamp_tags"`
	ProgressInterval int      `toml:"progress_interval"`
}

// Metadata contains the bulk fields written to every photo.
type Metadata struct {
	Author      string `toml:"author"`
	Description string `toml:"description"`
	Comment     string `toml:"comment"`
	Subject     string `toml:"subject"`
	Location    string `toml:"location"`
	Coordinates string `toml:"coordinates"`
}

// Exiv2 contains configuration for the exiv2 command line tool.
type Exiv2 struct {
	Binary             string `toml:"binary"`
	TimeoutSeconds     int    `toml:"timeout_seconds"`
	PreserveTimestamps bool   `toml:"preserve_timestamps"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Config encapsulates all configuration values for depthsync.
//
// Configuration sections by subsystem:
//   - Paths: log directory (also holds the run lock)
//   - Sync: tolerance, units, timezone and clock drift
//   - Metadata: author/description/location fields applied to every photo
//   - Exiv2: metadata tool binary and timeouts
//   - Logging: log format and level
type Config struct {
	Paths    Paths    `toml:"paths"`
	Sync     Sync     `toml:"sync"`
	Metadata Metadata `toml:"metadata"`
	Exiv2    Exiv2    `toml:"exiv2"`
	Logging  Logging  `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/depthsync/config.toml")
}

// Load locates, parses, and validates a configuration file. The returned config has all
// path fields expanded and normalized.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.Finalize(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

// Finalize normalizes and validates a config that was built or modified in
// code, for example after command-line overrides were applied.
func (c *Config) Finalize() error {
	if err := c.normalize(); err != nil {
		return err
	}
	return c.Validate()
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("depthsync.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// EnsureDirectories creates the directories depthsync writes into.
func (c *Config) EnsureDirectories() error {
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		return nil
	}
	if err := os.MkdirAll(c.Paths.LogDir, 0o755); err != nil {
		return fmt.Errorf("create directory %q: %w", c.Paths.LogDir, err)
	}
	return nil
}

// LockPath returns the file used to serialize runs.
func (c *Config) LockPath() string {
	return filepath.Join(c.Paths.LogDir, "depthsync.lock")
}

// LogPath returns the persistent log file location.
func (c *Config) LogPath() string {
	return filepath.Join(c.Paths.LogDir, "depthsync.log")
}

// Location resolves the configured camera timezone.
func (c *Config) Location() (*time.Location, error) {
	return ParseZone(c.Sync.Timezone)
}

// Tolerance returns the configured tolerance as a duration.
func (c *Config) Tolerance() time.Duration {
	return time.Duration(c.Sync.ToleranceSeconds * float64(time.Second))
}

// ExivTimeout returns the per-invocation deadline for exiv2.
func (c *Config) ExivTimeout() time.Duration {
	return time.Duration(c.Exiv2.TimeoutSeconds) * time.Second
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
