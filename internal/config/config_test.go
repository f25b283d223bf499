package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"depthsync/internal/config"
)

func TestLoadDefaultConfigExpandsPaths(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)
	t.Setenv("DEPTHSYNC_TIMEZONE", "")
	t.Chdir(t.TempDir())

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if resolved == "" {
		t.Fatal("expected resolved path")
	}
	if exists {
		t.Fatal("expected config file to be absent in temp HOME")
	}

	wantLogDir := filepath.Join(tempHome, ".local", "share", "depthsync", "logs")
	if cfg.Paths.LogDir != wantLogDir {
		t.Fatalf("unexpected log dir: got %q want %q", cfg.Paths.LogDir, wantLogDir)
	}
	if cfg.Sync.ToleranceSeconds != 10 {
		t.Fatalf("expected default tolerance 10, got %v", cfg.Sync.ToleranceSeconds)
	}
	if cfg.Sync.Units != config.UnitsImperial {
		t.Fatalf("expected imperial units by default, got %q", cfg.Sync.Units)
	}
	if cfg.Sync.Timezone != "+00:00" {
		t.Fatalf("unexpected default timezone %q", cfg.Sync.Timezone)
	}
	if len(cfg.Sync.TimestampTags) != 2 || cfg.Sync.TimestampTags[0] != "Exif.Image.DateTime" {
		t.Fatalf("unexpected timestamp tags %v", cfg.Sync.TimestampTags)
	}
	if cfg.Exiv2.Binary != "exiv2" {
		t.Fatalf("unexpected exiv2 binary %q", cfg.Exiv2.Binary)
	}
	if cfg.LockPath() != filepath.Join(wantLogDir, "depthsync.lock") {
		t.Fatalf("unexpected lock path %q", cfg.LockPath())
	}
}

func TestLoadCustomConfigOverridesDefaults(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)

	dir := t.TempDir()
	path := filepath.Join(dir, "depthsync.toml")
	contents := `
[paths]
log_dir = "~/dive-logs"

[sync]
tolerance_seconds = 4.5
units = " Metric "
timezone = " -08:00"
offset_seconds = -17
timestamp_tags = ["Exif.Photo.DateTimeOriginal", ""]

[metadata]
author = "  Jane Diver "
coordinates = "47.9485 -122.3045"

[logging]
format = "JSON"
level = "DEBUG"
`
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, resolved, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists || resolved != path {
		t.Fatalf("expected config %q to exist, got %q exists=%v", path, resolved, exists)
	}
	if cfg.Paths.LogDir != filepath.Join(tempHome, "dive-logs") {
		t.Fatalf("unexpected log dir %q", cfg.Paths.LogDir)
	}
	if cfg.Sync.ToleranceSeconds != 4.5 {
		t.Fatalf("unexpected tolerance %v", cfg.Sync.ToleranceSeconds)
	}
	if cfg.Sync.Units != config.UnitsMetric {
		t.Fatalf("unexpected units %q", cfg.Sync.Units)
	}
	if cfg.Sync.Timezone != "-08:00" {
		t.Fatalf("unexpected timezone %q", cfg.Sync.Timezone)
	}
	if cfg.Sync.OffsetSeconds != -17 {
		t.Fatalf("unexpected offset %d", cfg.Sync.OffsetSeconds)
	}
	if len(cfg.Sync.TimestampTags) != 1 || cfg.Sync.TimestampTags[0] != "Exif.Photo.DateTimeOriginal" {
		t.Fatalf("unexpected timestamp tags %v", cfg.Sync.TimestampTags)
	}
	if cfg.Metadata.Author != "Jane Diver" {
		t.Fatalf("expected trimmed author, got %q", cfg.Metadata.Author)
	}
	if cfg.Logging.Format != "json" || cfg.Logging.Level != "debug" {
		t.Fatalf("unexpected logging config %+v", cfg.Logging)
	}
	loc, err := cfg.Location()
	if err != nil {
		t.Fatalf("Location: %v", err)
	}
	if _, offset := (mustTime(t)).In(loc).Zone(); offset != -8*3600 {
		t.Fatalf("unexpected zone offset %d", offset)
	}
}

func TestLoadUsesTimezoneFromEnv(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("DEPTHSYNC_TIMEZONE", "+09:30")
	path := filepath.Join(t.TempDir(), "depthsync.toml")
	if err := os.WriteFile(path, []byte("[sync]\ntimezone = \"\"\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, _, _, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Sync.Timezone != "+09:30" {
		t.Fatalf("expected env timezone, got %q", cfg.Sync.Timezone)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	tests := []struct {
		name   string
		mutate func(*config.Config)
		want   string
	}{
		{"negative tolerance", func(c *config.Config) { c.Sync.ToleranceSeconds = -1 }, "sync.tolerance_seconds"},
		{"unknown units", func(c *config.Config) { c.Sync.Units = "furlongs" }, "sync.units"},
		{"bad timezone", func(c *config.Config) { c.Sync.Timezone = "+25:00" }, "sync.timezone"},
		{"bad coordinates", func(c *config.Config) { c.Metadata.Coordinates = "north" }, "metadata.coordinates"},
		{"zero timeout", func(c *config.Config) { c.Exiv2.TimeoutSeconds = 0 }, "exiv2.timeout_seconds"},
		{"bad log format", func(c *config.Config) { c.Logging.Format = "xml" }, "logging.format"},
		{"bad log level", func(c *config.Config) { c.Logging.Level = "loud" }, "logging.level"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			tt.mutate(&cfg)
			err := cfg.Finalize()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("error %q does not mention %q", err, tt.want)
			}
		})
	}
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	path := filepath.Join(t.TempDir(), "depthsync.toml")
	if err := os.WriteFile(path, []byte("[sync]\nfreedom = true\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, _, _, err := config.Load(path); err == nil {
		t.Fatal("expected unknown key to be rejected")
	}
}

func TestSampleConfigRoundTrip(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	if err := config.CreateSample(path); err != nil {
		t.Fatalf("CreateSample: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read sample: %v", err)
	}
	var decoded config.Config
	if err := toml.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("sample config is not valid TOML: %v", err)
	}
	cfg, _, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load sample: %v", err)
	}
	if !exists {
		t.Fatal("expected sample config to exist")
	}
	if cfg.Sync.ToleranceSeconds != config.Default().Sync.ToleranceSeconds {
		t.Fatalf("sample tolerance drifted from defaults: %v", cfg.Sync.ToleranceSeconds)
	}
}
