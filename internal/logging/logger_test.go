package logging_test

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"depthsync/internal/config"
	"depthsync/internal/logging"
)

func readLog(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	return string(content)
}

func TestNewFromConfigWritesLogFile(t *testing.T) {
	cfg := config.Default()
	cfg.Paths.LogDir = filepath.Join(t.TempDir(), "logs")

	logger, err := logging.NewFromConfig(&cfg, false)
	if err != nil {
		t.Fatalf("NewFromConfig returned error: %v", err)
	}
	logger.Debug("hidden at info level")
	logger.Info("visible")

	content := readLog(t, cfg.LogPath())
	if !strings.Contains(content, "visible") {
		t.Fatalf("expected info line in log file, got %q", content)
	}
	if strings.Contains(content, "hidden") {
		t.Fatalf("debug line written at info level: %q", content)
	}
}

func TestNewFromConfigVerboseEnablesDebug(t *testing.T) {
	cfg := config.Default()
	cfg.Paths.LogDir = t.TempDir()

	logger, err := logging.NewFromConfig(&cfg, true)
	if err != nil {
		t.Fatalf("NewFromConfig returned error: %v", err)
	}
	logger.Debug("debug detail")
	if content := readLog(t, cfg.LogPath()); !strings.Contains(content, "debug detail") {
		t.Fatalf("expected debug line, got %q", content)
	}
}

func TestConsoleFormat(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "console.log")
	logger, err := logging.New(logging.Options{Format: "console", Level: "info", OutputPaths: []string{logPath}})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	logger = logging.NewComponentLogger(logger, "sync")
	logger.WithGroup("depth").Info("photo updated", logging.Photo("IMG 1.jpg"), logging.String("value", "18/1"))

	line := strings.TrimSpace(readLog(t, logPath))
	for _, want := range []string{" INFO sync: photo updated", `depth.photo="IMG 1.jpg"`, "depth.value=18/1"} {
		if !strings.Contains(line, want) {
			t.Fatalf("expected %q in %q", want, line)
		}
	}
	if strings.Contains(line, "component=") {
		t.Fatalf("component should be lifted out of the key/value list: %q", line)
	}
	if strings.Contains(line, ".go:") {
		t.Fatalf("expected no caller information, got %q", line)
	}
}

func TestJSONFormatCarriesRunID(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "json.log")
	logger, err := logging.New(logging.Options{Format: "json", Level: "debug", OutputPaths: []string{logPath}})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	ctx := logging.WithRunID(context.Background(), "run-123")
	logging.WithContext(ctx, logger).Warn("late photo", logging.Duration("gap", 1500*time.Millisecond))

	var entry map[string]any
	if err := json.Unmarshal([]byte(strings.TrimSpace(readLog(t, logPath))), &entry); err != nil {
		t.Fatalf("decode json log: %v", err)
	}
	if entry["run_id"] != "run-123" {
		t.Fatalf("run_id = %v", entry["run_id"])
	}
	if entry["level"] != "warn" {
		t.Fatalf("level = %v", entry["level"])
	}
	if _, ok := entry["ts"]; !ok {
		t.Fatalf("expected ts key in %v", entry)
	}
	if entry["gap"] != 1.5 {
		t.Fatalf("gap = %v, want seconds", entry["gap"])
	}
}

func TestUnsupportedFormat(t *testing.T) {
	if _, err := logging.New(logging.Options{Format: "xml"}); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}

func TestWarnWithContextInjectsDefaults(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "warn.log")
	logger, err := logging.New(logging.Options{Format: "console", OutputPaths: []string{logPath}})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	logging.WarnWithContext(logger, "no timestamp", "photo_unresolvable", logging.String(logging.FieldImpact, "skipped"))

	line := readLog(t, logPath)
	for _, want := range []string{"event_type=photo_unresolvable", "error_hint=", "impact=skipped"} {
		if !strings.Contains(line, want) {
			t.Fatalf("expected %q in %q", want, line)
		}
	}
}

func TestRunIDFromContext(t *testing.T) {
	if _, ok := logging.RunIDFromContext(context.Background()); ok {
		t.Fatal("expected no run id")
	}
	if _, ok := logging.RunIDFromContext(logging.WithRunID(context.Background(), "  ")); ok {
		t.Fatal("blank run id should not count")
	}
	if logging.WithContext(context.Background(), nil) == nil {
		t.Fatal("expected a logger even without a base")
	}
}
