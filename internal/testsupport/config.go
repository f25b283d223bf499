package testsupport

import (
	"os"
	"path/filepath"
	"testing"

	"depthsync/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config seeded with a unique temp log directory per
// test. It defaults common fields and applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Paths.LogDir = filepath.Join(base, "logs")
	cfgVal.Sync.Timezone = "+00:00"
	cfgVal.Exiv2.TimeoutSeconds = 5

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	return builder.cfg
}

// WithUnits sets the unit system on the test config.
func WithUnits(units string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Sync.Units = units
	}
}

// WithTimezone sets the camera timezone on the test config.
func WithTimezone(zone string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Sync.Timezone = zone
	}
}

// WithStubbedBinaries writes stub executables for the provided names and
// prepends them to PATH. If names is empty, exiv2 is stubbed.
func WithStubbedBinaries(names ...string) ConfigOption {
	return func(b *configBuilder) {
		if len(names) == 0 {
			names = []string{"exiv2"}
		}
		binDir := filepath.Join(b.baseDir, "bin")
		for _, name := range names {
			WriteScript(b.t, binDir, name, "exit 0")
		}
		PrependPath(b.t, binDir)
	}
}

// PrependPath puts dir first on PATH for the duration of the test.
func PrependPath(t testing.TB, dir string) {
	t.Helper()
	oldPath := os.Getenv("PATH")
	if err := os.Setenv("PATH", dir+string(os.PathListSeparator)+oldPath); err != nil {
		t.Fatalf("set PATH: %v", err)
	}
	t.Cleanup(func() {
		_ = os.Setenv("PATH", oldPath)
	})
}
