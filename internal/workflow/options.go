package workflow

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"depthsync/internal/config"
	"depthsync/internal/correlate"
	"depthsync/internal/failure"
	"depthsync/internal/geo"
	"depthsync/internal/tags"
)

// Options parameterizes one run.
type Options struct {
	// Directory holds the photos and, optionally, discovered .fit tracks.
	Directory string `validate:"required,dir"`
	// TrackFiles are loaded instead of discovered tracks when set.
	TrackFiles []string `validate:"dive,required,file"`

	ToleranceSeconds float64         `validate:"gte=0"`
	Units            correlate.Units `validate:"min=0,max=1"`
	Location         *time.Location  `validate:"required"`
	Offset           time.Duration
	TimestampTags    []string `validate:"min=1,dive,required"`
	Bulk             tags.Bulk

	DryRun           bool
	ProgressInterval int    `validate:"gte=0"`
	LockPath         string `validate:"required"`
	ReportPath       string
	PlotPath         string
	// BackupDir receives an untouched copy of each photo before its first write.
	BackupDir string
}

// Settings returns the correlation settings for these options.
func (o Options) Settings() correlate.Settings {
	return correlate.Settings{Tolerance: o.ToleranceSeconds, Units: o.Units}
}

// OptionsFromConfig builds run options for dir from a finalized config.
func OptionsFromConfig(cfg *config.Config, dir string) (Options, error) {
	if cfg == nil {
		return Options{}, failure.Wrap(failure.ErrConfiguration, "workflow", "options", "config is required", nil)
	}
	loc, err := cfg.Location()
	if err != nil {
		return Options{}, failure.Wrap(failure.ErrConfiguration, "workflow", "options", "timezone", err)
	}
	units, err := correlate.ParseUnits(cfg.Sync.Units)
	if err != nil {
		return Options{}, failure.Wrap(failure.ErrConfiguration, "workflow", "options", "units", err)
	}
	bulk := tags.Bulk{
		Author:      cfg.Metadata.Author,
		Description: cfg.Metadata.Description,
		Comment:     cfg.Metadata.Comment,
		Subject:     cfg.Metadata.Subject,
		Location:    cfg.Metadata.Location,
	}
	if coords := strings.TrimSpace(cfg.Metadata.Coordinates); coords != "" {
		pair, err := geo.ParsePair(coords)
		if err != nil {
			return Options{}, failure.Wrap(failure.ErrConfiguration, "workflow", "options", "coordinates", err)
		}
		bulk.Coordinates = &pair
	}
	if dir = strings.TrimSpace(dir); dir == "" {
		dir = "."
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return Options{}, fmt.Errorf("resolve directory: %w", err)
	}
	return Options{
		Directory:        abs,
		ToleranceSeconds: cfg.Sync.ToleranceSeconds,
		Units:            units,
		Location:         loc,
		Offset:           time.Duration(cfg.Sync.OffsetSeconds) * time.Second,
		TimestampTags:    append([]string(nil), cfg.Sync.TimestampTags...),
		Bulk:             bulk,
		ProgressInterval: cfg.Sync.ProgressInterval,
		LockPath:         cfg.LockPath(),
	}, nil
}

var optionsValidator = validator.New(validator.WithRequiredStructEnabled())

// Validate checks the options before a run starts.
func (o Options) Validate() error {
	if err := optionsValidator.Struct(o); err != nil {
		return failure.Wrap(failure.ErrConfiguration, "workflow", "validate options", "", err)
	}
	return nil
}
