package workflow

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"

	"depthsync/internal/correlate"
	"depthsync/internal/failure"
	"depthsync/internal/fileutil"
	"depthsync/internal/logging"
	"depthsync/internal/photo"
	"depthsync/internal/profile"
	"depthsync/internal/report"
	"depthsync/internal/tags"
	"depthsync/internal/track"
)

// Writer stores a tag set into a photo file.
type Writer interface {
	WriteTags(ctx context.Context, path string, set tags.Set) error
}

// Runner executes sync runs.
type Runner struct {
	reader photo.MetadataReader
	writer Writer
	logger *slog.Logger
	now    func() time.Time
}

// NewRunner constructs a Runner. exiv2.Client satisfies both reader and writer.
func NewRunner(reader photo.MetadataReader, writer Writer, logger *slog.Logger) *Runner {
	return &Runner{
		reader: reader,
		writer: writer,
		logger: logging.NewComponentLogger(logger, "sync"),
		now:    time.Now,
	}
}

// Run performs one sync pass and returns its report. The report is returned
// whenever the run got past validation and locking, even alongside an error.
func (r *Runner) Run(ctx context.Context, opts Options) (*report.Report, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	lock, err := acquireLock(opts.LockPath)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := lock.Unlock(); err != nil {
			r.logger.Warn("failed to release run lock", logging.Error(err))
		}
	}()

	runID := uuid.NewString()
	ctx = logging.WithRunID(ctx, runID)
	logger := logging.WithContext(ctx, r.logger)

	rep := &report.Report{
		RunID:            runID,
		Directory:        opts.Directory,
		Units:            opts.Units.String(),
		ToleranceSeconds: opts.ToleranceSeconds,
		DryRun:           opts.DryRun,
		StartedAt:        r.now().UTC(),
	}
	logger.Info("sync started",
		logging.String("directory", opts.Directory),
		logging.String("units", opts.Units.String()),
		logging.Float64("tolerance_seconds", opts.ToleranceSeconds),
		logging.Bool("dry_run", opts.DryRun),
	)

	listing, err := photo.Scan(opts.Directory, isDiscoverableTrack)
	if err != nil {
		return rep, failure.Wrap(failure.ErrConfiguration, "workflow", "scan", opts.Directory, err)
	}

	loaded, err := r.loadTrack(logger, opts, listing.Tracks)
	if err != nil {
		return rep, err
	}
	rep.Tracks = loaded.Files
	rep.Counters.Samples = len(loaded.Samples)
	rep.Counters.MalformedSamples = loaded.Malformed()

	records, err := r.resolvePhotos(ctx, logger, opts, listing.Candidates, rep)
	if err != nil {
		return rep, err
	}

	norm := correlate.Normalize(loaded.Samples, records)
	for _, dropped := range norm.Dropped {
		logging.WarnWithContext(logger, "photo timestamp cannot be ordered; skipping",
			"photo_timestamp_invalid",
			logging.Photo(dropped.Path),
			logging.Float64("timestamp", dropped.Timestamp),
		)
		rep.AddSkipped(dropped.Path, photo.ErrUnresolvableTimestamp)
	}
	if len(norm.Samples) == 0 && len(norm.Photos) > 0 {
		logger.Info("no track samples; writing bulk metadata only",
			logging.Int("photos", len(norm.Photos)),
		)
	}

	updates := correlate.Plan(norm.Samples, norm.Photos, opts.Settings(), opts.Bulk.Set())
	if err := r.writeUpdates(ctx, logger, opts, updates, rep); err != nil {
		return rep, err
	}

	rep.FinishedAt = r.now().UTC()
	logger.Info("sync finished",
		logging.Int("photos", rep.Counters.Photos),
		logging.Int("matched", rep.Counters.Matched),
		logging.Int("unmatched", rep.Counters.Unmatched),
		logging.Int("written", rep.Counters.Written),
		logging.Int("failed", rep.Counters.Failed),
		logging.Int("skipped", rep.Counters.Skipped),
		logging.Duration("elapsed", rep.FinishedAt.Sub(rep.StartedAt)),
	)

	if opts.PlotPath != "" {
		if err := r.renderProfile(opts, norm.Samples, updates); err != nil {
			return rep, err
		}
		logger.Info("profile chart written", logging.String("path", opts.PlotPath))
	}
	if opts.ReportPath != "" {
		if err := report.WriteFile(opts.ReportPath, rep); err != nil {
			return rep, err
		}
		logger.Info("report written", logging.String("path", opts.ReportPath))
	}
	return rep, nil
}

func acquireLock(path string) (*flock.Flock, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, failure.Wrap(failure.ErrConfiguration, "workflow", "lock", "create lock directory", err)
	}
	lock := flock.New(path)
	ok, err := lock.TryLock()
	if err != nil {
		return nil, failure.Wrap(failure.ErrConfiguration, "workflow", "lock", path, err)
	}
	if !ok {
		return nil, failure.Wrap(failure.ErrBusy, "workflow", "lock", "another depthsync run holds "+path, nil)
	}
	return lock, nil
}

func isDiscoverableTrack(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".fit")
}

// loadTrack loads the explicit track files, or the discovered ones when none
// were given. A broken discovered file is skipped with a warning.
func (r *Runner) loadTrack(logger *slog.Logger, opts Options, discovered []string) (track.LoadResult, error) {
	if len(opts.TrackFiles) > 0 {
		loaded, err := track.LoadFiles(opts.TrackFiles)
		if err != nil {
			return track.LoadResult{}, failure.Wrap(failure.ErrConfiguration, "workflow", "load track", "", err)
		}
		r.logTrack(logger, loaded)
		return loaded, nil
	}

	var combined track.LoadResult
	for _, path := range discovered {
		loaded, err := track.Load(path)
		if err != nil {
			logging.WarnWithContext(logger, "track file unreadable; ignoring it",
				"track_unreadable",
				logging.String(logging.FieldTrack, path),
				logging.Error(err),
				logging.String(logging.FieldImpact, "photos may be left without depth"),
			)
			continue
		}
		combined.Samples = append(combined.Samples, loaded.Samples...)
		combined.Rejected = append(combined.Rejected, loaded.Rejected...)
		combined.Files = append(combined.Files, loaded.Files...)
	}
	if len(discovered) == 0 {
		logger.Info("no track file given or found")
	}
	r.logTrack(logger, combined)
	return combined, nil
}

func (r *Runner) logTrack(logger *slog.Logger, loaded track.LoadResult) {
	for _, rejected := range loaded.Rejected {
		logger.Debug("track sample rejected",
			logging.String(logging.FieldTrack, rejected.Source),
			logging.Int("index", rejected.Index),
			logging.Error(rejected.Err),
		)
	}
	if n := loaded.Malformed(); n > 0 {
		logging.WarnWithContext(logger, "malformed track samples dropped",
			"track_samples_malformed",
			logging.Int("count", n),
			logging.String(logging.FieldImpact, "depth interpolated across the gaps"),
		)
	}
	if len(loaded.Files) > 0 {
		summary := track.Summarize(loaded.Samples)
		logger.Info("track loaded",
			logging.Int("files", len(loaded.Files)),
			logging.Int("samples", summary.Samples),
			logging.Any("start", summary.Start),
			logging.Any("end", summary.End),
		)
	}
}

func (r *Runner) resolvePhotos(ctx context.Context, logger *slog.Logger, opts Options, candidates []string, rep *report.Report) ([]photo.Record, error) {
	resolver := photo.Resolver{
		Reader:   r.reader,
		Tags:     opts.TimestampTags,
		Location: opts.Location,
		Offset:   opts.Offset,
	}
	records := make([]photo.Record, 0, len(candidates))
	for _, path := range candidates {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		rec, err := resolver.Resolve(ctx, path)
		switch {
		case err == nil:
			records = append(records, rec)
		case failure.Fatal(err):
			return nil, err
		case errors.Is(err, photo.ErrUnreadable):
			logger.Debug("not an image; skipping", logging.Photo(path), logging.Error(err))
		default:
			logging.WarnWithContext(logger, "photo capture time unavailable; skipping",
				"photo_unresolvable",
				logging.Photo(path),
				logging.Error(err),
				logging.String(logging.FieldErrorHint, "check the camera wrote DateTime or DateTimeOriginal"),
			)
			rep.AddSkipped(path, err)
		}
	}
	return records, nil
}

func (r *Runner) writeUpdates(ctx context.Context, logger *slog.Logger, opts Options, updates []correlate.Update, rep *report.Report) error {
	sampler := logging.NewProgressSampler(opts.ProgressInterval, len(updates))
	for i, u := range updates {
		if err := ctx.Err(); err != nil {
			return err
		}
		attrs := []logging.Attr{
			logging.Photo(u.Photo.Path),
			logging.String("reason", u.Reason.String()),
		}
		if u.Matched {
			attrs = append(attrs,
				logging.String("depth", u.Tags[tags.WaterDepth]),
				logging.String("temperature", u.Tags[tags.Temperature]),
			)
		}

		switch {
		case len(u.Tags) == 0:
			logger.Debug("nothing to write", logging.Args(attrs...)...)
			rep.AddUpdate(u, report.StatusUnchanged, nil)
		case opts.DryRun:
			logger.Info("would update photo", logging.Args(attrs...)...)
			rep.AddUpdate(u, report.StatusPlanned, nil)
		default:
			if err := r.writePhoto(ctx, logger, opts, u); err != nil {
				if ctxErr := ctx.Err(); ctxErr != nil {
					return ctxErr
				}
				if failure.Fatal(err) {
					return err
				}
				logging.WarnWithContext(logger, "metadata write failed",
					"photo_write_failed",
					append(attrs, logging.Error(err),
						logging.String(logging.FieldErrorHint, "check the file is writable and exiv2 supports its format"))...,
				)
				rep.AddUpdate(u, report.StatusFailed, err)
			} else {
				logger.Debug("photo updated", logging.Args(attrs...)...)
				rep.AddUpdate(u, report.StatusWritten, nil)
			}
		}

		if done := i + 1; sampler.ShouldLog(done) {
			logger.Info("sync progress",
				logging.Int("done", done),
				logging.Int("total", len(updates)),
				logging.String("percent", fmt.Sprintf("%.0f%%", sampler.Percent(done))),
			)
		}
	}
	return nil
}

func (r *Runner) writePhoto(ctx context.Context, logger *slog.Logger, opts Options, u correlate.Update) error {
	if opts.BackupDir != "" {
		dst, err := fileutil.Backup(u.Photo.Path, opts.BackupDir)
		switch {
		case errors.Is(err, fileutil.ErrBackupExists):
			logger.Debug("keeping earlier backup", logging.Photo(u.Photo.Path), logging.String("backup", dst))
		case err != nil:
			return failure.Wrap(failure.ErrConfiguration, "workflow", "backup", opts.BackupDir, err)
		}
	}
	return r.writer.WriteTags(ctx, u.Photo.Path, u.Tags)
}

func (r *Runner) renderProfile(opts Options, samples []track.Sample, updates []correlate.Update) error {
	if len(samples) == 0 {
		r.logger.Info("no track samples; skipping profile chart")
		return nil
	}
	err := profile.Render(opts.PlotPath, samples, profile.MarkersFromUpdates(updates), profile.Options{
		Title: filepath.Base(opts.Directory),
		Units: opts.Units,
	})
	if err != nil {
		return fmt.Errorf("render profile: %w", err)
	}
	return nil
}
