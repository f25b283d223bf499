package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"depthsync/internal/config"
	"depthsync/internal/exiv2"
	"depthsync/internal/workflow"
)

type syncFlags struct {
	path        string
	tracks      []string
	timezone    string
	offset      int
	location    string
	coords      string
	units       string
	tolerance   float64
	author      string
	description string
	comment     string
	subject     string
	dryRun      bool
	reportPath  string
	plotPath    string
	backupDir   string
}

func newSyncCommand(ctx *commandContext) *cobra.Command {
	var flags syncFlags

	cmd := &cobra.Command{
		Use:   "sync [dir]",
		Short: "Write depth, temperature and location metadata into photos",
		Long: `Match every photo in dir (default: the working directory) against the
dive computer track by capture time and write the interpolated depth and
water temperature into its EXIF metadata. Location, coordinates, author and
the other descriptive fields are written to every photo.

Without --track, .fit files found in dir are used. Without any track only the
descriptive fields are written.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			base, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			cfg := *base
			applySyncOverrides(cmd, &cfg, flags)
			if err := cfg.Finalize(); err != nil {
				return err
			}

			dir := flags.path
			if len(args) == 1 {
				dir = args[0]
			}
			opts, err := workflow.OptionsFromConfig(&cfg, dir)
			if err != nil {
				return err
			}
			for _, track := range flags.tracks {
				expanded, err := config.ExpandPath(track)
				if err != nil {
					return fmt.Errorf("resolve track path: %w", err)
				}
				opts.TrackFiles = append(opts.TrackFiles, expanded)
			}
			opts.DryRun = flags.dryRun
			if opts.ReportPath, err = config.ExpandPath(flags.reportPath); err != nil {
				return fmt.Errorf("resolve report path: %w", err)
			}
			if opts.PlotPath, err = config.ExpandPath(flags.plotPath); err != nil {
				return fmt.Errorf("resolve plot path: %w", err)
			}
			if opts.BackupDir, err = config.ExpandPath(flags.backupDir); err != nil {
				return fmt.Errorf("resolve backup directory: %w", err)
			}

			logger, err := ctx.newLogger(&cfg)
			if err != nil {
				return err
			}
			client := exiv2.New(cfg.Exiv2.Binary, cfg.Exiv2.PreserveTimestamps, cfg.ExivTimeout())
			runner := workflow.NewRunner(client, client, logger)

			rep, runErr := runner.Run(cmd.Context(), opts)
			if rep != nil {
				out := cmd.OutOrStdout()
				printSyncSummary(out, rep, opts.Units, shouldColorize(out))
			}
			return runErr
		},
	}

	f := cmd.Flags()
	f.StringVarP(&flags.path, "path", "p", "", "Photo directory (alternative to the dir argument)")
	f.StringArrayVarP(&flags.tracks, "track", "f", nil, "Dive log (.fit or .csv); repeat for several files")
	f.StringVarP(&flags.timezone, "timezone", "z", "", `Camera clock zone, e.g. "-08:00" or "America/Los_Angeles"`)
	f.IntVarP(&flags.offset, "offset", "o", 0, "Seconds added to photo times to correct camera clock drift")
	f.StringVarP(&flags.location, "location", "l", "", `Human readable dive site, e.g. "Mukilteo, WA"`)
	f.StringVarP(&flags.coords, "coords", "g", "", `GPS coordinates as "lat lon" decimal degrees`)
	f.StringVarP(&flags.units, "units", "u", "", "Unit system: imperial or metric")
	f.Float64Var(&flags.tolerance, "tolerance", 0, "Largest accepted gap in seconds between a photo and the next sample")
	f.StringVarP(&flags.author, "author", "a", "", "Author and copyright")
	f.StringVarP(&flags.description, "description", "d", "", "Image description")
	f.StringVarP(&flags.comment, "comment", "C", "", "Comment (XPComment)")
	f.StringVarP(&flags.subject, "subject", "J", "", "Subject (XPSubject)")
	f.BoolVar(&flags.dryRun, "dry-run", false, "Plan the updates without writing any file")
	f.StringVar(&flags.reportPath, "report", "", "Write a run report (.yaml or .json)")
	f.StringVar(&flags.plotPath, "plot", "", "Write a dive profile chart (.png, .svg or .pdf)")
	f.StringVar(&flags.backupDir, "backup-dir", "", "Copy each photo here before its metadata is first rewritten")
	return cmd
}

// applySyncOverrides copies the flags the user set onto cfg.
func applySyncOverrides(cmd *cobra.Command, cfg *config.Config, flags syncFlags) {
	set := cmd.Flags().Changed
	if set("timezone") {
		cfg.Sync.Timezone = flags.timezone
	}
	if set("offset") {
		cfg.Sync.OffsetSeconds = flags.offset
	}
	if set("units") {
		cfg.Sync.Units = flags.units
	}
	if set("tolerance") {
		cfg.Sync.ToleranceSeconds = flags.tolerance
	}
	if set("location") {
		cfg.Metadata.Location = flags.location
	}
	if set("coords") {
		cfg.Metadata.Coordinates = flags.coords
	}
	if set("author") {
		cfg.Metadata.Author = flags.author
	}
	if set("description") {
		cfg.Metadata.Description = flags.description
	}
	if set("comment") {
		cfg.Metadata.Comment = flags.comment
	}
	if set("subject") {
		cfg.Metadata.Subject = flags.subject
	}
}
