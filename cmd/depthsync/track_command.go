package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"depthsync/internal/config"
	"depthsync/internal/correlate"
	"depthsync/internal/profile"
	"depthsync/internal/track"
)

func newTrackCommand(ctx *commandContext) *cobra.Command {
	var unitsFlag string
	var plotPath string

	cmd := &cobra.Command{
		Use:   "track <file>...",
		Short: "Summarize dive log files",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			unitName := cfg.Sync.Units
			if cmd.Flags().Changed("units") {
				unitName = unitsFlag
			}
			units, err := correlate.ParseUnits(unitName)
			if err != nil {
				return err
			}

			paths := make([]string, 0, len(args))
			for _, arg := range args {
				expanded, err := config.ExpandPath(arg)
				if err != nil {
					return fmt.Errorf("resolve track path: %w", err)
				}
				paths = append(paths, expanded)
			}
			loaded, err := track.LoadFiles(paths)
			if err != nil {
				return err
			}
			samples := correlate.Normalize(loaded.Samples, nil).Samples

			out := cmd.OutOrStdout()
			colorize := shouldColorize(out)
			for _, line := range renderSectionHeader("Track", colorize) {
				fmt.Fprintln(out, line)
			}
			if len(samples) == 0 {
				fmt.Fprintln(out, renderStatusLine("Samples", statusWarn, "no usable samples", colorize))
			}
			if n := loaded.Malformed(); n > 0 {
				fmt.Fprintln(out, renderStatusLine("Malformed", statusWarn, fmt.Sprintf("%d samples dropped", n), colorize))
			}
			fmt.Fprintln(out, renderTable([]string{"Field", "Value"}, trackRows(loaded.Files, track.Summarize(samples), units), nil))

			if strings.TrimSpace(plotPath) != "" {
				target, err := config.ExpandPath(plotPath)
				if err != nil {
					return fmt.Errorf("resolve plot path: %w", err)
				}
				title := strings.TrimSuffix(filepath.Base(paths[0]), filepath.Ext(paths[0]))
				if err := profile.Render(target, samples, nil, profile.Options{Title: title, Units: units}); err != nil {
					return err
				}
				fmt.Fprintf(out, "Wrote profile chart to %s\n", target)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&unitsFlag, "units", "u", "", "Unit system: imperial or metric")
	cmd.Flags().StringVar(&plotPath, "plot", "", "Write a dive profile chart (.png, .svg or .pdf)")
	return cmd
}

func trackRows(files []string, s track.Summary, units correlate.Units) [][]string {
	names := make([]string, 0, len(files))
	for _, f := range files {
		names = append(names, filepath.Base(f))
	}
	rows := [][]string{
		{"Files", strings.Join(names, ", ")},
		{"Samples", fmt.Sprintf("%d", s.Samples)},
	}
	if s.Samples == 0 {
		return rows
	}
	depth := func(mm float64) string {
		return fmt.Sprintf("%.1f %s", correlate.DepthValueExact(mm, units), units.DepthLabel())
	}
	temp := func(c float64) string {
		if units == correlate.Imperial {
			c = c*9/5 + 32
		}
		return fmt.Sprintf("%.1f %s", c, units.TemperatureLabel())
	}
	return append(rows,
		[]string{"Start (UTC)", s.Start.Format("2006-01-02 15:04:05")},
		[]string{"End (UTC)", s.End.Format("2006-01-02 15:04:05")},
		[]string{"Duration", s.Duration.String()},
		[]string{"Max depth", depth(s.MaxDepthMM)},
		[]string{"Mean depth", depth(s.MeanDepthMM)},
		[]string{"Min temperature", temp(s.MinTemperatureC)},
		[]string{"Mean temperature", temp(s.MeanTemperatureC)},
	)
}
