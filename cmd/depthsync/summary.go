package main

import (
	"fmt"
	"io"
	"path/filepath"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"depthsync/internal/correlate"
	"depthsync/internal/report"
)

var titleCaser = cases.Title(language.English)

func printSyncSummary(out io.Writer, rep *report.Report, units correlate.Units, colorize bool) {
	for _, line := range renderSectionHeader(titleCaser.String(units.String())+" sync summary", colorize) {
		fmt.Fprintln(out, line)
	}
	c := rep.Counters

	fmt.Fprintln(out, renderStatusLine("Photos", statusInfo, fmt.Sprintf("%d", c.Photos), colorize))
	matchKind := statusOK
	if c.Photos > 0 && c.Matched == 0 {
		matchKind = statusWarn
	}
	fmt.Fprintln(out, renderStatusLine("Matched", matchKind, fmt.Sprintf("%d of %d", c.Matched, c.Matched+c.Unmatched), colorize))
	if rep.DryRun {
		fmt.Fprintln(out, renderStatusLine("Written", statusInfo, "dry run, nothing written", colorize))
	} else {
		fmt.Fprintln(out, renderStatusLine("Written", statusOK, fmt.Sprintf("%d", c.Written), colorize))
	}
	if c.Failed > 0 {
		fmt.Fprintln(out, renderStatusLine("Failed", statusError, fmt.Sprintf("%d", c.Failed), colorize))
	}
	if c.Skipped > 0 {
		fmt.Fprintln(out, renderStatusLine("Skipped", statusWarn, fmt.Sprintf("%d without a capture time", c.Skipped), colorize))
	}
	if c.MalformedSamples > 0 {
		fmt.Fprintln(out, renderStatusLine("Track samples", statusWarn, fmt.Sprintf("%d kept, %d malformed", c.Samples, c.MalformedSamples), colorize))
	}

	if len(rep.Entries) == 0 {
		return
	}
	rows := make([][]string, 0, len(rep.Entries))
	for _, e := range rep.Entries {
		captured := ""
		if !e.CapturedAt.IsZero() {
			captured = e.CapturedAt.Format("2006-01-02 15:04:05")
		}
		rows = append(rows, []string{
			filepath.Base(e.Photo),
			captured,
			titleCaser.String(string(e.Status)),
			rationalLabel(e.Depth, units.DepthLabel()),
			rationalLabel(e.Temperature, units.TemperatureLabel()),
			e.Reason,
		})
	}
	fmt.Fprintln(out)
	fmt.Fprintln(out, renderTable(
		[]string{"Photo", "Captured (UTC)", "Status", "Depth", "Temp", "Reason"},
		rows,
		[]columnAlignment{alignLeft, alignLeft, alignLeft, alignRight, alignRight, alignLeft},
	))
}

// rationalLabel turns an EXIF rational such as "54/10" into "5.4 m".
func rationalLabel(value, unit string) string {
	if value == "" {
		return ""
	}
	var num, den int64
	if _, err := fmt.Sscanf(value, "%d/%d", &num, &den); err != nil || den == 0 {
		return value
	}
	if den == 1 {
		return fmt.Sprintf("%d %s", num, unit)
	}
	return fmt.Sprintf("%.1f %s", float64(num)/float64(den), unit)
}
