// Package report records the outcome of a sync run and writes it to disk.
package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"depthsync/internal/correlate"
	"depthsync/internal/tags"
)

// Status is the per-photo outcome.
type Status string

const (
	StatusWritten Status = "written"
	// StatusPlanned marks photos that would have been written in a dry run.
	StatusPlanned Status = "planned"
	StatusFailed  Status = "failed"
	// StatusUnchanged marks photos with nothing to write.
	StatusUnchanged Status = "unchanged"
	// StatusSkipped marks photos whose capture time could not be resolved.
	StatusSkipped Status = "skipped"
)

// Counters summarizes a run.
type Counters struct {
	Photos           int `yaml:"photos" json:"photos"`
	Matched          int `yaml:"matched" json:"matched"`
	Unmatched        int `yaml:"unmatched" json:"unmatched"`
	Written          int `yaml:"written" json:"written"`
	Failed           int `yaml:"failed" json:"failed"`
	Skipped          int `yaml:"skipped" json:"skipped"`
	Samples          int `yaml:"samples" json:"samples"`
	MalformedSamples int `yaml:"malformed_samples" json:"malformed_samples"`
}

// Entry describes one photo.
type Entry struct {
	Photo       string    `yaml:"photo" json:"photo"`
	CapturedAt  time.Time `yaml:"captured_at,omitempty" json:"captured_at,omitzero"`
	Status      Status    `yaml:"status" json:"status"`
	Matched     bool      `yaml:"matched" json:"matched"`
	Reason      string    `yaml:"reason,omitempty" json:"reason,omitempty"`
	GapSeconds  float64   `yaml:"gap_seconds,omitempty" json:"gap_seconds,omitempty"`
	Depth       string    `yaml:"depth,omitempty" json:"depth,omitempty"`
	Temperature string    `yaml:"temperature,omitempty" json:"temperature,omitempty"`
	Error       string    `yaml:"error,omitempty" json:"error,omitempty"`
}

// Report is the outcome of one sync run.
type Report struct {
	RunID            string    `yaml:"run_id" json:"run_id"`
	Directory        string    `yaml:"directory" json:"directory"`
	Tracks           []string  `yaml:"tracks,omitempty" json:"tracks,omitempty"`
	Units            string    `yaml:"units" json:"units"`
	ToleranceSeconds float64   `yaml:"tolerance_seconds" json:"tolerance_seconds"`
	DryRun           bool      `yaml:"dry_run" json:"dry_run"`
	StartedAt        time.Time `yaml:"started_at" json:"started_at"`
	FinishedAt       time.Time `yaml:"finished_at" json:"finished_at"`
	Counters         Counters  `yaml:"counters" json:"counters"`
	Entries          []Entry   `yaml:"entries" json:"entries"`
}

// AddUpdate records a planned update and its write outcome. err is the
// write error, if any.
func (r *Report) AddUpdate(u correlate.Update, status Status, err error) {
	entry := Entry{
		Photo:      u.Photo.Path,
		CapturedAt: u.Photo.Time(),
		Status:     status,
		Matched:    u.Matched,
		Reason:     u.Reason.String(),
	}
	if u.Reason != correlate.ReasonNoTrack {
		entry.GapSeconds = u.Gap
	}
	if u.Matched {
		entry.Depth = u.Tags[tags.WaterDepth]
		entry.Temperature = u.Tags[tags.Temperature]
		r.Counters.Matched++
	} else {
		r.Counters.Unmatched++
	}
	if err != nil {
		entry.Error = err.Error()
	}
	r.add(entry)
}

// AddSkipped records a photo that never reached the planner.
func (r *Report) AddSkipped(path string, err error) {
	entry := Entry{Photo: path, Status: StatusSkipped}
	if err != nil {
		entry.Error = err.Error()
	}
	r.add(entry)
}

func (r *Report) add(entry Entry) {
	r.Counters.Photos++
	switch entry.Status {
	case StatusWritten:
		r.Counters.Written++
	case StatusFailed:
		r.Counters.Failed++
	case StatusSkipped:
		r.Counters.Skipped++
	}
	r.Entries = append(r.Entries, entry)
}

// WriteFile stores the report as JSON when path ends in .json and as YAML
// otherwise.
func WriteFile(path string, r *Report) error {
	if r == nil {
		return fmt.Errorf("write report: nil report")
	}
	var (
		data []byte
		err  error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		data, err = json.MarshalIndent(r, "", "  ")
		data = append(data, '\n')
	default:
		data, err = yaml.Marshal(r)
	}
	if err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create report directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}

// ReadFile loads a report written by WriteFile.
func ReadFile(path string) (*Report, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read report: %w", err)
	}
	var r Report
	if strings.EqualFold(filepath.Ext(path), ".json") {
		err = json.Unmarshal(data, &r)
	} else {
		err = yaml.Unmarshal(data, &r)
	}
	if err != nil {
		return nil, fmt.Errorf("decode report: %w", err)
	}
	return &r, nil
}
