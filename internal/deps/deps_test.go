package deps

import (
	"path/filepath"
	"testing"

	"depthsync/internal/config"
	"depthsync/internal/testsupport"
)

func TestCheckBinaries(t *testing.T) {
	present := testsupport.WriteScript(t, t.TempDir(), "present", "exit 0")
	reqs := []Requirement{
		{Name: "Present", Command: present},
		{Name: "Missing", Command: "clearly-not-present-binary"},
		{Name: "Blank", Command: "  ", Optional: true},
	}

	results := CheckBinaries(reqs)
	if len(results) != len(reqs) {
		t.Fatalf("expected %d results, got %d", len(reqs), len(results))
	}
	if !results[0].Available || results[0].Path != present {
		t.Fatalf("expected first requirement to be available, got %#v", results[0])
	}
	if results[0].Detail != "" {
		t.Fatalf("unexpected detail for available dependency: %s", results[0].Detail)
	}
	if results[1].Available || results[1].Detail == "" {
		t.Fatalf("expected missing binary with detail, got %#v", results[1])
	}
	if results[1].Command != "clearly-not-present-binary" {
		t.Fatalf("unexpected command recorded: %s", results[1].Command)
	}
	if results[2].Detail != "command not configured" {
		t.Fatalf("unexpected detail for blank command: %q", results[2].Detail)
	}

	missing := Missing(results)
	if len(missing) != 1 || missing[0].Name != "Missing" {
		t.Fatalf("Missing = %#v", missing)
	}
}

func TestRequirementsFollowConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Exiv2.Binary = filepath.Join("/opt", "exiv2", "bin", "exiv2")
	reqs := Requirements(&cfg)
	if len(reqs) != 1 || reqs[0].Command != cfg.Exiv2.Binary {
		t.Fatalf("Requirements = %#v", reqs)
	}
	if got := Requirements(nil)[0].Command; got != "exiv2" {
		t.Fatalf("default command = %q", got)
	}
}

func TestStubbedExiv2OnPath(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithStubbedBinaries())
	statuses := CheckBinaries(Requirements(cfg))
	if !statuses[0].Available {
		t.Fatalf("expected stubbed exiv2 to be found, got %q", statuses[0].Detail)
	}
}
