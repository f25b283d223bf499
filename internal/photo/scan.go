package photo

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"
)

// Listing is the result of scanning a photo directory.
type Listing struct {
	// Candidates are files that may be photos, ordered by modification time.
	Candidates []string
	// Tracks are dive-log files found alongside the photos.
	Tracks []string
}

type scannedFile struct {
	path    string
	modTime time.Time
}

// Scan lists the regular files in dir. Files for which isTrack returns true
// are reported as tracks; hidden files are ignored. The modification-time
// order is only a convenience; true order comes from capture timestamps.
func Scan(dir string, isTrack func(string) bool) (Listing, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return Listing{}, fmt.Errorf("read photo directory: %w", err)
	}

	files := make([]scannedFile, 0, len(entries))
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasPrefix(name, ".") || !entry.Type().IsRegular() {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		files = append(files, scannedFile{path: filepath.Join(dir, name), modTime: info.ModTime()})
	}
	slices.SortStableFunc(files, func(a, b scannedFile) int {
		if c := a.modTime.Compare(b.modTime); c != 0 {
			return c
		}
		return strings.Compare(a.path, b.path)
	})

	var listing Listing
	for _, f := range files {
		if isTrack != nil && isTrack(f.path) {
			listing.Tracks = append(listing.Tracks, f.path)
			continue
		}
		listing.Candidates = append(listing.Candidates, f.path)
	}
	return listing, nil
}
