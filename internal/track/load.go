package track

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"depthsync/internal/failure"
)

// IsTrackFile reports whether path has an extension a loader understands.
func IsTrackFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".fit", ".csv":
		return true
	default:
		return false
	}
}

// Load decodes a single track file, choosing the decoder by extension.
func Load(path string) (LoadResult, error) {
	if !IsTrackFile(path) {
		return LoadResult{}, failure.Wrap(failure.ErrValidation, "track", "load",
			fmt.Sprintf("unsupported track file %q (expected .fit or .csv)", path), nil)
	}
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return LoadResult{}, failure.Wrap(failure.ErrNotFound, "track", "load", path, err)
	}
	if strings.EqualFold(filepath.Ext(path), ".fit") {
		return LoadFIT(path)
	}
	return LoadCSV(path)
}

// LoadFiles decodes several track files and concatenates their samples in
// file order. Sorting is left to the caller.
func LoadFiles(paths []string) (LoadResult, error) {
	var combined LoadResult
	for _, path := range paths {
		result, err := Load(path)
		if err != nil {
			return LoadResult{}, err
		}
		combined.append(result)
	}
	return combined, nil
}
