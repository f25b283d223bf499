package deps

import (
	"fmt"
	"os/exec"
	"strings"

	"depthsync/internal/config"
)

// Requirement defines an external tool depthsync relies on.
type Requirement struct {
	Name        string
	Command     string
	Description string
	Optional    bool
}

// Status reports the availability of a dependency.
type Status struct {
	Requirement
	Available bool
	// Path is the resolved executable when available.
	Path   string
	Detail string
}

// Requirements lists the tools needed by the given configuration.
func Requirements(cfg *config.Config) []Requirement {
	binary := "exiv2"
	if cfg != nil && strings.TrimSpace(cfg.Exiv2.Binary) != "" {
		binary = cfg.Exiv2.Binary
	}
	return []Requirement{
		{
			Name:        "exiv2",
			Command:     binary,
			Description: "reads capture times and writes depth metadata",
		},
	}
}

// CheckBinaries evaluates the provided requirements and reports availability.
func CheckBinaries(requirements []Requirement) []Status {
	results := make([]Status, 0, len(requirements))
	for _, req := range requirements {
		req.Command = strings.TrimSpace(req.Command)
		req.Description = strings.TrimSpace(req.Description)
		status := Status{Requirement: req}
		switch path, err := exec.LookPath(req.Command); {
		case req.Command == "":
			status.Detail = "command not configured"
		case err != nil:
			status.Detail = fmt.Sprintf("binary %q not found", req.Command)
		default:
			status.Available = true
			status.Path = path
		}
		results = append(results, status)
	}
	return results
}

// Missing returns the required dependencies that are unavailable.
func Missing(statuses []Status) []Status {
	var missing []Status
	for _, s := range statuses {
		if !s.Available && !s.Optional {
			missing = append(missing, s)
		}
	}
	return missing
}
