package style

import (
	"fmt"

	"github.com/pterm/pterm"
)

// Status describes a tracked file or a pulled file
type Status string

const (
	StatusPresent   Status = "present"   // File exists on this host
	StatusLinked    Status = "linked"    // File is a symlink into the greatness dir
	StatusMissing   Status = "missing"   // Tracked but gone
	StatusInstalled Status = "installed" // Written by a pull
	StatusUnchanged Status = "unchanged" // Pull found identical content
	StatusSkipped   Status = "skipped"   // Pull declined to overwrite
)

// StatusStyle returns the pterm style for a status
func StatusStyle(status Status) *pterm.Style {
	switch status {
	case StatusPresent, StatusInstalled:
		return pterm.NewStyle(pterm.FgGreen)
	case StatusLinked:
		return pterm.NewStyle(pterm.FgCyan)
	case StatusMissing:
		return pterm.NewStyle(pterm.FgRed, pterm.Bold)
	case StatusSkipped:
		return pterm.NewStyle(pterm.FgYellow)
	default:
		return pterm.NewStyle(pterm.FgGray)
	}
}

// Badge renders a fixed width, colored status label
func Badge(status Status) string {
	return StatusStyle(status).Sprint(fmt.Sprintf("%-9s", status))
}
