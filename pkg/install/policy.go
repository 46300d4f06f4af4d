package install

import (
	"strings"

	"github.com/IsaccBarker/Greatness/pkg/errors"
)

// OverwritePolicy decides what happens when a destination already exists
type OverwritePolicy string

const (
	// OverwriteAlways backs up and replaces without asking
	OverwriteAlways OverwritePolicy = "always"
	// OverwriteNever leaves existing destinations alone
	OverwriteNever OverwritePolicy = "never"
	// OverwritePrompt asks through the installer's ConfirmFunc
	OverwritePrompt OverwritePolicy = "prompt"
)

// ParsePolicy parses a policy name, case insensitively
func ParsePolicy(s string) (OverwritePolicy, error) {
	switch p := OverwritePolicy(strings.ToLower(strings.TrimSpace(s))); p {
	case OverwriteAlways, OverwriteNever, OverwritePrompt:
		return p, nil
	case "":
		return OverwritePrompt, nil
	}
	return "", errors.Newf(errors.ErrInvalidInput, "unknown overwrite policy %q (want always, never or prompt)", s)
}

// Mode is how a file is materialized at its destination
type Mode string

const (
	// ModeCopy copies the source contents
	ModeCopy Mode = "copy"
	// ModeSymlink links the destination to the stored source
	ModeSymlink Mode = "symlink"
)

// ParseMode parses an install mode name
func ParseMode(s string) (Mode, error) {
	switch m := Mode(strings.ToLower(strings.TrimSpace(s))); m {
	case ModeCopy, ModeSymlink:
		return m, nil
	case "":
		return ModeCopy, nil
	}
	return "", errors.Newf(errors.ErrInvalidInput, "unknown install mode %q (want copy or symlink)", s)
}

// Outcome is the terminal state of one install
type Outcome int

const (
	// Installed means the destination now holds the source
	Installed Outcome = iota
	// Skipped means the user or policy declined to overwrite
	Skipped
	// Unchanged means the destination already matched the source
	Unchanged
)

func (o Outcome) String() string {
	switch o {
	case Installed:
		return "installed"
	case Skipped:
		return "skipped"
	case Unchanged:
		return "unchanged"
	}
	return "unknown"
}
