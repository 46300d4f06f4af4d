package commands

import (
	"github.com/IsaccBarker/Greatness/pkg/doctor"
)

// Doctor checks the manifest for likely mistakes. Findings are warnings,
// never errors.
func (s *Session) Doctor() []doctor.Finding {
	checker := &doctor.Checker{
		Fs:      s.State.Fs,
		Codec:   s.State.Codec,
		Catalog: s.Config.Catalog(),
	}
	return checker.Check(s.State.Doc)
}
