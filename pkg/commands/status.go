package commands

import (
	"os"
	"path/filepath"

	"github.com/IsaccBarker/Greatness/pkg/errors"
	"github.com/IsaccBarker/Greatness/pkg/filesystem"
	"github.com/IsaccBarker/Greatness/pkg/logging"
	"github.com/IsaccBarker/Greatness/pkg/manifest"
)

// FileState is what a tracked file looks like on this host
type FileState string

const (
	FilePresent FileState = "present"
	FileLinked  FileState = "linked"
	FileMissing FileState = "missing"
)

// FileStatus describes one tracked file
type FileStatus struct {
	Path      string    `json:"path"`
	Local     string    `json:"local"`
	Tag       string    `json:"tag,omitempty"`
	Scripts   []string  `json:"scripts,omitempty"`
	Encrypted bool      `json:"encrypted,omitempty"`
	State     FileState `json:"state"`
}

// RequirementStatus describes one recorded requirement
type RequirementStatus struct {
	URL       string `json:"url,omitempty"`
	LocalPath string `json:"path"`
	Present   bool   `json:"present"`
}

// StatusReport is the state of the greatness directory and its manifest
type StatusReport struct {
	Root         string                    `json:"root"`
	Manifest     string                    `json:"manifest"`
	PackRepo     bool                      `json:"pack_repo"`
	Files        []FileStatus              `json:"files"`
	Requirements []RequirementStatus       `json:"requirements"`
	Packages     []manifest.TrackedPackage `json:"packages"`
}

// Status reports every tracked file, requirement and package
func (s *Session) Status() *StatusReport {
	logger := logging.GetLogger("commands.status")
	doc := s.State.Doc
	logger.Debug().Int("files", len(doc.Files)).Msg("Collecting status")

	report := &StatusReport{
		Root:     s.State.Layout.Root(),
		Manifest: s.State.Layout.ManifestPath(),
		PackRepo: s.State.HasPackRepo(),
		Packages: doc.Packages,
	}
	for _, f := range doc.Files {
		report.Files = append(report.Files, s.fileStatus(f))
	}
	for _, dep := range doc.Requires {
		ok, err := filesystem.Exists(s.State.Fs, s.State.Decode(dep.LocalPath))
		report.Requirements = append(report.Requirements, RequirementStatus{
			URL:       dep.SourceURL,
			LocalPath: dep.LocalPath,
			Present:   err == nil && ok,
		})
	}
	return report
}

// FileStatus reports one tracked file, given by local or portable path
func (s *Session) FileStatus(p string) (*FileStatus, error) {
	portable, err := s.resolveTracked(p)
	if err != nil {
		return nil, err
	}
	f, _ := s.State.Doc.Contains(portable)
	if f == nil {
		return nil, errors.Newf(errors.ErrFileNotTracked, "%s is not tracked", portable).
			WithDetail("path", portable)
	}
	status := s.fileStatus(*f)
	return &status, nil
}

func (s *Session) fileStatus(f manifest.TrackedFile) FileStatus {
	local := s.State.Decode(f.Path)
	status := FileStatus{
		Path:      f.Path,
		Local:     local,
		Tag:       f.Tag,
		Scripts:   f.Scripts,
		Encrypted: f.Encrypted,
		State:     FileMissing,
	}

	info, err := filesystem.Lstat(s.State.Fs, local)
	if err != nil {
		return status
	}
	if info.Mode()&os.ModeSymlink == 0 {
		status.State = FilePresent
		return status
	}
	target, err := filesystem.Readlink(s.State.Fs, local)
	if err != nil {
		return status
	}
	if !filepath.IsAbs(target) {
		target = filepath.Join(filepath.Dir(local), target)
	}
	if ok, err := filesystem.Exists(s.State.Fs, target); err == nil && ok {
		status.State = FileLinked
	}
	return status
}
