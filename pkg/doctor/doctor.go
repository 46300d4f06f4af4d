// Package doctor looks for likely mistakes in a manifest: near duplicate
// tags, tracked files or scripts that no longer exist, requirements whose
// checkout is gone and overloads for package managers nobody knows.
package doctor

import (
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/IsaccBarker/Greatness/pkg/filesystem"
	"github.com/IsaccBarker/Greatness/pkg/logging"
	"github.com/IsaccBarker/Greatness/pkg/manifest"
	"github.com/IsaccBarker/Greatness/pkg/packages"
	"github.com/IsaccBarker/Greatness/pkg/paths"
	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/spf13/afero"
)

// SimilarityThreshold is the similarity above which two tags are reported
const SimilarityThreshold = 0.5

// Kind classifies a finding
type Kind string

const (
	KindSimilarTags     Kind = "similar-tags"
	KindMissingFile     Kind = "missing-file"
	KindMissingScript   Kind = "missing-script"
	KindMissingCheckout Kind = "missing-checkout"
	KindUnknownManager  Kind = "unknown-manager"
	KindEncrypted       Kind = "encrypted"
)

// Finding is one warning
type Finding struct {
	Kind    Kind
	Subject string
	Message string
}

// Checker inspects a manifest against the host
type Checker struct {
	Fs      afero.Fs
	Codec   *paths.Codec
	Catalog packages.Catalog
}

// Check runs every check and returns the findings in a stable order
func (c *Checker) Check(doc *manifest.Document) []Finding {
	logger := logging.GetLogger("doctor")
	var findings []Finding

	logger.Debug().Int("files", len(doc.Files)).Msg("Checking tracked files")
	findings = append(findings, similarTags(doc.AllTags())...)
	findings = append(findings, c.missingFiles(doc)...)
	findings = append(findings, c.missingScripts(doc)...)

	logger.Debug().Int("requires", len(doc.Requires)).Msg("Checking requirements")
	findings = append(findings, c.missingCheckouts(doc)...)

	logger.Debug().Int("packages", len(doc.Packages)).Msg("Checking packages")
	findings = append(findings, c.unknownManagers(doc)...)
	return findings
}

// Similarity is the normalized Levenshtein similarity of a and b, compared
// case-insensitively: 1 for equal strings, 0 for nothing in common.
func Similarity(a, b string) float64 {
	a, b = strings.ToLower(a), strings.ToLower(b)
	longest := utf8.RuneCountInString(a)
	if n := utf8.RuneCountInString(b); n > longest {
		longest = n
	}
	if longest == 0 {
		return 1
	}
	return 1 - float64(fuzzy.LevenshteinDistance(a, b))/float64(longest)
}

func similarTags(tags []string) []Finding {
	var out []Finding
	for i := 0; i < len(tags); i++ {
		for j := i + 1; j < len(tags); j++ {
			if Similarity(tags[i], tags[j]) > SimilarityThreshold {
				out = append(out, Finding{
					Kind:    KindSimilarTags,
					Subject: tags[i] + ", " + tags[j],
					Message: fmt.Sprintf("tags %q and %q are very similar, is one of them a typo?", tags[i], tags[j]),
				})
			}
		}
	}
	return out
}

func (c *Checker) exists(path string) bool {
	ok, err := filesystem.Exists(c.Fs, path)
	return err == nil && ok
}

func (c *Checker) missingFiles(doc *manifest.Document) []Finding {
	var out []Finding
	for _, f := range doc.Files {
		path := c.Codec.Decode(f.Path)
		if !c.exists(path) {
			out = append(out, Finding{
				Kind:    KindMissingFile,
				Subject: f.Path,
				Message: fmt.Sprintf("tracked file %s does not exist", path),
			})
		}
		if f.Encrypted {
			out = append(out, Finding{
				Kind:    KindEncrypted,
				Subject: f.Path,
				Message: fmt.Sprintf("%s is marked encrypted, which this version cannot decrypt", f.Path),
			})
		}
	}
	return out
}

func (c *Checker) missingScripts(doc *manifest.Document) []Finding {
	var out []Finding
	for _, script := range doc.AllScripts() {
		path := c.Codec.Decode(script)
		if !c.exists(path) {
			out = append(out, Finding{
				Kind:    KindMissingScript,
				Subject: script,
				Message: fmt.Sprintf("assigned script %s does not exist", path),
			})
		}
	}
	return out
}

func (c *Checker) missingCheckouts(doc *manifest.Document) []Finding {
	var out []Finding
	for _, dep := range doc.Requires {
		path := c.Codec.Decode(dep.LocalPath)
		if c.exists(path) {
			continue
		}
		msg := fmt.Sprintf("requirement checkout %s is missing", path)
		if dep.SourceURL != "" {
			msg += ", run `greatness pull update` to fetch it again"
		}
		out = append(out, Finding{Kind: KindMissingCheckout, Subject: dep.LocalPath, Message: msg})
	}
	return out
}

func (c *Checker) unknownManagers(doc *manifest.Document) []Finding {
	var out []Finding
	for _, p := range doc.Packages {
		managers := make([]string, 0, len(p.Overloads))
		for m := range p.Overloads {
			managers = append(managers, m)
		}
		sort.Strings(managers)
		for _, m := range managers {
			if _, ok := c.Catalog[m]; ok {
				continue
			}
			out = append(out, Finding{
				Kind:    KindUnknownManager,
				Subject: p.Name,
				Message: fmt.Sprintf("package %s has an overload for unknown package manager %q", p.Name, m),
			})
		}
	}
	return out
}
