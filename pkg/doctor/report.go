package doctor

import (
	"fmt"
	"strings"
)

var kindTitles = map[Kind]string{
	KindSimilarTags:     "Similar tags",
	KindMissingFile:     "Missing files",
	KindMissingScript:   "Missing scripts",
	KindMissingCheckout: "Missing requirements",
	KindUnknownManager:  "Unknown package managers",
	KindEncrypted:       "Encrypted files",
}

var kindOrder = []Kind{
	KindSimilarTags,
	KindMissingFile,
	KindMissingScript,
	KindMissingCheckout,
	KindUnknownManager,
	KindEncrypted,
}

// Markdown renders findings as a markdown report grouped by kind
func Markdown(findings []Finding) string {
	var b strings.Builder
	b.WriteString("# greatness doctor\n\n")
	if len(findings) == 0 {
		b.WriteString("No problems found.\n")
		return b.String()
	}

	fmt.Fprintf(&b, "Found %d potential problem(s).\n", len(findings))
	for _, kind := range kindOrder {
		var lines []string
		for _, f := range findings {
			if f.Kind == kind {
				lines = append(lines, "- "+f.Message)
			}
		}
		if len(lines) == 0 {
			continue
		}
		fmt.Fprintf(&b, "\n## %s\n\n%s\n", kindTitles[kind], strings.Join(lines, "\n"))
	}
	return b.String()
}
