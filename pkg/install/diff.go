package install

import (
	"bytes"
	"unicode/utf8"

	"github.com/pmezard/go-difflib/difflib"
	"github.com/spf13/afero"
)

// maxDiffBytes caps the size of files a preview is built for
const maxDiffBytes = 64 * 1024

// Diff returns a unified diff from the current destination to the incoming
// source. It returns "" for binary, oversized or unreadable files.
func Diff(fs afero.Fs, src, dst string) string {
	incoming, ok := readText(fs, src)
	if !ok {
		return ""
	}
	current, ok := readText(fs, dst)
	if !ok {
		return ""
	}

	diff := difflib.UnifiedDiff{
		A:        difflib.SplitLines(current),
		B:        difflib.SplitLines(incoming),
		FromFile: dst,
		ToFile:   src,
		Context:  3,
	}
	text, err := difflib.GetUnifiedDiffString(diff)
	if err != nil {
		return ""
	}
	return text
}

func readText(fs afero.Fs, path string) (string, bool) {
	info, err := fs.Stat(path)
	if err != nil || info.IsDir() || info.Size() > maxDiffBytes {
		return "", false
	}
	data, err := afero.ReadFile(fs, path)
	if err != nil || bytes.IndexByte(data, 0) >= 0 || !utf8.Valid(data) {
		return "", false
	}
	return string(data), true
}
