package style

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenderTree(t *testing.T) {
	root := &Node{Label: "greatness"}
	files := root.Add("files")
	files.Add("{{HOME}}/.bashrc")
	files.Add("{{HOME}}/.vimrc").Add("tag: editor")
	root.Add("packages")

	out := RenderTree(root)
	lines := strings.Split(out, "\n")

	assert.Equal(t, "greatness", lines[0])
	assert.Len(t, lines, 6)
	assert.Contains(t, out, "{{HOME}}/.bashrc")
	assert.Contains(t, out, "tag: editor")
	assert.False(t, strings.HasSuffix(out, "\n"))
	assert.Less(t, strings.Index(out, "files"), strings.Index(out, "packages"))
}

func TestBadgeWidth(t *testing.T) {
	for _, s := range []Status{StatusPresent, StatusLinked, StatusMissing, StatusInstalled, StatusUnchanged, StatusSkipped} {
		assert.Contains(t, Badge(s), string(s))
	}
}

func TestRenderMarkdownPlain(t *testing.T) {
	md := "# title\n\n- item\n"
	assert.Equal(t, md, RenderMarkdown(md, 80, false))
}

func TestRenderMarkdownColor(t *testing.T) {
	out := RenderMarkdown("# greatness doctor\n\nNo problems found.\n", 60, true)
	assert.Contains(t, out, "No problems found.")
}
