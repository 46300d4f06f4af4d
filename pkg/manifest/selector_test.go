package manifest

import (
	"testing"

	"github.com/IsaccBarker/Greatness/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func selectorFixture() *Document {
	return &Document{Files: []TrackedFile{
		{Path: "{{HOME}}/.bashrc", Tag: "shell"},
		{Path: "{{HOME}}/.gitconfig", Tag: "work"},
		{Path: "{{HOME}}/.vimrc"},
		{Path: "{{HOME}}/.ssh/config", Tag: "work", Encrypted: true},
		{Path: "{{DOCUMENTS}}/notes.md", Scripts: []string{"strip.js"}},
	}}
}

func TestSelectors(t *testing.T) {
	tests := []struct {
		name  string
		tag   string
		where string
		want  []string
	}{
		{
			name: "no filter selects everything",
			want: []string{"{{HOME}}/.bashrc", "{{HOME}}/.gitconfig", "{{HOME}}/.vimrc", "{{HOME}}/.ssh/config", "{{DOCUMENTS}}/notes.md"},
		},
		{
			name: "tag filter skips untagged files",
			tag:  "work",
			want: []string{"{{HOME}}/.gitconfig", "{{HOME}}/.ssh/config"},
		},
		{
			name:  "expression on encryption",
			where: "!encrypted && tag != ''",
			want:  []string{"{{HOME}}/.bashrc", "{{HOME}}/.gitconfig"},
		},
		{
			name:  "expression on path",
			where: `path startsWith "{{DOCUMENTS}}"`,
			want:  []string{"{{DOCUMENTS}}/notes.md"},
		},
		{
			name:  "expression on scripts",
			where: `"strip.js" in scripts`,
			want:  []string{"{{DOCUMENTS}}/notes.md"},
		},
		{
			name:  "tag and expression combine",
			tag:   "work",
			where: "encrypted",
			want:  []string{"{{HOME}}/.ssh/config"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sel, err := NewSelector(tt.tag, tt.where)
			require.NoError(t, err)

			files, err := selectorFixture().Select(sel)
			require.NoError(t, err)

			var got []string
			for _, f := range files {
				got = append(got, f.Path)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestWhereRejectsBadExpressions(t *testing.T) {
	for _, expr := range []string{"tag ==", "path + 1", "unknown_field"} {
		t.Run(expr, func(t *testing.T) {
			_, err := Where(expr)
			require.Error(t, err)
			assert.True(t, errors.IsErrorCode(err, errors.ErrSelectorCompile))
		})
	}
}
