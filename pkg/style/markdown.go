package style

import (
	"github.com/charmbracelet/glamour"
)

// RenderMarkdown renders md for a terminal. Without color, or when glamour
// fails, md is returned as is.
func RenderMarkdown(md string, width int, color bool) string {
	if !color {
		return md
	}

	options := []glamour.TermRendererOption{glamour.WithAutoStyle()}
	if width > 0 {
		options = append(options, glamour.WithWordWrap(width))
	}

	renderer, err := glamour.NewTermRenderer(options...)
	if err != nil {
		return md
	}
	rendered, err := renderer.Render(md)
	if err != nil {
		return md
	}
	return rendered
}
