package ui

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/IsaccBarker/Greatness/pkg/style"
	"github.com/charmbracelet/lipgloss"
)

// DefaultWidth is used for markdown wrapping when the width is unknown
const DefaultWidth = 80

// Printer writes command output in one resolved format
type Printer struct {
	Out    io.Writer
	Format Format
	Width  int
}

// NewPrinter returns a printer for out. FormatAuto is resolved against out
// when it is a file and falls back to plain text otherwise.
func NewPrinter(out io.Writer, format Format) *Printer {
	if format == FormatAuto {
		format = FormatText
		if f, ok := out.(*os.File); ok {
			format = DetectFormat(f)
		}
	}
	return &Printer{Out: out, Format: format, Width: DefaultWidth}
}

// Color reports whether output is styled
func (p *Printer) Color() bool {
	return p.Format == FormatTerminal
}

// JSON reports whether output is machine readable
func (p *Printer) JSON() bool {
	return p.Format == FormatJSON
}

// Paint renders s with st when styling is on
func (p *Printer) Paint(st lipgloss.Style, s string) string {
	if !p.Color() {
		return s
	}
	return st.Render(s)
}

// Badge renders a status label
func (p *Printer) Badge(status style.Status) string {
	if !p.Color() {
		return fmt.Sprintf("%-9s", status)
	}
	return style.Badge(status)
}

// Println writes one line
func (p *Printer) Println(s string) {
	fmt.Fprintln(p.Out, s)
}

// Success reports a completed action
func (p *Printer) Success(format string, args ...interface{}) {
	p.line(style.SuccessIndicator, "✓", format, args...)
}

// Warn reports something the user should look at
func (p *Printer) Warn(format string, args ...interface{}) {
	p.line(style.WarningIndicator, "!", format, args...)
}

// Info reports progress
func (p *Printer) Info(format string, args ...interface{}) {
	p.line(style.InfoIndicator, "•", format, args...)
}

func (p *Printer) line(styled, plain, format string, args ...interface{}) {
	if p.JSON() {
		return
	}
	indicator := plain
	if p.Color() {
		indicator = styled
	}
	fmt.Fprintf(p.Out, "%s %s\n", indicator, fmt.Sprintf(format, args...))
}

// Tree writes a rendered tree
func (p *Printer) Tree(root *style.Node) {
	fmt.Fprintln(p.Out, style.RenderTree(root))
}

// Markdown writes md, rendered with glamour on color terminals
func (p *Printer) Markdown(md string) {
	fmt.Fprint(p.Out, style.RenderMarkdown(md, p.Width, p.Color()))
}

// Encode writes v as indented JSON
func (p *Printer) Encode(v interface{}) error {
	encoder := json.NewEncoder(p.Out)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}
