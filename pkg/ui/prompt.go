package ui

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/IsaccBarker/Greatness/pkg/install"
	"github.com/IsaccBarker/Greatness/pkg/style"
	"golang.org/x/term"
)

const ctrlC = 3

// Prompter asks yes/no questions
type Prompter struct {
	In    io.Reader
	Out   io.Writer
	Color bool

	reader *bufio.Reader
}

// NewPrompter returns a prompter reading from in and writing to out
func NewPrompter(in io.Reader, out io.Writer, color bool) *Prompter {
	return &Prompter{In: in, Out: out, Color: color}
}

// Ask prints question and waits for an answer. Only y or yes means yes;
// anything else, including end of input, means no. On a terminal a single
// key press answers.
func (p *Prompter) Ask(question string) (bool, error) {
	fmt.Fprintf(p.Out, "%s [y/N]: ", question)

	if f, ok := p.In.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		if answer, ok := p.readKey(f); ok {
			return answer, nil
		}
	}
	return p.readLine()
}

// readKey reads one key in raw mode. ok is false when raw mode is not
// available.
func (p *Prompter) readKey(f *os.File) (answer bool, ok bool) {
	fd := int(f.Fd())
	old, err := term.MakeRaw(fd)
	if err != nil {
		return false, false
	}
	defer func() { _ = term.Restore(fd, old) }()

	buf := make([]byte, 1)
	if _, err := f.Read(buf); err != nil || buf[0] == ctrlC {
		fmt.Fprint(p.Out, "\r\n")
		return false, true
	}
	fmt.Fprintf(p.Out, "%c\r\n", buf[0])
	return buf[0] == 'y' || buf[0] == 'Y', true
}

func (p *Prompter) readLine() (bool, error) {
	if p.reader == nil {
		p.reader = bufio.NewReader(p.In)
	}
	line, err := p.reader.ReadString('\n')
	if err != nil && err != io.EOF {
		return false, err
	}
	if err == io.EOF && line == "" {
		fmt.Fprintln(p.Out)
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true, nil
	}
	return false, nil
}

// ConfirmOverwrite shows what would change at the destination and asks
// whether to replace it. It satisfies install.ConfirmFunc.
func (p *Prompter) ConfirmOverwrite(req install.ConfirmRequest) (bool, error) {
	fmt.Fprintf(p.Out, "%s already exists.\n", req.Destination)
	if req.Diff != "" {
		fmt.Fprint(p.Out, p.colorDiff(req.Diff))
		if !strings.HasSuffix(req.Diff, "\n") {
			fmt.Fprintln(p.Out)
		}
	}
	return p.Ask(fmt.Sprintf("Overwrite %s? A backup will be kept.", req.Destination))
}

func (p *Prompter) colorDiff(diff string) string {
	if !p.Color {
		return diff
	}
	lines := strings.SplitAfter(diff, "\n")
	for i, line := range lines {
		switch {
		case strings.HasPrefix(line, "+++"), strings.HasPrefix(line, "---"):
			lines[i] = style.TitleStyle.Render(strings.TrimSuffix(line, "\n")) + suffix(line)
		case strings.HasPrefix(line, "+"):
			lines[i] = style.SuccessStyle.Render(strings.TrimSuffix(line, "\n")) + suffix(line)
		case strings.HasPrefix(line, "-"):
			lines[i] = style.ErrorStyle.Render(strings.TrimSuffix(line, "\n")) + suffix(line)
		case strings.HasPrefix(line, "@@"):
			lines[i] = style.InfoStyle.Render(strings.TrimSuffix(line, "\n")) + suffix(line)
		}
	}
	return strings.Join(lines, "")
}

func suffix(line string) string {
	if strings.HasSuffix(line, "\n") {
		return "\n"
	}
	return ""
}
