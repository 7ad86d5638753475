// Package output renders command results for terminals, scripts, and
// agents. Auto mode picks styled text on a TTY and markdown when piped, so
// tool output stays readable in both contexts.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// Mode selects the output format.
type Mode string

const (
	ModeAuto     Mode = "auto"
	ModeText     Mode = "text"
	ModeMarkdown Mode = "markdown"
	ModeJSON     Mode = "json"
)

var (
	headerStyle  = lipgloss.NewStyle().Bold(true)
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// Renderer writes command output in the selected mode.
type Renderer struct {
	out    io.Writer
	errOut io.Writer
	mode   Mode
	styled bool
}

// NewRenderer creates a renderer writing to out and errOut. An empty mode
// means ModeAuto.
func NewRenderer(out, errOut io.Writer, mode Mode) *Renderer {
	r := &Renderer{out: out, errOut: errOut, mode: mode}
	if r.mode == "" {
		r.mode = ModeAuto
	}
	r.styled = r.EffectiveMode() == ModeText && !termenv.EnvNoColor()
	return r
}

// EffectiveMode resolves ModeAuto: styled text on a terminal, markdown when
// piped or redirected.
func (r *Renderer) EffectiveMode() Mode {
	if r.mode != ModeAuto {
		return r.mode
	}
	if f, ok := r.out.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		return ModeText
	}
	return ModeMarkdown
}

// Println writes a plain line to the output stream.
func (r *Renderer) Println(s string) {
	_, _ = fmt.Fprintln(r.out, s)
}

// Printf writes formatted text to the output stream.
func (r *Renderer) Printf(format string, args ...any) {
	_, _ = fmt.Fprintf(r.out, format, args...)
}

// Header writes a section heading: bold in text mode, a markdown heading
// otherwise.
func (r *Renderer) Header(level int, s string) {
	if r.EffectiveMode() == ModeMarkdown {
		r.Println(FormatHeader(level, s))
		return
	}
	if r.styled {
		r.Println(headerStyle.Render(s))
		return
	}
	r.Println(s)
}

// Success writes a success line.
func (r *Renderer) Success(s string) {
	if r.styled {
		r.Println(successStyle.Render("✓ " + s))
		return
	}
	r.Println(s)
}

// Errorf writes a diagnostic line to the error stream.
func (r *Renderer) Errorf(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	if r.styled {
		_, _ = fmt.Fprintln(r.errOut, errorStyle.Render("✗ "+msg))
		return
	}
	_, _ = fmt.Fprintln(r.errOut, "Error: "+msg)
}

// Muted writes a de-emphasized line.
func (r *Renderer) Muted(s string) {
	if r.styled {
		r.Println(mutedStyle.Render(s))
		return
	}
	r.Println(s)
}

// JSON writes v as indented JSON to the output stream.
func (r *Renderer) JSON(v any) error {
	enc := json.NewEncoder(r.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
