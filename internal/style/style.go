// Package style renders CLI output, with lipgloss colours when the output is
// a terminal and plain text otherwise.
package style

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

var (
	colorPass   = lipgloss.AdaptiveColor{Light: "#86b300", Dark: "#c2d94c"}
	colorWarn   = lipgloss.AdaptiveColor{Light: "#f2ae49", Dark: "#ffb454"}
	colorFail   = lipgloss.AdaptiveColor{Light: "#f07171", Dark: "#f07178"}
	colorMuted  = lipgloss.AdaptiveColor{Light: "#828c99", Dark: "#6c7680"}
	colorAccent = lipgloss.AdaptiveColor{Light: "#399ee6", Dark: "#59c2ff"}
)

var (
	HeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	PassStyle   = lipgloss.NewStyle().Foreground(colorPass)
	WarnStyle   = lipgloss.NewStyle().Foreground(colorWarn)
	FailStyle   = lipgloss.NewStyle().Bold(true).Foreground(colorFail)
	DimStyle    = lipgloss.NewStyle().Foreground(colorMuted)
)

// Printer writes styled lines to w.
type Printer struct {
	w     io.Writer
	color bool
}

// NewPrinter returns a printer that colours output only when w is a terminal.
func NewPrinter(w io.Writer) *Printer {
	color := false
	if f, ok := w.(*os.File); ok {
		color = term.IsTerminal(int(f.Fd()))
	}
	return &Printer{w: w, color: color}
}

// NewPlainPrinter returns a printer that never colours output.
func NewPlainPrinter(w io.Writer) *Printer {
	return &Printer{w: w}
}

func (p *Printer) render(s lipgloss.Style, text string) string {
	if !p.color {
		return text
	}
	return s.Render(text)
}

func (p *Printer) Header(text string) string { return p.render(HeaderStyle, text) }
func (p *Printer) Pass(text string) string   { return p.render(PassStyle, text) }
func (p *Printer) Warn(text string) string   { return p.render(WarnStyle, text) }
func (p *Printer) Fail(text string) string   { return p.render(FailStyle, text) }
func (p *Printer) Dim(text string) string    { return p.render(DimStyle, text) }

// Println writes a line built from the already styled parts.
func (p *Printer) Println(parts ...any) {
	fmt.Fprintln(p.w, parts...)
}

// Printf writes formatted output.
func (p *Printer) Printf(format string, args ...any) {
	fmt.Fprintf(p.w, format, args...)
}
