// Package output formats human-facing CLI output.
package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// styles are the marker and header styles of a colored Writer.
type styles struct {
	success lipgloss.Style
	warning lipgloss.Style
	err     lipgloss.Style
	header  lipgloss.Style
}

func newStyles(r *lipgloss.Renderer) *styles {
	return &styles{
		success: r.NewStyle().Foreground(lipgloss.Color("42")),
		warning: r.NewStyle().Foreground(lipgloss.Color("214")),
		err:     r.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
		header:  r.NewStyle().Bold(true),
	}
}

// Writer provides formatted output for CLI.
type Writer struct {
	out    io.Writer
	styles *styles // nil when color is off
}

// New creates a Writer without color.
func New(out io.Writer) *Writer {
	return &Writer{out: out}
}

// NewColor creates a Writer that styles markers and table headers when
// useColor is set. The caller decides whether out is a terminal.
func NewColor(out io.Writer, useColor bool) *Writer {
	w := New(out)
	if useColor {
		r := lipgloss.NewRenderer(out)
		r.SetColorProfile(termenv.ANSI256)
		w.styles = newStyles(r)
	}
	return w
}

func (w *Writer) render(pick func(*styles) lipgloss.Style, text string) string {
	if w.styles == nil {
		return text
	}
	return pick(w.styles).Render(text)
}

// Status prints a message behind a marker, or indented when marker is empty.
// Write errors are ignored for console output.
func (w *Writer) Status(marker, msg string) {
	if marker != "" {
		_, _ = fmt.Fprintf(w.out, "%s %s\n", marker, msg)
		return
	}
	_, _ = fmt.Fprintf(w.out, "  %s\n", msg)
}

// Statusf prints a formatted status message.
func (w *Writer) Statusf(marker, format string, args ...any) {
	w.Status(marker, fmt.Sprintf(format, args...))
}

// Success prints a success message.
func (w *Writer) Success(msg string) {
	w.Status(w.render(func(s *styles) lipgloss.Style { return s.success }, "✓"), msg)
}

// Successf prints a formatted success message.
func (w *Writer) Successf(format string, args ...any) {
	w.Success(fmt.Sprintf(format, args...))
}

// Warning prints a warning message.
func (w *Writer) Warning(msg string) {
	w.Status(w.render(func(s *styles) lipgloss.Style { return s.warning }, "!"), msg)
}

// Warningf prints a formatted warning message.
func (w *Writer) Warningf(format string, args ...any) {
	w.Warning(fmt.Sprintf(format, args...))
}

// Error prints an error message.
func (w *Writer) Error(msg string) {
	w.Status(w.render(func(s *styles) lipgloss.Style { return s.err }, "✗"), msg)
}

// Errorf prints a formatted error message.
func (w *Writer) Errorf(format string, args ...any) {
	w.Error(fmt.Sprintf(format, args...))
}

// Newline prints an empty line.
func (w *Writer) Newline() {
	_, _ = fmt.Fprintln(w.out)
}

// Table prints rows in left-aligned columns separated by two spaces.
// The header row is bold when color is enabled. Trailing spaces are trimmed.
func (w *Writer) Table(header []string, rows [][]string) {
	all := append([][]string{header}, rows...)

	var widths []int
	for _, row := range all {
		for i, cell := range row {
			if i >= len(widths) {
				widths = append(widths, 0)
			}
			widths[i] = max(widths[i], lipgloss.Width(cell))
		}
	}

	for r, row := range all {
		var b strings.Builder
		for i, cell := range row {
			b.WriteString(cell)
			if i < len(row)-1 {
				b.WriteString(strings.Repeat(" ", widths[i]-lipgloss.Width(cell)+2))
			}
		}
		line := strings.TrimRight(b.String(), " ")
		if r == 0 {
			line = w.render(func(s *styles) lipgloss.Style { return s.header }, line)
		}
		_, _ = fmt.Fprintln(w.out, line)
	}
}
