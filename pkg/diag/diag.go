// Package diag renders parse errors as caret-annotated source snippets:
//
//	main.rift:2:7: error: expected expression, got ';'
//	  1 | print 1;
//	  2 | print ;
//	    |       ^
//	  3 | print 3;
package diag

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/raymyers/rift/pkg/config"
	"github.com/raymyers/rift/pkg/parser"
)

var (
	colorError  = lipgloss.Color("#EF4444") // Red
	colorMuted  = lipgloss.Color("#6B7280") // Gray
	colorAccent = lipgloss.Color("#F59E0B") // Amber
)

// Options configures a Renderer
type Options struct {
	Color   string // config.ColorAuto, config.ColorAlways or config.ColorNever
	Context int    // source lines shown before and after the error line
}

// Renderer writes diagnostics to an io.Writer
type Renderer struct {
	w       io.Writer
	color   bool
	context int

	header lipgloss.Style
	label  lipgloss.Style
	gutter lipgloss.Style
	caret  lipgloss.Style
}

// NewRenderer creates a Renderer. In auto mode color is used only when w is
// a terminal that supports it.
func NewRenderer(w io.Writer, opts Options) *Renderer {
	lr := lipgloss.NewRenderer(w)
	color := false
	switch opts.Color {
	case config.ColorAlways:
		lr.SetColorProfile(termenv.ANSI256)
		color = true
	case config.ColorNever:
	default:
		color = lr.ColorProfile() != termenv.Ascii
	}

	context := opts.Context
	if context < 0 {
		context = 0
	}

	return &Renderer{
		w:       w,
		color:   color,
		context: context,
		header:  lr.NewStyle().Bold(true),
		label:   lr.NewStyle().Foreground(colorError).Bold(true),
		gutter:  lr.NewStyle().Foreground(colorMuted),
		caret:   lr.NewStyle().Foreground(colorAccent).Bold(true),
	}
}

func (r *Renderer) paint(style lipgloss.Style, s string) string {
	if !r.color {
		return s
	}
	return style.Render(s)
}

// RenderAll renders every error in order followed by a summary line
func (r *Renderer) RenderAll(filename, src string, errs []*parser.ParseError) {
	for _, err := range errs {
		r.Render(filename, src, err)
	}
	if len(errs) > 0 {
		fmt.Fprintln(r.w, Summary(len(errs)))
	}
}

// Summary returns "1 error" or "N errors"
func Summary(n int) string {
	if n == 1 {
		return "1 error"
	}
	return fmt.Sprintf("%d errors", n)
}

// Render writes one diagnostic. Positions outside src are clamped so the
// snippet can always be drawn.
func (r *Renderer) Render(filename, src string, err *parser.ParseError) {
	location := fmt.Sprintf("%d:%d", err.Line, err.Column)
	if filename != "" {
		location = filename + ":" + location
	}
	fmt.Fprintf(r.w, "%s %s %s\n",
		r.paint(r.header, location+":"),
		r.paint(r.label, "error:"),
		err.Msg+", got "+err.Near())

	lines := strings.Split(src, "\n")
	lineIdx := clamp(err.Line-1, 0, len(lines)-1)
	first := max(lineIdx-r.context, 0)
	last := min(lineIdx+r.context, len(lines)-1)
	// A trailing newline leaves an empty last element that is not a real line
	if last == len(lines)-1 && last > lineIdx && lines[last] == "" {
		last--
	}

	width := len(strconv.Itoa(last + 1))
	for i := first; i <= last; i++ {
		num := fmt.Sprintf("%*d |", width+2, i+1)
		fmt.Fprintf(r.w, "%s %s\n", r.paint(r.gutter, num), lines[i])
		if i == lineIdx {
			pad := strings.Repeat(" ", width+2) + " |"
			fmt.Fprintf(r.w, "%s %s%s\n", r.paint(r.gutter, pad), caretPrefix(lines[i], err.Column), r.paint(r.caret, "^"))
		}
	}
}

// caretPrefix returns the whitespace that puts a caret under the 1-based
// column of line, keeping tabs so the caret lines up in a terminal.
func caretPrefix(line string, column int) string {
	n := clamp(column-1, 0, len(line))
	var b strings.Builder
	for i := 0; i < n; i++ {
		if line[i] == '\t' {
			b.WriteByte('\t')
		} else {
			b.WriteByte(' ')
		}
	}
	return b.String()
}

func clamp(v, lo, hi int) int {
	if hi < lo {
		return lo
	}
	return min(max(v, lo), hi)
}
