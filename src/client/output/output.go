// Package output renders command results as tables, plain text or JSON.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// Format is an output format
type Format string

const (
	Table Format = "table"
	JSON  Format = "json"
	Plain Format = "plain"
)

// ParseFormat validates a --output value. Empty selects DefaultFormat(os.Stdout).
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return DefaultFormat(os.Stdout), nil
	case Table, JSON, Plain:
		return f, nil
	default:
		return "", fmt.Errorf("invalid output format %q (use table, json or plain)", s)
	}
}

// DefaultFormat is table on a terminal and JSON when piped
func DefaultFormat(w io.Writer) Format {
	if isTerminal(w) {
		return Table
	}
	return JSON
}

// ColorEnabled resolves the output.color setting (auto, always, never) for w.
// --no-color and NO_COLOR always win.
func ColorEnabled(setting string, noColor bool, w io.Writer) bool {
	if noColor || os.Getenv("NO_COLOR") != "" {
		return false
	}
	switch strings.ToLower(setting) {
	case "always", "true", "on":
		return true
	case "never", "false", "off":
		return false
	default:
		return isTerminal(w)
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()))
}

// Width returns the terminal width of w, or fallback when w is not a terminal
func Width(w io.Writer, fallback int) int {
	if f, ok := w.(*os.File); ok {
		if cols, _, err := term.GetSize(int(f.Fd())); err == nil && cols > 0 {
			return cols
		}
	}
	return fallback
}

// Dracula palette, shared with the TUI
var (
	Cyan    = lipgloss.Color("#8be9fd")
	Green   = lipgloss.Color("#50fa7b")
	Red     = lipgloss.Color("#ff5555")
	Yellow  = lipgloss.Color("#f1fa8c")
	Purple  = lipgloss.Color("#bd93f9")
	Comment = lipgloss.Color("#6272a4")
	White   = lipgloss.Color("#f8f8f2")
	Gold    = lipgloss.Color("#ffd700")
	Silver  = lipgloss.Color("#c0c0c0")
	Bronze  = lipgloss.Color("#cd7f32")
)

// Printer writes styled output for one command
type Printer struct {
	w      io.Writer
	format Format
	color  bool
	sym    Symbols
	r      *lipgloss.Renderer
}

// New returns a Printer writing to w
func New(w io.Writer, format Format, color bool) *Printer {
	r := lipgloss.NewRenderer(w)
	if color {
		r.SetColorProfile(termenv.TrueColor)
	} else {
		r.SetColorProfile(termenv.Ascii)
	}
	return &Printer{w: w, format: format, color: color, sym: GetSymbols(), r: r}
}

// Writer returns the underlying writer
func (p *Printer) Writer() io.Writer { return p.w }

// Format returns the selected output format
func (p *Printer) Format() Format { return p.format }

// Symbols returns the glyph set in use
func (p *Printer) Symbols() Symbols { return p.sym }

// JSON writes v as indented JSON
func (p *Printer) JSON(v any) error {
	enc := json.NewEncoder(p.w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func (p *Printer) Println(a ...any) {
	fmt.Fprintln(p.w, a...)
}

func (p *Printer) Printf(format string, a ...any) {
	fmt.Fprintf(p.w, format, a...)
}

// Color renders text in c
func (p *Printer) Color(c lipgloss.Color, text string) string {
	return p.r.NewStyle().Foreground(c).Render(text)
}

// Bold renders text in bold
func (p *Printer) Bold(text string) string {
	return p.r.NewStyle().Bold(true).Render(text)
}

// Muted renders secondary text
func (p *Printer) Muted(text string) string {
	return p.Color(Comment, text)
}

// Accent renders highlighted values
func (p *Printer) Accent(text string) string {
	return p.Color(Cyan, text)
}

// Heading prints a title followed by an optional subtitle and a rule
func (p *Printer) Heading(title, subtitle string, width int) {
	p.Println()
	p.Println(p.Color(Cyan, title))
	if subtitle != "" {
		p.Println(p.Muted("   " + subtitle))
	}
	p.Println()
	p.Rule(width)
	p.Println()
}

// Rule prints a horizontal rule width cells wide
func (p *Printer) Rule(width int) {
	p.Println(p.Color(Cyan, strings.Repeat(p.sym.Rule, width)))
}

// Field prints an indented "Label: value" line with the label padded to pad cells
func (p *Printer) Field(label, value string, pad int) {
	p.Printf("  %s %s\n", p.Muted(fmt.Sprintf("%-*s", pad, label+":")), value)
}

// Success prints a confirmation line
func (p *Printer) Success(msg string) {
	p.Println(p.Color(Green, p.sym.Success+" "+msg))
}

// Warn prints a warning line
func (p *Printer) Warn(msg string) {
	p.Println(p.Color(Yellow, p.sym.Warning+" "+msg))
}

// Fail prints a failure line
func (p *Printer) Fail(msg string) {
	p.Println(p.Color(Red, p.sym.Error+" "+msg))
}

// Hint prints an indented muted line
func (p *Printer) Hint(msg string) {
	p.Println(p.Muted("  " + msg))
}

// RankColor is gold, silver and bronze for the podium and white otherwise
func RankColor(rank int) lipgloss.Color {
	switch rank {
	case 1:
		return Gold
	case 2:
		return Silver
	case 3:
		return Bronze
	default:
		return White
	}
}

// Box frames text, one line per input line
func (p *Printer) Box(text string, width int) {
	border := lipgloss.RoundedBorder()
	if p.sym == ASCIISymbols {
		border = lipgloss.Border{
			Top: "-", Bottom: "-", Left: "|", Right: "|",
			TopLeft: "+", TopRight: "+", BottomLeft: "+", BottomRight: "+",
		}
	}
	box := p.r.NewStyle().
		Border(border).
		BorderForeground(Comment).
		Padding(0, 1).
		Width(width).
		Render(text)
	for _, line := range strings.Split(box, "\n") {
		p.Println("  " + line)
	}
}

// Table prints rows aligned under headers
func (p *Printer) Table(headers []string, rows [][]string) error {
	tw := tabwriter.NewWriter(p.w, 0, 0, 2, ' ', 0)
	if len(headers) > 0 {
		fmt.Fprintln(tw, strings.Join(headers, "\t"))
	}
	for _, row := range rows {
		fmt.Fprintln(tw, strings.Join(row, "\t"))
	}
	return tw.Flush()
}

// Truncate shortens s to n runes, marking the cut with an ellipsis
func Truncate(s string, n int) string {
	r := []rune(s)
	if n <= 0 || len(r) <= n {
		return s
	}
	if n <= 3 {
		return string(r[:n])
	}
	return string(r[:n-3]) + "..."
}
