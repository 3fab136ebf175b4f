// Package output renders ship's user-facing console output.
package output

import (
	"fmt"
	"io"
	"os"

	"github.com/CodeMonkeyCybersecurity/ship/pkg/git"
	"github.com/charmbracelet/lipgloss"
)

var (
	ColorAdded    = lipgloss.Color("#00ff00")
	ColorModified = lipgloss.Color("#ffaa00")
	ColorDeleted  = lipgloss.Color("#ff0000")
	ColorInfo     = lipgloss.Color("#0099ff")
	ColorMuted    = lipgloss.Color("#666666")
)

// Printer writes styled lines to one writer. Colour is dropped automatically
// when the writer is not a terminal.
type Printer struct {
	w io.Writer

	added    lipgloss.Style
	modified lipgloss.Style
	deleted  lipgloss.Style
	title    lipgloss.Style
	muted    lipgloss.Style
	success  lipgloss.Style
	warn     lipgloss.Style
	failure  lipgloss.Style
}

// NewPrinter builds a Printer whose styles are rendered for w.
func NewPrinter(w io.Writer) *Printer {
	r := lipgloss.NewRenderer(w)
	return &Printer{
		w:        w,
		added:    r.NewStyle().Foreground(ColorAdded),
		modified: r.NewStyle().Foreground(ColorModified),
		deleted:  r.NewStyle().Foreground(ColorDeleted),
		title:    r.NewStyle().Bold(true).Foreground(ColorInfo),
		muted:    r.NewStyle().Foreground(ColorMuted),
		success:  r.NewStyle().Bold(true).Foreground(ColorAdded),
		warn:     r.NewStyle().Foreground(ColorModified),
		failure:  r.NewStyle().Bold(true).Foreground(ColorDeleted),
	}
}

// Stdout prints to the process's standard output.
func Stdout() *Printer {
	return NewPrinter(os.Stdout)
}

func (p *Printer) styleFor(kind git.ChangeKind) lipgloss.Style {
	switch kind {
	case git.Added:
		return p.added
	case git.Deleted:
		return p.deleted
	default:
		return p.modified
	}
}

// Changes lists one line per change, prefixed with its kind symbol.
func (p *Printer) Changes(changes []git.Change) {
	for _, c := range changes {
		p.printf("  %s %s\n", p.styleFor(c.Kind).Render(c.Kind.Symbol()), c.Path)
	}
}

// Summary prints the number of listed changes and the line totals of the
// staged change set.
func (p *Printer) Summary(files int, stats git.Stats) {
	noun := "files"
	if files == 1 {
		noun = "file"
	}
	p.printf("%s %d %s changed, %s, %s\n",
		p.title.Render("Summary:"),
		files, noun,
		p.added.Render(fmt.Sprintf("+%d", stats.Insertions)),
		p.deleted.Render(fmt.Sprintf("-%d", stats.Deletions)))
}

// Success reports a completed step.
func (p *Printer) Success(format string, args ...any) {
	p.printf("%s %s\n", p.success.Render("✓"), fmt.Sprintf(format, args...))
}

// Notice prints secondary information.
func (p *Printer) Notice(format string, args ...any) {
	p.printf("%s\n", p.muted.Render(fmt.Sprintf(format, args...)))
}

// Warn prints a non-fatal problem.
func (p *Printer) Warn(format string, args ...any) {
	p.printf("%s %s\n", p.warn.Render("!"), fmt.Sprintf(format, args...))
}

// Failure prints a fatal problem.
func (p *Printer) Failure(format string, args ...any) {
	p.printf("%s %s\n", p.failure.Render("✗"), fmt.Sprintf(format, args...))
}

func (p *Printer) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(p.w, format, args...)
}
