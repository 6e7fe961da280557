package console

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/engr-rabbi/Student-Grade-Management-System/internal/application/query"
)

// ═══════════════════════════════════════════════════════════════════════════
// CONSOLE PRESENTER
// ═══════════════════════════════════════════════════════════════════════════

// Presenter formats query results and status messages for the console.
type Presenter struct {
	out io.Writer

	title   lipgloss.Style
	header  lipgloss.Style
	success lipgloss.Style
	errMsg  lipgloss.Style
	warn    lipgloss.Style
	muted   lipgloss.Style
}

// NewPresenter creates a Presenter writing to out.
func NewPresenter(out io.Writer) *Presenter {
	return &Presenter{
		out:     out,
		title:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12")),
		header:  lipgloss.NewStyle().Bold(true).Underline(true),
		success: lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		errMsg:  lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
		warn:    lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
		muted:   lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
	}
}

// Banner prints the application title once at startup.
func (p *Presenter) Banner(name string) {
	fmt.Fprintln(p.out, p.title.Render("=== "+name+" ==="))
}

// Menu prints the numbered action menu.
func (p *Presenter) Menu(entries []menuEntry) {
	fmt.Fprintln(p.out)
	fmt.Fprintln(p.out, p.header.Render("Menu"))
	for _, e := range entries {
		fmt.Fprintf(p.out, "  %s. %s\n", e.key, e.label)
	}
}

// Table prints all records in insertion order.
func (p *Presenter) Table(result *query.ListStudentsResult) {
	if result.TotalCount == 0 {
		fmt.Fprintln(p.out, p.muted.Render("No records found."))
		return
	}

	fmt.Fprintln(p.out)
	fmt.Fprintln(p.out, p.header.Render(fmt.Sprintf("%-12s %-24s %-6s %-6s", "ID", "Name", "GPA", "Grade")))
	for _, s := range result.Students {
		fmt.Fprintf(p.out, "%-12s %-24s %-6s %-6s\n", s.ID, s.Name, s.GPAFormatted, s.Letter)
	}
	fmt.Fprintln(p.out, p.muted.Render(fmt.Sprintf("%d record(s)", result.TotalCount)))
}

// Card prints a single record with its per-subject marks.
func (p *Presenter) Card(s query.StudentDTO) {
	fmt.Fprintln(p.out)
	fmt.Fprintf(p.out, "%s %s\n", p.header.Render("ID:"), s.ID)
	fmt.Fprintf(p.out, "%s %s\n", p.header.Render("Name:"), s.Name)
	for _, m := range s.Marks {
		fmt.Fprintf(p.out, "  %-20s %g\n", m.Subject, m.Score)
	}
	fmt.Fprintf(p.out, "%s %s (%s)\n", p.header.Render("GPA:"), s.GPAFormatted, s.Letter)
}

// Summary prints aggregate statistics for the whole record store.
func (p *Presenter) Summary(result *query.ClassSummaryResult) {
	if result.TotalStudents == 0 {
		fmt.Fprintln(p.out, p.muted.Render("No records to summarize."))
		return
	}

	fmt.Fprintln(p.out)
	fmt.Fprintln(p.out, p.header.Render("Class Summary"))
	fmt.Fprintf(p.out, "  Students:    %d\n", result.TotalStudents)
	fmt.Fprintf(p.out, "  Average GPA: %.2f (%s)\n", result.AverageGPA, result.AverageLetter)
	fmt.Fprintf(p.out, "  Highest GPA: %.2f (%s)\n", result.HighestGPA, result.HighestLetter)
	fmt.Fprintf(p.out, "  Lowest GPA:  %.2f (%s)\n", result.LowestGPA, result.LowestLetter)
	fmt.Fprintln(p.out, "  Distribution:")
	for _, b := range result.Distribution {
		bar := strings.Repeat("#", b.Count)
		fmt.Fprintf(p.out, "    %-2s %3d  %5.1f%%  %s\n", b.Letter, b.Count, b.Percent, bar)
	}
}

// Success prints a highlighted success message.
func (p *Presenter) Success(format string, args ...any) {
	fmt.Fprintln(p.out, p.success.Render(fmt.Sprintf(format, args...)))
}

// Error prints a highlighted error message.
func (p *Presenter) Error(format string, args ...any) {
	fmt.Fprintln(p.out, p.errMsg.Render("Error: "+fmt.Sprintf(format, args...)))
}

// Warning prints a highlighted warning message.
func (p *Presenter) Warning(format string, args ...any) {
	fmt.Fprintln(p.out, p.warn.Render("Warning: "+fmt.Sprintf(format, args...)))
}

// Info prints a muted informational message.
func (p *Presenter) Info(format string, args ...any) {
	fmt.Fprintln(p.out, p.muted.Render(fmt.Sprintf(format, args...)))
}
