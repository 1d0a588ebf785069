package output

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/dotcommander/gradecast/internal/report"
	"github.com/dotcommander/gradecast/internal/types"
)

// ConsoleFormatter formats output for console display
type ConsoleFormatter struct {
	w         io.Writer
	quiet     bool
	verbose   bool
	colorize  bool
	animate   bool
	startTime time.Time
}

// NewConsoleFormatter creates a new ConsoleFormatter. Colour is applied only
// when color is set and w is a terminal.
func NewConsoleFormatter(w io.Writer, quiet, verbose, color bool) *ConsoleFormatter {
	tty := isTerminal(w)
	return &ConsoleFormatter{
		w:         w,
		quiet:     quiet,
		verbose:   verbose,
		colorize:  color && tty,
		animate:   color && tty,
		startTime: time.Now(),
	}
}

func (f *ConsoleFormatter) style(color string) lipgloss.Style {
	if !f.colorize {
		return lipgloss.NewStyle()
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(color))
}

func (f *ConsoleFormatter) statusStyle(s report.Status) lipgloss.Style {
	switch s {
	case report.StatusFailed, report.StatusNotAchievable:
		return f.style("9") // red
	case report.StatusHurdleBound:
		return f.style("3") // yellow
	default:
		return f.style("10") // green
	}
}

func statusIcon(s report.Status) string {
	switch s {
	case report.StatusFailed, report.StatusNotAchievable:
		return "✗"
	case report.StatusHurdleBound:
		return "⚠"
	default:
		return "✓"
	}
}

// FormatPredictions prints one block per prediction.
func (f *ConsoleFormatter) FormatPredictions(predictions []report.Prediction) error {
	if f.quiet {
		return nil
	}

	bold := f.style("15").Bold(f.colorize)
	dim := f.style("8")

	for i, p := range predictions {
		if i > 0 {
			fmt.Fprintln(f.w)
		}
		style := f.statusStyle(p.Status)
		name := p.Scenario.Name
		if name == "" {
			name = "next assessment"
		}

		fmt.Fprintf(f.w, "%s %s\n", style.Render(statusIcon(p.Status)), bold.Render(p.Semester+" / "+p.Course))
		fmt.Fprintf(f.w, "    %s\n", dim.Render(fmt.Sprintf("earned %s of %s weight so far", pct(p.WeightedToDate), pct(p.UsedWeight))))

		for _, failure := range p.Failures {
			fmt.Fprintf(f.w, "    %s %s scored %s, hurdle %s\n",
				f.style("9").Render("✘"), failure.Name, pct(failure.Achieved), pct(failure.Required))
		}

		if !p.Result.Failed() {
			fmt.Fprintf(f.w, "    To reach %s: need %s on %s (weight %s, hurdle %s)\n",
				pct(p.Scenario.TargetScore), style.Render(requirementText(p)), name,
				pct(p.Scenario.Weight), pct(p.Scenario.HurdlePercent))
			if f.verbose && p.Status == report.StatusHurdleBound {
				fmt.Fprintf(f.w, "    %s\n", dim.Render("arithmetic requirement "+pct(p.RequiredRaw)))
			}
		}
		fmt.Fprintf(f.w, "    %s\n", style.Render(p.Status.Label()))
	}
	return nil
}

// FormatStandings prints an aligned table of course standings.
func (f *ConsoleFormatter) FormatStandings(standings []report.Standing) error {
	if f.quiet {
		return nil
	}
	if len(standings) == 0 {
		fmt.Fprintln(f.w, "No courses found")
		return nil
	}

	nameWidth := len("Course")
	for _, st := range standings {
		if n := len(st.Semester + " / " + st.Course); n > nameWidth {
			nameWidth = n
		}
	}

	dim := f.style("8")
	header := fmt.Sprintf("%-*s  %8s  %9s  %8s  %s", nameWidth, "Course", "Used", "Remaining", "Earned", "Outlook")
	fmt.Fprintln(f.w, dim.Render(header))

	for _, st := range standings {
		outlook, style := f.outlook(st)
		fmt.Fprintf(f.w, "%-*s  %8s  %9s  %8s  %s\n",
			nameWidth, st.Semester+" / "+st.Course,
			pct(st.UsedWeight), pct(st.RemainingWeight), pct(st.WeightedToDate),
			style.Render(outlook))

		if f.verbose && st.Error != "" {
			fmt.Fprintf(f.w, "    %s %s\n", f.style("9").Render("✘"), st.Error)
		}
		if f.verbose {
			for _, failure := range st.Failures {
				fmt.Fprintf(f.w, "    %s hurdle missed: %s scored %s, needed %s\n",
					f.style("9").Render("✘"), failure.Name, pct(failure.Achieved), pct(failure.Required))
			}
		}
	}
	return nil
}

// outlook summarises a standing in a few words.
func (f *ConsoleFormatter) outlook(st report.Standing) (string, lipgloss.Style) {
	switch {
	case st.Error != "":
		return "invalid records, run check", f.style("9")
	case st.Passed != nil && *st.Passed:
		return "passed", f.style("10")
	case st.Passed != nil:
		return "not passed", f.style("9")
	case len(st.Failures) > 0:
		return fmt.Sprintf("failed (%d hurdle missed)", len(st.Failures)), f.style("9")
	case st.Next == nil:
		return "cannot evaluate, run check", f.style("3")
	default:
		return fmt.Sprintf("need %s on remaining to reach %s", requirementText(*st.Next), pct(st.PassingLine)),
			f.statusStyle(st.Next.Status)
	}
}

// FormatCheck prints issues per file and a closing summary.
func (f *ConsoleFormatter) FormatCheck(summary *report.CheckSummary) error {
	if f.quiet {
		return nil
	}

	for _, result := range summary.Results {
		if len(result.Issues) == 0 && !f.verbose {
			continue
		}

		status := "✓"
		fileStyle := f.style("10")
		if result.Errors() > 0 {
			status = "✗"
			fileStyle = f.style("9")
		} else if result.Warnings() > 0 {
			status = "⚠"
			fileStyle = f.style("3")
		}
		fmt.Fprintf(f.w, "%s %s\n", fileStyle.Render(status), result.File)

		for _, issue := range result.Issues {
			f.printIssue(issue)
		}
	}

	if summary.TotalErrors == 0 && summary.TotalWarnings == 0 {
		msg := fmt.Sprintf("✓ %d %s valid", summary.Files, plural(summary.Files, "gradebook", "gradebooks"))
		if f.animate {
			printCelebration(f.w, msg)
		} else {
			fmt.Fprintln(f.w, f.style("10").Bold(f.colorize).Render(msg))
		}
		return nil
	}

	duration := time.Since(f.startTime)
	fmt.Fprintf(f.w, "\n%d/%d clean, %d errors, %d warnings (%v)\n",
		summary.Files-summary.FilesWithIssues, summary.Files,
		summary.TotalErrors, summary.TotalWarnings,
		duration.Round(time.Millisecond))
	return nil
}

// printIssue prints a validation issue with appropriate styling
func (f *ConsoleFormatter) printIssue(issue types.ValidationError) {
	prefix := "    "
	var style lipgloss.Style
	switch issue.Severity {
	case types.SeverityError:
		prefix = "    ✘ "
		style = f.style("9")
	case types.SeverityWarning:
		prefix = "    ⚠ "
		style = f.style("3")
	default:
		style = f.style("7")
	}

	location := issue.Path
	if issue.Line > 0 {
		location = fmt.Sprintf("line %d", issue.Line)
		if issue.Path != "" {
			location += " " + issue.Path
		}
	}
	if location == "" {
		fmt.Fprintf(f.w, "%s%s\n", prefix, style.Render(issue.Message))
		return
	}
	fmt.Fprintf(f.w, "%s%s: %s\n", prefix, style.Render(location), issue.Message)
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
