package output

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/dotcommander/gradecast/internal/report"
)

// MarkdownFormatter formats output as Markdown
type MarkdownFormatter struct {
	w          io.Writer
	verbose    bool
	outputFile string
	now        func() time.Time
}

// NewMarkdownFormatter creates a new MarkdownFormatter
func NewMarkdownFormatter(w io.Writer, verbose bool, outputFile string) *MarkdownFormatter {
	return &MarkdownFormatter{
		w:          w,
		verbose:    verbose,
		outputFile: outputFile,
		now:        time.Now,
	}
}

func (f *MarkdownFormatter) header(b *strings.Builder, title string) {
	fmt.Fprintf(b, "# %s\n\n", title)
	fmt.Fprintf(b, "**Generated:** %s\n\n", f.now().Format("2006-01-02 15:04:05"))
}

// FormatPredictions writes one section per prediction.
func (f *MarkdownFormatter) FormatPredictions(predictions []report.Prediction) error {
	var b strings.Builder
	f.header(&b, "Grade Prediction")

	if len(predictions) == 0 {
		b.WriteString("*No predictions.*\n")
	}

	for _, p := range predictions {
		fmt.Fprintf(&b, "## %s / %s\n\n", escapeCell(p.Semester), escapeCell(p.Course))
		b.WriteString("| Metric | Value |\n")
		b.WriteString("|--------|-------|\n")
		fmt.Fprintf(&b, "| Weight used | %s |\n", pct(p.UsedWeight))
		fmt.Fprintf(&b, "| Earned so far | %s |\n", pct(p.WeightedToDate))
		fmt.Fprintf(&b, "| Target | %s |\n", pct(p.Scenario.TargetScore))
		fmt.Fprintf(&b, "| Assessment weight | %s |\n", pct(p.Scenario.Weight))
		fmt.Fprintf(&b, "| Assessment hurdle | %s |\n", pct(p.Scenario.HurdlePercent))
		fmt.Fprintf(&b, "| Required | %s |\n", requirementText(p))
		fmt.Fprintf(&b, "| Status | `%s` |\n\n", p.Status)

		if len(p.Failures) > 0 {
			b.WriteString("### Missed hurdles\n\n")
			for _, failure := range p.Failures {
				fmt.Fprintf(&b, "- **%s** scored %s, hurdle %s\n", failure.Name, pct(failure.Achieved), pct(failure.Required))
			}
			b.WriteString("\n")
		}

		fmt.Fprintf(&b, "%s\n\n", p.Status.Label())
	}

	return emit(f.w, f.outputFile, []byte(b.String()))
}

// FormatStandings writes a standings table.
func (f *MarkdownFormatter) FormatStandings(standings []report.Standing) error {
	var b strings.Builder
	f.header(&b, "Semester Summary")

	if len(standings) == 0 {
		b.WriteString("*No courses found.*\n")
		return emit(f.w, f.outputFile, []byte(b.String()))
	}

	b.WriteString("| Semester | Course | Used | Remaining | Earned | Passing line | Outlook |\n")
	b.WriteString("|----------|--------|------|-----------|--------|--------------|---------|\n")
	for _, st := range standings {
		fmt.Fprintf(&b, "| %s | %s | %s | %s | %s | %s | %s |\n",
			escapeCell(st.Semester), escapeCell(st.Course),
			pct(st.UsedWeight), pct(st.RemainingWeight), pct(st.WeightedToDate),
			pct(st.PassingLine), markdownOutlook(st))
	}
	b.WriteString("\n")

	if f.verbose {
		for _, st := range standings {
			if len(st.Failures) == 0 {
				continue
			}
			fmt.Fprintf(&b, "### %s / %s missed hurdles\n\n", st.Semester, st.Course)
			for _, failure := range st.Failures {
				fmt.Fprintf(&b, "- **%s** scored %s, hurdle %s\n", failure.Name, pct(failure.Achieved), pct(failure.Required))
			}
			b.WriteString("\n")
		}
	}

	return emit(f.w, f.outputFile, []byte(b.String()))
}

func markdownOutlook(st report.Standing) string {
	switch {
	case st.Error != "":
		return "invalid records: " + escapeCell(st.Error)
	case st.Passed != nil && *st.Passed:
		return "passed"
	case st.Passed != nil:
		return "not passed"
	case len(st.Failures) > 0:
		return "failed"
	case st.Next == nil:
		return "cannot evaluate"
	default:
		return fmt.Sprintf("need %s (`%s`)", requirementText(*st.Next), st.Next.Status)
	}
}

// FormatCheck writes check results grouped by file.
func (f *MarkdownFormatter) FormatCheck(summary *report.CheckSummary) error {
	var b strings.Builder
	f.header(&b, "Gradebook Check")

	b.WriteString("## Summary\n\n")
	b.WriteString("| Metric | Count |\n")
	b.WriteString("|--------|-------|\n")
	fmt.Fprintf(&b, "| Files Checked | %d |\n", summary.Files)
	fmt.Fprintf(&b, "| Files With Issues | %d |\n", summary.FilesWithIssues)
	fmt.Fprintf(&b, "| Errors | %d |\n", summary.TotalErrors)
	fmt.Fprintf(&b, "| Warnings | %d |\n\n", summary.TotalWarnings)

	for _, result := range summary.Results {
		if len(result.Issues) == 0 && !f.verbose {
			continue
		}
		fmt.Fprintf(&b, "### %s\n\n", strings.TrimPrefix(result.File, "./"))
		if len(result.Issues) == 0 {
			b.WriteString("No issues.\n\n")
			continue
		}
		for _, issue := range result.Issues {
			fmt.Fprintf(&b, "- **%s**", issue.Severity)
			if issue.Path != "" {
				fmt.Fprintf(&b, " `%s`", issue.Path)
			}
			fmt.Fprintf(&b, " - %s", issue.Message)
			if issue.Line > 0 {
				fmt.Fprintf(&b, " (line %d)", issue.Line)
			}
			fmt.Fprintf(&b, " `[%s]`\n", issue.Source)
		}
		b.WriteString("\n")
	}

	b.WriteString("## Conclusion\n\n")
	if summary.TotalErrors == 0 {
		b.WriteString("✓ All gradebooks passed validation!\n")
	} else {
		fmt.Fprintf(&b, "✗ %d errors found\n", summary.TotalErrors)
	}

	return emit(f.w, f.outputFile, []byte(b.String()))
}

// escapeCell keeps pipes from breaking table columns.
func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}
