package report

import (
	"fmt"
	"strings"

	"github.com/dotcommander/gradecast/internal/cue"
	"github.com/dotcommander/gradecast/internal/gradebook"
	"github.com/dotcommander/gradecast/internal/grading"
	"github.com/dotcommander/gradecast/internal/types"
)

// CheckResult holds the issues found in one gradebook file.
type CheckResult struct {
	File   string                  `json:"file"`
	Issues []types.ValidationError `json:"issues"`
}

// Errors counts error-severity issues.
func (r CheckResult) Errors() int { return r.count(types.SeverityError) }

// Warnings counts warning-severity issues.
func (r CheckResult) Warnings() int { return r.count(types.SeverityWarning) }

func (r CheckResult) count(severity string) int {
	n := 0
	for _, issue := range r.Issues {
		if issue.Severity == severity {
			n++
		}
	}
	return n
}

// CheckSummary aggregates the results of a check run.
type CheckSummary struct {
	Files           int           `json:"files"`
	FilesWithIssues int           `json:"filesWithIssues"`
	TotalErrors     int           `json:"totalErrors"`
	TotalWarnings   int           `json:"totalWarnings"`
	Results         []CheckResult `json:"results"`
}

// Failed reports whether any issue is at or above the failOn severity.
func (s *CheckSummary) Failed(failOn string) bool {
	threshold := types.SeverityRank(failOn)
	for _, r := range s.Results {
		for _, issue := range r.Issues {
			if types.SeverityRank(issue.Severity) >= threshold {
				return true
			}
		}
	}
	return false
}

// Checker validates gradebook files against the schema and the
// cross-field rules.
type Checker struct {
	validator *cue.Validator
}

// NewChecker loads the embedded schemas.
func NewChecker() (*Checker, error) {
	v := cue.NewValidator()
	if err := v.LoadSchemas(); err != nil {
		return nil, err
	}
	return &Checker{validator: v}, nil
}

// CheckFiles loads and checks every path. Unreadable files become parse
// issues rather than errors so that one bad file does not hide the rest.
func (c *Checker) CheckFiles(paths []string) (*CheckSummary, error) {
	summary := &CheckSummary{Files: len(paths)}
	for _, path := range paths {
		doc, err := gradebook.Load(path)
		if err != nil {
			summary.add(CheckResult{File: path, Issues: []types.ValidationError{{
				File:     path,
				Message:  err.Error(),
				Severity: types.SeverityError,
				Source:   types.SourceParse,
			}}})
			continue
		}

		result, err := c.CheckDocument(doc)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		summary.add(result)
	}
	return summary, nil
}

// Ignore drops the issues known reports true for and recounts the totals.
// It returns the number of errors and warnings dropped.
func (s *CheckSummary) Ignore(known func(types.ValidationError) bool) (errors, warnings int) {
	results := s.Results
	s.Results, s.FilesWithIssues, s.TotalErrors, s.TotalWarnings = nil, 0, 0, 0

	for _, r := range results {
		kept := make([]types.ValidationError, 0, len(r.Issues))
		for _, issue := range r.Issues {
			if !known(issue) {
				kept = append(kept, issue)
				continue
			}
			switch issue.Severity {
			case types.SeverityError:
				errors++
			case types.SeverityWarning:
				warnings++
			}
		}
		r.Issues = kept
		s.add(r)
	}
	return errors, warnings
}

// AllIssues flattens the issues of every result.
func (s *CheckSummary) AllIssues() []types.ValidationError {
	var issues []types.ValidationError
	for _, r := range s.Results {
		issues = append(issues, r.Issues...)
	}
	return issues
}

func (s *CheckSummary) add(r CheckResult) {
	s.Results = append(s.Results, r)
	if len(r.Issues) > 0 {
		s.FilesWithIssues++
	}
	s.TotalErrors += r.Errors()
	s.TotalWarnings += r.Warnings()
}

// CheckDocument runs the schema and the cross-field rules over a decoded
// document. Issues are annotated with the file and, for YAML, the line.
func (c *Checker) CheckDocument(doc *gradebook.Document) (CheckResult, error) {
	issues, err := c.validator.ValidateGradebook(doc.Data)
	if err != nil {
		return CheckResult{}, err
	}
	issues = append(issues, Consistency(doc.Semester)...)

	for i := range issues {
		issues[i].File = doc.Path
		issues[i].Line = doc.Line(issues[i].Path)
	}
	return CheckResult{File: doc.Path, Issues: issues}, nil
}

// Consistency applies the rules the schema cannot express.
func Consistency(s *gradebook.Semester) []types.ValidationError {
	var issues []types.ValidationError
	add := func(severity, path, format string, args ...any) {
		issues = append(issues, types.ValidationError{
			Path:     path,
			Message:  fmt.Sprintf(format, args...),
			Severity: severity,
			Source:   types.SourceConsistency,
		})
	}

	courses := make(map[string]int)
	for ci, course := range s.Courses {
		coursePath := fmt.Sprintf("courses[%d]", ci)

		key := strings.ToLower(strings.TrimSpace(course.Name))
		if first, dup := courses[key]; dup {
			add(types.SeverityError, coursePath, "duplicate course %q (first defined at courses[%d])", course.Name, first)
		} else {
			courses[key] = ci
		}

		if len(course.Assignments) == 0 {
			add(types.SeverityWarning, coursePath, "course %q has no assignments", course.Name)
		}

		names := make(map[string]int)
		for ai, a := range course.Assignments {
			path := fmt.Sprintf("%s.assignments[%d]", coursePath, ai)
			if a.Scored > a.FullMark {
				add(types.SeverityError, path+".scored", "scored %g exceeds full mark %g", a.Scored, a.FullMark)
			}

			akey := strings.ToLower(strings.TrimSpace(a.Name))
			if first, dup := names[akey]; dup {
				add(types.SeverityWarning, path, "duplicate assignment %q (first defined at %s.assignments[%d])", a.Name, coursePath, first)
			} else {
				names[akey] = ai
			}
		}

		if total := grading.TotalWeight(course.GradingAssignments()); total > grading.FullWeight {
			add(types.SeverityError, coursePath+".assignments", "course %q weights sum to %g, above %g", course.Name, total, grading.FullWeight)
		}
	}
	return issues
}
