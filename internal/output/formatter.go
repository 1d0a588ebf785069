package output

import (
	"fmt"
	"io"
	"math"
	"os"
	"strconv"

	"github.com/mattn/go-isatty"

	"github.com/dotcommander/gradecast/internal/report"
)

// Tool is the name reported in machine-readable headers.
const Tool = "gradecast"

// Formatter renders gradecast reports.
type Formatter interface {
	FormatPredictions(predictions []report.Prediction) error
	FormatStandings(standings []report.Standing) error
	FormatCheck(summary *report.CheckSummary) error
}

// emit writes content to outputFile when set, otherwise to w.
func emit(w io.Writer, outputFile string, content []byte) error {
	if outputFile != "" {
		if err := os.WriteFile(outputFile, content, 0644); err != nil {
			return fmt.Errorf("error writing to file %s: %w", outputFile, err)
		}
		return nil
	}
	if _, err := w.Write(content); err != nil {
		return fmt.Errorf("error writing output: %w", err)
	}
	return nil
}

// isTerminal reports whether w is an interactive terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// pct renders a percentage with at most two decimals: 75%, 12.5%, 33.33%.
func pct(v float64) string {
	return num(v) + "%"
}

func num(v float64) string {
	r := math.Round(v*100) / 100
	if r == 0 {
		r = 0 // drop negative zero
	}
	return strconv.FormatFloat(r, 'f', -1, 64)
}

// requirementText describes what a prediction asks of the scenario.
func requirementText(p report.Prediction) string {
	value, ok := p.Result.RequiredScore()
	if !ok {
		return "course failed"
	}
	return pct(value)
}
