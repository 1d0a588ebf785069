package output

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/dotcommander/gradecast/internal/report"
)

// JSONFormatter formats output as JSON
type JSONFormatter struct {
	w          io.Writer
	version    string
	indent     bool
	outputFile string
	now        func() time.Time
}

// NewJSONFormatter creates a new JSONFormatter
func NewJSONFormatter(w io.Writer, version string, indent bool, outputFile string) *JSONFormatter {
	return &JSONFormatter{
		w:          w,
		version:    version,
		indent:     indent,
		outputFile: outputFile,
		now:        time.Now,
	}
}

// JSONHeader contains report metadata
type JSONHeader struct {
	Tool      string `json:"tool"`
	Version   string `json:"version"`
	Timestamp string `json:"timestamp"`
}

// JSONPredictionReport wraps predictions.
type JSONPredictionReport struct {
	Header      JSONHeader          `json:"header"`
	Predictions []report.Prediction `json:"predictions"`
}

// JSONStandingReport wraps course standings.
type JSONStandingReport struct {
	Header    JSONHeader        `json:"header"`
	Standings []report.Standing `json:"standings"`
}

// JSONCheckReport wraps a check summary.
type JSONCheckReport struct {
	Header  JSONHeader           `json:"header"`
	Summary *report.CheckSummary `json:"summary"`
}

func (f *JSONFormatter) header() JSONHeader {
	return JSONHeader{
		Tool:      Tool,
		Version:   f.version,
		Timestamp: f.now().Format(time.RFC3339),
	}
}

// FormatPredictions writes predictions as JSON.
func (f *JSONFormatter) FormatPredictions(predictions []report.Prediction) error {
	if predictions == nil {
		predictions = []report.Prediction{}
	}
	return f.write(JSONPredictionReport{Header: f.header(), Predictions: predictions})
}

// FormatStandings writes standings as JSON.
func (f *JSONFormatter) FormatStandings(standings []report.Standing) error {
	if standings == nil {
		standings = []report.Standing{}
	}
	return f.write(JSONStandingReport{Header: f.header(), Standings: standings})
}

// FormatCheck writes a check summary as JSON.
func (f *JSONFormatter) FormatCheck(summary *report.CheckSummary) error {
	return f.write(JSONCheckReport{Header: f.header(), Summary: summary})
}

func (f *JSONFormatter) write(v any) error {
	var jsonBytes []byte
	var err error

	if f.indent {
		jsonBytes, err = json.MarshalIndent(v, "", "  ")
	} else {
		jsonBytes, err = json.Marshal(v)
	}
	if err != nil {
		return fmt.Errorf("error marshaling JSON: %w", err)
	}

	return emit(f.w, f.outputFile, append(jsonBytes, '\n'))
}
