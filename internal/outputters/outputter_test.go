package outputters

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dotcommander/gradecast/internal/config"
	"github.com/dotcommander/gradecast/internal/output"
	"github.com/dotcommander/gradecast/internal/report"
)

type mockFormatter struct {
	predictions []report.Prediction
	standings   []report.Standing
	summary     *report.CheckSummary
	err         error
}

func (m *mockFormatter) FormatPredictions(p []report.Prediction) error {
	m.predictions = p
	return m.err
}

func (m *mockFormatter) FormatStandings(s []report.Standing) error {
	m.standings = s
	return m.err
}

func (m *mockFormatter) FormatCheck(s *report.CheckSummary) error {
	m.summary = s
	return m.err
}

type mockFormatterFactory struct {
	requestedFormat string
	formatter       output.Formatter
	createError     error
}

func (m *mockFormatterFactory) CreateFormatter(format string) (output.Formatter, error) {
	m.requestedFormat = format
	if m.createError != nil {
		return nil, m.createError
	}
	return m.formatter, nil
}

func TestOutputterDispatch(t *testing.T) {
	cfg := &config.Config{Format: "markdown"}
	formatter := &mockFormatter{}
	factory := &mockFormatterFactory{formatter: formatter}
	o := NewOutputterWithFactory(cfg, factory)

	preds := []report.Prediction{{Course: "COMP1010"}}
	require.NoError(t, o.Predictions(preds))
	assert.Equal(t, "markdown", factory.requestedFormat)
	assert.Equal(t, preds, formatter.predictions)

	standings := []report.Standing{{Course: "MATH1001"}}
	require.NoError(t, o.Standings(standings))
	assert.Equal(t, standings, formatter.standings)

	summary := &report.CheckSummary{Files: 2}
	require.NoError(t, o.Check(summary))
	assert.Same(t, summary, formatter.summary)
}

func TestOutputterErrors(t *testing.T) {
	cfg := &config.Config{Format: "console"}

	createErr := errors.New("no formatter")
	o := NewOutputterWithFactory(cfg, &mockFormatterFactory{createError: createErr})
	assert.ErrorIs(t, o.Predictions(nil), createErr)
	assert.ErrorIs(t, o.Standings(nil), createErr)
	assert.ErrorIs(t, o.Check(&report.CheckSummary{}), createErr)

	formatErr := errors.New("write failed")
	o = NewOutputterWithFactory(cfg, &mockFormatterFactory{formatter: &mockFormatter{err: formatErr}})
	assert.ErrorIs(t, o.Check(&report.CheckSummary{}), formatErr)
}

func TestDefaultFactory(t *testing.T) {
	cfg := &config.Config{Color: true}
	factory := DefaultFactory{Config: cfg, Writer: &bytes.Buffer{}, Version: "dev"}

	for _, format := range []string{"console", "json", "markdown"} {
		f, err := factory.CreateFormatter(format)
		require.NoError(t, err, format)
		assert.NotNil(t, f)
	}

	_, err := factory.CreateFormatter("xml")
	assert.EqualError(t, err, "unsupported format: xml")
}

func TestNewOutputterWritesToWriter(t *testing.T) {
	var buf bytes.Buffer
	cfg := &config.Config{Format: "json"}
	require.NoError(t, NewOutputter(cfg, &buf, "9.9.9").Standings(nil))
	assert.Contains(t, buf.String(), `"version": "9.9.9"`)
}
