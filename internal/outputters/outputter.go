package outputters

import (
	"fmt"
	"io"

	"github.com/dotcommander/gradecast/internal/config"
	"github.com/dotcommander/gradecast/internal/output"
	"github.com/dotcommander/gradecast/internal/report"
)

// FormatterFactory builds the formatter for a format name.
type FormatterFactory interface {
	CreateFormatter(format string) (output.Formatter, error)
}

// DefaultFactory builds the formatters from the output package.
type DefaultFactory struct {
	Config  *config.Config
	Writer  io.Writer
	Version string
}

// CreateFormatter implements FormatterFactory.
func (f DefaultFactory) CreateFormatter(format string) (output.Formatter, error) {
	cfg := f.Config
	switch format {
	case "console":
		return output.NewConsoleFormatter(f.Writer, cfg.Quiet, cfg.Verbose, cfg.Color), nil
	case "json":
		return output.NewJSONFormatter(f.Writer, f.Version, true, cfg.Output), nil
	case "markdown":
		return output.NewMarkdownFormatter(f.Writer, cfg.Verbose, cfg.Output), nil
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
}

// Outputter handles output formatting
type Outputter struct {
	config  *config.Config
	factory FormatterFactory
}

// NewOutputter creates an Outputter that writes to w.
func NewOutputter(cfg *config.Config, w io.Writer, version string) *Outputter {
	return NewOutputterWithFactory(cfg, DefaultFactory{Config: cfg, Writer: w, Version: version})
}

// NewOutputterWithFactory creates an Outputter with a custom factory.
func NewOutputterWithFactory(cfg *config.Config, factory FormatterFactory) *Outputter {
	return &Outputter{config: cfg, factory: factory}
}

func (o *Outputter) formatter() (output.Formatter, error) {
	return o.factory.CreateFormatter(o.config.Format)
}

// Predictions renders predictions in the configured format.
func (o *Outputter) Predictions(predictions []report.Prediction) error {
	f, err := o.formatter()
	if err != nil {
		return err
	}
	return f.FormatPredictions(predictions)
}

// Standings renders course standings in the configured format.
func (o *Outputter) Standings(standings []report.Standing) error {
	f, err := o.formatter()
	if err != nil {
		return err
	}
	return f.FormatStandings(standings)
}

// Check renders a check summary in the configured format.
func (o *Outputter) Check(summary *report.CheckSummary) error {
	f, err := o.formatter()
	if err != nil {
		return err
	}
	return f.FormatCheck(summary)
}
