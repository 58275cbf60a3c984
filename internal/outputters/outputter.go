// Package outputters picks the formatter for the configured format and
// destination.
package outputters

import (
	"fmt"
	"io"
	"os"

	"github.com/dotcommander/bananaq/internal/batch"
	"github.com/dotcommander/bananaq/internal/config"
	"github.com/dotcommander/bananaq/internal/output"
	"github.com/dotcommander/bananaq/internal/scoring"
)

// FormatterFactory creates a formatter for a format, writing to w.
type FormatterFactory interface {
	CreateFormatter(format string, w io.Writer) (output.Formatter, error)
}

// DefaultFormatterFactory builds the formatters of the output package.
type DefaultFormatterFactory struct {
	cfg     *config.Config
	version string
}

// NewDefaultFormatterFactory creates a DefaultFormatterFactory.
func NewDefaultFormatterFactory(cfg *config.Config, version string) *DefaultFormatterFactory {
	return &DefaultFormatterFactory{cfg: cfg, version: version}
}

// CreateFormatter implements FormatterFactory.
func (f *DefaultFormatterFactory) CreateFormatter(format string, w io.Writer) (output.Formatter, error) {
	switch format {
	case "console":
		return output.NewConsoleFormatter(w, f.cfg.Quiet, f.cfg.Verbose), nil
	case "json":
		return output.NewJSONFormatter(w, true, f.version), nil
	case "markdown":
		return output.NewMarkdownFormatter(w, f.cfg.Verbose), nil
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
}

// Outputter handles output formatting
type Outputter struct {
	config  *config.Config
	factory FormatterFactory
	stdout  io.Writer
}

// NewOutputter creates an Outputter using the default formatters.
func NewOutputter(cfg *config.Config, version string) *Outputter {
	return NewOutputterWithFactory(cfg, NewDefaultFormatterFactory(cfg, version))
}

// NewOutputterWithFactory creates an Outputter with a custom factory.
func NewOutputterWithFactory(cfg *config.Config, factory FormatterFactory) *Outputter {
	return &Outputter{
		config:  cfg,
		factory: factory,
		stdout:  os.Stdout,
	}
}

// SetStdout replaces the writer used when no output file is configured.
func (o *Outputter) SetStdout(w io.Writer) {
	o.stdout = w
}

// FormatAnalysis renders a single-record analysis.
func (o *Outputter) FormatAnalysis(a *scoring.Analysis) error {
	return o.render(func(f output.Formatter) error {
		return f.FormatAnalysis(a)
	})
}

// FormatBatch renders a batch summary.
func (o *Outputter) FormatBatch(s *batch.Summary) error {
	return o.render(func(f output.Formatter) error {
		return f.FormatBatch(s)
	})
}

// render writes to the configured output file, or to stdout when none is set.
func (o *Outputter) render(fn func(output.Formatter) error) (err error) {
	w := o.stdout
	if o.config.Output != "" {
		file, createErr := os.Create(o.config.Output)
		if createErr != nil {
			return fmt.Errorf("error creating output file %s: %w", o.config.Output, createErr)
		}
		defer func() {
			if closeErr := file.Close(); closeErr != nil && err == nil {
				err = fmt.Errorf("error writing to file %s: %w", o.config.Output, closeErr)
			}
		}()
		w = file
	}

	formatter, err := o.factory.CreateFormatter(o.config.Format, w)
	if err != nil {
		return err
	}
	return fn(formatter)
}
