package sheets

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"wealthify/internal/stats"
)

// CSVWriter writes reports as CSV, either to a stream or as one file per
// month in a directory.
type CSVWriter struct {
	dir string
	out io.Writer
}

var _ ReportWriter = (*CSVWriter)(nil)

// NewCSVWriter writes to stdout when target is "-" and into the directory
// target otherwise.
func NewCSVWriter(target string) *CSVWriter {
	if target == "-" || target == "" {
		return &CSVWriter{out: os.Stdout}
	}
	return &CSVWriter{dir: target}
}

// NewCSVStreamWriter writes every report to w.
func NewCSVStreamWriter(w io.Writer) *CSVWriter {
	return &CSVWriter{out: w}
}

func (c *CSVWriter) WriteReport(_ context.Context, report stats.MonthReport) (string, error) {
	if c.out != nil {
		if err := writeCSV(c.out, report.Rows()); err != nil {
			return "", err
		}
		return "stdout", nil
	}

	if err := os.MkdirAll(c.dir, 0o755); err != nil {
		return "", fmt.Errorf("create report directory: %w", err)
	}
	path := filepath.Join(c.dir, "wealthify-"+report.Key()+".csv")
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create report file: %w", err)
	}
	if err := writeCSV(f, report.Rows()); err != nil {
		f.Close()
		return "", err
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("close report file: %w", err)
	}
	return path, nil
}

func writeCSV(w io.Writer, rows [][]string) error {
	cw := csv.NewWriter(w)
	if err := cw.WriteAll(rows); err != nil {
		return fmt.Errorf("write csv: %w", err)
	}
	return nil
}
