// Package export renders a finished report as CSV, XLSX or PDF.
package export

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/theirongolddev/stratsim/internal/pipeline"
)

// ErrUnknownFormat is returned by Lookup for unregistered format names.
var ErrUnknownFormat = errors.New("unknown export format")

// DefaultLinesPerPage is the PDF line budget per page. It is also the most
// an A4 page holds; see MaxLinesPerPage.
const DefaultLinesPerPage = 48

// DefaultTitle heads the PDF report.
const DefaultTitle = "Business Strategy Simulation Report"

// Options tune rendering. Zero values select the defaults.
type Options struct {
	Title        string
	LinesPerPage int
}

func (o Options) title() string {
	if o.Title == "" {
		return DefaultTitle
	}
	return o.Title
}

func (o Options) linesPerPage() int {
	if o.LinesPerPage < 1 {
		return DefaultLinesPerPage
	}
	return min(o.LinesPerPage, MaxLinesPerPage())
}

// Format describes one output format.
type Format struct {
	Name        string
	ContentType string
	Filename    string
	write       func(io.Writer, pipeline.Report, Options) error
}

// Write renders rep to w.
func (f Format) Write(w io.Writer, rep pipeline.Report, opts Options) error {
	if err := f.write(w, rep, opts); err != nil {
		return fmt.Errorf("writing %s: %w", f.Name, err)
	}
	return nil
}

var formats = map[string]Format{
	"csv": {
		Name:        "csv",
		ContentType: "text/csv",
		Filename:    "strategy_results.csv",
		write:       writeCSV,
	},
	"xlsx": {
		Name:        "xlsx",
		ContentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		Filename:    "strategy_results.xlsx",
		write:       writeXLSX,
	},
	"pdf": {
		Name:        "pdf",
		ContentType: "application/pdf",
		Filename:    "strategy_report.pdf",
		write:       writePDF,
	},
}

// Lookup resolves a format by name ("excel" is accepted for xlsx).
func Lookup(name string) (Format, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "excel" {
		name = "xlsx"
	}
	f, ok := formats[name]
	if !ok {
		return Format{}, fmt.Errorf("%w %q (want one of %s)", ErrUnknownFormat, name, strings.Join(Names(), ", "))
	}
	return f, nil
}

// Names lists the registered format names.
func Names() []string {
	names := make([]string, 0, len(formats))
	for n := range formats {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// WriteFile renders rep into dir under the format's conventional filename
// and returns the path written.
func WriteFile(dir string, f Format, rep pipeline.Report, opts Options) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating export dir: %w", err)
	}
	path := filepath.Join(dir, f.Filename)
	out, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("creating %s: %w", path, err)
	}
	if err := f.Write(out, rep, opts); err != nil {
		_ = out.Close()
		return "", err
	}
	if err := out.Close(); err != nil {
		return "", fmt.Errorf("closing %s: %w", path, err)
	}
	return path, nil
}
