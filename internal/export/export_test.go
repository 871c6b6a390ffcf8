package export

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/theirongolddev/stratsim/internal/engine"
	"github.com/theirongolddev/stratsim/internal/model"
	"github.com/theirongolddev/stratsim/internal/pipeline"
)

func growthReport(t *testing.T, months int) pipeline.Report {
	t.Helper()
	rep, err := pipeline.Run(model.Params{Mode: model.ModeGrowth, Growth: model.GrowthParams{
		PredictedRevenue: 50000, PredictedCost: 20000, GrowthRate: 0.05, Months: months,
	}}, engine.NewSeededSource(7))
	if err != nil {
		t.Fatal(err)
	}
	return rep
}

func saasReport(t *testing.T, months int, cac float64) pipeline.Report {
	t.Helper()
	rep, err := pipeline.Run(model.Params{Mode: model.ModeSaaS, SaaS: model.SaaSParams{
		MRR: 10000, Customers: 100, ChurnRate: 0.08, CAC: cac, MarketingBudget: 5000, ARPU: 100, Months: months,
	}}, nil)
	if err != nil {
		t.Fatal(err)
	}
	return rep
}

func TestLookup(t *testing.T) {
	for _, name := range []string{"csv", "XLSX", " pdf ", "excel"} {
		if _, err := Lookup(name); err != nil {
			t.Errorf("Lookup(%q): %v", name, err)
		}
	}
	f, _ := Lookup("excel")
	if f.Name != "xlsx" || f.Filename != "strategy_results.xlsx" {
		t.Errorf("Lookup(excel) = %+v", f)
	}
	if _, err := Lookup("docx"); !errors.Is(err, ErrUnknownFormat) {
		t.Fatalf("Lookup(docx) err = %v, want ErrUnknownFormat", err)
	}
}

func TestCSVRoundTrip(t *testing.T) {
	for _, rep := range []pipeline.Report{growthReport(t, 12), saasReport(t, 9, 200)} {
		var buf bytes.Buffer
		f, _ := Lookup("csv")
		if err := f.Write(&buf, rep, Options{}); err != nil {
			t.Fatal(err)
		}
		first := strings.SplitN(buf.String(), "\n", 2)[0]
		if first != strings.Join(Header(rep.Result.Mode), ",") {
			t.Fatalf("header = %q", first)
		}

		got, err := ReadCSV(&buf)
		if err != nil {
			t.Fatal(err)
		}
		assertSameSeries(t, got, rep.Result)
	}
}

func TestXLSXRoundTrip(t *testing.T) {
	for _, rep := range []pipeline.Report{growthReport(t, 6), saasReport(t, 24, 0)} {
		var buf bytes.Buffer
		f, _ := Lookup("xlsx")
		if err := f.Write(&buf, rep, Options{}); err != nil {
			t.Fatal(err)
		}
		got, err := ReadXLSX(&buf)
		if err != nil {
			t.Fatal(err)
		}
		assertSameSeries(t, got, rep.Result)
	}
}

func assertSameSeries(t *testing.T, got, want model.Result) {
	t.Helper()
	if got.Mode != want.Mode {
		t.Fatalf("mode = %s, want %s", got.Mode, want.Mode)
	}
	if got.Len() != want.Len() {
		t.Fatalf("rows = %d, want %d", got.Len(), want.Len())
	}
	gotRows, wantRows := tableRows(got), tableRows(want)
	for i := range wantRows {
		if gotRows[i].Month != wantRows[i].Month {
			t.Fatalf("row %d month = %d, want %d", i, gotRows[i].Month, wantRows[i].Month)
		}
		for j, v := range wantRows[i].Values {
			if gotRows[i].Values[j] != v {
				t.Fatalf("row %d col %d = %v, want %v", i, j, gotRows[i].Values[j], v)
			}
		}
	}
}

func TestParseTableRejectsBadInput(t *testing.T) {
	tests := []struct {
		name    string
		records [][]string
	}{
		{"empty", nil},
		{"unknown header", [][]string{{"a", "b"}}},
		{"short row", [][]string{growthHeader, {"1", "2"}}},
		{"bad number", [][]string{growthHeader, {"1", "x", "2", "3"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := parseTable(tt.records); err == nil {
				t.Fatal("parseTable succeeded, want error")
			}
		})
	}
}

func TestLayoutGrowth(t *testing.T) {
	rep := growthReport(t, 36)
	lines := layoutReport(rep, Options{})
	// title, blank, 5 metrics, blank, heading, 3 tips, blank, heading, 36 rows
	if len(lines) != 50 {
		t.Fatalf("lines = %d, want 50", len(lines))
	}
	if lines[0].Kind != kindTitle || lines[0].Text != DefaultTitle {
		t.Fatalf("first line = %+v", lines[0])
	}
	last := lines[len(lines)-1]
	if last.Kind != kindRow || !strings.HasPrefix(last.Text, "Month 36 | Predicted: $") {
		t.Fatalf("last line = %q", last.Text)
	}
}

func TestLayoutSaaSUnbounded(t *testing.T) {
	lines := layoutReport(saasReport(t, 3, 0), Options{Title: "Q3"})
	if lines[0].Text != "Q3" {
		t.Fatalf("title = %q", lines[0].Text)
	}
	var found bool
	for _, ln := range lines {
		if ln.Text == "LTV:CAC: unbounded" {
			found = true
		}
	}
	if !found {
		t.Fatal("LTV:CAC line missing or not unbounded")
	}
	row := lines[len(lines)-3].Text
	if !strings.HasPrefix(row, "Month 1 | Customers: ") {
		t.Fatalf("first data row = %q", row)
	}
}

func TestPaginate(t *testing.T) {
	lines := make([]pdfLine, 50)
	tests := []struct {
		perPage int
		pages   int
		last    int
	}{
		{10, 5, 10},
		{48, 2, 2},
		{50, 1, 50},
		{100, 1, 50},
	}
	for _, tt := range tests {
		pages := paginate(lines, tt.perPage)
		if len(pages) != tt.pages {
			t.Fatalf("paginate(50, %d) = %d pages, want %d", tt.perPage, len(pages), tt.pages)
		}
		if n := len(pages[len(pages)-1]); n != tt.last {
			t.Fatalf("paginate(50, %d) last page = %d lines, want %d", tt.perPage, n, tt.last)
		}
	}
	if pages := paginate(nil, 10); len(pages) != 0 {
		t.Fatalf("paginate(nil) = %d pages, want 0", len(pages))
	}
}

func TestPDFPages(t *testing.T) {
	rep := growthReport(t, 36)
	if n := renderPDF(rep, Options{LinesPerPage: 10}).PageNo(); n != 5 {
		t.Fatalf("pages = %d, want 5", n)
	}
	if n := renderPDF(rep, Options{}).PageNo(); n != 2 {
		t.Fatalf("default pages = %d, want 2", n)
	}

	var buf bytes.Buffer
	f, _ := Lookup("pdf")
	if err := f.Write(&buf, rep, Options{}); err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")) {
		t.Fatalf("output does not start with a PDF header: %q", buf.Bytes()[:8])
	}
}

func TestPDFRowsStayInsideMargins(t *testing.T) {
	rep := growthReport(t, 36)
	opts := Options{LinesPerPage: 60}
	if got := opts.linesPerPage(); got != MaxLinesPerPage() {
		t.Fatalf("linesPerPage = %d, want clamp to %d", got, MaxLinesPerPage())
	}

	pdf := renderPDF(rep, opts)
	_, pageH := pdf.GetPageSize()
	_, top, _, bottom := pdf.GetMargins()
	if bottom <= 0 {
		t.Fatalf("bottom margin = %v, want > 0", bottom)
	}

	pages := paginate(layoutReport(rep, opts), opts.linesPerPage())
	if n := pdf.PageNo(); n != len(pages) {
		t.Fatalf("pages = %d, want %d", n, len(pages))
	}
	for i, page := range pages {
		y := top
		for _, ln := range page {
			y += lineHeight(ln.Kind)
			if y > pageH-bottom {
				t.Fatalf("page %d: %q ends at %.1fmm, past %.1fmm", i+1, ln.Text, y, pageH-bottom)
			}
		}
	}
}

func TestWriteFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	f, _ := Lookup("csv")
	path, err := WriteFile(dir, f, saasReport(t, 2, 200), Options{})
	if err != nil {
		t.Fatal(err)
	}
	if filepath.Base(path) != "strategy_results.csv" {
		t.Fatalf("path = %s", path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if got := strings.Count(strings.TrimSpace(string(data)), "\n"); got != 2 {
		t.Fatalf("csv has %d data rows, want 2", got)
	}
}
