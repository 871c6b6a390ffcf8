package export

import (
	"fmt"
	"io"
	"math"

	"github.com/theirongolddev/stratsim/internal/cli"
	"github.com/theirongolddev/stratsim/internal/model"
	"github.com/theirongolddev/stratsim/internal/pipeline"

	"github.com/go-pdf/fpdf"
)

// A4 page geometry in millimetres.
const (
	pageHeightMM   = 297
	marginSideMM   = 18
	marginTopMM    = 14
	marginBottomMM = 14
	titleHeightMM  = 9
	lineHeightMM   = 5.5
)

// MaxLinesPerPage is the most lines that fit between the margins of a page
// that opens with the title. Larger budgets are clamped to it.
func MaxLinesPerPage() int {
	usable := float64(pageHeightMM - marginTopMM - marginBottomMM - titleHeightMM)
	return 1 + int(usable/lineHeightMM)
}

type lineKind int

const (
	kindTitle lineKind = iota
	kindHeading
	kindBody
	kindRow
	kindBlank
)

// pdfLine is one laid-out line. Pagination counts lines, not millimetres.
type pdfLine struct {
	Kind lineKind
	Text string
}

// layoutReport lists every line of the document in order.
func layoutReport(rep pipeline.Report, opts Options) []pdfLine {
	lines := []pdfLine{{kindTitle, opts.title()}, {kindBlank, ""}}

	for _, m := range summaryMetrics(rep.Summary) {
		lines = append(lines, pdfLine{kindBody, fmt.Sprintf("%s: %s", m.Label, pdfValue(m))})
	}

	lines = append(lines, pdfLine{kindBlank, ""}, pdfLine{kindHeading, "Recommendations:"})
	for _, a := range rep.Advice {
		lines = append(lines, pdfLine{kindBody, "- " + a.Message})
	}

	lines = append(lines, pdfLine{kindBlank, ""}, pdfLine{kindHeading, "Simulation Data:"})
	if rep.Result.Mode == model.ModeSaaS {
		for _, r := range rep.Result.SaaS {
			lines = append(lines, pdfLine{kindRow, fmt.Sprintf(
				"Month %d | Customers: %s | MRR: %s | New: %s | Churned: %s",
				r.Month, cli.FormatQuantity(r.Customers), cli.FormatMoney(r.MRR),
				cli.FormatQuantity(r.NewCustomers), cli.FormatQuantity(r.ChurnedCustomers))})
		}
	} else {
		for _, r := range rep.Result.Growth {
			lines = append(lines, pdfLine{kindRow, fmt.Sprintf(
				"Month %d | Predicted: %s | Actual: %s | Cost: %s",
				r.Month, cli.FormatMoney(r.PredictedRevenue), cli.FormatMoney(r.ActualRevenue), cli.FormatMoney(r.Cost))})
		}
	}
	return lines
}

func pdfValue(m metric) string {
	switch {
	case math.IsInf(m.Value, 1):
		return "unbounded"
	case m.Money:
		return cli.FormatMoney(m.Value)
	case m.Label == "LTV:CAC":
		return cli.FormatRatio(m.Value)
	default:
		return cli.FormatQuantity(m.Value)
	}
}

// paginate splits lines into pages of at most perPage lines.
func paginate(lines []pdfLine, perPage int) [][]pdfLine {
	var pages [][]pdfLine
	for len(lines) > perPage {
		pages = append(pages, lines[:perPage])
		lines = lines[perPage:]
	}
	if len(lines) > 0 {
		pages = append(pages, lines)
	}
	return pages
}

func lineHeight(k lineKind) float64 {
	if k == kindTitle {
		return titleHeightMM
	}
	return lineHeightMM
}

func renderPDF(rep pipeline.Report, opts Options) *fpdf.Fpdf {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(marginSideMM, marginTopMM, marginSideMM)
	// Pages break on the line budget, never on position.
	pdf.SetAutoPageBreak(false, marginBottomMM)
	pdf.SetTitle(opts.title(), true)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	for _, page := range paginate(layoutReport(rep, opts), opts.linesPerPage()) {
		pdf.AddPage()
		for _, ln := range page {
			switch ln.Kind {
			case kindTitle:
				pdf.SetFont("Helvetica", "B", 16)
			case kindHeading:
				pdf.SetFont("Helvetica", "B", 13)
			case kindRow:
				pdf.SetFont("Helvetica", "", 9)
			default:
				pdf.SetFont("Helvetica", "", 11)
			}
			pdf.CellFormat(0, lineHeight(ln.Kind), tr(ln.Text), "", 1, "L", false, 0, "")
		}
	}
	return pdf
}

func writePDF(w io.Writer, rep pipeline.Report, opts Options) error {
	return renderPDF(rep, opts).Output(w)
}
