package export

import (
	"fmt"
	"io"
	"math"

	"github.com/theirongolddev/stratsim/internal/cli"
	"github.com/theirongolddev/stratsim/internal/model"
	"github.com/theirongolddev/stratsim/internal/pipeline"

	"github.com/xuri/excelize/v2"
)

const (
	dataSheet    = "Simulation"
	summarySheet = "Summary"
)

func writeXLSX(w io.Writer, rep pipeline.Report, _ Options) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", dataSheet); err != nil {
		return err
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#E2E8F0"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		return err
	}
	numFmt := "#,##0.00"
	numberStyle, err := f.NewStyle(&excelize.Style{CustomNumFmt: &numFmt})
	if err != nil {
		return err
	}

	header := Header(rep.Result.Mode)
	lastCol, _ := excelize.ColumnNumberToName(len(header))
	if err := f.SetColStyle(dataSheet, "B:"+lastCol, numberStyle); err != nil {
		return err
	}

	if err := setRow(f, dataSheet, 1, toCells(header)); err != nil {
		return err
	}
	for i, row := range tableRows(rep.Result) {
		cells := make([]interface{}, 0, len(row.Values)+1)
		cells = append(cells, row.Month)
		for _, v := range row.Values {
			cells = append(cells, v)
		}
		if err := setRow(f, dataSheet, i+2, cells); err != nil {
			return err
		}
	}
	if err := f.SetRowStyle(dataSheet, 1, 1, headerStyle); err != nil {
		return err
	}
	_ = f.SetColWidth(dataSheet, "A", "A", 8)
	_ = f.SetColWidth(dataSheet, "B", lastCol, 18)

	if err := writeSummarySheet(f, rep, headerStyle); err != nil {
		return err
	}

	return f.Write(w)
}

func writeSummarySheet(f *excelize.File, rep pipeline.Report, headerStyle int) error {
	if _, err := f.NewSheet(summarySheet); err != nil {
		return err
	}

	rows := [][]interface{}{{"Metric", "Value"}}
	for _, m := range summaryMetrics(rep.Summary) {
		rows = append(rows, []interface{}{m.Label, sheetValue(m.Value)})
	}
	rows = append(rows, []interface{}{}, []interface{}{"Recommendations"})
	for _, a := range rep.Advice {
		rows = append(rows, []interface{}{string(a.Severity), a.Message})
	}

	for i, row := range rows {
		if err := setRow(f, summarySheet, i+1, row); err != nil {
			return err
		}
	}
	_ = f.SetColWidth(summarySheet, "A", "A", 28)
	_ = f.SetColWidth(summarySheet, "B", "B", 80)
	return f.SetRowStyle(summarySheet, 1, 1, headerStyle)
}

// sheetValue keeps finite numbers numeric; spreadsheets cannot hold +Inf.
func sheetValue(v float64) interface{} {
	if math.IsInf(v, 0) {
		return cli.FormatRatio(v)
	}
	return v
}

func setRow(f *excelize.File, sheet string, row int, cells []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	return f.SetSheetRow(sheet, cell, &cells)
}

func toCells(ss []string) []interface{} {
	out := make([]interface{}, len(ss))
	for i, s := range ss {
		out[i] = s
	}
	return out
}

// ReadXLSX parses the Simulation sheet of an XLSX export back into its time series.
func ReadXLSX(r io.Reader) (model.Result, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return model.Result{}, fmt.Errorf("opening xlsx: %w", err)
	}
	defer f.Close()

	rows, err := f.GetRows(dataSheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return model.Result{}, fmt.Errorf("reading %s sheet: %w", dataSheet, err)
	}
	res, err := parseTable(rows)
	if err != nil {
		return model.Result{}, fmt.Errorf("parsing xlsx: %w", err)
	}
	return res, nil
}

// metric is a labelled summary value shared by the XLSX and PDF layouts.
type metric struct {
	Label string
	Value float64
	Money bool
}

func summaryMetrics(s model.Summary) []metric {
	if s.Mode == model.ModeSaaS {
		return []metric{
			{"Final Customers", s.FinalCustomers, false},
			{"Final MRR", s.FinalMRR, true},
			{"LTV", s.LTV, true},
			{"LTV:CAC", s.LTVToCAC, false},
		}
	}
	return []metric{
		{"Predicted Average Revenue", s.AvgPredictedRevenue, true},
		{"Actual Average Revenue", s.AvgActualRevenue, true},
		{"Total Actual Revenue", s.TotalActualRevenue, true},
		{"Total Cost", s.TotalCost, true},
		{"Actual Profit", s.ActualProfit, true},
	}
}
