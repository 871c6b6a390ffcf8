package export

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/theirongolddev/stratsim/internal/model"
)

var (
	growthHeader = []string{"Month", "PredictedRevenue", "ActualRevenue", "Cost"}
	saasHeader   = []string{"Month", "Customers", "MRR", "NewCustomers", "ChurnedCustomers"}
)

// Header returns the tabular column names for a mode.
func Header(mode model.Mode) []string {
	if mode == model.ModeSaaS {
		return slices.Clone(saasHeader)
	}
	return slices.Clone(growthHeader)
}

// tableRow is one record: the month plus its numeric fields in header order.
type tableRow struct {
	Month  int
	Values []float64
}

func tableRows(res model.Result) []tableRow {
	rows := make([]tableRow, 0, res.Len())
	if res.Mode == model.ModeSaaS {
		for _, r := range res.SaaS {
			rows = append(rows, tableRow{r.Month, []float64{r.Customers, r.MRR, r.NewCustomers, r.ChurnedCustomers}})
		}
		return rows
	}
	for _, r := range res.Growth {
		rows = append(rows, tableRow{r.Month, []float64{r.PredictedRevenue, r.ActualRevenue, r.Cost}})
	}
	return rows
}

// formatFull prints a float with the shortest representation that parses
// back to the same value.
func formatFull(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// parseTable rebuilds a Result from a header row and string cells.
func parseTable(records [][]string) (model.Result, error) {
	if len(records) == 0 {
		return model.Result{}, errors.New("empty table")
	}

	var res model.Result
	switch header := records[0]; {
	case slices.Equal(header, growthHeader):
		res.Mode = model.ModeGrowth
	case slices.Equal(header, saasHeader):
		res.Mode = model.ModeSaaS
	default:
		return model.Result{}, fmt.Errorf("unrecognized header %q", strings.Join(header, ","))
	}
	width := len(records[0])

	for i, rec := range records[1:] {
		line := i + 2
		if len(rec) != width {
			return model.Result{}, fmt.Errorf("row %d: %d fields, want %d", line, len(rec), width)
		}
		month, err := strconv.Atoi(rec[0])
		if err != nil {
			return model.Result{}, fmt.Errorf("row %d: month: %w", line, err)
		}
		vals := make([]float64, width-1)
		for j, cell := range rec[1:] {
			if vals[j], err = strconv.ParseFloat(cell, 64); err != nil {
				return model.Result{}, fmt.Errorf("row %d: %s: %w", line, records[0][j+1], err)
			}
		}

		if res.Mode == model.ModeSaaS {
			res.SaaS = append(res.SaaS, model.SaaSRecord{
				Month: month, Customers: vals[0], MRR: vals[1], NewCustomers: vals[2], ChurnedCustomers: vals[3],
			})
		} else {
			res.Growth = append(res.Growth, model.GrowthRecord{
				Month: month, PredictedRevenue: vals[0], ActualRevenue: vals[1], Cost: vals[2],
			})
		}
	}
	return res, nil
}
