package cmd

import (
	"testing"
	"unicode/utf8"

	"github.com/theirongolddev/stratsim/internal/engine"
	"github.com/theirongolddev/stratsim/internal/model"
	"github.com/theirongolddev/stratsim/internal/pipeline"
)

func lastRow(t *testing.T, rows [][]string) []string {
	t.Helper()
	if len(rows) == 0 {
		t.Fatal("table has no rows")
	}
	return rows[len(rows)-1]
}

func TestSummaryTableTrendRow(t *testing.T) {
	for _, tc := range []struct {
		name   string
		params model.Params
		label  string
	}{
		{"growth", model.Params{Mode: model.ModeGrowth, Growth: model.GrowthParams{
			PredictedRevenue: 50000, PredictedCost: 20000, GrowthRate: 0.05, Months: 12,
		}}, "Revenue Trend"},
		{"saas", model.Params{Mode: model.ModeSaaS, SaaS: model.SaaSParams{
			Customers: 100, ChurnRate: 0.05, CAC: 200, MarketingBudget: 5000, ARPU: 50, Months: 12,
		}}, "Customer Trend"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			rep, err := pipeline.Run(tc.params, engine.Fixed(0.5))
			if err != nil {
				t.Fatal(err)
			}
			row := lastRow(t, summaryTable(rep.Summary, rep.Result).Rows)
			if row[0] != tc.label {
				t.Fatalf("label = %q, want %q", row[0], tc.label)
			}
			if n := utf8.RuneCountInString(row[1]); n != 12 {
				t.Fatalf("sparkline has %d cells, want 12: %q", n, row[1])
			}
		})
	}
}
