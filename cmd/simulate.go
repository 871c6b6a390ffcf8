package cmd

import (
	"fmt"

	"github.com/theirongolddev/stratsim/internal/cli"
	"github.com/theirongolddev/stratsim/internal/engine"
	"github.com/theirongolddev/stratsim/internal/model"
	"github.com/theirongolddev/stratsim/internal/pipeline"

	"github.com/spf13/cobra"
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Run one simulation and print the summary",
	RunE:  runSimulate,
}

func init() {
	rootCmd.AddCommand(simulateCmd)
}

var severityLevels = map[pipeline.Severity]cli.Level{
	pipeline.SeverityHealthy: cli.LevelGood,
	pipeline.SeverityInfo:    cli.LevelInfo,
	pipeline.SeverityWarning: cli.LevelWarn,
	pipeline.SeveritySevere:  cli.LevelBad,
}

func runSimulate(cmd *cobra.Command, _ []string) error {
	cfg, p, err := loadParams(cmd)
	if err != nil {
		return err
	}
	logger := newLogger(cfg)

	rep, err := pipeline.Run(p, engine.SourceFromSeed(cfg.General.Seed))
	if err != nil {
		return err
	}
	logger.Debug("simulated", "run", rep.Result.RunID, "mode", p.Mode, "months", p.Months())

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("STRATEGY SIMULATION  %s, %d months", modeTitle(p.Mode), p.Months())))
	fmt.Println()
	fmt.Print(cli.RenderTable(summaryTable(rep.Summary, rep.Result)))
	fmt.Println()
	fmt.Print(cli.RenderTable(periodTable(rep.Result)))
	fmt.Println()

	fmt.Println("  Recommendations")
	for _, adv := range rep.Advice {
		fmt.Println(cli.RenderAdvice(severityLevels[adv.Severity], adv.Message))
	}
	fmt.Println()
	return nil
}

func modeTitle(m model.Mode) string {
	if m == model.ModeSaaS {
		return "SaaS"
	}
	return "Growth"
}

// trend is the series drawn as the summary sparkline: customers for saas,
// actual revenue for growth.
func trend(res model.Result) []float64 {
	out := make([]float64, 0, res.Len())
	for _, r := range res.SaaS {
		out = append(out, r.Customers)
	}
	for _, r := range res.Growth {
		out = append(out, r.ActualRevenue)
	}
	return out
}

func summaryTable(s model.Summary, res model.Result) cli.Table {
	spark := cli.RenderSparkline(trend(res))
	if s.Mode == model.ModeSaaS {
		return cli.Table{
			Title:   "Summary",
			Headers: []string{"Metric", "Value"},
			Rows: [][]string{
				{"Final Customers", cli.FormatQuantity(s.FinalCustomers)},
				{"Final MRR", cli.FormatMoney(s.FinalMRR)},
				{"---"},
				{"Churn", cli.FormatPercent(s.ChurnRate)},
				{"CAC", cli.FormatMoney(s.CAC)},
				{"LTV", cli.FormatMoney(s.LTV)},
				{"LTV:CAC", cli.FormatRatio(s.LTVToCAC)},
				{"---"},
				{"Customer Trend", spark},
			},
		}
	}
	return cli.Table{
		Title:   "Summary",
		Headers: []string{"Metric", "Value"},
		Rows: [][]string{
			{"Predicted Avg Revenue", cli.FormatMoney(s.AvgPredictedRevenue)},
			{"Actual Avg Revenue", fmt.Sprintf("%s  (%s)", cli.FormatMoney(s.AvgActualRevenue),
				cli.FormatDelta(s.AvgActualRevenue, s.AvgPredictedRevenue))},
			{"Gap", cli.FormatMoney(s.Gap)},
			{"---"},
			{"Total Actual Revenue", cli.FormatMoney(s.TotalActualRevenue)},
			{"Total Cost", cli.FormatMoney(s.TotalCost)},
			{"Actual Profit", cli.FormatMoney(s.ActualProfit)},
			{"---"},
			{"Revenue Trend", spark},
		},
	}
}

func periodTable(res model.Result) cli.Table {
	t := cli.Table{Title: "By month"}
	if res.Mode == model.ModeSaaS {
		t.Headers = []string{"Month", "Customers", "MRR", "New", "Churned"}
		for _, r := range res.SaaS {
			t.Rows = append(t.Rows, []string{
				cli.FormatMonth(r.Month),
				cli.FormatQuantity(r.Customers),
				cli.FormatMoney(r.MRR),
				cli.FormatQuantity(r.NewCustomers),
				cli.FormatQuantity(r.ChurnedCustomers),
			})
		}
		return t
	}

	t.Headers = []string{"Month", "Predicted", "Actual", "Cost"}
	for _, r := range res.Growth {
		t.Rows = append(t.Rows, []string{
			cli.FormatMonth(r.Month),
			cli.FormatMoney(r.PredictedRevenue),
			cli.FormatMoney(r.ActualRevenue),
			cli.FormatMoney(r.Cost),
		})
	}
	return t
}
