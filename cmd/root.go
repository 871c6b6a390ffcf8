// Package cmd implements the stratsim CLI commands.
package cmd

import (
	"fmt"
	"os"

	"github.com/theirongolddev/stratsim/internal/config"
	"github.com/theirongolddev/stratsim/internal/model"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var (
	flagMode     string
	flagMonths   int
	flagSeed     uint64
	flagScenario string
	flagQuiet    bool
	flagLogLevel string

	flagRevenue   float64
	flagCost      float64
	flagGrowthPct float64

	flagMRR       float64
	flagCustomers int
	flagChurnPct  float64
	flagCAC       float64
	flagBudget    float64
	flagARPU      float64
)

var rootCmd = &cobra.Command{
	Use:           "stratsim",
	Short:         "Business strategy simulator",
	Long:          "Project growth or SaaS outcomes month by month, compare predicted vs actual, and export reports.",
	RunE:          runSimulate,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "  Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&flagMode, "mode", "m", "", "Strategy mode: growth or saas")
	pf.IntVarP(&flagMonths, "months", "n", 0, "Months to project (1-36)")
	pf.Uint64Var(&flagSeed, "seed", 0, "Seed for the actual-performance draw (0 = random)")
	pf.StringVarP(&flagScenario, "scenario", "s", "", "Named scenario from the config file")
	pf.BoolVarP(&flagQuiet, "quiet", "q", false, "Only log errors")
	pf.StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error")

	pf.Float64Var(&flagRevenue, "revenue", 0, "Growth: predicted monthly revenue")
	pf.Float64Var(&flagCost, "cost", 0, "Growth: predicted monthly cost")
	pf.Float64Var(&flagGrowthPct, "growth", 0, "Growth: monthly growth rate in percent")

	pf.Float64Var(&flagMRR, "mrr", 0, "SaaS: current MRR")
	pf.IntVar(&flagCustomers, "customers", 0, "SaaS: current customers")
	pf.Float64Var(&flagChurnPct, "churn", 0, "SaaS: monthly churn in percent")
	pf.Float64Var(&flagCAC, "cac", 0, "SaaS: customer acquisition cost")
	pf.Float64Var(&flagBudget, "budget", 0, "SaaS: monthly marketing budget")
	pf.Float64Var(&flagARPU, "arpu", 0, "SaaS: average revenue per user")
}

// loadConfig reads the config file, applies --scenario and then every flag
// the user set explicitly.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return cfg, err
	}
	if flagScenario != "" {
		if cfg, err = cfg.ApplyScenario(flagScenario); err != nil {
			return cfg, err
		}
	}

	flags := cmd.Flags()
	set := func(name string, apply func()) {
		if flags.Changed(name) {
			apply()
		}
	}
	set("mode", func() { cfg.General.Mode = flagMode })
	set("seed", func() { cfg.General.Seed = flagSeed })
	set("log-level", func() { cfg.Log.Level = flagLogLevel })
	set("months", func() {
		cfg.Growth.Months = flagMonths
		cfg.SaaS.Months = flagMonths
	})
	set("revenue", func() { cfg.Growth.PredictedRevenue = flagRevenue })
	set("cost", func() { cfg.Growth.PredictedCost = flagCost })
	set("growth", func() { cfg.Growth.GrowthRatePct = flagGrowthPct })
	set("mrr", func() { cfg.SaaS.MRR = flagMRR })
	set("customers", func() { cfg.SaaS.Customers = flagCustomers })
	set("churn", func() { cfg.SaaS.ChurnRatePct = flagChurnPct })
	set("cac", func() { cfg.SaaS.CAC = flagCAC })
	set("budget", func() { cfg.SaaS.MarketingBudget = flagBudget })
	set("arpu", func() { cfg.SaaS.ARPU = flagARPU })
	return cfg, nil
}

// loadParams resolves and validates the parameter set for one run.
func loadParams(cmd *cobra.Command) (config.Config, model.Params, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return cfg, model.Params{}, err
	}
	p, err := cfg.Params()
	if err != nil {
		return cfg, p, err
	}
	if err := p.Validate(); err != nil {
		return cfg, p, err
	}
	return cfg, p, nil
}

// newLogger builds the stderr logger from [log] level, --quiet winning.
func newLogger(cfg config.Config) *log.Logger {
	level, err := log.ParseLevel(cfg.Log.Level)
	if err != nil {
		level = log.InfoLevel
	}
	if flagQuiet {
		level = log.ErrorLevel
	}
	return log.NewWithOptions(os.Stderr, log.Options{
		Level:           level,
		ReportTimestamp: true,
		Prefix:          "stratsim",
	})
}
