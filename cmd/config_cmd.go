package cmd

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/stratsim/internal/cli"
	"github.com/theirongolddev/stratsim/internal/config"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show current configuration",
	RunE:  runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)
}

func runConfig(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	fmt.Printf("  Config file: %s\n", config.Path())
	if config.Exists() {
		fmt.Println("  Status: loaded")
	} else {
		fmt.Println("  Status: using defaults (no config file)")
	}
	if flagScenario != "" {
		fmt.Printf("  Scenario: %s\n", flagScenario)
	}
	fmt.Println()

	fmt.Println("  [General]")
	fmt.Printf("    Mode: %s\n", cfg.General.Mode)
	if cfg.General.Seed != 0 {
		fmt.Printf("    Seed: %d\n", cfg.General.Seed)
	} else {
		fmt.Println("    Seed: random")
	}
	fmt.Println()

	fmt.Println("  [Growth]")
	fmt.Printf("    Predicted revenue: %s\n", cli.FormatMoney(cfg.Growth.PredictedRevenue))
	fmt.Printf("    Predicted cost:    %s\n", cli.FormatMoney(cfg.Growth.PredictedCost))
	fmt.Printf("    Growth rate:       %g%%\n", cfg.Growth.GrowthRatePct)
	fmt.Printf("    Months:            %d\n", cfg.Growth.Months)
	fmt.Println()

	fmt.Println("  [SaaS]")
	fmt.Printf("    MRR:              %s\n", cli.FormatMoney(cfg.SaaS.MRR))
	fmt.Printf("    Customers:        %s\n", cli.FormatNumber(int64(cfg.SaaS.Customers)))
	fmt.Printf("    Churn rate:       %g%%\n", cfg.SaaS.ChurnRatePct)
	fmt.Printf("    CAC:              %s\n", cli.FormatMoney(cfg.SaaS.CAC))
	fmt.Printf("    Marketing budget: %s\n", cli.FormatMoney(cfg.SaaS.MarketingBudget))
	fmt.Printf("    ARPU:             %s\n", cli.FormatMoney(cfg.SaaS.ARPU))
	fmt.Printf("    Months:           %d\n", cfg.SaaS.Months)
	fmt.Println()

	fmt.Println("  [Export]")
	fmt.Printf("    Directory:      %s\n", cfg.Export.Dir)
	fmt.Printf("    Lines per page: %d\n", cfg.Export.LinesPerPage)
	fmt.Println()

	fmt.Println("  [Server]")
	fmt.Printf("    Address: %s\n", cfg.Server.Addr)
	fmt.Println()

	fmt.Println("  [Appearance]")
	fmt.Printf("    Theme: %s\n", cfg.Appearance.Theme)
	fmt.Println()

	fmt.Println("  [Log]")
	fmt.Printf("    Level: %s\n", cfg.Log.Level)
	fmt.Println()

	if names := cfg.ScenarioNames(); len(names) > 0 {
		fmt.Printf("  Scenarios: %s\n\n", strings.Join(names, ", "))
	}

	fmt.Println("  Run `stratsim setup` to reconfigure.")
	return nil
}
