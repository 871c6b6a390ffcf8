package cmd

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/theirongolddev/stratsim/internal/config"
	"github.com/theirongolddev/stratsim/internal/model"
	"github.com/theirongolddev/stratsim/internal/tui/theme"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "First-time setup wizard",
	RunE:  runSetup,
}

func init() {
	rootCmd.AddCommand(setupCmd)
}

// setupValues is the wizard's raw text; it is applied only after the form
// completes.
type setupValues struct {
	mode      string
	revenue   string
	cost      string
	growthPct string
	months    string
	exportDir string
	theme     string
	logLevel  string
}

func runSetup(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	v := setupValues{
		mode:      cfg.General.Mode,
		revenue:   strconv.FormatFloat(cfg.Growth.PredictedRevenue, 'f', -1, 64),
		cost:      strconv.FormatFloat(cfg.Growth.PredictedCost, 'f', -1, 64),
		growthPct: strconv.FormatFloat(cfg.Growth.GrowthRatePct, 'f', -1, 64),
		months:    strconv.Itoa(cfg.Growth.Months),
		exportDir: cfg.Export.Dir,
		theme:     cfg.Appearance.Theme,
		logLevel:  cfg.Log.Level,
	}

	themeOpts := make([]huh.Option[string], 0, len(theme.All))
	for _, t := range theme.All {
		themeOpts = append(themeOpts, huh.NewOption(t.Name, t.Name))
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewNote().
				Title("Welcome to stratsim").
				Description("Defaults are saved to "+config.Path()+"\nFlags always override them."),
			huh.NewSelect[string]().
				Title("Default strategy mode").
				Options(
					huh.NewOption("Revenue growth", string(model.ModeGrowth)),
					huh.NewOption("SaaS subscriptions", string(model.ModeSaaS)),
				).
				Value(&v.mode),
		),
		huh.NewGroup(
			huh.NewInput().Title("Predicted monthly revenue ($)").Value(&v.revenue).Validate(positiveNumber),
			huh.NewInput().Title("Predicted monthly cost ($)").Value(&v.cost).Validate(nonNegativeNumber),
			huh.NewInput().Title("Monthly growth rate (%)").Value(&v.growthPct).Validate(growthPercent),
			huh.NewInput().Title("Months to simulate").Value(&v.months).Validate(monthCount),
		).Title("Growth defaults"),
		huh.NewGroup(
			huh.NewInput().Title("Export directory").Value(&v.exportDir),
			huh.NewSelect[string]().Title("Color theme").Options(themeOpts...).Value(&v.theme),
			huh.NewSelect[string]().
				Title("Log level").
				Options(huh.NewOptions("debug", "info", "warn", "error")...).
				Value(&v.logLevel),
		),
	).WithTheme(huh.ThemeCharm())

	if err := form.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			fmt.Println("  Setup cancelled, nothing saved.")
			return nil
		}
		return err
	}

	cfg.General.Mode = v.mode
	cfg.Growth.PredictedRevenue, _ = strconv.ParseFloat(v.revenue, 64)
	cfg.Growth.PredictedCost, _ = strconv.ParseFloat(v.cost, 64)
	cfg.Growth.GrowthRatePct, _ = strconv.ParseFloat(v.growthPct, 64)
	months, _ := strconv.Atoi(v.months)
	cfg.Growth.Months = months
	cfg.SaaS.Months = months
	if dir := strings.TrimSpace(v.exportDir); dir != "" {
		cfg.Export.Dir = dir
	}
	cfg.Appearance.Theme = v.theme
	cfg.Log.Level = v.logLevel

	if err := config.Save(cfg); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	fmt.Println()
	fmt.Printf("  Saved to %s\n", config.Path())
	fmt.Println("  Run `stratsim setup` anytime to reconfigure.")
	fmt.Println()
	return nil
}

func parseSetupNumber(s string) (float64, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, errors.New("must be a number")
	}
	return f, nil
}

func positiveNumber(s string) error {
	f, err := parseSetupNumber(s)
	if err != nil {
		return err
	}
	if f <= 0 || f > model.MaxAmount {
		return fmt.Errorf("must be greater than 0 and at most %g", model.MaxAmount)
	}
	return nil
}

func nonNegativeNumber(s string) error {
	f, err := parseSetupNumber(s)
	if err != nil {
		return err
	}
	if f < 0 || f > model.MaxAmount {
		return fmt.Errorf("must be between 0 and %g", model.MaxAmount)
	}
	return nil
}

func growthPercent(s string) error {
	f, err := parseSetupNumber(s)
	if err != nil {
		return err
	}
	if f < 0 || f > model.MaxGrowthRate*100 {
		return fmt.Errorf("must be between 0 and %g", model.MaxGrowthRate*100)
	}
	return nil
}

func monthCount(s string) error {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 1 || n > model.MaxMonths {
		return fmt.Errorf("must be a whole number between 1 and %d", model.MaxMonths)
	}
	return nil
}
