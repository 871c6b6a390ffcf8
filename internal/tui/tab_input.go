package tui

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/theirongolddev/stratsim/internal/model"

	"github.com/charmbracelet/huh"
)

// inputValues holds the form's raw text. Rates are entered in percent.
type inputValues struct {
	Mode string

	Revenue   string
	Cost      string
	GrowthPct string
	GMonths   string

	MRR       string
	Customers string
	ChurnPct  string
	CAC       string
	Budget    string
	ARPU      string
	SMonths   string
}

func formatInput(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func newInputValues(p model.Params) *inputValues {
	mode := p.Mode
	if mode == "" {
		mode = model.ModeGrowth
	}
	return &inputValues{
		Mode:      string(mode),
		Revenue:   formatInput(p.Growth.PredictedRevenue),
		Cost:      formatInput(p.Growth.PredictedCost),
		GrowthPct: formatInput(p.Growth.GrowthRate * 100),
		GMonths:   strconv.Itoa(p.Growth.Months),
		MRR:       formatInput(p.SaaS.MRR),
		Customers: strconv.Itoa(p.SaaS.Customers),
		ChurnPct:  formatInput(p.SaaS.ChurnRate * 100),
		CAC:       formatInput(p.SaaS.CAC),
		Budget:    formatInput(p.SaaS.MarketingBudget),
		ARPU:      formatInput(p.SaaS.ARPU),
		SMonths:   strconv.Itoa(p.SaaS.Months),
	}
}

// params parses the form into a parameter set. Range checks are left to
// model.Params.Validate.
func (v *inputValues) params() (model.Params, error) {
	mode, err := model.ParseMode(v.Mode)
	if err != nil {
		return model.Params{}, err
	}
	p := model.Params{Mode: mode}

	var errs []error
	num := func(field, s string) float64 {
		f, err := parseNumber(s)
		if err != nil {
			errs = append(errs, fmt.Errorf("%w: %s %v", model.ErrInvalidParameter, field, err))
		}
		return f
	}
	whole := func(field, s string) int {
		n, err := parseWhole(s)
		if err != nil {
			errs = append(errs, fmt.Errorf("%w: %s %v", model.ErrInvalidParameter, field, err))
		}
		return n
	}

	if mode == model.ModeSaaS {
		p.SaaS = model.SaaSParams{
			MRR:             num("mrr", v.MRR),
			Customers:       whole("customers", v.Customers),
			ChurnRate:       num("churn_rate", v.ChurnPct) / 100,
			CAC:             num("cac", v.CAC),
			MarketingBudget: num("marketing_budget", v.Budget),
			ARPU:            num("arpu", v.ARPU),
			Months:          whole("months", v.SMonths),
		}
	} else {
		p.Growth = model.GrowthParams{
			PredictedRevenue: num("predicted_revenue", v.Revenue),
			PredictedCost:    num("predicted_cost", v.Cost),
			GrowthRate:       num("growth_rate", v.GrowthPct) / 100,
			Months:           whole("months", v.GMonths),
		}
	}
	if len(errs) > 0 {
		return model.Params{}, errs[0]
	}
	return p, p.Validate()
}

// parseNumber accepts plain or comma-grouped decimals ("50,000.5").
func parseNumber(s string) (float64, error) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	s = strings.TrimPrefix(s, "$")
	if s == "" {
		return 0, errors.New("is required")
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, errors.New("must be a number")
	}
	return f, nil
}

func parseWhole(s string) (int, error) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	if s == "" {
		return 0, errors.New("is required")
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, errors.New("must be a whole number")
	}
	return n, nil
}

func validNumber(s string) error {
	_, err := parseNumber(s)
	return err
}

func validMonths(s string) error {
	n, err := parseWhole(s)
	if err != nil {
		return err
	}
	if n < 1 || n > model.MaxMonths {
		return fmt.Errorf("must be between 1 and %d", model.MaxMonths)
	}
	return nil
}

func validPercent(maxPct float64) func(string) error {
	return func(s string) error {
		f, err := parseNumber(s)
		if err != nil {
			return err
		}
		if f < 0 || f > maxPct {
			return fmt.Errorf("must be between 0 and %g", maxPct)
		}
		return nil
	}
}

func newInputForm(v *inputValues) *huh.Form {
	modeGroup := huh.NewGroup(
		huh.NewSelect[string]().
			Title("Which strategy do you want to simulate?").
			Options(
				huh.NewOption("Revenue growth", string(model.ModeGrowth)),
				huh.NewOption("SaaS subscriptions", string(model.ModeSaaS)),
			).
			Value(&v.Mode),
	)

	growthGroup := huh.NewGroup(
		huh.NewInput().Title("Predicted monthly revenue ($)").Value(&v.Revenue).Validate(validNumber),
		huh.NewInput().Title("Predicted monthly cost ($)").Value(&v.Cost).Validate(validNumber),
		huh.NewInput().Title("Monthly growth rate (%)").
			Description(fmt.Sprintf("0 to %g", model.MaxGrowthRate*100)).
			Value(&v.GrowthPct).Validate(validPercent(model.MaxGrowthRate*100)),
		huh.NewInput().Title("Months to simulate").
			Description(fmt.Sprintf("1 to %d", model.MaxMonths)).
			Value(&v.GMonths).Validate(validMonths),
	).WithHideFunc(func() bool { return v.Mode != string(model.ModeGrowth) })

	saasGroup := huh.NewGroup(
		huh.NewInput().Title("Current MRR ($)").Value(&v.MRR).Validate(validNumber),
		huh.NewInput().Title("Current customers").Value(&v.Customers).
			Validate(func(s string) error { _, err := parseWhole(s); return err }),
		huh.NewInput().Title("Monthly churn rate (%)").Value(&v.ChurnPct).Validate(validPercent(100)),
		huh.NewInput().Title("Customer acquisition cost ($)").Value(&v.CAC).Validate(validNumber),
		huh.NewInput().Title("Monthly marketing budget ($)").Value(&v.Budget).Validate(validNumber),
		huh.NewInput().Title("Average revenue per user ($)").Value(&v.ARPU).Validate(validNumber),
		huh.NewInput().Title("Months to simulate").
			Description(fmt.Sprintf("1 to %d", model.MaxMonths)).
			Value(&v.SMonths).Validate(validMonths),
	).WithHideFunc(func() bool { return v.Mode != string(model.ModeSaaS) })

	return huh.NewForm(modeGroup, growthGroup, saasGroup).
		WithTheme(huh.ThemeCharm()).
		WithShowHelp(true)
}
