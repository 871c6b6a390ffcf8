// Package model defines the parameter sets, period records and summaries
// shared by the simulator's engine, pipeline and exporters.
package model

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// Mode selects the simulation strategy.
type Mode string

const (
	ModeGrowth Mode = "growth"
	ModeSaaS   Mode = "saas"
)

// MaxMonths is the longest projection a run may request.
const MaxMonths = 36

// MaxGrowthRate caps the monthly growth rate (50%).
const MaxGrowthRate = 0.5

// Upper bounds on the inputs. Together with MaxMonths and MaxGrowthRate they
// keep every projected value finite: 1e12 * 1.5^35 for growth revenue, and
// (MaxCustomers + 36 * MaxAmount/MinCAC) * MaxAmount for saas MRR.
const (
	MaxAmount    = 1e12
	MaxCustomers = 1_000_000_000
	// MinCAC is the smallest non-zero acquisition cost (one cent).
	MinCAC = 0.01
)

var (
	// ErrInvalidParameter marks out-of-range or missing input. The run is not attempted.
	ErrInvalidParameter = errors.New("invalid parameter")
	// ErrNoSimulationYet is returned when a summary, chart or export is requested before a run.
	ErrNoSimulationYet = errors.New("no simulation has been run yet")
)

// ParseMode resolves a mode name, case-insensitive.
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case ModeGrowth:
		return ModeGrowth, nil
	case ModeSaaS:
		return ModeSaaS, nil
	}
	return "", fmt.Errorf("%w: unknown mode %q (want growth or saas)", ErrInvalidParameter, s)
}

// GrowthParams drives a compound-growth revenue projection.
type GrowthParams struct {
	PredictedRevenue float64 `json:"predicted_revenue"`
	PredictedCost    float64 `json:"predicted_cost"`
	GrowthRate       float64 `json:"growth_rate"` // fraction, 0..0.5
	Months           int     `json:"months"`
}

// SaaSParams drives a customer churn/acquisition projection.
type SaaSParams struct {
	MRR             float64 `json:"mrr"`
	Customers       int     `json:"customers"`
	ChurnRate       float64 `json:"churn_rate"` // fraction per month
	CAC             float64 `json:"cac"`
	MarketingBudget float64 `json:"marketing_budget"`
	ARPU            float64 `json:"arpu"`
	Months          int     `json:"months"`
}

// Params is one immutable parameter set for a single run. Only the
// sub-struct matching Mode is read.
type Params struct {
	Mode   Mode         `json:"mode"`
	Growth GrowthParams `json:"growth"`
	SaaS   SaaSParams   `json:"saas"`
}

// Months returns the projection length for the active mode.
func (p Params) Months() int {
	if p.Mode == ModeSaaS {
		return p.SaaS.Months
	}
	return p.Growth.Months
}

// Validate checks the active mode's fields and reports the first violation.
func (p Params) Validate() error {
	switch p.Mode {
	case ModeGrowth:
		return p.Growth.Validate()
	case ModeSaaS:
		return p.SaaS.Validate()
	}
	return fmt.Errorf("%w: unknown mode %q", ErrInvalidParameter, p.Mode)
}

// Validate checks growth-mode ranges.
func (g GrowthParams) Validate() error {
	if err := checkFinite("predicted revenue", g.PredictedRevenue); err != nil {
		return err
	}
	if g.PredictedRevenue <= 0 || g.PredictedRevenue > MaxAmount {
		return invalid("predicted revenue", fmt.Sprintf("must be greater than 0 and at most %g", MaxAmount))
	}
	if err := amount("predicted cost", g.PredictedCost); err != nil {
		return err
	}
	if err := checkFinite("growth rate", g.GrowthRate); err != nil {
		return err
	}
	if g.GrowthRate < 0 || g.GrowthRate > MaxGrowthRate {
		return invalid("growth rate", "must be between 0% and 50%")
	}
	return checkMonths(g.Months)
}

// Validate checks saas-mode ranges.
func (s SaaSParams) Validate() error {
	if err := amount("mrr", s.MRR); err != nil {
		return err
	}
	if s.Customers < 0 || s.Customers > MaxCustomers {
		return invalid("customers", fmt.Sprintf("must be between 0 and %d", MaxCustomers))
	}
	if err := checkFinite("churn rate", s.ChurnRate); err != nil {
		return err
	}
	if s.ChurnRate < 0 || s.ChurnRate > 1 {
		return invalid("churn rate", "must be between 0% and 100%")
	}
	if err := amount("cac", s.CAC); err != nil {
		return err
	}
	if s.CAC > 0 && s.CAC < MinCAC {
		return invalid("cac", fmt.Sprintf("must be 0 or at least %g", MinCAC))
	}
	if err := amount("marketing budget", s.MarketingBudget); err != nil {
		return err
	}
	if err := amount("arpu", s.ARPU); err != nil {
		return err
	}
	return checkMonths(s.Months)
}

func checkMonths(m int) error {
	if m < 1 || m > MaxMonths {
		return invalid("months", fmt.Sprintf("must be between 1 and %d", MaxMonths))
	}
	return nil
}

// amount checks a money input against 0..MaxAmount.
func amount(field string, v float64) error {
	if err := checkFinite(field, v); err != nil {
		return err
	}
	if v < 0 {
		return invalid(field, "must not be negative")
	}
	if v > MaxAmount {
		return invalid(field, fmt.Sprintf("must be at most %g", MaxAmount))
	}
	return nil
}

func checkFinite(field string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return invalid(field, "must be a finite number")
	}
	return nil
}

func invalid(field, reason string) error {
	return fmt.Errorf("%w: %s %s", ErrInvalidParameter, field, reason)
}
