// Package engine implements the month-by-month recurrence relations of the
// two simulation modes. Everything here is pure except the one actual-factor
// draw, which comes from an injected RandomSource.
package engine

import (
	"errors"
	"math"

	"github.com/theirongolddev/stratsim/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Bounds of the systemic actual-performance multiplier.
const (
	minActualFactor  = 0.9
	actualFactorSpan = 0.2
)

// Simulate validates p and produces its time series. The source is only
// consulted in growth mode, exactly once.
func Simulate(p model.Params, src RandomSource) (model.Result, error) {
	if err := p.Validate(); err != nil {
		return model.Result{}, err
	}

	res := model.Result{RunID: uuid.NewString(), Mode: p.Mode}
	switch p.Mode {
	case model.ModeGrowth:
		if src == nil {
			return model.Result{}, errors.New("growth simulation needs a random source")
		}
		res.ActualFactor = ActualFactor(src)
		res.Growth = ProjectGrowth(p.Growth, res.ActualFactor)
	case model.ModeSaaS:
		res.SaaS = ProjectSaaS(p.SaaS)
	}
	return res, nil
}

// ActualFactor draws the run's actual/predicted multiplier, uniform in [0.9, 1.1).
func ActualFactor(src RandomSource) float64 {
	return minActualFactor + actualFactorSpan*src.Float64()
}

// ProjectGrowth compounds predicted revenue monthly and scales every month
// by the same actual factor. Cost stays flat.
func ProjectGrowth(p model.GrowthParams, actualFactor float64) []model.GrowthRecord {
	records := make([]model.GrowthRecord, 0, p.Months)
	for m := 1; m <= p.Months; m++ {
		predicted := p.PredictedRevenue * math.Pow(1+p.GrowthRate, float64(m-1))
		records = append(records, model.GrowthRecord{
			Month:            m,
			PredictedRevenue: predicted,
			ActualRevenue:    predicted * actualFactor,
			Cost:             p.PredictedCost,
		})
	}
	return records
}

// ProjectSaaS threads the customer count forward month by month. Only the
// emitted values are rounded; the carried state keeps full precision.
func ProjectSaaS(p model.SaaSParams) []model.SaaSRecord {
	newPerMonth := 0.0
	if p.CAC > 0 {
		newPerMonth = p.MarketingBudget / p.CAC
	}

	records := make([]model.SaaSRecord, 0, p.Months)
	customers := float64(p.Customers)
	for m := 1; m <= p.Months; m++ {
		churned := customers * p.ChurnRate
		customers = customers - churned + newPerMonth
		records = append(records, model.SaaSRecord{
			Month:            m,
			Customers:        Round2(customers),
			MRR:              Round2(customers * p.ARPU),
			NewCustomers:     Round2(newPerMonth),
			ChurnedCustomers: Round2(churned),
		})
	}
	return records
}

// Round2 rounds to 2 decimal places, half away from zero. NaN and
// infinities are returned unchanged.
func Round2(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return v
	}
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}
