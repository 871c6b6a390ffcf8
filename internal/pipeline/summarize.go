// Package pipeline turns a parameter set into a finished report: simulate,
// summarize, then apply the feedback rules.
package pipeline

import (
	"math"

	"github.com/theirongolddev/stratsim/internal/model"
)

// Summarize computes the aggregate metrics of a run. Division by zero in
// the saas ratios yields +Inf rather than an error.
func Summarize(res model.Result, p model.Params) model.Summary {
	if res.Mode == model.ModeSaaS {
		return summarizeSaaS(res.SaaS, p.SaaS)
	}
	return summarizeGrowth(res.Growth)
}

func summarizeGrowth(records []model.GrowthRecord) model.Summary {
	stats := model.Summary{Mode: model.ModeGrowth}
	if len(records) == 0 {
		return stats
	}

	var totalPredicted float64
	for _, r := range records {
		totalPredicted += r.PredictedRevenue
		stats.TotalActualRevenue += r.ActualRevenue
		stats.TotalCost += r.Cost
	}

	n := float64(len(records))
	stats.AvgPredictedRevenue = totalPredicted / n
	stats.AvgActualRevenue = stats.TotalActualRevenue / n
	stats.Gap = stats.AvgActualRevenue - stats.AvgPredictedRevenue
	stats.ActualProfit = stats.TotalActualRevenue - stats.TotalCost
	return stats
}

func summarizeSaaS(records []model.SaaSRecord, p model.SaaSParams) model.Summary {
	stats := model.Summary{
		Mode:      model.ModeSaaS,
		ChurnRate: p.ChurnRate,
		CAC:       p.CAC,
		LTV:       LTV(p.ARPU, p.ChurnRate),
	}
	stats.LTVToCAC = LTVToCAC(stats.LTV, p.CAC)

	if len(records) > 0 {
		last := records[len(records)-1]
		stats.FinalCustomers = last.Customers
		stats.FinalMRR = last.MRR
	}
	return stats
}

// LTV is arpu over the expected tenure 1/churn, +Inf when nobody churns.
func LTV(arpu, churnRate float64) float64 {
	if churnRate <= 0 {
		return math.Inf(1)
	}
	return arpu * (1 / churnRate)
}

// LTVToCAC is ltv/cac, +Inf when acquisition is free.
func LTVToCAC(ltv, cac float64) float64 {
	if cac <= 0 {
		return math.Inf(1)
	}
	return ltv / cac
}
