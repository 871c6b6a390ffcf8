package pipeline

import (
	"errors"
	"math"
	"testing"

	"github.com/theirongolddev/stratsim/internal/engine"
	"github.com/theirongolddev/stratsim/internal/model"
)

func rulesFired(advice []Advice) map[string]bool {
	out := make(map[string]bool, len(advice))
	for _, a := range advice {
		out[a.Rule] = true
	}
	return out
}

func TestSummarizeGrowthAverages(t *testing.T) {
	res := model.Result{
		Mode: model.ModeGrowth,
		Growth: []model.GrowthRecord{
			{Month: 1, PredictedRevenue: 1000, ActualRevenue: 900, Cost: 100},
			{Month: 2, PredictedRevenue: 1100, ActualRevenue: 990, Cost: 100},
			{Month: 3, PredictedRevenue: 1230, ActualRevenue: 1089, Cost: 100},
		},
	}
	s := Summarize(res, model.Params{Mode: model.ModeGrowth})
	if s.AvgPredictedRevenue != 1110 {
		t.Fatalf("AvgPredictedRevenue = %v, want 1110", s.AvgPredictedRevenue)
	}
	if s.AvgActualRevenue != 993 {
		t.Fatalf("AvgActualRevenue = %v, want 993", s.AvgActualRevenue)
	}
	if s.TotalCost != 300 || s.ActualProfit != 2679 {
		t.Fatalf("TotalCost = %v ActualProfit = %v, want 300 / 2679", s.TotalCost, s.ActualProfit)
	}
	if s.Gap >= 0 {
		t.Fatalf("Gap = %v, want negative", s.Gap)
	}
}

func TestSummarizeSaaSFinalValues(t *testing.T) {
	p := model.Params{Mode: model.ModeSaaS, SaaS: model.SaaSParams{
		Customers: 100, ChurnRate: 0.05, CAC: 200, MarketingBudget: 5000, ARPU: 100, Months: 3,
	}}
	res, err := engine.Simulate(p, nil)
	if err != nil {
		t.Fatal(err)
	}
	s := Summarize(res, p)
	last := res.SaaS[len(res.SaaS)-1]
	if s.FinalCustomers != last.Customers || s.FinalMRR != last.MRR {
		t.Fatalf("final = %v/%v, want %v/%v", s.FinalCustomers, s.FinalMRR, last.Customers, last.MRR)
	}
	if s.LTV != 2000 {
		t.Fatalf("LTV = %v, want 2000", s.LTV)
	}
	if s.LTVToCAC != 10 {
		t.Fatalf("LTVToCAC = %v, want 10", s.LTVToCAC)
	}
}

func TestZeroChurnIsInfinitelyHealthy(t *testing.T) {
	for _, cac := range []float64{0, 1, 1e9} {
		s := model.Summary{Mode: model.ModeSaaS, ChurnRate: 0, LTV: LTV(50, 0)}
		s.LTVToCAC = LTVToCAC(s.LTV, cac)
		if !math.IsInf(s.LTV, 1) || !math.IsInf(s.LTVToCAC, 1) {
			t.Fatalf("cac=%v: LTV=%v LTVToCAC=%v, want +Inf", cac, s.LTV, s.LTVToCAC)
		}
		fired := rulesFired(Feedback(s))
		if !fired["ltv-cac-healthy"] || fired["ltv-cac-low"] {
			t.Fatalf("cac=%v: fired %v, want ltv-cac-healthy only", cac, fired)
		}
	}
}

func TestZeroCACIsInfiniteRatio(t *testing.T) {
	if got := LTVToCAC(400, 0); !math.IsInf(got, 1) {
		t.Fatalf("LTVToCAC(400, 0) = %v, want +Inf", got)
	}
}

func TestGrowthFeedbackBranches(t *testing.T) {
	cases := []struct {
		gap  float64
		want []string
	}{
		{gap: 0.01, want: []string{"scale-up", "reinvest", "new-markets"}},
		{gap: 0, want: []string{"review-costs", "reassess-pricing", "pilot-first"}},
		{gap: -500, want: []string{"review-costs", "reassess-pricing", "pilot-first"}},
	}
	for _, tc := range cases {
		advice := Feedback(model.Summary{Mode: model.ModeGrowth, Gap: tc.gap})
		if len(advice) != len(tc.want) {
			t.Fatalf("gap=%v: %d messages, want %d", tc.gap, len(advice), len(tc.want))
		}
		for i, a := range advice {
			if a.Rule != tc.want[i] {
				t.Fatalf("gap=%v: advice[%d] = %s, want %s", tc.gap, i, a.Rule, tc.want[i])
			}
		}
	}
}

func TestSaaSFeedbackBranches(t *testing.T) {
	cases := []struct {
		churn, ratio float64
		want         []string
	}{
		{0.08, 1, []string{"churn-severe", "ltv-cac-low"}},
		{0.07, 3, []string{"churn-elevated", "ltv-cac-healthy"}},
		{0.06, 2.99, []string{"churn-elevated", "ltv-cac-low"}},
		{0.05, 12, []string{"churn-healthy", "ltv-cac-healthy"}},
		{0, math.Inf(1), []string{"churn-healthy", "ltv-cac-healthy"}},
	}
	for _, tc := range cases {
		advice := Feedback(model.Summary{Mode: model.ModeSaaS, ChurnRate: tc.churn, LTVToCAC: tc.ratio})
		if len(advice) != len(tc.want) {
			t.Fatalf("churn=%v ratio=%v: got %v", tc.churn, tc.ratio, advice)
		}
		for i, a := range advice {
			if a.Rule != tc.want[i] {
				t.Fatalf("churn=%v ratio=%v: advice[%d] = %s, want %s", tc.churn, tc.ratio, i, a.Rule, tc.want[i])
			}
		}
	}
}

func TestEveryRuleIsReachable(t *testing.T) {
	summaries := []model.Summary{
		{Mode: model.ModeGrowth, Gap: 1},
		{Mode: model.ModeGrowth, Gap: -1},
		{Mode: model.ModeSaaS, ChurnRate: 0.1, LTVToCAC: 1},
		{Mode: model.ModeSaaS, ChurnRate: 0.06, LTVToCAC: 5},
		{Mode: model.ModeSaaS, ChurnRate: 0.01, LTVToCAC: 5},
	}
	seen := map[string]bool{}
	for _, s := range summaries {
		for name := range rulesFired(Feedback(s)) {
			seen[name] = true
		}
	}
	for _, r := range Rules {
		if !seen[r.Name] {
			t.Fatalf("rule %s never fired", r.Name)
		}
	}
}

func TestRunTieGoesToReviewCosts(t *testing.T) {
	p := model.Params{Mode: model.ModeGrowth, Growth: model.GrowthParams{
		PredictedRevenue: 50000, PredictedCost: 20000, GrowthRate: 0, Months: 3,
	}}
	rep, err := Run(p, engine.Fixed(0.5))
	if err != nil {
		t.Fatal(err)
	}
	if rep.Summary.Gap != 0 {
		t.Fatalf("Gap = %v, want exact tie", rep.Summary.Gap)
	}
	if rep.Advice[0].Rule != "review-costs" {
		t.Fatalf("first advice = %s, want review-costs", rep.Advice[0].Rule)
	}
	if len(Messages(rep.Advice)) != 3 {
		t.Fatalf("messages = %v, want 3", Messages(rep.Advice))
	}
}

// countingSource records how often the engine drew from it.
type countingSource struct{ draws int }

func (c *countingSource) Float64() float64 {
	c.draws++
	return 0.5
}

func TestRunStopsOnInvalidParams(t *testing.T) {
	_, err := Run(model.Params{Mode: model.ModeSaaS, SaaS: model.SaaSParams{Months: 40}}, engine.Fixed(0.5))
	if !errors.Is(err, model.ErrInvalidParameter) {
		t.Fatalf("err = %v, want ErrInvalidParameter", err)
	}

	src := &countingSource{}
	bad := model.Params{Mode: model.ModeGrowth, Growth: model.GrowthParams{PredictedRevenue: 1000, Months: 0}}
	if _, err := Run(bad, src); !errors.Is(err, model.ErrInvalidParameter) {
		t.Fatalf("err = %v, want ErrInvalidParameter", err)
	}
	if src.draws != 0 {
		t.Fatalf("invalid params drew %d times from the source", src.draws)
	}

	good := bad
	good.Growth.Months = 3
	if _, err := Run(good, src); err != nil {
		t.Fatal(err)
	}
	if src.draws != 1 {
		t.Fatalf("draws = %d, want exactly one per run", src.draws)
	}
}

func TestGrowthMessagesKeepProductWording(t *testing.T) {
	want := map[string]string{
		"scale-up":         "Your strategy performed better than predicted — scale the approach.",
		"reinvest":         "Consider reinvesting profits into marketing or product improvement.",
		"new-markets":      "Evaluate if similar strategies can work in new markets.",
		"review-costs":     "Results underperformed prediction — review your cost structure.",
		"reassess-pricing": "Reassess pricing and customer acquisition channels.",
		"pilot-first":      "Run a smaller pilot before full-scale rollout next time.",
	}
	for _, r := range Rules {
		if r.Mode != model.ModeGrowth {
			continue
		}
		if r.Message != want[r.Name] {
			t.Errorf("%s message = %q, want %q", r.Name, r.Message, want[r.Name])
		}
		delete(want, r.Name)
	}
	if len(want) != 0 {
		t.Fatalf("missing growth rules: %v", want)
	}
}
