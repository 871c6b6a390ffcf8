package engine

import (
	"errors"
	"math"
	"testing"

	"github.com/theirongolddev/stratsim/internal/model"
)

func approx(a, b float64) bool {
	return math.Abs(a-b) <= 1e-9*math.Max(1, math.Abs(b))
}

func growthParams(revenue, rate float64, months int) model.Params {
	return model.Params{
		Mode:   model.ModeGrowth,
		Growth: model.GrowthParams{PredictedRevenue: revenue, PredictedCost: 20000, GrowthRate: rate, Months: months},
	}
}

func saasParams(s model.SaaSParams) model.Params {
	return model.Params{Mode: model.ModeSaaS, SaaS: s}
}

func TestSimulateLengthAndMonths(t *testing.T) {
	params := []model.Params{
		growthParams(1000, 0.1, 1),
		growthParams(1000, 0.5, 36),
		saasParams(model.SaaSParams{Customers: 10, ChurnRate: 0.1, CAC: 10, MarketingBudget: 100, ARPU: 5, Months: 17}),
	}
	for _, p := range params {
		res, err := Simulate(p, NewSeededSource(7))
		if err != nil {
			t.Fatalf("Simulate(%s) error: %v", p.Mode, err)
		}
		if res.Len() != p.Months() {
			t.Fatalf("%s: Len() = %d, want %d", p.Mode, res.Len(), p.Months())
		}
		for i, s := range res.Series()[0].Points {
			if s.Month != i+1 {
				t.Fatalf("%s: record %d has month %d", p.Mode, i, s.Month)
			}
		}
		if res.RunID == "" {
			t.Fatalf("%s: empty run id", p.Mode)
		}
	}
}

func TestSimulateRejectsInvalidParams(t *testing.T) {
	_, err := Simulate(growthParams(1000, 0.1, 0), Fixed(0.5))
	if !errors.Is(err, model.ErrInvalidParameter) {
		t.Fatalf("err = %v, want ErrInvalidParameter", err)
	}
}

func TestGrowthCompoundsAndKeepsFactorConstant(t *testing.T) {
	res, err := Simulate(growthParams(2500, 0.07, 24), NewSeededSource(42))
	if err != nil {
		t.Fatal(err)
	}
	if res.ActualFactor < 0.9 || res.ActualFactor >= 1.1 {
		t.Fatalf("ActualFactor = %v, want in [0.9, 1.1)", res.ActualFactor)
	}
	recs := res.Growth
	for i := 1; i < len(recs); i++ {
		if !approx(recs[i].PredictedRevenue, recs[i-1].PredictedRevenue*1.07) {
			t.Fatalf("month %d predicted = %v, want %v", recs[i].Month, recs[i].PredictedRevenue, recs[i-1].PredictedRevenue*1.07)
		}
	}
	ratio := recs[0].ActualRevenue / recs[0].PredictedRevenue
	for _, r := range recs {
		if !approx(r.ActualRevenue/r.PredictedRevenue, ratio) {
			t.Fatalf("month %d actual/predicted = %v, want %v", r.Month, r.ActualRevenue/r.PredictedRevenue, ratio)
		}
		if r.Cost != 20000 {
			t.Fatalf("month %d cost = %v, want 20000", r.Month, r.Cost)
		}
	}
}

func TestSeededSourceIsReproducible(t *testing.T) {
	a := ActualFactor(NewSeededSource(99))
	b := ActualFactor(NewSeededSource(99))
	if a != b {
		t.Fatalf("same seed produced %v and %v", a, b)
	}
	if c := ActualFactor(SourceFromSeed(99)); c != a {
		t.Fatalf("SourceFromSeed(99) = %v, want %v", c, a)
	}
	if f := ActualFactor(SourceFromSeed(0)); f < 0.9 || f >= 1.1 {
		t.Fatalf("SourceFromSeed(0) factor = %v, want [0.9, 1.1)", f)
	}
}

func TestGrowthScenarioFlat(t *testing.T) {
	res, err := Simulate(growthParams(50000, 0, 3), Fixed(0.5))
	if err != nil {
		t.Fatal(err)
	}
	if res.ActualFactor != 1.0 {
		t.Fatalf("ActualFactor = %v, want 1.0", res.ActualFactor)
	}
	for _, r := range res.Growth {
		if r.PredictedRevenue != 50000 || r.ActualRevenue != 50000 {
			t.Fatalf("month %d = %+v, want 50000/50000", r.Month, r)
		}
	}
}

func TestGrowthScenarioTenPercent(t *testing.T) {
	recs := ProjectGrowth(model.GrowthParams{PredictedRevenue: 1000, GrowthRate: 0.1, Months: 3}, 1.0)
	want := []float64{1000, 1100, 1210}
	for i, r := range recs {
		if !approx(r.PredictedRevenue, want[i]) {
			t.Fatalf("month %d predicted = %v, want %v", r.Month, r.PredictedRevenue, want[i])
		}
		if r.ActualRevenue != r.PredictedRevenue {
			t.Fatalf("month %d actual = %v, want predicted", r.Month, r.ActualRevenue)
		}
	}
}

func TestSaaSScenarioOneMonth(t *testing.T) {
	recs := ProjectSaaS(model.SaaSParams{Customers: 100, ChurnRate: 0.05, CAC: 200, MarketingBudget: 5000, ARPU: 100, Months: 1})
	got := recs[0]
	if got.ChurnedCustomers != 5 || got.NewCustomers != 25 || got.Customers != 120 || got.MRR != 12000 {
		t.Fatalf("month 1 = %+v, want churned 5, new 25, customers 120, mrr 12000", got)
	}
}

func TestSaaSSteadyStateWithoutChurnOrBudget(t *testing.T) {
	recs := ProjectSaaS(model.SaaSParams{Customers: 340, ChurnRate: 0, CAC: 150, MarketingBudget: 0, ARPU: 20, Months: 36})
	for _, r := range recs {
		if r.Customers != 340 || r.ChurnedCustomers != 0 || r.NewCustomers != 0 {
			t.Fatalf("month %d = %+v, want unchanged 340 customers", r.Month, r)
		}
	}
}

func TestSaaSZeroCACAcquiresNobody(t *testing.T) {
	recs := ProjectSaaS(model.SaaSParams{Customers: 50, ChurnRate: 0.1, CAC: 0, MarketingBudget: 9000, ARPU: 10, Months: 6})
	for _, r := range recs {
		if r.NewCustomers != 0 {
			t.Fatalf("month %d new customers = %v, want 0", r.Month, r.NewCustomers)
		}
	}
}

func TestSaaSRoundsOnlyOnEmission(t *testing.T) {
	// Feeding rounded values back into the scan would drift from this.
	p := model.SaaSParams{Customers: 7, ChurnRate: 0.333, CAC: 3, MarketingBudget: 10, ARPU: 1, Months: 12}
	recs := ProjectSaaS(p)

	customers := 7.0
	for _, r := range recs {
		churned := customers * p.ChurnRate
		customers = customers - churned + 10.0/3
		if r.Customers != Round2(customers) {
			t.Fatalf("month %d customers = %v, want %v", r.Month, r.Customers, Round2(customers))
		}
		if r.ChurnedCustomers != Round2(churned) {
			t.Fatalf("month %d churned = %v, want %v", r.Month, r.ChurnedCustomers, Round2(churned))
		}
	}
}

func TestRound2(t *testing.T) {
	cases := map[float64]float64{
		3.333333: 3.33,
		2.675:    2.68,
		-1.005:   -1.01,
		120:      120,
	}
	for in, want := range cases {
		if got := Round2(in); got != want {
			t.Fatalf("Round2(%v) = %v, want %v", in, got, want)
		}
	}

	if got := Round2(math.Inf(1)); !math.IsInf(got, 1) {
		t.Fatalf("Round2(+Inf) = %v, want +Inf", got)
	}
	if got := Round2(math.NaN()); !math.IsNaN(got) {
		t.Fatalf("Round2(NaN) = %v, want NaN", got)
	}
}

func TestLargestValidInputsStayFinite(t *testing.T) {
	params := []model.Params{
		{Mode: model.ModeGrowth, Growth: model.GrowthParams{
			PredictedRevenue: model.MaxAmount, PredictedCost: model.MaxAmount,
			GrowthRate: model.MaxGrowthRate, Months: model.MaxMonths,
		}},
		saasParams(model.SaaSParams{
			MRR: model.MaxAmount, Customers: model.MaxCustomers, ChurnRate: 0,
			CAC: model.MinCAC, MarketingBudget: model.MaxAmount, ARPU: model.MaxAmount,
			Months: model.MaxMonths,
		}),
	}
	for _, p := range params {
		res, err := Simulate(p, Fixed(0.999999))
		if err != nil {
			t.Fatalf("%s: Simulate error: %v", p.Mode, err)
		}
		for _, s := range res.Series() {
			for _, pt := range s.Points {
				if math.IsInf(pt.Value, 0) || math.IsNaN(pt.Value) {
					t.Fatalf("%s: %s month %d = %v", p.Mode, s.Name, pt.Month, pt.Value)
				}
			}
		}
	}
}

func TestOversizedInputsAreRejected(t *testing.T) {
	params := []model.Params{
		growthParams(1e307, 0.5, 36),
		saasParams(model.SaaSParams{Customers: 2, ChurnRate: 0.05, CAC: 200, ARPU: 1e308, Months: 1}),
		saasParams(model.SaaSParams{Customers: 2, CAC: 1e-300, MarketingBudget: 100, Months: 1}),
	}
	for _, p := range params {
		if _, err := Simulate(p, Fixed(0.5)); !errors.Is(err, model.ErrInvalidParameter) {
			t.Fatalf("%s %+v: err = %v, want ErrInvalidParameter", p.Mode, p, err)
		}
	}
}
