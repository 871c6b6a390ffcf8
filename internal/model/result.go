package model

// GrowthRecord is one month of a growth-mode projection.
type GrowthRecord struct {
	Month            int     `json:"month"`
	PredictedRevenue float64 `json:"predicted_revenue"`
	ActualRevenue    float64 `json:"actual_revenue"`
	Cost             float64 `json:"cost"`
}

// SaaSRecord is one month of a saas-mode projection. Values are rounded
// to 2 decimals when emitted.
type SaaSRecord struct {
	Month            int     `json:"month"`
	Customers        float64 `json:"customers"`
	MRR              float64 `json:"mrr"`
	NewCustomers     float64 `json:"new_customers"`
	ChurnedCustomers float64 `json:"churned_customers"`
}

// Result is the ordered time series produced by one run. Exactly one of
// Growth and SaaS is populated, matching Mode.
type Result struct {
	RunID        string         `json:"run_id"`
	Mode         Mode           `json:"mode"`
	ActualFactor float64        `json:"actual_factor,omitempty"`
	Growth       []GrowthRecord `json:"growth,omitempty"`
	SaaS         []SaaSRecord   `json:"saas,omitempty"`
}

// Len returns the number of period records.
func (r Result) Len() int {
	if r.Mode == ModeSaaS {
		return len(r.SaaS)
	}
	return len(r.Growth)
}

// Point is one (Month, Value) sample of a chart series.
type Point struct {
	Month int     `json:"month"`
	Value float64 `json:"value"`
}

// Series is a named metric over months, handed to chart renderers as-is.
type Series struct {
	Name   string  `json:"name"`
	Points []Point `json:"points"`
}

// Values returns the series values in month order.
func (s Series) Values() []float64 {
	out := make([]float64, len(s.Points))
	for i, p := range s.Points {
		out[i] = p.Value
	}
	return out
}

// Series returns every charted metric of the run.
func (r Result) Series() []Series {
	if r.Mode == ModeSaaS {
		customers := Series{Name: "Customers"}
		mrr := Series{Name: "MRR"}
		added := Series{Name: "New Customers"}
		churned := Series{Name: "Churned Customers"}
		for _, rec := range r.SaaS {
			customers.Points = append(customers.Points, Point{rec.Month, rec.Customers})
			mrr.Points = append(mrr.Points, Point{rec.Month, rec.MRR})
			added.Points = append(added.Points, Point{rec.Month, rec.NewCustomers})
			churned.Points = append(churned.Points, Point{rec.Month, rec.ChurnedCustomers})
		}
		return []Series{customers, mrr, added, churned}
	}

	predicted := Series{Name: "Predicted Revenue"}
	actual := Series{Name: "Actual Revenue"}
	cost := Series{Name: "Cost"}
	for _, rec := range r.Growth {
		predicted.Points = append(predicted.Points, Point{rec.Month, rec.PredictedRevenue})
		actual.Points = append(actual.Points, Point{rec.Month, rec.ActualRevenue})
		cost.Points = append(cost.Points, Point{rec.Month, rec.Cost})
	}
	return []Series{predicted, actual, cost}
}

// Summary holds the aggregate metrics of a run. Growth fields are zero in
// saas mode and vice versa. LTV and LTVToCAC may be +Inf.
type Summary struct {
	Mode Mode

	AvgPredictedRevenue float64
	AvgActualRevenue    float64
	Gap                 float64 // AvgActualRevenue - AvgPredictedRevenue
	TotalActualRevenue  float64
	TotalCost           float64
	ActualProfit        float64

	FinalCustomers float64
	FinalMRR       float64
	LTV            float64
	LTVToCAC       float64
	ChurnRate      float64
	CAC            float64
}
