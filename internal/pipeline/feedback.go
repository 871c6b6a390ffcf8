package pipeline

import "github.com/theirongolddev/stratsim/internal/model"

// Severity grades a piece of advice.
type Severity string

const (
	SeverityHealthy Severity = "healthy"
	SeverityInfo    Severity = "info"
	SeverityWarning Severity = "warning"
	SeveritySevere  Severity = "severe"
)

// Churn thresholds (monthly fraction).
const (
	SevereChurn = 0.07
	MildChurn   = 0.05
	// HealthyLTVToCAC is the minimum lifetime value per acquisition dollar.
	HealthyLTVToCAC = 3.0
)

// Advice is one rendered feedback line.
type Advice struct {
	Rule     string   `json:"rule"`
	Severity Severity `json:"severity"`
	Message  string   `json:"message"`
}

// Rule maps a summary predicate to a message.
type Rule struct {
	Name     string
	Mode     model.Mode
	Severity Severity
	Message  string
	Applies  func(model.Summary) bool
}

func outperformed(s model.Summary) bool   { return s.Gap > 0 }
func underperformed(s model.Summary) bool { return s.Gap <= 0 }

// Rules is the full feedback table, evaluated top to bottom. Saas churn and
// LTV:CAC checks are independent; each contributes exactly one line.
var Rules = []Rule{
	{"scale-up", model.ModeGrowth, SeverityHealthy,
		"Your strategy performed better than predicted — scale the approach.", outperformed},
	{"reinvest", model.ModeGrowth, SeverityInfo,
		"Consider reinvesting profits into marketing or product improvement.", outperformed},
	{"new-markets", model.ModeGrowth, SeverityInfo,
		"Evaluate if similar strategies can work in new markets.", outperformed},

	{"review-costs", model.ModeGrowth, SeverityWarning,
		"Results underperformed prediction — review your cost structure.", underperformed},
	{"reassess-pricing", model.ModeGrowth, SeverityInfo,
		"Reassess pricing and customer acquisition channels.", underperformed},
	{"pilot-first", model.ModeGrowth, SeverityInfo,
		"Run a smaller pilot before full-scale rollout next time.", underperformed},

	{"churn-severe", model.ModeSaaS, SeveritySevere,
		"Churn is above 7% per month. Retention needs immediate attention.",
		func(s model.Summary) bool { return s.ChurnRate > SevereChurn }},
	{"churn-elevated", model.ModeSaaS, SeverityWarning,
		"Churn is above 5% per month. Watch onboarding and customer success.",
		func(s model.Summary) bool { return s.ChurnRate > MildChurn && s.ChurnRate <= SevereChurn }},
	{"churn-healthy", model.ModeSaaS, SeverityHealthy,
		"Churn is at a healthy level.",
		func(s model.Summary) bool { return s.ChurnRate <= MildChurn }},

	{"ltv-cac-low", model.ModeSaaS, SeverityWarning,
		"LTV:CAC is below 3. Acquisition costs too much for the revenue each customer brings.",
		func(s model.Summary) bool { return s.LTVToCAC < HealthyLTVToCAC }},
	{"ltv-cac-healthy", model.ModeSaaS, SeverityHealthy,
		"LTV:CAC is healthy. Customers repay their acquisition cost.",
		func(s model.Summary) bool { return s.LTVToCAC >= HealthyLTVToCAC }},
}

// Feedback evaluates Rules against a summary.
func Feedback(s model.Summary) []Advice {
	return Evaluate(Rules, s)
}

// Evaluate applies rules of the summary's mode in order.
func Evaluate(rules []Rule, s model.Summary) []Advice {
	var out []Advice
	for _, r := range rules {
		if r.Mode != s.Mode || !r.Applies(s) {
			continue
		}
		out = append(out, Advice{Rule: r.Name, Severity: r.Severity, Message: r.Message})
	}
	return out
}

// Messages returns the advice text only.
func Messages(advice []Advice) []string {
	out := make([]string, len(advice))
	for i, a := range advice {
		out[i] = a.Message
	}
	return out
}
