package pipeline

import (
	"github.com/theirongolddev/stratsim/internal/engine"
	"github.com/theirongolddev/stratsim/internal/model"
)

// Report is everything one run produced. Callers pass it around by value;
// a new run replaces it wholesale.
type Report struct {
	Params  model.Params
	Result  model.Result
	Summary model.Summary
	Advice  []Advice
}

// Run simulates, summarizes and applies the feedback rules. Validation is
// left to engine.Simulate, which rejects p before drawing from src.
func Run(p model.Params, src engine.RandomSource) (Report, error) {
	res, err := engine.Simulate(p, src)
	if err != nil {
		return Report{}, err
	}

	summary := Summarize(res, p)
	return Report{
		Params:  p,
		Result:  res,
		Summary: summary,
		Advice:  Feedback(summary),
	}, nil
}
