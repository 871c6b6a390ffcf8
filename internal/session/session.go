// Package session holds the current parameters and report of one
// interactive user session as explicit values.
package session

import (
	"fmt"

	"github.com/theirongolddev/stratsim/internal/engine"
	"github.com/theirongolddev/stratsim/internal/model"
	"github.com/theirongolddev/stratsim/internal/pipeline"
)

// Session is owned by a single UI instance and is not safe for concurrent use.
type Session struct {
	src    engine.RandomSource
	params *model.Params
	report *pipeline.Report
}

// New returns an empty session drawing its actual factors from src.
func New(src engine.RandomSource) *Session {
	return &Session{src: src}
}

// SetParams validates and stores the parameters for the next run. The
// previous report stays available until Run replaces it.
func (s *Session) SetParams(p model.Params) error {
	if err := p.Validate(); err != nil {
		return err
	}
	s.params = &p
	return nil
}

// Params returns the current parameters.
func (s *Session) Params() (model.Params, error) {
	if s.params == nil {
		return model.Params{}, fmt.Errorf("%w: enter your strategy details first", model.ErrInvalidParameter)
	}
	return *s.params, nil
}

// HasParams reports whether parameters were entered.
func (s *Session) HasParams() bool { return s.params != nil }

// Run simulates the current parameters and replaces the report.
func (s *Session) Run() (pipeline.Report, error) {
	p, err := s.Params()
	if err != nil {
		return pipeline.Report{}, err
	}
	rep, err := pipeline.Run(p, s.src)
	if err != nil {
		return pipeline.Report{}, err
	}
	s.report = &rep
	return rep, nil
}

// Report returns the last run's report, or ErrNoSimulationYet.
func (s *Session) Report() (pipeline.Report, error) {
	if s.report == nil {
		return pipeline.Report{}, model.ErrNoSimulationYet
	}
	return *s.report, nil
}
