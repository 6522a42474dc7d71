// Package risk implements the CAD risk engine: measurement validation,
// weighted scoring and banding.
package risk

import "errors"

// Assessment is the result of one successful evaluation.
type Assessment struct {
	Score     float64 `json:"score" yaml:"score"`
	Band      Band    `json:"band" yaml:"band"`
	Indicator string  `json:"indicator" yaml:"indicator"`
	Label     string  `json:"label" yaml:"label"`
	Profile   string  `json:"profile" yaml:"profile"`
}

// Engine runs validate, score and classify for a single profile.
// It holds no mutable state and is safe for concurrent use.
type Engine struct {
	profile   *WeightProfile
	validator *Validator
}

// NewEngine returns an engine bound to the given profile.
func NewEngine(p *WeightProfile) (*Engine, error) {
	if p == nil {
		return nil, errors.New("weight profile required")
	}
	return &Engine{
		profile:   p,
		validator: NewValidator(),
	}, nil
}

// Profile returns the active weight profile.
func (e *Engine) Profile() *WeightProfile {
	return e.profile
}

// Assess validates the input and, only when it is valid, scores and
// classifies it. Validation failures are returned as *ValidationError.
func (e *Engine) Assess(in *Input) (*Assessment, error) {
	m, err := e.validator.Validate(in)
	if err != nil {
		return nil, err
	}
	return e.Evaluate(m), nil
}

// Evaluate scores and classifies an already validated measurement.
func (e *Engine) Evaluate(m *Measurement) *Assessment {
	score := Score(m, e.profile)
	band := Classify(score, e.profile.thresholds)
	return &Assessment{
		Score:     score,
		Band:      band,
		Indicator: band.Indicator(),
		Label:     band.Label(),
		Profile:   e.profile.name,
	}
}
