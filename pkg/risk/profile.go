package risk

import (
	"errors"
	"fmt"
	"math"
	"slices"
	"strings"
)

var (
	// ErrInvalidProfile is returned when a weight profile cannot be built.
	ErrInvalidProfile = errors.New("invalid weight profile")

	// ErrUnknownProfile is returned when no profile has the requested name.
	ErrUnknownProfile = errors.New("unknown weight profile")
)

// ScalingStrategy names the rule that turns the dot product into a score.
type ScalingStrategy string

const (
	// ScaleDivide computes dot / factor.
	ScaleDivide ScalingStrategy = "divide"
	// ScaleMultiply computes dot * factor.
	ScaleMultiply ScalingStrategy = "multiply"
	// ScaleNone uses the raw dot product.
	ScaleNone ScalingStrategy = "none"
)

// Scaling is a strategy and its factor. Factor is ignored for ScaleNone.
type Scaling struct {
	Strategy ScalingStrategy `json:"strategy" yaml:"strategy"`
	Factor   float64         `json:"factor,omitempty" yaml:"factor,omitempty"`
}

// Apply scales a dot product into a score.
func (s Scaling) Apply(dot float64) float64 {
	switch s.Strategy {
	case ScaleDivide:
		return dot / s.Factor
	case ScaleMultiply:
		return dot * s.Factor
	default:
		return dot
	}
}

func (s Scaling) String() string {
	switch s.Strategy {
	case ScaleDivide:
		return fmt.Sprintf("/ %v", s.Factor)
	case ScaleMultiply:
		return fmt.Sprintf("* %v", s.Factor)
	default:
		return string(ScaleNone)
	}
}

func (s Scaling) validate() error {
	switch s.Strategy {
	case ScaleDivide, ScaleMultiply:
		if !(s.Factor > 0) || math.IsInf(s.Factor, 0) {
			return fmt.Errorf("scaling %s requires a positive finite factor, got %v", s.Strategy, s.Factor)
		}
	case ScaleNone:
	default:
		return fmt.Errorf("unknown scaling strategy %q (valid: %s, %s, %s)",
			s.Strategy, ScaleDivide, ScaleMultiply, ScaleNone)
	}
	return nil
}

// Thresholds split scores into bands: below LowMax is Low, below
// ModerateMax is Moderate, anything else is High.
type Thresholds struct {
	LowMax      float64 `json:"low_max" yaml:"low_max"`
	ModerateMax float64 `json:"moderate_max" yaml:"moderate_max"`
}

func (t Thresholds) validate() error {
	if math.IsNaN(t.LowMax) || math.IsNaN(t.ModerateMax) {
		return errors.New("thresholds must be numbers")
	}
	if t.LowMax >= t.ModerateMax {
		return fmt.Errorf("thresholds must ascend, got low_max=%v moderate_max=%v", t.LowMax, t.ModerateMax)
	}
	return nil
}

// WeightProfile is the immutable coefficient vector, scaling rule and
// thresholds that drive scoring. Build one with NewWeightProfile.
type WeightProfile struct {
	name       string
	weights    []float64
	scaling    Scaling
	thresholds Thresholds
}

// NewWeightProfile validates the configuration and returns a profile that
// owns a private copy of weights.
func NewWeightProfile(name string, weights []float64, scaling Scaling, thresholds Thresholds) (*WeightProfile, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: name required", ErrInvalidProfile)
	}

	if len(weights) != NumFields {
		return nil, fmt.Errorf("%w: %s: expected %d weights, got %d", ErrInvalidProfile, name, NumFields, len(weights))
	}

	for i, w := range weights {
		if math.IsNaN(w) || math.IsInf(w, 0) {
			return nil, fmt.Errorf("%w: %s: weight for %s is not finite", ErrInvalidProfile, name, fields[i].Name)
		}
	}

	if err := scaling.validate(); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrInvalidProfile, name, err)
	}

	if err := thresholds.validate(); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrInvalidProfile, name, err)
	}

	return &WeightProfile{
		name:       name,
		weights:    slices.Clone(weights),
		scaling:    scaling,
		thresholds: thresholds,
	}, nil
}

// MustWeightProfile is like NewWeightProfile but panics on error.
// It is meant for profiles declared at package initialization.
func MustWeightProfile(name string, weights []float64, scaling Scaling, thresholds Thresholds) *WeightProfile {
	p, err := NewWeightProfile(name, weights, scaling, thresholds)
	if err != nil {
		panic(err)
	}
	return p
}

func (p *WeightProfile) Name() string { return p.name }

// Weights returns a copy of the coefficient vector.
func (p *WeightProfile) Weights() []float64 { return slices.Clone(p.weights) }

func (p *WeightProfile) Scaling() Scaling { return p.scaling }

func (p *WeightProfile) Thresholds() Thresholds { return p.thresholds }

// Spec returns the serializable form of the profile.
func (p *WeightProfile) Spec() ProfileSpec {
	return ProfileSpec{
		Name:       p.name,
		Weights:    p.Weights(),
		Scaling:    p.scaling,
		Thresholds: p.thresholds,
	}
}

// ProfileSpec is the configuration document for a weight profile.
type ProfileSpec struct {
	Name       string     `json:"name" yaml:"name"`
	Weights    []float64  `json:"weights" yaml:"weights,flow"`
	Scaling    Scaling    `json:"scaling" yaml:"scaling"`
	Thresholds Thresholds `json:"thresholds" yaml:"thresholds"`
}

// Build validates the spec and returns the profile.
func (s ProfileSpec) Build() (*WeightProfile, error) {
	return NewWeightProfile(s.Name, s.Weights, s.Scaling, s.Thresholds)
}
