package risk

import "gonum.org/v1/gonum/floats"

// Dot returns the dot product of the measurement vector and the profile weights.
func Dot(m *Measurement, p *WeightProfile) float64 {
	return floats.Dot(p.weights, m.Vector())
}

// Score returns the profile-scaled risk score for a validated measurement.
func Score(m *Measurement, p *WeightProfile) float64 {
	return p.scaling.Apply(Dot(m, p))
}
