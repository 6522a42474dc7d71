package risk

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const delta = 1e-9

func sampleMeasurement(t *testing.T) *Measurement {
	t.Helper()
	m, err := NewValidator().Validate(SampleInput())
	require.NoError(t, err)
	return m
}

func TestMeasurement_Vector(t *testing.T) {
	m := sampleMeasurement(t)
	m.Smoking = true

	v := m.Vector()
	require.Len(t, v, NumFields)
	assert.Equal(t, []float64{45, 25, 120, 80, 180, 100, 50, 150, 75, 65, 50, 1, 0}, v)
}

func TestScore_Regression(t *testing.T) {
	m := sampleMeasurement(t)

	tests := []struct {
		profile string
		score   float64
		band    Band
	}{
		{"canonical", 13.14 / 1.5, BandLow},
		{"multiplicative", 131.4, BandHigh},
		{"percentage", 1314, BandHigh},
		{"fractional", 13.14, BandHigh},
	}

	for _, tt := range tests {
		t.Run(tt.profile, func(t *testing.T) {
			p, err := LookupProfile(tt.profile)
			require.NoError(t, err)
			assert.InDelta(t, 13.14, Dot(m, p), delta)

			score := Score(m, p)
			assert.InDelta(t, tt.score, score, 1e-6)
			assert.Equal(t, tt.band, Classify(score, p.Thresholds()))
		})
	}
}

func TestScore_Deterministic(t *testing.T) {
	m := sampleMeasurement(t)
	p := DefaultProfile()

	first := Score(m, p)
	for range 100 {
		assert.Equal(t, first, Score(m, p))
	}
}

func TestScore_Booleans(t *testing.T) {
	p, err := LookupProfile("fractional")
	require.NoError(t, err)

	m := sampleMeasurement(t)
	base := Score(m, p)

	m.Smoking = true
	assert.InDelta(t, base+0.05, Score(m, p), delta)

	m.Diabetes = true
	assert.InDelta(t, base+0.09, Score(m, p), delta)
}

func TestScore_Monotonic(t *testing.T) {
	setters := []func(m *Measurement, v float64){
		func(m *Measurement, v float64) { m.Age = int(v) },
		func(m *Measurement, v float64) { m.BMI = v },
		func(m *Measurement, v float64) { m.SystolicBP = int(v) },
		func(m *Measurement, v float64) { m.DiastolicBP = int(v) },
		func(m *Measurement, v float64) { m.TotalCholesterol = int(v) },
		func(m *Measurement, v float64) { m.LDLCholesterol = int(v) },
		func(m *Measurement, v float64) { m.HDLCholesterol = int(v) },
		func(m *Measurement, v float64) { m.Triglycerides = int(v) },
		func(m *Measurement, v float64) { m.HeartRate = int(v) },
		func(m *Measurement, v float64) { m.RestingHeartRate = int(v) },
		func(m *Measurement, v float64) { m.HeartRateVariability = int(v) },
		func(m *Measurement, v float64) { m.Smoking = v > 0 },
		func(m *Measurement, v float64) { m.Diabetes = v > 0 },
	}
	require.Len(t, setters, NumFields)

	for _, p := range Profiles() {
		weights := p.Weights()
		for i, f := range Fields() {
			lo, hi := f.Min, f.Max
			if f.Kind == KindBoolean {
				lo, hi = 0, 1
			}

			m := sampleMeasurement(t)
			setters[i](m, lo)
			low := Score(m, p)
			setters[i](m, hi)
			high := Score(m, p)

			switch {
			case weights[i] > 0:
				assert.GreaterOrEqual(t, high, low, "%s/%s", p.Name(), f.Name)
			case weights[i] < 0:
				assert.LessOrEqual(t, high, low, "%s/%s", p.Name(), f.Name)
			}
		}
	}
}
