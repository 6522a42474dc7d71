package risk

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	th := Thresholds{LowMax: 10, ModerateMax: 20}

	tests := []struct {
		name  string
		score float64
		want  Band
	}{
		{"negative", -5, BandLow},
		{"zero", 0, BandLow},
		{"just below low max", 9.999, BandLow},
		{"at low max", 10, BandModerate},
		{"between", 15, BandModerate},
		{"just below moderate max", 19.999, BandModerate},
		{"at moderate max", 20, BandHigh},
		{"large", 1e9, BandHigh},
		{"infinity", math.Inf(1), BandHigh},
		{"negative infinity", math.Inf(-1), BandLow},
		{"nan", math.NaN(), BandHigh},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.score, th))
		})
	}
}

func TestClassify_Fractional(t *testing.T) {
	th := Thresholds{LowMax: 0.3, ModerateMax: 0.7}
	assert.Equal(t, BandLow, Classify(0.29, th))
	assert.Equal(t, BandModerate, Classify(0.3, th))
	assert.Equal(t, BandHigh, Classify(0.7, th))
}

func TestBand_Display(t *testing.T) {
	assert.Equal(t, "low", BandLow.String())
	assert.Equal(t, "🟢", BandLow.Indicator())
	assert.Equal(t, "Low CAD Risk", BandLow.Label())

	assert.Equal(t, "moderate", BandModerate.String())
	assert.Equal(t, "🟡", BandModerate.Indicator())
	assert.Equal(t, "Moderate CAD Risk", BandModerate.Label())

	assert.Equal(t, "high", BandHigh.String())
	assert.Equal(t, "🔴", BandHigh.Indicator())
	assert.Equal(t, "High CAD Risk", BandHigh.Label())

	assert.Equal(t, "band(7)", Band(7).String())
}

func TestBand_JSON(t *testing.T) {
	b, err := json.Marshal(BandModerate)
	require.NoError(t, err)
	assert.Equal(t, `"moderate"`, string(b))

	var band Band
	require.NoError(t, json.Unmarshal([]byte(`"HIGH"`), &band))
	assert.Equal(t, BandHigh, band)

	assert.Error(t, json.Unmarshal([]byte(`"severe"`), &band))

	_, err = json.Marshal(Band(9))
	assert.Error(t, err)
}
