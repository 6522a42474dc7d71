package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mchmarny/cadrisk/pkg/risk"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecorder_ObserveAssessment(t *testing.T) {
	r := NewRecorder()

	r.ObserveAssessment(&risk.Assessment{Score: 8.76, Band: risk.BandLow, Profile: "canonical"})
	r.ObserveAssessment(&risk.Assessment{Score: 12, Band: risk.BandModerate, Profile: "canonical"})
	r.ObserveAssessment(&risk.Assessment{Score: 9, Band: risk.BandLow, Profile: "canonical"})
	r.ObserveAssessment(nil)

	assert.Equal(t, 2.0, testutil.ToFloat64(r.assessments.WithLabelValues("canonical", "low")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.assessments.WithLabelValues("canonical", "moderate")))
	assert.Equal(t, 1, testutil.CollectAndCount(r.scores))
}

func TestRecorder_ObserveViolations(t *testing.T) {
	r := NewRecorder()

	r.ObserveViolations([]risk.Violation{
		{Field: "age", Reason: "x"},
		{Field: "sex", Reason: "y"},
		{Field: "age", Reason: "z"},
	})

	assert.Equal(t, 2.0, testutil.ToFloat64(r.violations.WithLabelValues("age")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.violations.WithLabelValues("sex")))
}

func TestRecorder_Handler(t *testing.T) {
	r := NewRecorder()
	r.ObserveAssessment(&risk.Assessment{Score: 131.4, Band: risk.BandHigh, Profile: "multiplicative"})

	srv := httptest.NewServer(r.Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()

	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(b), `cadrisk_assessments_total{band="high",profile="multiplicative"} 1`)
	assert.Contains(t, string(b), "go_goroutines")
}
