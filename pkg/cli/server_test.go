package cli

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/mchmarny/cadrisk/pkg/config"
	"github.com/mchmarny/cadrisk/pkg/metrics"
	"github.com/mchmarny/cadrisk/pkg/risk"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	engine, err := risk.NewEngine(risk.DefaultProfile())
	require.NoError(t, err)

	cfg := &config.Config{Profile: risk.DefaultProfileName}
	srv := httptest.NewServer(makeRouter(engine, cfg, metrics.NewRecorder()))
	t.Cleanup(srv.Close)
	return srv
}

func postAssess(t *testing.T, srv *httptest.Server, body []byte) (*http.Response, []byte) {
	t.Helper()
	resp, err := http.Post(srv.URL+"/v1/assess", "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()

	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, b
}

func TestAssessAPI(t *testing.T) {
	srv := newTestServer(t)

	body, err := json.Marshal(risk.SampleInput())
	require.NoError(t, err)

	resp, b := postAssess(t, srv, body)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))

	var out struct {
		ID string `json:"id"`
		risk.Assessment
	}
	require.NoError(t, json.Unmarshal(b, &out))
	_, err = uuid.Parse(out.ID)
	assert.NoError(t, err)
	assert.InDelta(t, 8.76, out.Score, 1e-9)
	assert.Equal(t, risk.BandLow, out.Band)
	assert.Equal(t, "🟢", out.Indicator)
	assert.Equal(t, risk.DefaultProfileName, out.Profile)
}

func TestAssessAPI_Violations(t *testing.T) {
	srv := newTestServer(t)

	in := risk.SampleInput()
	age := 19
	in.Age = &age
	in.Race = ""
	body, err := json.Marshal(in)
	require.NoError(t, err)

	resp, b := postAssess(t, srv, body)
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

	var out violationsResponse
	require.NoError(t, json.Unmarshal(b, &out))
	assert.NotEmpty(t, out.ID)
	require.Len(t, out.Violations, 2)
	assert.Equal(t, risk.FieldAge, out.Violations[0].Field)
	assert.Equal(t, risk.FieldRace, out.Violations[1].Field)
	assert.NotContains(t, string(b), "score")
}

func TestAssessAPI_BadRequest(t *testing.T) {
	srv := newTestServer(t)

	tests := []struct {
		name string
		body string
	}{
		{"not json", "age: 45"},
		{"unknown field", `{"age": 45, "weight": 80}`},
		{"wrong type", `{"age": "old"}`},
		{"empty", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, b := postAssess(t, srv, []byte(tt.body))
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

			var out errorResponse
			require.NoError(t, json.Unmarshal(b, &out))
			assert.NotEmpty(t, out.Error)
		})
	}
}

func TestAssessAPI_MethodNotAllowed(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/v1/assess")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
}

func TestProfilesAPI(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/v1/profiles")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out profilesResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Equal(t, risk.DefaultProfileName, out.Active)
	assert.Len(t, out.Profiles, 4)
}

func TestHealthAndMetrics(t *testing.T) {
	srv := newTestServer(t)

	body, err := json.Marshal(risk.SampleInput())
	require.NoError(t, err)
	resp, _ := postAssess(t, srv, body)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = http.Get(srv.URL + "/healthz")
	require.NoError(t, err)
	b, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	require.NoError(t, err)
	assert.Equal(t, "ok", string(b))

	resp, err = http.Get(srv.URL + "/metrics")
	require.NoError(t, err)
	b, err = io.ReadAll(resp.Body)
	resp.Body.Close()
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(b), `cadrisk_assessments_total{band="low",profile="canonical"} 1`))
}
