package cli

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/mchmarny/cadrisk/pkg/config"
	"github.com/mchmarny/cadrisk/pkg/metrics"
	"github.com/mchmarny/cadrisk/pkg/risk"
)

const maxRequestBytes = 1 << 16

type assessResponse struct {
	ID string `json:"id"`
	*risk.Assessment
}

type violationsResponse struct {
	ID         string           `json:"id"`
	Violations []risk.Violation `json:"violations"`
}

type errorResponse struct {
	ID    string `json:"id"`
	Error string `json:"error"`
}

type profilesResponse struct {
	Active   string         `json:"active"`
	Profiles []*profileView `json:"profiles"`
}

func healthHandler(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	if _, err := w.Write([]byte("ok")); err != nil {
		slog.Error("failed to write health response", "error", err)
	}
}

func assessAPIHandler(engine *risk.Engine, rec *metrics.Recorder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := uuid.NewString()
		log := slog.With("id", id)

		var in risk.Input
		dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBytes))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&in); err != nil {
			log.Debug("malformed request", "error", err)
			writeJSON(w, http.StatusBadRequest, &errorResponse{ID: id, Error: "malformed request body: " + err.Error()})
			return
		}

		a, err := engine.Assess(&in)
		if err != nil {
			var ve *risk.ValidationError
			if !errors.As(err, &ve) {
				log.Error("assessment failed", "error", err)
				writeJSON(w, http.StatusInternalServerError, &errorResponse{ID: id, Error: "internal server error"})
				return
			}
			list := ve.Violations()
			rec.ObserveViolations(list)
			log.Debug("input rejected", "violations", len(list))
			writeJSON(w, http.StatusUnprocessableEntity, &violationsResponse{ID: id, Violations: list})
			return
		}

		rec.ObserveAssessment(a)
		log.Debug("assessed", "band", a.Band, "score", a.Score)
		writeJSON(w, http.StatusOK, &assessResponse{ID: id, Assessment: a})
	}
}

func profilesAPIHandler(engine *risk.Engine, cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		all, err := cfg.AllProfiles()
		if err != nil {
			slog.Error("listing profiles failed", "error", err)
			http.Error(w, "internal server error", http.StatusInternalServerError)
			return
		}

		active := engine.Profile().Name()
		resp := &profilesResponse{
			Active:   active,
			Profiles: make([]*profileView, 0, len(all)),
		}
		for _, p := range all {
			resp.Profiles = append(resp.Profiles, toProfileView(p, active, true))
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
