package server

import (
	"net/http"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/rshade/sustainamine/internal/factors"
	"github.com/rshade/sustainamine/internal/lca"
	"github.com/rshade/sustainamine/internal/report"
)

type estimateResponse struct {
	TraceID string         `json:"trace_id"`
	Input   lca.Input      `json:"input"`
	Result  lca.Result     `json:"result"`
	Summary report.Summary `json:"summary"`
}

type errorResponse struct {
	TraceID string `json:"trace_id"`
	Error   string `json:"error"`
	Field   string `json:"field,omitempty"`
}

// handleEstimate decodes an lca.Form, computes it and returns the result
// with its summary. Input domain violations are answered with 400.
func (s *Server) handleEstimate(w http.ResponseWriter, r *http.Request) {
	logger := zerolog.Ctx(r.Context())
	traceID := w.Header().Get(TraceIDHeader)

	var form lca.Form
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&form); err != nil {
		logger.Debug().Err(err).Msg("malformed estimate request")
		writeJSON(w, logger, http.StatusBadRequest, errorResponse{
			TraceID: traceID,
			Error:   "malformed request body: " + err.Error(),
		})
		return
	}

	in, err := form.Parse()
	var res lca.Result
	if err == nil {
		res, err = s.estimator.Estimate(in)
	}
	if err != nil {
		field, ok := lca.FieldOf(err)
		if !ok {
			logger.Error().Err(err).Msg("estimate failed")
			writeJSON(w, logger, http.StatusInternalServerError, errorResponse{
				TraceID: traceID,
				Error:   "internal error",
			})
			return
		}
		s.metrics.invalid.WithLabelValues(field).Inc()
		logger.Debug().Err(err).Str("field", field).Msg("invalid estimate input")
		writeJSON(w, logger, http.StatusBadRequest, errorResponse{
			TraceID: traceID,
			Error:   err.Error(),
			Field:   field,
		})
		return
	}

	s.metrics.estimates.WithLabelValues(in.Metal.String(), in.Route.String()).Inc()
	s.metrics.co2PerKg.Observe(res.CO2PerKg)
	logger.Debug().
		Str("metal", in.Metal.String()).
		Str("route", in.Route.String()).
		Float64("co2_per_kg", res.CO2PerKg).
		Int("flags", len(res.Flags)).
		Msg("estimate computed")

	writeJSON(w, logger, http.StatusOK, estimateResponse{
		TraceID: traceID,
		Input:   in,
		Result:  res,
		Summary: report.NewSummary(in, res),
	})
}

// handleFactors returns the factor table the estimator is bound to.
func (s *Server) handleFactors(w http.ResponseWriter, r *http.Request) {
	logger := zerolog.Ctx(r.Context())
	body, err := factors.Marshal(s.estimator.Factors(), factors.FormatJSON)
	if err != nil {
		logger.Error().Err(err).Msg("marshal factors failed")
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	if _, err := w.Write(body); err != nil {
		logger.Error().Err(err).Msg("Failed to write response")
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	if _, err := w.Write([]byte("ok")); err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("Failed to write response")
	}
}

func writeJSON(w http.ResponseWriter, logger *zerolog.Logger, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error().Err(err).Msg("Failed to write response")
	}
}
