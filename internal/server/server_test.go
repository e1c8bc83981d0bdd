package server

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/sustainamine/internal/lca"
)

const scenarioA = `{
	"metal": "Aluminium",
	"route": "Virgin/Raw",
	"recycled_percent": 0,
	"ore_quality": "High",
	"energy_source": "Mixed grid",
	"transport_distance_km": 200,
	"transport_tonnes": 1,
	"end_of_life": "Landfill",
	"storage": "Authorized storage"
}`

func newTestServer(t *testing.T, corsOpts CORSOptions) *Server {
	t.Helper()
	estimator, err := lca.NewEstimator(lca.DefaultFactorTable())
	require.NoError(t, err)
	return New(estimator, corsOpts, zerolog.Nop())
}

func do(s *Server, method, path, body string, header http.Header) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	for k, values := range header {
		for _, v := range values {
			req.Header.Add(k, v)
		}
	}
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body), rec.Body.String())
	return body
}

func TestEstimate_OK(t *testing.T) {
	s := newTestServer(t, CORSOptions{})
	rec := do(s, http.MethodPost, "/v1/estimates", scenarioA, nil)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	traceID := rec.Header().Get(TraceIDHeader)
	_, err := uuid.Parse(traceID)
	require.NoError(t, err, "generated trace ID should be a UUID")

	body := decode(t, rec)
	assert.Equal(t, traceID, body["trace_id"])

	input := body["input"].(map[string]any)
	assert.Equal(t, "aluminium", input["metal"])
	assert.Equal(t, "mixed_grid", input["energy_source"])

	result := body["result"].(map[string]any)
	assert.InDelta(t, 16.0, result["co2_per_kg"], 1e-9)
	assert.InDelta(t, 16010.0, result["co2_per_tonne_incl_transport"], 1e-9)
	assert.Equal(t, map[string]any{"kind": "red_mud_tonnes", "value": 1.5}, result["by_product"])
	assert.Equal(t, []any{
		string(lca.FlagRedMudGuideline),
		string(lca.FlagLowCircularity),
	}, result["flags"])

	summary := body["summary"].(map[string]any)
	assert.Equal(t, "Aluminium", summary["metal"])
	assert.Equal(t, "200 km × 1 t", summary["transport"])
}

func TestEstimate_EchoesTraceID(t *testing.T) {
	s := newTestServer(t, CORSOptions{})
	rec := do(s, http.MethodPost, "/v1/estimates", scenarioA, http.Header{
		TraceIDHeader: []string{"trace-123"},
	})

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "trace-123", rec.Header().Get(TraceIDHeader))
	assert.Equal(t, "trace-123", decode(t, rec)["trace_id"])
}

func TestEstimate_BadRequests(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		wantField string
		wantError string
	}{
		{
			name:      "recycled percent out of range",
			body:      strings.Replace(scenarioA, `"recycled_percent": 0`, `"recycled_percent": 150`, 1),
			wantField: lca.FieldRecycledPercent,
			wantError: "must be between 0 and 100",
		},
		{
			name:      "unknown energy source",
			body:      strings.Replace(scenarioA, `"Mixed grid"`, `"renewable"`, 1),
			wantField: lca.FieldEnergySource,
			wantError: `did you mean "Renewable-heavy"?`,
		},
		{
			name:      "tonnes below one",
			body:      strings.Replace(scenarioA, `"transport_tonnes": 1`, `"transport_tonnes": 0`, 1),
			wantField: lca.FieldTransportTonnes,
			wantError: "must be a finite number >= 1",
		},
		{
			name:      "malformed JSON",
			body:      `{"metal": `,
			wantError: "malformed request body",
		},
		{
			name:      "unknown field",
			body:      `{"metal": "Copper", "colour": "red"}`,
			wantError: "malformed request body",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestServer(t, CORSOptions{})
			rec := do(s, http.MethodPost, "/v1/estimates", tt.body, nil)

			require.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())
			body := decode(t, rec)
			assert.NotEmpty(t, body["trace_id"])
			assert.Contains(t, body["error"], tt.wantError)
			if tt.wantField == "" {
				assert.NotContains(t, body, "field")
			} else {
				assert.Equal(t, tt.wantField, body["field"])
			}
		})
	}
}

func TestEstimate_MethodNotAllowed(t *testing.T) {
	s := newTestServer(t, CORSOptions{})
	rec := do(s, http.MethodGet, "/v1/estimates", "", nil)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestMetrics(t *testing.T) {
	s := newTestServer(t, CORSOptions{})
	require.Equal(t, http.StatusOK, do(s, http.MethodPost, "/v1/estimates", scenarioA, nil).Code)
	bad := strings.Replace(scenarioA, `"recycled_percent": 0`, `"recycled_percent": 150`, 1)
	require.Equal(t, http.StatusBadRequest, do(s, http.MethodPost, "/v1/estimates", bad, nil).Code)

	rec := do(s, http.MethodGet, "/metrics", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	out := rec.Body.String()
	assert.Contains(t, out, `sustainamine_estimates_total{metal="aluminium",route="virgin"} 1`)
	assert.Contains(t, out, `sustainamine_invalid_inputs_total{field="recycled_percent"} 1`)
	assert.Contains(t, out, "sustainamine_estimate_co2_per_kg_count 1")
	assert.Contains(t, out, "go_goroutines")
}

func TestFactors(t *testing.T) {
	s := newTestServer(t, CORSOptions{})
	rec := do(s, http.MethodGet, "/v1/factors", "", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	named := body["factors"].(map[string]any)
	assert.InDelta(t, 16.0, named[lca.FactorAluminiumVirgin], 1e-9)
	assert.InDelta(t, 0.05, named[lca.FactorTransportPerTKm], 1e-9)
	assert.Contains(t, body, "energy")
	assert.Contains(t, body, "ore_quality")
}

func TestHealth(t *testing.T) {
	s := newTestServer(t, CORSOptions{})
	rec := do(s, http.MethodGet, "/healthz", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
}

func TestCORS(t *testing.T) {
	preflight := http.Header{
		"Origin":                        []string{"https://app.example.com"},
		"Access-Control-Request-Method": []string{http.MethodPost},
	}

	t.Run("allowed origin", func(t *testing.T) {
		s := newTestServer(t, CORSOptions{
			AllowedOrigins: []string{"https://app.example.com"},
			MaxAge:         600,
		})
		rec := do(s, http.MethodOptions, "/v1/estimates", "", preflight)
		assert.Equal(t, "https://app.example.com", rec.Header().Get("Access-Control-Allow-Origin"))
		assert.Equal(t, "600", rec.Header().Get("Access-Control-Max-Age"))
	})

	t.Run("disabled", func(t *testing.T) {
		s := newTestServer(t, CORSOptions{})
		rec := do(s, http.MethodOptions, "/v1/estimates", "", preflight)
		assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
	})
}

func TestListenAndServe_Shutdown(t *testing.T) {
	s := newTestServer(t, CORSOptions{})
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() {
		done <- s.ListenAndServe(ctx, "127.0.0.1:0", time.Second)
	}()
	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}

func TestListenAndServe_BadAddress(t *testing.T) {
	s := newTestServer(t, CORSOptions{})
	err := s.ListenAndServe(context.Background(), "127.0.0.1:99999", time.Second)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "serving on 127.0.0.1:99999")
}

func TestServer_OverHTTP(t *testing.T) {
	ts := httptest.NewServer(newTestServer(t, CORSOptions{}))
	defer ts.Close()

	resp, err := http.Post(ts.URL+"/v1/estimates", "application/json", strings.NewReader(scenarioA))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"circularity_score":0`)
}
