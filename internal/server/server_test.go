package server

import (
	"bytes"
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/alicebob/miniredis/v2"
	json "github.com/goccy/go-json"
	"github.com/iwvelando/finance-calculator/internal/cache"
	"go.uber.org/zap"
)

type testResponse struct {
	CalculationID string `json:"calculationId"`
	Calculator    string `json:"calculator"`
	Query         string `json:"query"`
	ShareURL      string `json:"shareUrl"`
	OK            bool   `json:"ok"`
	Headline      struct {
		Label string   `json:"label"`
		Value *float64 `json:"value"`
		Text  string   `json:"text"`
	} `json:"headline"`
	Result    map[string]interface{}   `json:"result"`
	Breakdown []map[string]interface{} `json:"breakdown"`
	Warnings  []string                 `json:"warnings"`
	Cached    bool                     `json:"cached"`
	Duration  string                   `json:"duration"`
}

func newTestHandler(t *testing.T, store cache.Cache) http.Handler {
	t.Helper()
	cfg := defaultConfig()
	cfg.BaseURL = "https://example.test"
	return NewHandler(zap.NewNop(), cfg, store, "test")
}

func perform(t *testing.T, handler http.Handler, method, target string, body []byte) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, bytes.NewReader(body))
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	return rr
}

func decodeEvaluation(t *testing.T, rr *httptest.ResponseRecorder) testResponse {
	t.Helper()
	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rr.Code, rr.Body.String())
	}
	var resp testResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	return resp
}

func TestHealthAndVersion(t *testing.T) {
	handler := newTestHandler(t, nil)

	rr := perform(t, handler, http.MethodGet, "/healthz", nil)
	if rr.Code != http.StatusOK || !strings.Contains(rr.Body.String(), `"ok"`) {
		t.Fatalf("unexpected health response %d: %s", rr.Code, rr.Body.String())
	}

	rr = perform(t, handler, http.MethodGet, "/api/version", nil)
	var version map[string]string
	if err := json.Unmarshal(rr.Body.Bytes(), &version); err != nil {
		t.Fatalf("failed to decode version: %v", err)
	}
	if version["version"] != "test" {
		t.Fatalf("expected version test, got %q", version["version"])
	}
}

func TestVersionDefaultsToDev(t *testing.T) {
	handler := NewHandler(nil, nil, nil, "  ")
	rr := perform(t, handler, http.MethodGet, "/api/version", nil)
	if !strings.Contains(rr.Body.String(), `"dev"`) {
		t.Fatalf("expected dev version, got %s", rr.Body.String())
	}
}

func TestListCalculators(t *testing.T) {
	rr := perform(t, newTestHandler(t, nil), http.MethodGet, "/api/calculators", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rr.Code)
	}

	var resp struct {
		Calculators []struct {
			Name   string   `json:"name"`
			Params []string `json:"params"`
		} `json:"calculators"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	var names []string
	for _, c := range resp.Calculators {
		names = append(names, c.Name)
	}
	if strings.Join(names, ",") != "sip,lumpsum,cagr,inflation,multiplier,goal" {
		t.Fatalf("unexpected calculator order %v", names)
	}
}

func TestEvaluateLumpsumQuery(t *testing.T) {
	rr := perform(t, newTestHandler(t, nil), http.MethodGet,
		"/api/calculators/lumpsum?amount=10000&return=10&duration=5", nil)
	resp := decodeEvaluation(t, rr)

	if !resp.OK || resp.Headline.Value == nil {
		t.Fatalf("expected a result, got %+v", resp)
	}
	if math.Abs(*resp.Headline.Value-16105.10) > 0.01 {
		t.Fatalf("expected future value 16105.10, got %f", *resp.Headline.Value)
	}
	if resp.Headline.Text != "₹16,105.1" {
		t.Fatalf("unexpected headline text %q", resp.Headline.Text)
	}
	if resp.Query != "amount=10000&duration=5&return=10" {
		t.Fatalf("unexpected canonical query %q", resp.Query)
	}
	if resp.ShareURL != "https://example.test/lumpsum?amount=10000&duration=5&return=10" {
		t.Fatalf("unexpected share URL %q", resp.ShareURL)
	}
	if len(resp.Breakdown) != 2 {
		t.Fatalf("expected two breakdown slices, got %v", resp.Breakdown)
	}
	if resp.CalculationID == "" || resp.Duration == "" || resp.Cached {
		t.Fatalf("unexpected response metadata %+v", resp)
	}
}

func TestEvaluateGoalBody(t *testing.T) {
	body := []byte(`{"goal": 1000000, "duration": 10, "return": 12, "inflation": 0, "frequency": "monthly"}`)
	rr := perform(t, newTestHandler(t, nil), http.MethodPost, "/api/calculators/goal", body)
	resp := decodeEvaluation(t, rr)

	if !resp.OK || resp.Headline.Value == nil {
		t.Fatalf("expected a result, got %+v", resp)
	}
	if math.Abs(*resp.Headline.Value-4347.09) > 0.01 {
		t.Fatalf("expected required SIP 4347.09, got %f", *resp.Headline.Value)
	}
	if resp.Headline.Label != "Required Monthly SIP" {
		t.Fatalf("unexpected headline label %q", resp.Headline.Label)
	}
}

func TestEvaluateInvalidParamsHasNoResult(t *testing.T) {
	rr := perform(t, newTestHandler(t, nil), http.MethodGet,
		"/api/calculators/cagr?initial=abc&final=100&duration=3", nil)
	resp := decodeEvaluation(t, rr)

	if resp.OK {
		t.Fatal("expected ok=false for invalid input")
	}
	if resp.Headline.Value != nil || resp.Result != nil || resp.Headline.Text != "-" {
		t.Fatalf("expected empty result, got %+v", resp)
	}
	if resp.Breakdown == nil || len(resp.Breakdown) != 0 {
		t.Fatalf("expected empty breakdown, got %v", resp.Breakdown)
	}
	if len(resp.Warnings) != 1 || !strings.Contains(resp.Warnings[0], "initial") {
		t.Fatalf("expected a warning for initial, got %v", resp.Warnings)
	}
}

func TestEvaluateCalculatorNameIsCaseInsensitive(t *testing.T) {
	rr := perform(t, newTestHandler(t, nil), http.MethodGet,
		"/api/calculators/CAGR?initial=100&final=150&duration=5", nil)
	resp := decodeEvaluation(t, rr)
	if !resp.OK || resp.Calculator != "cagr" {
		t.Fatalf("expected cagr result, got %+v", resp)
	}
}

func TestEvaluateErrors(t *testing.T) {
	cfg := defaultConfig()
	cfg.SetBodySizeBytes(32)
	handler := NewHandler(zap.NewNop(), cfg, nil, "test")

	tests := []struct {
		name   string
		method string
		target string
		body   []byte
		status int
	}{
		{"unknown calculator", http.MethodGet, "/api/calculators/mortgage", nil, http.StatusNotFound},
		{"malformed body", http.MethodPost, "/api/calculators/lumpsum", []byte(`{"amount":`), http.StatusBadRequest},
		{"array body", http.MethodPost, "/api/calculators/lumpsum", []byte(`[1,2]`), http.StatusBadRequest},
		{"oversized body", http.MethodPost, "/api/calculators/lumpsum",
			[]byte(`{"amount": 10000, "return": 10, "duration": 5, "padding": "xxxxxxxx"}`), http.StatusRequestEntityTooLarge},
		{"method not allowed", http.MethodDelete, "/api/calculators/lumpsum", nil, http.StatusMethodNotAllowed},
		{"unknown route", http.MethodGet, "/api/unknown", nil, http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := perform(t, handler, tt.method, tt.target, tt.body)
			if rr.Code != tt.status {
				t.Fatalf("expected status %d, got %d: %s", tt.status, rr.Code, rr.Body.String())
			}
			if !strings.Contains(rr.Body.String(), `"error"`) {
				t.Fatalf("expected error payload, got %s", rr.Body.String())
			}
		})
	}
}

func TestEvaluateUsesCache(t *testing.T) {
	store := cache.NewMemory(16)
	handler := newTestHandler(t, store)

	first := decodeEvaluation(t, perform(t, handler, http.MethodGet,
		"/api/calculators/lumpsum?amount=10000&return=10&duration=5", nil))
	if first.Cached {
		t.Fatal("first evaluation should not be cached")
	}
	if store.Len() != 1 {
		t.Fatalf("expected one cache entry, got %d", store.Len())
	}

	// Same parameters in a different order share the entry.
	second := decodeEvaluation(t, perform(t, handler, http.MethodGet,
		"/api/calculators/lumpsum?duration=5&return=10&amount=10000", nil))
	if !second.Cached {
		t.Fatal("second evaluation should be served from cache")
	}
	if *second.Headline.Value != *first.Headline.Value || second.CalculationID == first.CalculationID {
		t.Fatalf("unexpected cached response %+v", second)
	}
}

func TestEvaluateUsesRedisCache(t *testing.T) {
	mr := miniredis.RunT(t)
	store := cache.NewRedis(cache.Options{Addr: mr.Addr(), Prefix: "test:"})
	t.Cleanup(func() { _ = store.Close() })

	handler := newTestHandler(t, store)
	target := "/api/calculators/inflation?amount=10000&inflation=5&duration=10"

	first := decodeEvaluation(t, perform(t, handler, http.MethodGet, target, nil))
	if first.Cached || !first.OK {
		t.Fatalf("unexpected first response %+v", first)
	}
	if !mr.Exists("test:" + cache.Key("inflation", first.Query)) {
		t.Fatalf("expected redis entry for %s, keys %v", first.Query, mr.Keys())
	}

	second := decodeEvaluation(t, perform(t, handler, http.MethodGet, target, nil))
	if !second.Cached {
		t.Fatal("second evaluation should be served from redis")
	}
}

func TestEvaluateSurvivesCacheFailure(t *testing.T) {
	mr := miniredis.RunT(t)
	store := cache.NewRedis(cache.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = store.Close() })
	mr.Close()

	resp := decodeEvaluation(t, perform(t, newTestHandler(t, store), http.MethodGet,
		"/api/calculators/lumpsum?amount=10000&return=10&duration=5", nil))
	if !resp.OK || resp.Cached {
		t.Fatalf("expected uncached result when redis is down, got %+v", resp)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	handler := newTestHandler(t, nil)
	perform(t, handler, http.MethodGet, "/api/calculators/lumpsum?amount=10000&return=10&duration=5", nil)

	rr := perform(t, handler, http.MethodGet, "/metrics", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "fincalc_evaluations_total") {
		t.Fatalf("expected evaluation counter in metrics output")
	}
}
