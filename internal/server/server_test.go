package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/nvats/StockLens/internal/analysis"
)

type stubAnalyzer struct {
	result *analysis.Analysis
	err    error
	symbol string
}

func (s *stubAnalyzer) Analyze(ctx context.Context, symbol string) (*analysis.Analysis, error) {
	s.symbol = symbol
	return s.result, s.err
}

func TestHandleAnalysis(t *testing.T) {
	stub := &stubAnalyzer{result: &analysis.Analysis{Symbol: "TCS"}}
	srv := New(stub, ":0", "test")

	req := httptest.NewRequest("GET", "/api/analysis/tcs", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	if rec.Code != 200 {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	if stub.symbol != "tcs" {
		t.Errorf("analyzer got symbol %q", stub.symbol)
	}

	var body analysis.Analysis
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decoding body: %v", err)
	}
	if body.Symbol != "TCS" {
		t.Errorf("symbol = %q", body.Symbol)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("content type = %q", ct)
	}
}

func TestHandleAnalysisBadSymbol(t *testing.T) {
	stub := &stubAnalyzer{err: errors.New("symbol cannot be empty")}
	srv := New(stub, ":0", "test")

	req := httptest.NewRequest("GET", "/api/analysis/%20", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	if rec.Code != 400 {
		t.Fatalf("status = %d, want 400", rec.Code)
	}

	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decoding body: %v", err)
	}
	if body["error"] == "" {
		t.Error("expected error message in body")
	}
}

func TestHandleHealth(t *testing.T) {
	srv := New(&stubAnalyzer{}, ":0", "1.2.3")

	req := httptest.NewRequest("GET", "/api/health", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	if rec.Code != 200 {
		t.Fatalf("status = %d", rec.Code)
	}

	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decoding body: %v", err)
	}
	if body["status"] != "ok" || body["version"] != "1.2.3" {
		t.Errorf("body = %v", body)
	}
}

func TestCORSPreflight(t *testing.T) {
	srv := New(&stubAnalyzer{}, ":0", "test")

	req := httptest.NewRequest("OPTIONS", "/api/health", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	if rec.Code != 204 {
		t.Fatalf("status = %d, want 204", rec.Code)
	}
	if rec.Header().Get("Access-Control-Allow-Origin") != "*" {
		t.Error("missing CORS header")
	}
}
