package dataflows

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func newsBackend(t *testing.T, gotSymbol *string, body string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*gotSymbol = r.URL.Query().Get("symbol")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(body))
	}))
}

func TestGetNewsDropsQuerySuffix(t *testing.T) {
	var gotSymbol string
	srv := newsBackend(t, &gotSymbol, `[
		{"headline": "Quarterly results out", "datetime": 1700000000, "source": "wire", "url": "https://example.com/a"},
		{"headline": "", "datetime": 1700000100},
		{"headline": "New refinery announced", "datetime": 1700000200, "source": "wire", "url": "https://example.com/b"}
	]`)
	defer srv.Close()

	fc := NewFinnhubClient("test-key", 20)
	fc.client.SetBaseURL(srv.URL)

	articles, err := fc.GetNews("RELIANCE India", time.Now().AddDate(0, 0, -30), time.Now())
	if err != nil {
		t.Fatalf("GetNews: %v", err)
	}

	if gotSymbol != "RELIANCE" {
		t.Errorf("request symbol = %q, want bare RELIANCE", gotSymbol)
	}
	if len(articles) != 2 {
		t.Fatalf("articles = %d, want 2 (empty headline skipped)", len(articles))
	}
	if articles[0].Title != "New refinery announced" {
		t.Errorf("first article = %q, want newest first", articles[0].Title)
	}
}

func TestGetNewsCapsAtPageSize(t *testing.T) {
	var gotSymbol string
	srv := newsBackend(t, &gotSymbol, `[
		{"headline": "one", "datetime": 1},
		{"headline": "two", "datetime": 2},
		{"headline": "three", "datetime": 3}
	]`)
	defer srv.Close()

	fc := NewFinnhubClient("test-key", 2)
	fc.client.SetBaseURL(srv.URL)

	articles, err := fc.GetNews("TCS", time.Now().AddDate(0, 0, -30), time.Now())
	if err != nil {
		t.Fatalf("GetNews: %v", err)
	}
	if len(articles) != 2 {
		t.Errorf("articles = %d, want 2", len(articles))
	}
}

func TestGetNewsRejectsBadQueries(t *testing.T) {
	fc := NewFinnhubClient("test-key", 20)

	if _, err := fc.GetNews("   ", time.Now(), time.Now()); err == nil {
		t.Error("expected error for blank query")
	}
	if _, err := fc.GetNews("WAYTOOLONGSYMBOL India", time.Now(), time.Now()); err == nil {
		t.Error("expected error for oversized symbol token")
	}
}

func TestGetNewsUnconfigured(t *testing.T) {
	fc := NewFinnhubClient("", 20)
	if _, err := fc.GetNews("RELIANCE", time.Now(), time.Now()); err == nil {
		t.Error("expected error when no API key is configured")
	}
}
