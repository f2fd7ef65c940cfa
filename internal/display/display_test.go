package display

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/nvats/StockLens/internal/analysis"
	"github.com/nvats/StockLens/internal/scan"
)

func fp(v float64) *float64 { return &v }

func sampleAnalysis() *analysis.Analysis {
	avg := 0.3
	return &analysis.Analysis{
		Symbol:      "RELIANCE",
		GeneratedAt: time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC),
		Overview: analysis.OverviewSection{
			Status: analysis.SectionStatus{Status: analysis.StatusOK},
		},
		Scans: analysis.ScansSection{
			PivotStatus: analysis.SectionStatus{Status: analysis.StatusOK},
			Pivots: scan.PivotLevels{
				scan.LevelR2:    110,
				scan.LevelR1:    105,
				scan.LevelPivot: 100,
				scan.LevelS1:    95,
				scan.LevelS2:    90,
			},
			Graham: scan.GrahamVerdict{Verdict: scan.VerdictUndervalued, PERatio: "12.00", PBRatio: "1.20"},
		},
		News: analysis.NewsSection{
			Status:          analysis.SectionStatus{Status: analysis.StatusOK},
			Items:           nil,
			AverageCompound: &avg,
		},
		Report: analysis.ReportSection{
			Status: analysis.SectionStatus{Status: analysis.StatusOK},
			Text:   "steady growth",
		},
		Competitors: analysis.CompetitorsSection{
			Status: analysis.SectionStatus{Status: analysis.StatusOK},
			Rows:   []analysis.CompetitorRow{{Ticker: "TCS"}},
		},
	}
}

func TestRenderContainsSections(t *testing.T) {
	var buf bytes.Buffer
	NewRenderer(&buf).Render(sampleAnalysis())

	out := buf.String()
	for _, want := range []string{"RELIANCE", "Pivot Point", "Potentially Undervalued", "steady growth", "TCS"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q", want)
		}
	}
}

func TestFormatters(t *testing.T) {
	if got := formatRatio(nil); got != "N/A" {
		t.Errorf("formatRatio(nil) = %q", got)
	}
	if got := formatRatio(fp(12.345)); got != "12.35" {
		t.Errorf("formatRatio = %q", got)
	}
	if got := formatMarketCap(fp(2e12)); got != "₹200000.00 Cr" {
		t.Errorf("formatMarketCap = %q", got)
	}
	if got := formatMarketCap(nil); got != "N/A" {
		t.Errorf("formatMarketCap(nil) = %q", got)
	}
}

func TestWrapText(t *testing.T) {
	got := wrapText("one two three four", 9)
	if got != "one two\nthree\nfour" {
		t.Errorf("wrapText = %q", got)
	}
}
