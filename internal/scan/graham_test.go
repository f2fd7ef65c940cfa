package scan

import "testing"

func fp(v float64) *float64 { return &v }

func TestGrahamScan(t *testing.T) {
	tests := []struct {
		name        string
		pe, pb      *float64
		wantVerdict string
	}{
		{"undervalued", fp(12), fp(1.0), VerdictUndervalued},
		{"pe too high", fp(20), fp(1.0), VerdictNotMeeting},
		{"pb too high", fp(12), fp(2.0), VerdictNotMeeting},
		{"pe at threshold", fp(15), fp(1.0), VerdictNotMeeting},
		{"pb at threshold", fp(12), fp(1.5), VerdictNotMeeting},
		{"missing pe", nil, fp(1.0), VerdictNotEnoughData},
		{"missing pb", fp(12), nil, VerdictNotEnoughData},
		{"both missing", nil, nil, VerdictNotEnoughData},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := GrahamScan(tt.pe, tt.pb)
			if got.Verdict != tt.wantVerdict {
				t.Errorf("verdict = %q, want %q", got.Verdict, tt.wantVerdict)
			}
		})
	}
}

func TestGrahamScanFormatsRatios(t *testing.T) {
	got := GrahamScan(fp(12.345), fp(1.005))
	if got.PERatio != "12.35" {
		t.Errorf("PERatio = %q, want 12.35", got.PERatio)
	}
	if got.PBRatio != "1.00" && got.PBRatio != "1.01" {
		t.Errorf("PBRatio = %q, want two-decimal format", got.PBRatio)
	}
}

func TestGrahamScanOmitsRatiosWhenInsufficient(t *testing.T) {
	got := GrahamScan(nil, fp(1.0))
	if got.PERatio != "" || got.PBRatio != "" {
		t.Errorf("expected empty ratio strings, got %q / %q", got.PERatio, got.PBRatio)
	}
}
