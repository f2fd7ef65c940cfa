package scan

import "fmt"

// Graham screen thresholds. Fixed policy constants, not configurable.
const (
	GrahamMaxPE = 15.0
	GrahamMaxPB = 1.5
)

// Graham screen verdicts.
const (
	VerdictUndervalued   = "Potentially Undervalued"
	VerdictNotMeeting    = "Not Meeting Graham Criteria"
	VerdictNotEnoughData = "Not enough data"
)

// GrahamVerdict is the result of the value screen. The formatted ratios are
// present only when both inputs were known.
type GrahamVerdict struct {
	PERatio string `json:"pe_ratio,omitempty"`
	PBRatio string `json:"pb_ratio,omitempty"`
	Verdict string `json:"verdict"`
}

// GrahamScan classifies a security by Benjamin Graham's simplified value
// criteria: trailing P/E below 15 and price-to-book below 1.5. A nil ratio
// means the figure is unknown and the verdict is "Not enough data".
func GrahamScan(pe, pb *float64) GrahamVerdict {
	if pe == nil || pb == nil {
		return GrahamVerdict{Verdict: VerdictNotEnoughData}
	}

	verdict := VerdictNotMeeting
	if *pe < GrahamMaxPE && *pb < GrahamMaxPB {
		verdict = VerdictUndervalued
	}

	return GrahamVerdict{
		PERatio: fmt.Sprintf("%.2f", *pe),
		PBRatio: fmt.Sprintf("%.2f", *pb),
		Verdict: verdict,
	}
}
