package scan

// Display names for the five pivot levels.
const (
	LevelR2    = "Resistance 2 (R2)"
	LevelR1    = "Resistance 1 (R1)"
	LevelPivot = "Pivot Point"
	LevelS1    = "Support 1 (S1)"
	LevelS2    = "Support 2 (S2)"
)

// PivotLevelOrder lists the level names from top to bottom for rendering.
var PivotLevelOrder = []string{LevelR2, LevelR1, LevelPivot, LevelS1, LevelS2}

// PivotLevels maps level display names to raw price values. An empty map
// means "not computable", never a set of zero levels.
type PivotLevels map[string]float64

// PivotPoints computes classic floor-trader pivot levels from the last
// confirmed session. The most recent bar may be an in-progress session, so
// the high/low/close come from the second-to-last bar. Fewer than 2 bars
// yields an empty mapping.
func PivotPoints(series PriceSeries) PivotLevels {
	if series.Len() < 2 {
		return PivotLevels{}
	}

	last := series.Bars[series.Len()-2]
	high, low, close := last.High, last.Low, last.Close

	pivot := (high + low + close) / 3
	r1 := 2*pivot - low
	s1 := 2*pivot - high
	r2 := pivot + (high - low)
	s2 := pivot - (high - low)

	return PivotLevels{
		LevelR2:    r2,
		LevelR1:    r1,
		LevelPivot: pivot,
		LevelS1:    s1,
		LevelS2:    s2,
	}
}
