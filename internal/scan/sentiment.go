package scan

// SentimentLabel classifies a single piece of text.
type SentimentLabel string

const (
	SentimentPositive SentimentLabel = "Positive"
	SentimentNegative SentimentLabel = "Negative"
	SentimentNeutral  SentimentLabel = "Neutral"
)

// Classification thresholds on the compound score. Inclusive on both sides:
// exactly 0.05 is Positive, exactly -0.05 is Negative.
const (
	positiveThreshold = 0.05
	negativeThreshold = -0.05
)

// SentimentResult is a per-text sentiment classification with its compound
// polarity score in [-1, 1].
type SentimentResult struct {
	Label    SentimentLabel `json:"label"`
	Compound float64        `json:"compound"`
}

// Scorer produces a compound polarity score in [-1, 1] for a piece of text.
type Scorer interface {
	Compound(text string) float64
}

// Classify buckets a compound score into a sentiment label.
func Classify(compound float64) SentimentLabel {
	switch {
	case compound >= positiveThreshold:
		return SentimentPositive
	case compound <= negativeThreshold:
		return SentimentNegative
	default:
		return SentimentNeutral
	}
}

// ScoreText scores a piece of text once and classifies the result.
func ScoreText(scorer Scorer, text string) SentimentResult {
	compound := scorer.Compound(text)
	return SentimentResult{
		Label:    Classify(compound),
		Compound: compound,
	}
}

// ScoreBatch scores each headline once, in order.
func ScoreBatch(scorer Scorer, headlines []string) []SentimentResult {
	results := make([]SentimentResult, 0, len(headlines))
	for _, h := range headlines {
		results = append(results, ScoreText(scorer, h))
	}
	return results
}

// BatchAverage returns the arithmetic mean of the compound scores. For an
// empty batch the mean is undefined: ok is false and callers must treat the
// batch as "no data", not as a zero score. The mean is not reclassified
// into a label here.
func BatchAverage(results []SentimentResult) (mean float64, ok bool) {
	if len(results) == 0 {
		return 0, false
	}
	total := 0.0
	for _, r := range results {
		total += r.Compound
	}
	return total / float64(len(results)), true
}
