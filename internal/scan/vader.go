package scan

import (
	"github.com/grassmudhorses/vader-go/lexicon"
	"github.com/grassmudhorses/vader-go/sentitext"
)

// VaderScorer scores text with the VADER sentiment lexicon. The zero value
// is ready to use.
type VaderScorer struct{}

func (VaderScorer) Compound(text string) float64 {
	parsed := sentitext.Parse(text, lexicon.DefaultLexicon)
	return sentitext.PolarityScore(parsed).Compound
}
