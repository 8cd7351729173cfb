package textmood

import (
	"context"

	"github.com/jonreiter/govader"
)

// VaderScorer scores English text with the VADER rule set. Polarity is the
// compound score and subjectivity is the share of the text VADER did not
// rate as neutral.
type VaderScorer struct {
	analyzer *govader.SentimentIntensityAnalyzer
}

// NewVaderScorer loads the VADER lexicon.
func NewVaderScorer() *VaderScorer {
	return &VaderScorer{analyzer: govader.NewSentimentIntensityAnalyzer()}
}

// Score implements Scorer.
func (v *VaderScorer) Score(ctx context.Context, text string) (SentimentScore, error) {
	if err := ctx.Err(); err != nil {
		return SentimentScore{}, err
	}

	sentiment := v.analyzer.PolarityScores(text)
	score := SentimentScore{
		Polarity:     clamp(sentiment.Compound, -1, 1),
		Subjectivity: clamp(1-sentiment.Neutral, 0, 1),
	}
	// VADER reports an all-zero breakdown when it finds nothing to rate.
	if sentiment.Neutral == 0 && sentiment.Positive == 0 && sentiment.Negative == 0 {
		score.Subjectivity = 0
	}
	return score, nil
}
