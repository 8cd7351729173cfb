package textmood

import (
	"context"
	"strings"

	"gonum.org/v1/gonum/stat"
)

// A Scorer computes the polarity and subjectivity of a piece of text.
type Scorer interface {
	Score(ctx context.Context, text string) (SentimentScore, error)
}

// ScorerFunc adapts an ordinary function to the Scorer interface.
type ScorerFunc func(ctx context.Context, text string) (SentimentScore, error)

// Score calls f(ctx, text).
func (f ScorerFunc) Score(ctx context.Context, text string) (SentimentScore, error) {
	return f(ctx, text)
}

// SentimentConfig configures the lexicon scorer.
type SentimentConfig struct {
	NegationWindow int     // Tokens to look back for a negation
	ModifierWindow int     // Tokens to look back for an intensifier or diminisher
	NegationFactor float64 // Multiplier applied to a negated polarity
}

// DefaultSentimentConfig returns standard configuration
func DefaultSentimentConfig() SentimentConfig {
	return SentimentConfig{
		NegationWindow: 3,
		ModifierWindow: 2,
		NegationFactor: -0.5, // Negation reverses but weakens
	}
}

// LexiconScorer scores text by averaging the lexicon entries of its words,
// weighted by each entry's confidence.
type LexiconScorer struct {
	lexicon   *SentimentLexicon
	tokenizer *WordTokenizer
	config    SentimentConfig
}

// NewLexiconScorer creates a scorer over lexicon. A nil lexicon loads the
// built-in English and Spanish words.
func NewLexiconScorer(lexicon *SentimentLexicon, config SentimentConfig) *LexiconScorer {
	if lexicon == nil {
		lexicon = LoadSentimentLexicon()
	}
	return &LexiconScorer{
		lexicon:   lexicon,
		tokenizer: NewWordTokenizer(UsingPunctuation()),
		config:    config,
	}
}

// Lexicon returns the lexicon backing the scorer.
func (sa *LexiconScorer) Lexicon() *SentimentLexicon {
	return sa.lexicon
}

// Score implements Scorer. Text without any lexicon word scores (0, 0).
func (sa *LexiconScorer) Score(ctx context.Context, text string) (SentimentScore, error) {
	if err := ctx.Err(); err != nil {
		return SentimentScore{}, err
	}

	var (
		polarities     []float64
		subjectivities []float64
		weights        []float64
		features       SentimentFeatures
	)

	tokens := sa.tokenizer.TokenizeWithOffsets(text)
	for i, token := range tokens {
		entry, ok := sa.lexicon.Lookup(token.Text)
		if !ok {
			continue
		}

		polarity := entry.Polarity
		subjectivity := entry.Subjectivity

		if word, factor, pos := sa.findModifier(tokens, i); factor != 0 {
			polarity *= 1 + factor
			subjectivity *= 1 + factor

			kind := Intensifier
			if factor < 0 {
				kind = Diminisher
			}
			features.Intensifiers = append(features.Intensifiers, IntensifierEffect{
				Word:     word,
				Type:     kind,
				Position: tokens[pos].Start,
				Factor:   factor,
			})
		}

		if sa.checkNegation(tokens, i) {
			polarity *= sa.config.NegationFactor
			features.Negations = append(features.Negations, NegationScope{
				Position: token.Start,
				Scope:    sa.config.NegationWindow,
			})
		}

		polarity = clamp(polarity, -1, 1)
		subjectivity = clamp(subjectivity, 0, 1)

		contrib := WordContribution{
			Word:          token.Text,
			Position:      token.Start,
			BaseScore:     entry.Polarity,
			AdjustedScore: polarity,
			Confidence:    entry.Confidence,
		}
		switch {
		case polarity > 0:
			features.PositiveWords = append(features.PositiveWords, contrib)
		case polarity < 0:
			features.NegativeWords = append(features.NegativeWords, contrib)
		}

		polarities = append(polarities, polarity)
		subjectivities = append(subjectivities, subjectivity)
		weights = append(weights, entry.Confidence)
	}

	if len(polarities) == 0 {
		return SentimentScore{}, nil
	}

	return SentimentScore{
		Polarity:     clamp(stat.Mean(polarities, weights), -1, 1),
		Subjectivity: clamp(stat.Mean(subjectivities, weights), 0, 1),
		Features:     features,
	}, nil
}

// findModifier looks back over the modifier window for an intensifier or
// diminisher, trying two-word modifiers ("a bit") before single words. It
// returns the modifier, its factor and the index of its first token.
func (sa *LexiconScorer) findModifier(tokens []*Token, position int) (string, float64, int) {
	start := maxInt(0, position-sa.config.ModifierWindow)

	for i := start; i < position; i++ {
		if i+1 < position {
			pair := tokens[i].Text + " " + tokens[i+1].Text
			if f := sa.lexicon.GetModifierStrength(pair); f != 0 {
				return pair, f, i
			}
		}
		if f := sa.lexicon.GetModifierStrength(tokens[i].Text); f != 0 {
			return tokens[i].Text, f, i
		}
	}
	return "", 0, -1
}

// checkNegation detects negation in context. A clause boundary between the
// negation and the word cancels it.
func (sa *LexiconScorer) checkNegation(tokens []*Token, position int) bool {
	start := maxInt(0, position-sa.config.NegationWindow)

	for i := position - 1; i >= start; i-- {
		if isClauseBoundary(tokens[i]) {
			return false
		}
		if sa.lexicon.IsNegation(tokens[i].Text) || strings.HasSuffix(tokens[i].Text, "n't") {
			return true
		}
	}
	return false
}

var clauseBoundaries = map[string]bool{
	",":        true,
	";":        true,
	":":        true,
	".":        true,
	"!":        true,
	"?":        true,
	"but":      true,
	"however":  true,
	"although": true,
	"pero":     true,
	"aunque":   true,
	"sino":     true,
}

// isClauseBoundary checks if a token represents a clause boundary
func isClauseBoundary(token *Token) bool {
	return clauseBoundaries[token.Text]
}

// maxInt returns the maximum of two integers
func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
