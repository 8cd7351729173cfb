package textmood

// A Token represents an individual token of text such as a word or punctuation
// symbol.
type Token struct {
	Text  string // The token's normalized content.
	Start int    // Start byte offset in the normalized text
	End   int    // End byte offset in the normalized text
}

// Language is an ISO 639-1 language code.
type Language string

const (
	English Language = "en"
	Spanish Language = "es"
	French  Language = "fr"
	German  Language = "de"

	// Unknown is returned by detection when no language could be identified.
	Unknown Language = ""
)

// SentimentScore represents the sentiment analysis results
type SentimentScore struct {
	Polarity     float64 `json:"polarity"`     // -1.0 (negative) to 1.0 (positive)
	Subjectivity float64 `json:"subjectivity"` // 0.0 (objective) to 1.0 (subjective)

	// Contributing factors, only filled by lexicon based scorers
	Features SentimentFeatures `json:"-"`
}

// Gauge maps the polarity onto [0, 1], where 0.5 is neutral.
func (s SentimentScore) Gauge() float64 {
	return clamp((s.Polarity+1)/2, 0, 1)
}

// PolarityClass represents sentiment categories
type PolarityClass string

const (
	Positive PolarityClass = "positive"
	Neutral  PolarityClass = "neutral"
	Negative PolarityClass = "negative"
)

// SubjectivityClass buckets the subjectivity score.
type SubjectivityClass string

const (
	HighSubjectivity SubjectivityClass = "high"
	LowSubjectivity  SubjectivityClass = "low"
)

// Classification is the presentation label pair for a score.
type Classification struct {
	Polarity     PolarityClass     `json:"polarity"`
	Subjectivity SubjectivityClass `json:"subjectivity"`
}

// SentimentFeatures tracks contributing factors
type SentimentFeatures struct {
	PositiveWords []WordContribution
	NegativeWords []WordContribution
	Negations     []NegationScope
	Intensifiers  []IntensifierEffect
}

// WordContribution represents a word's sentiment contribution
type WordContribution struct {
	Word          string
	Position      int
	BaseScore     float64
	AdjustedScore float64
	Confidence    float64
}

// ModifierType categorizes sentiment modifiers
type ModifierType string

const (
	Intensifier ModifierType = "intensifier" // "very", "muy"
	Diminisher  ModifierType = "diminisher"  // "slightly", "apenas"
)

// NegationScope represents the scope of a negation
type NegationScope struct {
	Position int
	Scope    int
}

// IntensifierEffect represents the effect of an intensifier or diminisher
type IntensifierEffect struct {
	Word     string
	Type     ModifierType
	Position int
	Factor   float64
}

// WordFrequency is one row of the word frequency table.
type WordFrequency struct {
	Word  string `json:"word"`
	Count int    `json:"count"`
}

// SentenceResult is the score of a single sentence.
type SentenceResult struct {
	Text  string         `json:"text"`
	Score SentimentScore `json:"score"`
	Class Classification `json:"class"`
}

// AnalysisReport is the result of one analysis run.
type AnalysisReport struct {
	Score          SentimentScore   `json:"score"`
	Class          Classification   `json:"class"`
	Words          []WordFrequency  `json:"words"`
	Sentences      []SentenceResult `json:"sentences"`
	TranslatedText string           `json:"translated_text,omitempty"`
	Language       Language         `json:"language,omitempty"`
	Warnings       []string         `json:"warnings,omitempty"`
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
