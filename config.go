package textmood

import (
	"fmt"
	"log/slog"
	"strings"
	"time"
)

// Thresholds decide how a score is labelled. Negative is signed, so a
// polarity below -0.2 is negative under StrictThresholds.
type Thresholds struct {
	Positive     float64 `json:"positive" toml:"positive"`
	Negative     float64 `json:"negative" toml:"negative"`
	Subjectivity float64 `json:"subjectivity" toml:"subjectivity"`
}

var (
	// StrictThresholds need a clear polarity before leaving neutral.
	StrictThresholds = Thresholds{Positive: 0.2, Negative: -0.2, Subjectivity: 0.5}

	// LooseThresholds label faint polarities too.
	LooseThresholds = Thresholds{Positive: 0.05, Negative: -0.05, Subjectivity: 0.5}
)

// ThresholdsFor returns the preset named "strict" or "loose".
func ThresholdsFor(variant string) (Thresholds, error) {
	switch strings.ToLower(strings.TrimSpace(variant)) {
	case "", "strict":
		return StrictThresholds, nil
	case "loose":
		return LooseThresholds, nil
	default:
		return Thresholds{}, fmt.Errorf("%w: unknown threshold variant %q", ErrInvalidOptions, variant)
	}
}

// Validate checks that the thresholds are in range and ordered.
func (t Thresholds) Validate() error {
	if t.Positive < -1 || t.Positive > 1 || t.Negative < -1 || t.Negative > 1 {
		return fmt.Errorf("%w: polarity thresholds must be within [-1, 1]", ErrInvalidOptions)
	}
	if t.Negative > t.Positive {
		return fmt.Errorf("%w: negative threshold %.2f is above positive threshold %.2f",
			ErrInvalidOptions, t.Negative, t.Positive)
	}
	if t.Subjectivity < 0 || t.Subjectivity > 1 {
		return fmt.Errorf("%w: subjectivity threshold must be within [0, 1]", ErrInvalidOptions)
	}
	return nil
}

// ClassifyPolarity labels a polarity value.
func (t Thresholds) ClassifyPolarity(polarity float64) PolarityClass {
	switch {
	case polarity > t.Positive:
		return Positive
	case polarity < t.Negative:
		return Negative
	default:
		return Neutral
	}
}

// ClassifySubjectivity labels a subjectivity value.
func (t Thresholds) ClassifySubjectivity(subjectivity float64) SubjectivityClass {
	if subjectivity > t.Subjectivity {
		return HighSubjectivity
	}
	return LowSubjectivity
}

// Classify labels both parts of a score.
func (t Thresholds) Classify(s SentimentScore) Classification {
	return Classification{
		Polarity:     t.ClassifyPolarity(s.Polarity),
		Subjectivity: t.ClassifySubjectivity(s.Subjectivity),
	}
}

// Config holds everything an Analyzer needs. Collaborators left nil are
// either skipped (Translator, Detector) or replaced by defaults.
type Config struct {
	Stopwords        StopwordSet
	Thresholds       Thresholds
	TopN             int
	TargetLanguage   string
	TranslateTimeout time.Duration

	// TranslateSentences also translates each sentence before scoring it.
	// By default only the whole text is translated.
	TranslateSentences bool

	Tokenizer  Tokenizer
	Splitter   SentenceSplitter
	Scorer     Scorer
	Translator Translator
	Detector   *LanguageDetector
	Logger     *slog.Logger
}

// DefaultConfig returns the Spanish stopword list, strict thresholds, a top
// ten word table and English as the translation target. No translator is
// configured.
func DefaultConfig() Config {
	return Config{
		Stopwords:        NewStopwordSet(SpanishStopwords...),
		Thresholds:       StrictThresholds,
		TopN:             DefaultTopN,
		TargetLanguage:   string(English),
		TranslateTimeout: DefaultTranslateTimeout,
		Tokenizer:        defaultTokenizer,
		Splitter:         PunctuationSplitter{},
		Scorer:           NewLexiconScorer(nil, DefaultSentimentConfig()),
		Detector:         defaultDetector,
	}
}

// Validate checks the configuration for values Analyze cannot work with.
func (c Config) Validate() error {
	if err := c.Thresholds.Validate(); err != nil {
		return err
	}
	if c.TopN < 0 {
		return fmt.Errorf("%w: top-N must not be negative", ErrInvalidOptions)
	}
	if c.TranslateTimeout < 0 {
		return fmt.Errorf("%w: translate timeout must not be negative", ErrInvalidOptions)
	}
	return nil
}

// An Option changes the configuration of a new Analyzer.
type Option func(*Config)

// UsingConfig replaces the whole configuration.
func UsingConfig(cfg Config) Option {
	return func(c *Config) {
		*c = cfg
	}
}

// UsingStopwords sets the stopword set.
func UsingStopwords(stop StopwordSet) Option {
	return func(c *Config) {
		c.Stopwords = stop
	}
}

// UsingThresholds sets the classification thresholds.
func UsingThresholds(t Thresholds) Option {
	return func(c *Config) {
		c.Thresholds = t
	}
}

// UsingTokenizer specifies the Tokenizer used for word counts.
func UsingTokenizer(tok Tokenizer) Option {
	return func(c *Config) {
		c.Tokenizer = tok
	}
}

// UsingSplitter specifies the SentenceSplitter.
func UsingSplitter(s SentenceSplitter) Option {
	return func(c *Config) {
		c.Splitter = s
	}
}

// UsingScorer specifies the Scorer.
func UsingScorer(s Scorer) Option {
	return func(c *Config) {
		c.Scorer = s
	}
}

// UsingTranslator enables translation before scoring. Pass nil to disable it.
func UsingTranslator(tr Translator) Option {
	return func(c *Config) {
		c.Translator = tr
	}
}

// UsingDetector sets the language detector. Pass nil to disable detection.
func UsingDetector(d *LanguageDetector) Option {
	return func(c *Config) {
		c.Detector = d
	}
}

// WithLogger sets the logger for warnings and debug timings.
func WithLogger(l *slog.Logger) Option {
	return func(c *Config) {
		c.Logger = l
	}
}

// WithTranslateTimeout bounds each translation call.
func WithTranslateTimeout(d time.Duration) Option {
	return func(c *Config) {
		c.TranslateTimeout = d
	}
}

// WithDefaultTopN sets how many words a report keeps when the request does
// not say. Zero keeps all of them.
func WithDefaultTopN(n int) Option {
	return func(c *Config) {
		c.TopN = n
	}
}

// WithDefaultTargetLanguage sets the translation target used when the
// request does not name one.
func WithDefaultTargetLanguage(lang string) Option {
	return func(c *Config) {
		c.TargetLanguage = lang
	}
}

// WithSentenceTranslation translates every sentence before it is scored.
func WithSentenceTranslation(enabled bool) Option {
	return func(c *Config) {
		c.TranslateSentences = enabled
	}
}

// A RequestOpt adjusts a single Analyze call.
type RequestOpt func(*request)

type request struct {
	target     string
	topN       int
	thresholds Thresholds
}

// WithTargetLanguage sets the translation target for this call. An empty
// string disables translation.
func WithTargetLanguage(lang string) RequestOpt {
	return func(r *request) {
		r.target = lang
	}
}

// WithTopN sets the size of the word table. Zero keeps every word.
func WithTopN(n int) RequestOpt {
	return func(r *request) {
		r.topN = n
	}
}

// WithPositiveThreshold overrides the positive polarity threshold.
func WithPositiveThreshold(v float64) RequestOpt {
	return func(r *request) {
		r.thresholds.Positive = v
	}
}

// WithNegativeThreshold overrides the negative polarity threshold. The value
// is signed: pass -0.05 to label polarities below -0.05 negative.
func WithNegativeThreshold(v float64) RequestOpt {
	return func(r *request) {
		r.thresholds.Negative = v
	}
}

// WithSubjectivityThreshold overrides the subjectivity threshold.
func WithSubjectivityThreshold(v float64) RequestOpt {
	return func(r *request) {
		r.thresholds.Subjectivity = v
	}
}

// WithThresholds overrides all three thresholds at once.
func WithThresholds(t Thresholds) RequestOpt {
	return func(r *request) {
		r.thresholds = t
	}
}
