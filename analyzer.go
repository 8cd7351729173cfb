package textmood

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strings"
	"sync"
	"time"

	"golang.org/x/text/language"
)

// An Analyzer runs the analysis pipeline. It holds only configuration and is
// safe for concurrent use.
type Analyzer struct {
	cfg Config
}

// NewAnalyzer creates an Analyzer from DefaultConfig and the given options.
//
// For example,
//
//	a, err := textmood.NewAnalyzer(textmood.UsingThresholds(textmood.LooseThresholds))
func NewAnalyzer(opts ...Option) (*Analyzer, error) {
	cfg := DefaultConfig()
	for _, applyOpt := range opts {
		applyOpt(&cfg)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	// Fill anything a caller-supplied Config left empty.
	if cfg.Tokenizer == nil {
		cfg.Tokenizer = defaultTokenizer
	}
	if cfg.Splitter == nil {
		cfg.Splitter = PunctuationSplitter{}
	}
	if cfg.Scorer == nil {
		cfg.Scorer = NewLexiconScorer(nil, DefaultSentimentConfig())
	}
	if cfg.TranslateTimeout == 0 {
		cfg.TranslateTimeout = DefaultTranslateTimeout
	}
	cfg.Stopwords = cfg.Stopwords.Union(nil)

	return &Analyzer{cfg: cfg}, nil
}

// MustNewAnalyzer is like NewAnalyzer but panics on invalid options.
func MustNewAnalyzer(opts ...Option) *Analyzer {
	a, err := NewAnalyzer(opts...)
	if err != nil {
		panic(err)
	}
	return a
}

// Config returns a copy of the analyzer's configuration. The stopword set is
// copied too, so changing it does not affect the analyzer.
func (a *Analyzer) Config() Config {
	cfg := a.cfg
	cfg.Stopwords = a.cfg.Stopwords.Union(nil)
	return cfg
}

func (a *Analyzer) logger() *slog.Logger {
	if a.cfg.Logger != nil {
		return a.cfg.Logger
	}
	return slog.Default()
}

// Words returns the top n words of text. A non-positive n returns all of
// them. It never fails and does not touch the scorer or translator.
func (a *Analyzer) Words(text string, n int) []WordFrequency {
	return TopWords(CountWords(a.cfg.Tokenizer, text, a.cfg.Stopwords), n)
}

// Analyze scores text as a whole and sentence by sentence, and ranks its
// words.
//
// Blank text fails with ErrEmptyInput. A failed translation is recorded in
// the report's Warnings and the original text is scored instead. A failed
// scorer returns a *ScoringError carrying the word table.
func (a *Analyzer) Analyze(ctx context.Context, text string, opts ...RequestOpt) (*AnalysisReport, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyInput
	}

	req := request{
		target:     a.cfg.TargetLanguage,
		topN:       a.cfg.TopN,
		thresholds: a.cfg.Thresholds,
	}
	for _, applyOpt := range opts {
		applyOpt(&req)
	}
	if err := req.thresholds.Validate(); err != nil {
		return nil, err
	}
	if req.topN < 0 {
		return nil, fmt.Errorf("%w: top-N must not be negative", ErrInvalidOptions)
	}

	start := time.Now()
	log := a.logger()

	report := &AnalysisReport{
		Words:     a.Words(text, req.topN),
		Sentences: []SentenceResult{},
	}

	if a.cfg.Detector != nil {
		report.Language, _ = a.cfg.Detector.DetectLanguage(text)
	}

	scoringText := text
	translate := a.shouldTranslate(report.Language, req.target)
	if translate {
		translated, err := translateOrKeep(ctx, a.cfg.Translator, text, req.target, a.cfg.TranslateTimeout)
		if err != nil {
			a.warn(log, report, err)
		} else {
			report.TranslatedText = translated
			scoringText = translated
		}
	}

	score, err := a.score(ctx, scoringText)
	if err != nil {
		return nil, a.scoringFailed(ctx, err, report.Words)
	}
	report.Score = score
	report.Class = req.thresholds.Classify(score)

	for _, sent := range a.cfg.Splitter.Split(text) {
		sentText := sent
		if translate && a.cfg.TranslateSentences {
			translated, err := translateOrKeep(ctx, a.cfg.Translator, sent, req.target, a.cfg.TranslateTimeout)
			if err != nil {
				a.warn(log, report, err)
			}
			sentText = translated
		}

		s, err := a.score(ctx, sentText)
		if err != nil {
			return nil, a.scoringFailed(ctx, err, report.Words)
		}
		report.Sentences = append(report.Sentences, SentenceResult{
			Text:  sent,
			Score: s,
			Class: req.thresholds.Classify(s),
		})
	}

	log.Debug("[Analyzer] Analysis finished",
		slog.Int("sentences", len(report.Sentences)),
		slog.Int("words", len(report.Words)),
		slog.String("language", string(report.Language)),
		slog.Duration("elapsed", time.Since(start)))

	return report, nil
}

// score runs the configured scorer and keeps its output in range. NaN and
// infinite values are rejected.
func (a *Analyzer) score(ctx context.Context, text string) (SentimentScore, error) {
	s, err := a.cfg.Scorer.Score(ctx, text)
	if err != nil {
		return SentimentScore{}, err
	}
	if !isFinite(s.Polarity) || !isFinite(s.Subjectivity) {
		return SentimentScore{}, fmt.Errorf("%w: polarity %v, subjectivity %v",
			errNonFiniteScore, s.Polarity, s.Subjectivity)
	}
	s.Polarity = clamp(s.Polarity, -1, 1)
	s.Subjectivity = clamp(s.Subjectivity, 0, 1)
	return s, nil
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// shouldTranslate skips translation when there is no translator or target,
// or when the text is already in the target language.
func (a *Analyzer) shouldTranslate(detected Language, target string) bool {
	if a.cfg.Translator == nil || strings.TrimSpace(target) == "" {
		return false
	}
	if detected == Unknown {
		return true
	}
	tag, err := language.Parse(target)
	if err != nil {
		// Let translateOrKeep report the bad tag.
		return true
	}
	base, _ := tag.Base()
	return base.String() != string(detected)
}

func (a *Analyzer) warn(log *slog.Logger, report *AnalysisReport, err error) {
	log.Warn("[Analyzer] Translation failed, scoring original text",
		slog.String("error", err.Error()))
	report.Warnings = append(report.Warnings, err.Error())
}

// scoringFailed wraps a scorer error. Cancellation is passed through as is.
func (a *Analyzer) scoringFailed(ctx context.Context, err error, words []WordFrequency) error {
	if ctxErr := ctx.Err(); ctxErr != nil && errors.Is(err, ctxErr) {
		return ctxErr
	}
	return &ScoringError{Err: err, Words: words}
}

var defaultAnalyzer = sync.OnceValue(func() *Analyzer {
	return MustNewAnalyzer()
})

// Analyze runs text through an Analyzer built from DefaultConfig.
func Analyze(ctx context.Context, text string, opts ...RequestOpt) (*AnalysisReport, error) {
	return defaultAnalyzer().Analyze(ctx, text, opts...)
}
