package textmood

import (
	"context"
	"errors"
	"math"
	"reflect"
	"strings"
	"sync"
	"testing"
)

const threeSentences = "Estoy feliz. Hoy fue un mal día. El clima es normal."

// recordingScorer scores with the built-in lexicon and remembers every text
// it was asked to score.
type recordingScorer struct {
	mu    sync.Mutex
	texts []string
	inner Scorer
}

func (r *recordingScorer) Score(ctx context.Context, text string) (SentimentScore, error) {
	r.mu.Lock()
	r.texts = append(r.texts, text)
	r.mu.Unlock()
	return r.inner.Score(ctx, text)
}

func newRecordingScorer() *recordingScorer {
	return &recordingScorer{inner: NewLexiconScorer(nil, DefaultSentimentConfig())}
}

type countingTranslator struct {
	mu    sync.Mutex
	calls int
	fn    func(text string) (string, error)
}

func (c *countingTranslator) Translate(_ context.Context, text, _ string) (string, error) {
	c.mu.Lock()
	c.calls++
	c.mu.Unlock()
	return c.fn(text)
}

func TestAnalyzeEmptyInput(t *testing.T) {
	a := MustNewAnalyzer()
	for _, text := range []string{"", "   ", "\n\t "} {
		report, err := a.Analyze(context.Background(), text)
		if !errors.Is(err, ErrEmptyInput) {
			t.Errorf("Analyze(%q): expected ErrEmptyInput, got %v", text, err)
		}
		if report != nil {
			t.Errorf("Analyze(%q): expected no report", text)
		}
	}
}

func TestAnalyzeSentenceClasses(t *testing.T) {
	tests := []struct {
		name       string
		thresholds Thresholds
	}{
		{"strict", StrictThresholds},
		{"loose", LooseThresholds},
	}

	want := []struct {
		text  string
		class PolarityClass
	}{
		{"Estoy feliz", Positive},
		{"Hoy fue un mal día", Negative},
		{"El clima es normal", Neutral},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := MustNewAnalyzer(UsingThresholds(tt.thresholds))
			report, err := a.Analyze(context.Background(), threeSentences)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(report.Sentences) != len(want) {
				t.Fatalf("expected %d sentences, got %d", len(want), len(report.Sentences))
			}
			for i, w := range want {
				got := report.Sentences[i]
				if got.Text != w.text {
					t.Errorf("sentence %d: expected %q, got %q", i, w.text, got.Text)
				}
				if got.Class.Polarity != w.class {
					t.Errorf("sentence %d: expected %s, got %s (%.2f)", i, w.class, got.Class.Polarity, got.Score.Polarity)
				}
			}
		})
	}
}

func TestAnalyzeWords(t *testing.T) {
	report, err := Analyze(context.Background(), "Me encanta ver cómo mi bebé aprende cosas nuevas")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []WordFrequency{
		{"encanta", 1}, {"ver", 1}, {"cómo", 1}, {"bebé", 1},
		{"aprende", 1}, {"cosas", 1}, {"nuevas", 1},
	}
	if !reflect.DeepEqual(report.Words, want) {
		t.Errorf("expected %v, got %v", want, report.Words)
	}
	if report.Class.Polarity != Positive {
		t.Errorf("expected positive, got %s (%.2f)", report.Class.Polarity, report.Score.Polarity)
	}
}

func TestAnalyzeReportInvariants(t *testing.T) {
	a := MustNewAnalyzer()
	stop := NewStopwordSet(SpanishStopwords...)

	texts := []string{
		threeSentences,
		"No me gusta nada. Es terrible, muy terrible!!!",
		"I love this product. It is not bad at all.",
		"sin puntuación ni nada más",
		"Sol sol SOL luna luna mar",
	}

	for _, text := range texts {
		t.Run(text, func(t *testing.T) {
			report, err := a.Analyze(context.Background(), text)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			scores := []SentimentScore{report.Score}
			for _, s := range report.Sentences {
				scores = append(scores, s.Score)
				if s.Text == "" || s.Text != strings.TrimSpace(s.Text) {
					t.Errorf("sentence %q is not trimmed", s.Text)
				}
			}
			for _, s := range scores {
				if s.Polarity < -1 || s.Polarity > 1 || s.Subjectivity < 0 || s.Subjectivity > 1 {
					t.Errorf("score out of range: %+v", s)
				}
			}

			if len(report.Words) > DefaultTopN {
				t.Errorf("expected at most %d words, got %d", DefaultTopN, len(report.Words))
			}
			for i, wf := range report.Words {
				if stop.Contains(wf.Word) || len([]rune(wf.Word)) < MinWordLength {
					t.Errorf("unexpected word in table: %q", wf.Word)
				}
				if wf.Count < 1 {
					t.Errorf("%q has count %d", wf.Word, wf.Count)
				}
				if i > 0 && report.Words[i-1].Count < wf.Count {
					t.Errorf("words not sorted by count: %v", report.Words)
				}
			}
		})
	}
}

func TestAnalyzeIdempotent(t *testing.T) {
	a := MustNewAnalyzer()
	first, err := a.Analyze(context.Background(), threeSentences)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := a.Analyze(context.Background(), threeSentences)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Errorf("reports differ:\n%+v\n%+v", first, second)
	}
}

func TestAnalyzeConcurrent(t *testing.T) {
	a := MustNewAnalyzer()
	want, _ := a.Analyze(context.Background(), threeSentences)

	var wg sync.WaitGroup
	errs := make(chan error, 8)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got, err := a.Analyze(context.Background(), threeSentences)
			if err != nil {
				errs <- err
				return
			}
			if !reflect.DeepEqual(got, want) {
				errs <- errors.New("concurrent report differs")
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Error(err)
	}
}

func TestAnalyzeTopN(t *testing.T) {
	a := MustNewAnalyzer()
	text := "sol sol sol luna luna mar"

	report, err := a.Analyze(context.Background(), text, WithTopN(2))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []WordFrequency{{"sol", 3}, {"luna", 2}}
	if !reflect.DeepEqual(report.Words, want) {
		t.Errorf("expected %v, got %v", want, report.Words)
	}

	report, err = a.Analyze(context.Background(), text, WithTopN(0))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(report.Words) != 3 {
		t.Errorf("expected all 3 words, got %v", report.Words)
	}

	if got := a.Words(text, 1); len(got) != 1 || got[0].Word != "sol" {
		t.Errorf("Words: expected sol, got %v", got)
	}
}

func TestAnalyzeThresholdOverrides(t *testing.T) {
	a := MustNewAnalyzer()

	report, err := a.Analyze(context.Background(), "Estoy feliz", WithPositiveThreshold(0.9))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if report.Class.Polarity != Neutral {
		t.Errorf("expected neutral above the raised threshold, got %s", report.Class.Polarity)
	}

	report, err = a.Analyze(context.Background(), "Estoy feliz", WithSubjectivityThreshold(1))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if report.Class.Subjectivity != LowSubjectivity {
		t.Errorf("expected low subjectivity, got %s", report.Class.Subjectivity)
	}
}

func TestAnalyzeInvalidOptions(t *testing.T) {
	a := MustNewAnalyzer()

	tests := []struct {
		name string
		opts []RequestOpt
	}{
		{"negative above positive", []RequestOpt{WithNegativeThreshold(0.5)}},
		{"positive out of range", []RequestOpt{WithPositiveThreshold(1.5)}},
		{"subjectivity out of range", []RequestOpt{WithSubjectivityThreshold(-0.1)}},
		{"negative top-N", []RequestOpt{WithTopN(-1)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := a.Analyze(context.Background(), threeSentences, tt.opts...)
			if !errors.Is(err, ErrInvalidOptions) {
				t.Errorf("expected ErrInvalidOptions, got %v", err)
			}
		})
	}

	if _, err := NewAnalyzer(UsingThresholds(Thresholds{Positive: 0.2, Negative: -0.2, Subjectivity: 2})); !errors.Is(err, ErrInvalidOptions) {
		t.Errorf("NewAnalyzer: expected ErrInvalidOptions, got %v", err)
	}
	if _, err := NewAnalyzer(WithDefaultTopN(-3)); !errors.Is(err, ErrInvalidOptions) {
		t.Errorf("NewAnalyzer: expected ErrInvalidOptions, got %v", err)
	}
}

func TestAnalyzeScoringFailure(t *testing.T) {
	errModel := errors.New("model unavailable")
	a := MustNewAnalyzer(UsingScorer(ScorerFunc(func(context.Context, string) (SentimentScore, error) {
		return SentimentScore{}, errModel
	})))

	report, err := a.Analyze(context.Background(), threeSentences)
	if report != nil {
		t.Error("expected no report")
	}
	if !errors.Is(err, ErrScoringUnavailable) {
		t.Fatalf("expected ErrScoringUnavailable, got %v", err)
	}
	if !errors.Is(err, errModel) {
		t.Errorf("expected the scorer error in the chain, got %v", err)
	}

	var scoringErr *ScoringError
	if !errors.As(err, &scoringErr) {
		t.Fatalf("expected *ScoringError, got %T", err)
	}
	if len(scoringErr.Words) == 0 || scoringErr.Words[0].Word != "estoy" {
		t.Errorf("expected the word table on the error, got %v", scoringErr.Words)
	}
}

func TestAnalyzeScorerOutOfRange(t *testing.T) {
	scorerReturning := func(v float64) Scorer {
		return ScorerFunc(func(context.Context, string) (SentimentScore, error) {
			return SentimentScore{Polarity: v, Subjectivity: -2}, nil
		})
	}

	t.Run("finite values are clamped", func(t *testing.T) {
		a := MustNewAnalyzer(UsingScorer(scorerReturning(3.5)))
		report, err := a.Analyze(context.Background(), "Hola mundo. Otra frase.")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		scores := []SentimentScore{report.Score}
		for _, s := range report.Sentences {
			scores = append(scores, s.Score)
		}
		for _, s := range scores {
			if s.Polarity != 1 || s.Subjectivity != 0 {
				t.Errorf("expected polarity 1 and subjectivity 0, got %+v", s)
			}
		}
		if report.Class.Polarity != Positive || report.Class.Subjectivity != LowSubjectivity {
			t.Errorf("unexpected class %+v", report.Class)
		}
	})

	tests := []struct {
		name string
		v    float64
	}{
		{"nan", math.NaN()},
		{"positive infinity", math.Inf(1)},
		{"negative infinity", math.Inf(-1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := MustNewAnalyzer(UsingScorer(scorerReturning(tt.v)))
			report, err := a.Analyze(context.Background(), "Hola mundo. Otra frase.")
			if report != nil {
				t.Error("expected no report")
			}
			if !errors.Is(err, ErrScoringUnavailable) {
				t.Fatalf("expected ErrScoringUnavailable, got %v", err)
			}
			var scoringErr *ScoringError
			if !errors.As(err, &scoringErr) {
				t.Fatalf("expected *ScoringError, got %T", err)
			}
			if len(scoringErr.Words) == 0 {
				t.Error("expected the word table on the error")
			}
		})
	}

	t.Run("bad sentence score", func(t *testing.T) {
		a := MustNewAnalyzer(UsingScorer(ScorerFunc(func(_ context.Context, text string) (SentimentScore, error) {
			if strings.HasPrefix(text, "Otra") {
				return SentimentScore{Polarity: 0.2, Subjectivity: math.NaN()}, nil
			}
			return SentimentScore{Polarity: 0.2, Subjectivity: 0.5}, nil
		})))
		_, err := a.Analyze(context.Background(), "Hola mundo. Otra frase.")
		if !errors.Is(err, ErrScoringUnavailable) {
			t.Fatalf("expected ErrScoringUnavailable, got %v", err)
		}
	})
}

func TestAnalyzeCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := MustNewAnalyzer().Analyze(ctx, threeSentences)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	var scoringErr *ScoringError
	if errors.As(err, &scoringErr) {
		t.Error("cancellation should not be reported as a scoring failure")
	}
}

func TestAnalyzeTranslationFailure(t *testing.T) {
	scorer := newRecordingScorer()
	tr := &countingTranslator{fn: func(string) (string, error) {
		return "", errors.New("service down")
	}}
	a := MustNewAnalyzer(UsingScorer(scorer), UsingTranslator(tr), UsingDetector(nil))

	report, err := a.Analyze(context.Background(), threeSentences)
	if err != nil {
		t.Fatalf("translation failure should not fail the analysis: %v", err)
	}
	if report.TranslatedText != "" {
		t.Errorf("expected no translated text, got %q", report.TranslatedText)
	}
	if len(report.Warnings) != 1 || !strings.Contains(report.Warnings[0], "service down") {
		t.Errorf("expected one translation warning, got %q", report.Warnings)
	}
	if scorer.texts[0] != threeSentences {
		t.Errorf("expected the original text to be scored, got %q", scorer.texts[0])
	}

	baseline, _ := MustNewAnalyzer().Analyze(context.Background(), threeSentences)
	if report.Score.Polarity != baseline.Score.Polarity || len(report.Sentences) != len(baseline.Sentences) {
		t.Errorf("expected the untranslated result, got %+v", report)
	}
}

func TestAnalyzeTranslation(t *testing.T) {
	translations := map[string]string{
		threeSentences:       "I am happy. Today was a bad day. The weather is normal.",
		"Estoy feliz":        "I am happy",
		"Hoy fue un mal día": "Today was a bad day",
		"El clima es normal": "The weather is normal",
	}
	newTranslator := func() *countingTranslator {
		return &countingTranslator{fn: func(text string) (string, error) {
			return translations[text], nil
		}}
	}

	t.Run("whole text only", func(t *testing.T) {
		scorer := newRecordingScorer()
		tr := newTranslator()
		a := MustNewAnalyzer(UsingScorer(scorer), UsingTranslator(tr), UsingDetector(nil))

		report, err := a.Analyze(context.Background(), threeSentences)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if report.TranslatedText != translations[threeSentences] {
			t.Errorf("unexpected translated text %q", report.TranslatedText)
		}
		if tr.calls != 1 {
			t.Errorf("expected one translation call, got %d", tr.calls)
		}
		if scorer.texts[0] != translations[threeSentences] {
			t.Errorf("expected the translation to be scored, got %q", scorer.texts[0])
		}
		if report.Sentences[0].Text != "Estoy feliz" {
			t.Errorf("sentences should keep the original text, got %q", report.Sentences[0].Text)
		}
		// "happy" and "bad" average out under strict thresholds.
		if report.Class.Polarity != Neutral {
			t.Errorf("expected neutral, got %s (%.2f)", report.Class.Polarity, report.Score.Polarity)
		}
	})

	t.Run("per sentence", func(t *testing.T) {
		scorer := newRecordingScorer()
		tr := newTranslator()
		a := MustNewAnalyzer(UsingScorer(scorer), UsingTranslator(tr), UsingDetector(nil), WithSentenceTranslation(true))

		report, err := a.Analyze(context.Background(), threeSentences)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if tr.calls != 4 {
			t.Errorf("expected four translation calls, got %d", tr.calls)
		}
		want := []string{translations[threeSentences], "I am happy", "Today was a bad day", "The weather is normal"}
		if !reflect.DeepEqual(scorer.texts, want) {
			t.Errorf("expected scored texts %q, got %q", want, scorer.texts)
		}
		if report.Sentences[1].Class.Polarity != Negative {
			t.Errorf("expected the second sentence to be negative, got %s", report.Sentences[1].Class.Polarity)
		}
	})

	t.Run("disabled per request", func(t *testing.T) {
		tr := newTranslator()
		a := MustNewAnalyzer(UsingTranslator(tr), UsingDetector(nil))

		report, err := a.Analyze(context.Background(), threeSentences, WithTargetLanguage(""))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if tr.calls != 0 || report.TranslatedText != "" {
			t.Errorf("expected no translation, got %d calls", tr.calls)
		}
	})

	t.Run("already in target language", func(t *testing.T) {
		tr := newTranslator()
		a := MustNewAnalyzer(UsingTranslator(tr), UsingDetector(NewLanguageDetector(English, Spanish)))

		report, err := a.Analyze(context.Background(),
			"The weather was lovely this morning and we walked along the river until lunch time.")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if report.Language != English {
			t.Fatalf("expected en, got %q", report.Language)
		}
		if tr.calls != 0 {
			t.Errorf("expected no translation for English text, got %d calls", tr.calls)
		}
	})

	t.Run("bad target", func(t *testing.T) {
		tr := newTranslator()
		a := MustNewAnalyzer(UsingTranslator(tr), UsingDetector(nil))

		report, err := a.Analyze(context.Background(), threeSentences, WithTargetLanguage("??"))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if tr.calls != 0 || len(report.Warnings) != 1 {
			t.Errorf("expected a warning and no calls, got %d calls and %q", tr.calls, report.Warnings)
		}
	})
}

func TestScoreGauge(t *testing.T) {
	tests := []struct {
		polarity float64
		want     float64
	}{
		{-1, 0},
		{0, 0.5},
		{1, 1},
		{0.5, 0.75},
	}
	for _, tt := range tests {
		if got := (SentimentScore{Polarity: tt.polarity}).Gauge(); got != tt.want {
			t.Errorf("Gauge(%.2f) = %.2f, want %.2f", tt.polarity, got, tt.want)
		}
	}
}
