package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/tsawler/textmood"
)

// analysisSettings collects the pipeline flags shared by analyze and serve.
type analysisSettings struct {
	top            int
	variant        string
	positive       float64
	negative       float64
	subjectivity   float64
	scorer         string
	segmenter      string
	stopwords      string
	extraStopwords []string
	lexicon        string

	translator  string
	target      string
	timeout     time.Duration
	sentences   bool
	openAIModel string

	// Explicit thresholds override the preset chosen by variant.
	positiveSet     bool
	negativeSet     bool
	subjectivitySet bool
}

func defaultSettings() analysisSettings {
	return analysisSettings{
		top:          textmood.DefaultTopN,
		variant:      "strict",
		positive:     textmood.StrictThresholds.Positive,
		negative:     textmood.StrictThresholds.Negative,
		subjectivity: textmood.StrictThresholds.Subjectivity,
		scorer:       "lexicon",
		segmenter:    "punctuation",
		stopwords:    "default",
		translator:   "none",
		target:       string(textmood.English),
		timeout:      textmood.DefaultTranslateTimeout,
	}
}

func addAnalysisFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.IntVar(&settings.top, "top", settings.top, "words in the frequency table (0 = all)")
	f.StringVar(&settings.variant, "variant", settings.variant, "threshold preset (strict, loose)")
	f.Float64Var(&settings.positive, "positive", settings.positive, "polarity above this is positive")
	f.Float64Var(&settings.negative, "negative", settings.negative, "polarity below this is negative (signed)")
	f.Float64Var(&settings.subjectivity, "subjectivity", settings.subjectivity, "subjectivity above this is high")
	f.StringVar(&settings.scorer, "scorer", settings.scorer, "sentiment scorer (lexicon, vader)")
	f.StringVar(&settings.segmenter, "segmenter", settings.segmenter, "sentence splitter (punctuation, punkt)")
	f.StringVar(&settings.stopwords, "stopwords", settings.stopwords, "stopword list (default, es, en, fr, de)")
	f.StringSliceVar(&settings.extraStopwords, "extra-stopwords", nil, "additional stopwords")
	f.StringVar(&settings.lexicon, "lexicon", "", "external JSON lexicon file")
	f.StringVar(&settings.translator, "translator", settings.translator, "translator (none, google, openai)")
	f.StringVar(&settings.target, "target", settings.target, "translation target language")
	f.DurationVar(&settings.timeout, "timeout", settings.timeout, "translation timeout")
	f.BoolVar(&settings.sentences, "translate-sentences", false, "translate each sentence before scoring it")
	f.StringVar(&settings.openAIModel, "openai-model", "", "OpenAI chat model")
}

// applyAnalysisConfig copies config file values into settings for every flag
// the user did not set.
func applyAnalysisConfig(cmd *cobra.Command) error {
	a := fileCfg.Analysis
	applyConfig(cmd, "top", &settings.top, a.Top)
	applyConfig(cmd, "variant", &settings.variant, a.Variant)
	applyConfig(cmd, "positive", &settings.positive, a.Positive)
	applyConfig(cmd, "negative", &settings.negative, a.Negative)
	applyConfig(cmd, "subjectivity", &settings.subjectivity, a.Subjectivity)
	applyConfig(cmd, "scorer", &settings.scorer, a.Scorer)
	applyConfig(cmd, "segmenter", &settings.segmenter, a.Segmenter)
	applyConfig(cmd, "stopwords", &settings.stopwords, a.Stopwords)
	applyConfig(cmd, "lexicon", &settings.lexicon, a.Lexicon)
	if a.ExtraStopwords != nil && !cmd.Flags().Changed("extra-stopwords") {
		settings.extraStopwords = a.ExtraStopwords
	}

	t := fileCfg.Translation
	applyConfig(cmd, "translator", &settings.translator, t.Translator)
	applyConfig(cmd, "target", &settings.target, t.Target)
	applyConfig(cmd, "translate-sentences", &settings.sentences, t.Sentences)
	applyConfig(cmd, "openai-model", &settings.openAIModel, t.OpenAIModel)
	if t.Timeout != nil && !cmd.Flags().Changed("timeout") {
		d, err := time.ParseDuration(*t.Timeout)
		if err != nil {
			return fmt.Errorf("invalid translation timeout in config: %w", err)
		}
		settings.timeout = d
	}

	settings.positiveSet = cmd.Flags().Changed("positive") || a.Positive != nil
	settings.negativeSet = cmd.Flags().Changed("negative") || a.Negative != nil
	settings.subjectivitySet = cmd.Flags().Changed("subjectivity") || a.Subjectivity != nil
	return nil
}

func applyConfig[T any](cmd *cobra.Command, name string, target, value *T) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func (s analysisSettings) thresholds() (textmood.Thresholds, error) {
	th, err := textmood.ThresholdsFor(s.variant)
	if err != nil {
		return th, err
	}
	if s.positiveSet {
		th.Positive = s.positive
	}
	if s.negativeSet {
		th.Negative = s.negative
	}
	if s.subjectivitySet {
		th.Subjectivity = s.subjectivity
	}
	return th, nil
}

func buildAnalyzer(s analysisSettings, log *slog.Logger) (*textmood.Analyzer, error) {
	th, err := s.thresholds()
	if err != nil {
		return nil, err
	}
	if s.top < 0 {
		return nil, fmt.Errorf("--top must be >= 0")
	}

	stop, err := buildStopwords(s.stopwords, s.extraStopwords)
	if err != nil {
		return nil, err
	}
	scorer, err := buildScorer(s.scorer, s.lexicon)
	if err != nil {
		return nil, err
	}
	splitter, err := buildSplitter(s.segmenter)
	if err != nil {
		return nil, err
	}
	translator, err := buildTranslator(s.translator, s.openAIModel)
	if err != nil {
		return nil, err
	}

	return textmood.NewAnalyzer(
		textmood.UsingThresholds(th),
		textmood.UsingStopwords(stop),
		textmood.UsingScorer(scorer),
		textmood.UsingSplitter(splitter),
		textmood.UsingTranslator(translator),
		textmood.WithDefaultTopN(s.top),
		textmood.WithDefaultTargetLanguage(s.target),
		textmood.WithTranslateTimeout(s.timeout),
		textmood.WithSentenceTranslation(s.sentences),
		textmood.WithLogger(log),
	)
}

func buildStopwords(name string, extra []string) (textmood.StopwordSet, error) {
	var stop textmood.StopwordSet
	switch lang := textmood.Language(strings.ToLower(strings.TrimSpace(name))); {
	case lang == "" || lang == "default":
		stop = textmood.NewStopwordSet(textmood.SpanishStopwords...)
	case textmood.IsSupported(lang):
		stop = textmood.StopwordsFor(lang)
	default:
		return nil, fmt.Errorf("unsupported stopword language %q", name)
	}
	stop.Add(extra...)
	return stop, nil
}

func buildScorer(name, lexiconPath string) (textmood.Scorer, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "lexicon":
		lex, err := textmood.LoadSentimentLexiconWithExternal(lexiconPath)
		if err != nil {
			return nil, err
		}
		return textmood.NewLexiconScorer(lex, textmood.DefaultSentimentConfig()), nil
	case "vader":
		if lexiconPath != "" {
			return nil, fmt.Errorf("--lexicon only applies to the lexicon scorer")
		}
		return textmood.NewVaderScorer(), nil
	default:
		return nil, fmt.Errorf("unknown scorer %q (want lexicon or vader)", name)
	}
}

func buildSplitter(name string) (textmood.SentenceSplitter, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "punctuation":
		return textmood.PunctuationSplitter{}, nil
	case "punkt":
		return textmood.NewPunktSplitter()
	default:
		return nil, fmt.Errorf("unknown segmenter %q (want punctuation or punkt)", name)
	}
}

func buildTranslator(name, model string) (textmood.Translator, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "none":
		return nil, nil
	case "google":
		return textmood.NewGoogleTranslator(), nil
	case "openai":
		apiKey := os.Getenv("OPENAI_API_KEY")
		if apiKey == "" {
			return nil, fmt.Errorf("the openai translator needs OPENAI_API_KEY")
		}
		return textmood.NewOpenAITranslator(apiKey, model), nil
	default:
		return nil, fmt.Errorf("unknown translator %q (want none, google or openai)", name)
	}
}
