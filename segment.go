package textmood

import (
	"fmt"
	"regexp"
	"strings"

	"gopkg.in/neurosnap/sentences.v1"
	"gopkg.in/neurosnap/sentences.v1/english"
)

// A SentenceSplitter breaks text into trimmed, non-empty sentences in their
// original order.
type SentenceSplitter interface {
	Split(text string) []string
}

// PunctuationSplitter splits on every run of '.', '!' and '?'. Text without
// terminal punctuation is a single sentence.
type PunctuationSplitter struct{}

var terminalRE = regexp.MustCompile(`[.!?]+`)

// Split implements SentenceSplitter.
func (PunctuationSplitter) Split(text string) []string {
	pieces := terminalRE.Split(text, -1)
	sents := make([]string, 0, len(pieces))
	for _, p := range pieces {
		if p = strings.TrimSpace(p); p != "" {
			sents = append(sents, p)
		}
	}
	return sents
}

// PunktSplitter uses the English punkt model, which knows about
// abbreviations such as "Dr." and "e.g." and keeps terminal punctuation on
// each sentence.
type PunktSplitter struct {
	tokenizer *sentences.DefaultSentenceTokenizer
}

// NewPunktSplitter loads the bundled English training data.
func NewPunktSplitter() (*PunktSplitter, error) {
	t, err := english.NewSentenceTokenizer(nil)
	if err != nil {
		return nil, fmt.Errorf("error loading punkt model: %w", err)
	}
	return &PunktSplitter{tokenizer: t}, nil
}

// Split implements SentenceSplitter.
func (p *PunktSplitter) Split(text string) []string {
	var sents []string
	for _, s := range p.tokenizer.Tokenize(text) {
		if t := strings.TrimSpace(s.Text); t != "" {
			sents = append(sents, t)
		}
	}
	if sents == nil {
		return []string{}
	}
	return sents
}

// SplitSentences splits text with the default PunctuationSplitter.
func SplitSentences(text string) []string {
	return PunctuationSplitter{}.Split(text)
}
