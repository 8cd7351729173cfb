package textmood

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// Tokenizer splits text into normalized tokens.
type Tokenizer interface {
	Tokenize(string) []string
	TokenizeWithOffsets(string) []*Token
}

// WordTokenizer lowercases text and extracts maximal runs of word characters.
// It is safe for concurrent use.
type WordTokenizer struct {
	pattern   *regexp.Regexp
	sanitizer *strings.Replacer
	lang      language.Tag
}

type TokenizerOptFunc func(*WordTokenizer)

// UsingPattern replaces the token pattern. Every match becomes a token.
func UsingPattern(x *regexp.Regexp) TokenizerOptFunc {
	return func(tokenizer *WordTokenizer) {
		tokenizer.pattern = x
	}
}

// Use the provided sanitizer.
func UsingSanitizer(x *strings.Replacer) TokenizerOptFunc {
	return func(tokenizer *WordTokenizer) {
		tokenizer.sanitizer = x
	}
}

// UsingLanguage makes lowercasing follow the rules of the given language
// (Turkish dotted i, for example).
func UsingLanguage(lang Language) TokenizerOptFunc {
	return func(tokenizer *WordTokenizer) {
		if tag, err := language.Parse(string(lang)); err == nil {
			tokenizer.lang = tag
		}
	}
}

// UsingPunctuation keeps punctuation marks as single-character tokens and
// joins in-word apostrophes, so "don't" stays one token.
func UsingPunctuation() TokenizerOptFunc {
	return func(tokenizer *WordTokenizer) {
		tokenizer.pattern = punctRE
	}
}

// NewWordTokenizer is the constructor for the default WordTokenizer.
func NewWordTokenizer(opts ...TokenizerOptFunc) *WordTokenizer {
	tok := new(WordTokenizer)

	// Set default parameters
	tok.pattern = wordRE
	tok.sanitizer = sanitizer
	tok.lang = language.Und

	// Apply options if provided
	for _, applyOpt := range opts {
		applyOpt(tok)
	}

	return tok
}

// Normalize returns the NFC-normalized, lowercased form of text.
func (t *WordTokenizer) Normalize(text string) string {
	// A Caser keeps state, so each call gets its own.
	lower := cases.Lower(t.lang)
	return lower.String(norm.NFC.String(t.sanitizer.Replace(text)))
}

// Tokenize splits text into a slice of lowercase words.
func (t *WordTokenizer) Tokenize(text string) []string {
	if text == "" {
		return []string{}
	}
	words := t.pattern.FindAllString(t.Normalize(text), -1)
	if words == nil {
		return []string{}
	}
	return words
}

// TokenizeWithOffsets splits text into tokens with position tracking. Offsets
// refer to the normalized text.
func (t *WordTokenizer) TokenizeWithOffsets(text string) []*Token {
	clean := t.Normalize(text)
	spans := t.pattern.FindAllStringIndex(clean, -1)

	tokens := make([]*Token, 0, len(spans))
	for _, span := range spans {
		tokens = append(tokens, &Token{
			Text:  clean[span[0]:span[1]],
			Start: span[0],
			End:   span[1],
		})
	}
	return tokens
}

var defaultTokenizer = NewWordTokenizer()

// Tokenize splits text with the default WordTokenizer.
func Tokenize(text string) []string {
	return defaultTokenizer.Tokenize(text)
}

var wordRE = regexp.MustCompile(`[\p{L}\p{M}\p{N}_]+`)
var punctRE = regexp.MustCompile(`[\p{L}\p{M}\p{N}_]+(?:'[\p{L}\p{M}\p{N}_]+)*|[^\s\p{L}\p{M}\p{N}_]`)
var sanitizer = strings.NewReplacer(
	"“", `"`,
	"”", `"`,
	"‘", "'",
	"’", "'",
	"&rsquo;", "'")
