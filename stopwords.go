package textmood

import (
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/bbalet/stopwords"
)

// MinWordLength is the shortest token, in runes, that can appear in a
// frequency table.
const MinWordLength = 3

// SpanishStopwords is the built-in connector list used by DefaultConfig.
var SpanishStopwords = []string{
	"de", "la", "que", "el", "en", "y", "a", "los", "se", "del", "las",
	"por", "un", "para", "con", "no", "una", "su", "al", "lo", "como",
	"más", "pero", "sus", "le", "ya", "o", "fue", "este", "ha", "sí",
	"porque", "esta", "entre", "cuando", "muy", "sin", "sobre", "también",
}

// StopwordSet is a case-insensitive set of words excluded from frequency
// counts. The zero value is an empty set that can be read but not added to.
type StopwordSet map[string]struct{}

// NewStopwordSet builds a set from words, normalizing each one the same way
// the tokenizer does.
func NewStopwordSet(words ...string) StopwordSet {
	s := make(StopwordSet, len(words))
	s.Add(words...)
	return s
}

// Add inserts words into the set. Blank entries are ignored.
func (s StopwordSet) Add(words ...string) {
	for _, w := range words {
		w = strings.TrimSpace(defaultTokenizer.Normalize(w))
		if w == "" {
			continue
		}
		s[w] = struct{}{}
	}
}

// Contains reports whether word is in the set, ignoring case.
func (s StopwordSet) Contains(word string) bool {
	if len(s) == 0 {
		return false
	}
	if _, ok := s[word]; ok {
		return true
	}
	_, ok := s[defaultTokenizer.Normalize(word)]
	return ok
}

// Union returns a new set holding the words of both sets.
func (s StopwordSet) Union(other StopwordSet) StopwordSet {
	out := make(StopwordSet, len(s)+len(other))
	for w := range s {
		out[w] = struct{}{}
	}
	for w := range other {
		out[w] = struct{}{}
	}
	return out
}

// Words returns the members of the set in sorted order.
func (s StopwordSet) Words() []string {
	words := make([]string, 0, len(s))
	for w := range s {
		words = append(words, w)
	}
	sort.Strings(words)
	return words
}

// Len returns the number of words in the set.
func (s StopwordSet) Len() int {
	return len(s)
}

// FilterTokens drops every token that is a stopword or shorter than
// MinWordLength runes. Order is preserved and the input is not modified.
func FilterTokens(tokens []string, stop StopwordSet) []string {
	kept := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		if utf8.RuneCountInString(tok) < MinWordLength {
			continue
		}
		if stop.Contains(tok) {
			continue
		}
		kept = append(kept, tok)
	}
	return kept
}

// StopwordsFor returns a stopword set for lang. Candidate words are checked
// against the bbalet/stopwords lists, so the result only holds words that
// library also treats as stopwords. The Spanish set always includes
// SpanishStopwords. Unsupported languages yield an empty set.
func StopwordsFor(lang Language) StopwordSet {
	set := NewStopwordSet()
	if lang == Spanish {
		set.Add(SpanishStopwords...)
	}

	code := string(lang)
	for _, word := range stopwordCandidates[lang] {
		// The library returns the text with stopwords blanked out, so a
		// stopword on its own comes back as whitespace.
		if strings.TrimSpace(stopwords.CleanString(word, code, false)) == "" {
			set.Add(word)
		}
	}
	return set
}

// SupportedStopwordLanguages lists the languages StopwordsFor knows about.
func SupportedStopwordLanguages() []Language {
	return []Language{English, Spanish, French, German}
}

var stopwordCandidates = map[Language][]string{
	English: {
		"about", "after", "again", "all", "also", "and", "any", "are", "because",
		"been", "before", "being", "between", "both", "but", "can", "could",
		"did", "does", "doing", "down", "during", "each", "few", "for", "from",
		"further", "had", "has", "have", "having", "her", "here", "hers",
		"herself", "him", "himself", "his", "how", "into", "its", "itself",
		"just", "more", "most", "myself", "nor", "not", "now", "off", "once",
		"only", "other", "our", "ours", "out", "over", "own", "same", "she",
		"should", "some", "such", "than", "that", "the", "their", "theirs",
		"them", "then", "there", "these", "they", "this", "those", "through",
		"too", "under", "until", "very", "was", "were", "what", "when", "where",
		"which", "while", "who", "whom", "why", "will", "with", "would", "you",
		"your", "yours", "yourself",
	},
	Spanish: {
		"unos", "unas", "hacia", "hasta", "desde", "durante", "ante", "bajo",
		"contra", "según", "tras", "está", "son", "están", "ser", "estar", "hay",
		"había", "era", "sido", "siendo", "ella", "ello", "nosotros", "vosotros",
		"ellos", "ellas", "nuestro", "vuestro", "estos", "estas", "ese", "esa",
		"esos", "esas", "aquel", "aquella", "les", "nos", "donde", "menos",
		"mucho", "poco", "todo", "nada", "algo", "cada", "otro", "mismo", "tan",
		"tanto", "cual", "quien", "qué", "dónde", "mis", "tus", "estoy",
	},
	French: {
		"les", "une", "des", "aux", "pour", "par", "avec", "sans", "sous",
		"sur", "dans", "entre", "depuis", "pendant", "avant", "après", "est",
		"sont", "être", "avoir", "fait", "elle", "nous", "vous", "ils",
		"elles", "mon", "ton", "son", "mes", "tes", "ses", "notre", "votre",
		"leur", "nos", "vos", "leurs", "cette", "ces", "celui", "celle", "que",
		"qui", "quoi", "dont", "pas", "plus", "moins", "très", "bien", "tout",
		"tous", "toute", "toutes", "même", "autre",
	},
	German: {
		"der", "die", "das", "den", "dem", "des", "ein", "eine", "einen",
		"einem", "einer", "eines", "und", "oder", "aber", "doch", "sondern",
		"denn", "weil", "wenn", "als", "dass", "auf", "aus", "bei", "mit",
		"nach", "von", "vor", "für", "über", "unter", "zwischen", "durch",
		"gegen", "ohne", "bis", "seit", "ist", "sind", "war", "waren", "sein",
		"haben", "werden", "ich", "sie", "wir", "ihr", "mein", "dein", "unser",
		"dieser", "diese", "dieses", "man", "sich", "nicht", "kein", "keine",
		"sehr", "schon", "noch", "nur", "auch", "wieder", "immer", "alle",
		"alles", "viel", "mehr", "etwas", "nichts", "wie", "was", "wer",
	},
}
