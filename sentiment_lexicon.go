package textmood

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"sync"
)

// SentimentLexicon manages sentiment word lists for one or more languages.
// It is safe for concurrent use.
type SentimentLexicon struct {
	words     map[string]LexiconEntry
	modifiers map[string]float64
	negations map[string]bool
	mutex     sync.RWMutex
}

// LexiconEntry represents a word's sentiment information
type LexiconEntry struct {
	Word         string
	Polarity     float64 // -1 to 1
	Subjectivity float64 // 0 to 1
	Confidence   float64 // 0 to 1, used as the averaging weight
}

// ExternalLexicon represents the JSON structure for external lexicon files
type ExternalLexicon struct {
	Languages map[string]LanguageLexicon `json:"languages"`
}

// LanguageLexicon contains all word categories for a specific language
type LanguageLexicon struct {
	Words        []WordEntry     `json:"words,omitempty"`
	Modifiers    []ModifierEntry `json:"modifiers,omitempty"`
	Negations    []string        `json:"negations,omitempty"`
	Intensifiers []string        `json:"intensifiers,omitempty"`
	Diminishers  []string        `json:"diminishers,omitempty"`
}

// WordEntry represents a sentiment word in JSON format
type WordEntry struct {
	Word         string  `json:"word"`
	Polarity     float64 `json:"polarity"`
	Subjectivity float64 `json:"subjectivity"`
	Confidence   float64 `json:"confidence,omitempty"`
}

// ModifierEntry represents a modifier word in JSON format. Factor is added to
// one, so 0.3 strengthens a word by 30% and -0.3 weakens it by 30%.
type ModifierEntry struct {
	Word   string  `json:"word"`
	Factor float64 `json:"factor"`
}

const (
	defaultIntensifierFactor = 0.3
	defaultDiminisherFactor  = -0.3
)

// LoadSentimentLexicon builds a lexicon holding the built-in words of every
// given language. With no languages it loads English and Spanish.
func LoadSentimentLexicon(langs ...Language) *SentimentLexicon {
	if len(langs) == 0 {
		langs = []Language{English, Spanish}
	}

	lexicon := &SentimentLexicon{
		words:     make(map[string]LexiconEntry),
		modifiers: make(map[string]float64),
		negations: make(map[string]bool),
	}
	for _, lang := range langs {
		lexicon.loadBaseLexicon(lang)
	}
	return lexicon
}

// LoadSentimentLexiconWithExternal loads the built-in lexicon and merges in an
// external JSON file when externalPath is not empty.
func LoadSentimentLexiconWithExternal(externalPath string, langs ...Language) (*SentimentLexicon, error) {
	if len(langs) == 0 {
		langs = []Language{English, Spanish}
	}
	lexicon := LoadSentimentLexicon(langs...)

	if externalPath != "" {
		if err := lexicon.LoadExternalLexicon(externalPath, langs); err != nil {
			return nil, fmt.Errorf("failed to load external lexicon: %w", err)
		}
	}

	return lexicon, nil
}

// LoadExternalLexicon loads and merges external lexicon data
func (sl *SentimentLexicon) LoadExternalLexicon(filepath string, languages []Language) error {
	data, err := os.ReadFile(filepath)
	if err != nil {
		return fmt.Errorf("error reading lexicon file: %w", err)
	}

	var external ExternalLexicon
	if err := json.Unmarshal(data, &external); err != nil {
		return fmt.Errorf("error parsing lexicon JSON: %w", err)
	}

	sl.mutex.Lock()
	defer sl.mutex.Unlock()

	for _, lang := range languages {
		if langData, exists := external.Languages[languageToJSONKey(lang)]; exists {
			sl.mergeLanguageData(langData)
		}
	}

	return nil
}

// languageToJSONKey converts Language constants to JSON keys
func languageToJSONKey(lang Language) string {
	switch lang {
	case English:
		return "english"
	case Spanish:
		return "spanish"
	case French:
		return "french"
	case German:
		return "german"
	default:
		return strings.ToLower(string(lang))
	}
}

// mergeLanguageData merges external language data with existing lexicon
func (sl *SentimentLexicon) mergeLanguageData(data LanguageLexicon) {
	for _, entry := range data.Words {
		sl.putWord(entry.Word, entry.Polarity, entry.Subjectivity, entry.Confidence)
	}

	for _, modifier := range data.Modifiers {
		sl.modifiers[normalizeWord(modifier.Word)] = modifier.Factor
	}
	for _, intensifier := range data.Intensifiers {
		sl.modifiers[normalizeWord(intensifier)] = defaultIntensifierFactor
	}
	for _, diminisher := range data.Diminishers {
		sl.modifiers[normalizeWord(diminisher)] = defaultDiminisherFactor
	}

	for _, negation := range data.Negations {
		sl.negations[normalizeWord(negation)] = true
	}
}

// putWord stores an entry with its values clamped to range. A missing
// confidence counts as full confidence. Callers hold the write lock.
func (sl *SentimentLexicon) putWord(word string, polarity, subjectivity, confidence float64) {
	key := normalizeWord(word)
	if key == "" {
		return
	}
	if confidence <= 0 {
		confidence = 1
	}
	sl.words[key] = LexiconEntry{
		Word:         key,
		Polarity:     clamp(polarity, -1, 1),
		Subjectivity: clamp(subjectivity, 0, 1),
		Confidence:   clamp(confidence, 0, 1),
	}
}

func normalizeWord(word string) string {
	return strings.TrimSpace(defaultTokenizer.Normalize(word))
}

// loadBaseLexicon merges the built-in tables for lang.
func (sl *SentimentLexicon) loadBaseLexicon(lang Language) {
	table, ok := builtinLexicons[lang]
	if !ok {
		return
	}
	for word, e := range table.words {
		sl.putWord(word, e.polarity, e.subjectivity, e.confidence)
	}
	for word, factor := range table.modifiers {
		sl.modifiers[word] = factor
	}
	for _, word := range table.negations {
		sl.negations[word] = true
	}
}

// Lookup returns the entry for word, if any.
func (sl *SentimentLexicon) Lookup(word string) (LexiconEntry, bool) {
	sl.mutex.RLock()
	defer sl.mutex.RUnlock()

	if entry, exists := sl.words[word]; exists {
		return entry, true
	}
	entry, exists := sl.words[normalizeWord(word)]
	return entry, exists
}

// IsNegation checks if word is a negation
func (sl *SentimentLexicon) IsNegation(word string) bool {
	sl.mutex.RLock()
	defer sl.mutex.RUnlock()

	return sl.negations[word] || sl.negations[normalizeWord(word)]
}

// GetModifierStrength returns modifier strength, or 0 if word is not a
// modifier. Multi-word modifiers are looked up with a single space between
// words.
func (sl *SentimentLexicon) GetModifierStrength(word string) float64 {
	sl.mutex.RLock()
	defer sl.mutex.RUnlock()

	if strength, exists := sl.modifiers[word]; exists {
		return strength
	}
	return sl.modifiers[normalizeWord(word)]
}

// AddCustomWord allows adding domain-specific words
func (sl *SentimentLexicon) AddCustomWord(word string, polarity, subjectivity, confidence float64) {
	sl.mutex.Lock()
	defer sl.mutex.Unlock()

	sl.putWord(word, polarity, subjectivity, confidence)
}

// AddCustomModifier adds a custom modifier
func (sl *SentimentLexicon) AddCustomModifier(word string, strength float64) {
	sl.mutex.Lock()
	defer sl.mutex.Unlock()

	sl.modifiers[normalizeWord(word)] = strength
}

// AddCustomNegation adds a custom negation word
func (sl *SentimentLexicon) AddCustomNegation(word string) {
	sl.mutex.Lock()
	defer sl.mutex.Unlock()

	sl.negations[normalizeWord(word)] = true
}

// GetLexiconSize returns the number of words in the lexicon
func (sl *SentimentLexicon) GetLexiconSize() int {
	sl.mutex.RLock()
	defer sl.mutex.RUnlock()

	return len(sl.words)
}

// HasWord checks if a word exists in the lexicon
func (sl *SentimentLexicon) HasWord(word string) bool {
	_, exists := sl.Lookup(word)
	return exists
}

type lexValue struct {
	polarity     float64
	subjectivity float64
	confidence   float64
}

type lexTable struct {
	words     map[string]lexValue
	modifiers map[string]float64
	negations []string
}

var builtinLexicons = map[Language]lexTable{
	English: {
		words: map[string]lexValue{
			// Strong positive words
			"excellent":   {1.0, 1.0, 0.95},
			"amazing":     {0.6, 0.9, 0.95},
			"wonderful":   {1.0, 1.0, 0.95},
			"fantastic":   {0.4, 0.9, 0.95},
			"outstanding": {0.5, 0.65, 0.95},
			"perfect":     {1.0, 1.0, 0.95},
			"brilliant":   {0.9, 1.0, 0.95},
			"superb":      {1.0, 1.0, 0.95},
			"magnificent": {1.0, 1.0, 0.95},

			// Moderate positive words
			"good":        {0.7, 0.6, 0.9},
			"great":       {0.8, 0.75, 0.9},
			"nice":        {0.6, 1.0, 0.85},
			"love":        {0.5, 0.6, 0.9},
			"loved":       {0.7, 0.8, 0.9},
			"happy":       {0.8, 1.0, 0.9},
			"beautiful":   {0.85, 1.0, 0.9},
			"enjoy":       {0.4, 0.5, 0.9},
			"like":        {0.5, 0.6, 0.85},
			"pleasant":    {0.73, 0.97, 0.9},
			"positive":    {0.23, 0.55, 0.9},
			"best":        {1.0, 0.3, 0.95},
			"better":      {0.5, 0.5, 0.85},
			"fun":         {0.3, 0.2, 0.9},
			"interesting": {0.5, 0.5, 0.85},
			"awesome":     {1.0, 1.0, 0.9},
			"glad":        {0.5, 1.0, 0.9},

			// Mild positive words
			"okay":         {0.5, 0.5, 0.7},
			"fine":         {0.42, 0.5, 0.75},
			"decent":       {0.17, 0.33, 0.8},
			"satisfactory": {0.4, 0.5, 0.85},

			// Strong negative words
			"terrible":   {-1.0, 1.0, 0.95},
			"awful":      {-1.0, 1.0, 0.95},
			"horrible":   {-1.0, 1.0, 0.95},
			"disgusting": {-1.0, 1.0, 0.95},
			"appalling":  {-0.9, 1.0, 0.95},
			"dreadful":   {-0.9, 1.0, 0.95},
			"atrocious":  {-0.9, 1.0, 0.95},
			"abysmal":    {-0.95, 1.0, 0.95},

			// Moderate negative words
			"bad":           {-0.7, 0.67, 0.9},
			"hate":          {-0.8, 0.9, 0.9},
			"sad":           {-0.5, 1.0, 0.9},
			"ugly":          {-0.7, 1.0, 0.9},
			"disappointing": {-0.6, 0.7, 0.9},
			"poor":          {-0.4, 0.6, 0.9},
			"wrong":         {-0.5, 0.9, 0.85},
			"worst":         {-1.0, 1.0, 0.95},
			"worse":         {-0.4, 0.6, 0.85},
			"dislike":       {-0.5, 0.7, 0.85},
			"negative":      {-0.3, 0.4, 0.9},
			"annoying":      {-0.8, 0.9, 0.9},
			"boring":        {-1.0, 1.0, 0.85},
			"fail":          {-0.5, 0.3, 0.9},
			"failure":       {-0.32, 0.3, 0.9},

			// Context-dependent words
			"cheap":   {0.4, 0.7, 0.6},
			"simple":  {0.0, 0.36, 0.5},
			"fast":    {0.2, 0.6, 0.6},
			"slow":    {-0.3, 0.39, 0.6},
			"hard":    {-0.29, 0.54, 0.5},
			"easy":    {0.43, 0.83, 0.6},
			"complex": {-0.3, 0.5, 0.4},

			// Opinion markers without polarity
			"think":      {0.0, 0.4, 0.5},
			"feel":       {0.0, 0.5, 0.5},
			"believe":    {0.0, 0.5, 0.5},
			"personally": {0.0, 0.8, 0.5},
			"opinion":    {0.0, 0.6, 0.5},
		},
		modifiers: map[string]float64{
			// Intensifiers
			"very":         0.3,
			"extremely":    0.5,
			"absolutely":   0.5,
			"totally":      0.4,
			"really":       0.3,
			"so":           0.3,
			"quite":        0.2,
			"incredibly":   0.5,
			"remarkably":   0.4,
			"particularly": 0.3,
			"especially":   0.3,
			"super":        0.4,
			"utterly":      0.5,
			"completely":   0.4,

			// Diminishers
			"slightly":   -0.3,
			"somewhat":   -0.3,
			"rather":     -0.2,
			"fairly":     -0.1,
			"marginally": -0.4,
			"barely":     -0.5,
			"hardly":     -0.5,
			"scarcely":   -0.5,
			"a bit":      -0.2,
			"a little":   -0.2,
			"kind of":    -0.3,
			"sort of":    -0.3,
		},
		negations: []string{
			"not", "no", "never", "neither", "nor", "cannot", "can't", "won't",
			"don't", "doesn't", "didn't", "isn't", "aren't", "wasn't", "weren't",
			"hasn't", "haven't", "hadn't", "wouldn't", "shouldn't", "couldn't",
			"without", "nobody", "nothing", "nowhere", "none",
		},
	},
	Spanish: {
		words: map[string]lexValue{
			// Positive words
			"excelente":   {1.0, 1.0, 0.95},
			"maravilloso": {1.0, 1.0, 0.95},
			"fantástico":  {0.4, 0.9, 0.95},
			"bueno":       {0.7, 0.6, 0.9},
			"buena":       {0.7, 0.6, 0.9},
			"genial":      {0.8, 0.75, 0.9},
			"amor":        {0.5, 0.6, 0.9},
			"encanta":     {0.6, 0.8, 0.85},
			"feliz":       {0.8, 1.0, 0.9},
			"alegre":      {0.7, 0.9, 0.9},
			"hermoso":     {0.85, 1.0, 0.9},
			"hermosa":     {0.85, 1.0, 0.9},
			"mejor":       {0.5, 0.5, 0.85},
			"gracias":     {0.4, 0.5, 0.7},
			"contento":    {0.7, 0.9, 0.9},
			"contenta":    {0.7, 0.9, 0.9},

			// Negative words
			"terrible":      {-1.0, 1.0, 0.95},
			"horrible":      {-1.0, 1.0, 0.95},
			"malo":          {-0.7, 0.67, 0.9},
			"mala":          {-0.7, 0.67, 0.9},
			"mal":           {-0.7, 0.67, 0.9},
			"odio":          {-0.8, 0.9, 0.9},
			"triste":        {-0.5, 1.0, 0.9},
			"feo":           {-0.7, 1.0, 0.9},
			"decepcionante": {-0.6, 0.7, 0.9},
			"peor":          {-0.4, 0.6, 0.85},
			"aburrido":      {-0.8, 1.0, 0.85},
			"enojado":       {-0.6, 0.9, 0.9},

			// Opinion markers without polarity
			"creo":    {0.0, 0.4, 0.5},
			"siento":  {0.0, 0.5, 0.5},
			"opinión": {0.0, 0.6, 0.5},
		},
		modifiers: map[string]float64{
			// Intensifiers
			"muy":            0.3,
			"extremadamente": 0.5,
			"absolutamente":  0.5,
			"totalmente":     0.4,
			"realmente":      0.3,
			"bastante":       0.2,
			"súper":          0.4,

			// Diminishers
			"ligeramente": -0.3,
			"algo":        -0.3,
			"poco":        -0.3,
			"apenas":      -0.5,
			"un poco":     -0.3,
		},
		negations: []string{
			"no", "nunca", "jamás", "ni", "sin", "nada", "nadie", "ningún",
			"ninguna", "tampoco",
		},
	},
}
