package textmood

import "sort"

// DefaultTopN is the number of words kept in a report by default.
const DefaultTopN = 10

// RankFrequencies counts each distinct token and orders the result by count,
// highest first. Tokens with equal counts keep the order in which they first
// appeared.
func RankFrequencies(tokens []string) []WordFrequency {
	index := make(map[string]int, len(tokens))
	freqs := make([]WordFrequency, 0, len(tokens))

	for _, tok := range tokens {
		if i, ok := index[tok]; ok {
			freqs[i].Count++
			continue
		}
		index[tok] = len(freqs)
		freqs = append(freqs, WordFrequency{Word: tok, Count: 1})
	}

	// freqs is in first-appearance order, which a stable sort keeps for ties.
	sort.SliceStable(freqs, func(i, j int) bool {
		return freqs[i].Count > freqs[j].Count
	})
	return freqs
}

// TopWords returns at most n entries of freqs. A non-positive n keeps all of
// them.
func TopWords(freqs []WordFrequency, n int) []WordFrequency {
	if n <= 0 || n >= len(freqs) {
		return freqs
	}
	return freqs[:n]
}

// CountWords runs the frequency half of the pipeline: tokenize, filter and
// rank.
func CountWords(tok Tokenizer, text string, stop StopwordSet) []WordFrequency {
	return RankFrequencies(FilterTokens(tok.Tokenize(text), stop))
}
