package condenser

import (
	"math"
	"regexp"
	"sort"
	"strings"
)

var sentenceRe = regexp.MustCompile(`(?m)(?U)([^.!?]+[.!?])`)

// FrequencyCondenser ranks sentences by word frequency (stopwords filtered)
// and keeps the best ones in their original order.
type FrequencyCondenser struct {
	maxSentences int
	tokenPattern *regexp.Regexp
	stopwords    map[string]struct{}
}

// NewFrequencyCondenser creates a frequency-based sentence ranker.
func NewFrequencyCondenser(maxSentences int) *FrequencyCondenser {
	if maxSentences <= 0 {
		maxSentences = defaultMaxSentences
	}
	return &FrequencyCondenser{
		maxSentences: maxSentences,
		tokenPattern: regexp.MustCompile(`\p{L}+(?:['’]\p{L}+)*`),
		stopwords:    defaultStopwords(),
	}
}

// Condense returns the highest scoring sentences of raw joined by spaces.
func (c *FrequencyCondenser) Condense(raw string) string {
	sentences := sentenceRe.FindAllString(raw, -1)
	if len(sentences) == 0 {
		return strings.TrimSpace(raw)
	}
	freq := map[string]float64{}
	for _, sent := range sentences {
		for _, tok := range c.tokens(sent) {
			if _, ok := c.stopwords[tok]; ok {
				continue
			}
			freq[tok]++
		}
	}
	maxF := 0.0
	for _, v := range freq {
		if v > maxF {
			maxF = v
		}
	}
	if maxF > 0 {
		for k, v := range freq {
			freq[k] = v / maxF
		}
	}
	type pair struct {
		idx   int
		score float64
	}
	scores := make([]pair, len(sentences))
	for i, sent := range sentences {
		toks := c.tokens(sent)
		score := 0.0
		for _, tok := range toks {
			score += freq[tok]
		}
		// long sentences would otherwise always win
		if l := float64(len(toks)); l > 0 {
			score /= math.Sqrt(l)
		}
		scores[i] = pair{i, score}
	}
	sort.SliceStable(scores, func(i, j int) bool { return scores[i].score > scores[j].score })
	n := c.maxSentences
	if n > len(scores) {
		n = len(scores)
	}
	selected := make([]int, n)
	for i := 0; i < n; i++ {
		selected[i] = scores[i].idx
	}
	sort.Ints(selected)
	out := make([]string, 0, n)
	for _, idx := range selected {
		out = append(out, strings.TrimSpace(sentences[idx]))
	}
	return strings.Join(out, " ")
}

func (c *FrequencyCondenser) tokens(text string) []string {
	return c.tokenPattern.FindAllString(strings.ToLower(text), -1)
}

func defaultStopwords() map[string]struct{} {
	words := []string{
		"a", "an", "the", "and", "or", "but", "if", "then", "else", "for", "to", "of", "in", "on", "at", "by", "with", "as", "is", "are", "was", "were", "be", "been", "being", "it", "this", "that", "these", "those", "from", "up", "down", "over", "under", "again", "further", "than", "so", "such", "into", "about", "between", "through", "during", "before", "after", "above", "below", "out", "off", "own", "same", "too", "very", "can", "will", "just", "don", "should", "now",
	}
	m := make(map[string]struct{}, len(words))
	for _, w := range words {
		m[w] = struct{}{}
	}
	return m
}
