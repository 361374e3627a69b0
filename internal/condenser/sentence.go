package condenser

import (
	"strings"
	"unicode/utf8"
)

const (
	defaultMaxSentences  = 5
	defaultMinLength     = 20
	defaultFallbackChars = 500
	sentenceDelimiter    = "."
)

// SentenceCondenser keeps the first few sentence fragments that are long
// enough to carry information and drops the rest.
type SentenceCondenser struct {
	maxSentences  int
	minLength     int
	fallbackChars int
}

// NewSentenceCondenser creates a sentence-count condenser. Non-positive
// arguments fall back to 5 sentences, 20 characters and 500 characters.
func NewSentenceCondenser(maxSentences, minLength, fallbackChars int) *SentenceCondenser {
	if maxSentences <= 0 {
		maxSentences = defaultMaxSentences
	}
	if minLength <= 0 {
		minLength = defaultMinLength
	}
	if fallbackChars <= 0 {
		fallbackChars = defaultFallbackChars
	}
	return &SentenceCondenser{
		maxSentences:  maxSentences,
		minLength:     minLength,
		fallbackChars: fallbackChars,
	}
}

// Sentences condenses raw with the default limits.
func Sentences(raw string) string {
	return NewSentenceCondenser(0, 0, 0).Condense(raw)
}

// Condense splits raw on periods, discards fragments shorter than the minimum
// length and rejoins the first qualifying ones with a trailing period. When no
// fragment qualifies the leading fallbackChars characters of raw are returned.
func (c *SentenceCondenser) Condense(raw string) string {
	var kept []string
	for _, frag := range strings.Split(raw, sentenceDelimiter) {
		frag = strings.TrimSpace(frag)
		if utf8.RuneCountInString(frag) < c.minLength {
			continue
		}
		kept = append(kept, frag)
		if len(kept) == c.maxSentences {
			break
		}
	}
	if len(kept) == 0 {
		return headRunes(raw, c.fallbackChars)
	}
	return strings.Join(kept, sentenceDelimiter+" ") + sentenceDelimiter
}

func headRunes(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}
