// Package condenser reduces raw search text to a short excerpt that fits
// comfortably in a prompt.
package condenser

import (
	"fmt"

	"searchchat/internal/domain"
)

// Options carries the tunables shared by the built-in condensers.
type Options struct {
	MaxSentences  int
	MinLength     int
	FallbackChars int
	MaxChars      int
}

// New returns the condenser registered under kind.
func New(kind string, opts Options) (domain.Condenser, error) {
	switch kind {
	case "sentence", "":
		return NewSentenceCondenser(opts.MaxSentences, opts.MinLength, opts.FallbackChars), nil
	case "truncate":
		return NewTruncateCondenser(opts.MaxChars), nil
	case "frequency":
		return NewFrequencyCondenser(opts.MaxSentences), nil
	default:
		return nil, fmt.Errorf("unknown condenser: %s", kind)
	}
}
