package condenser

const (
	defaultMaxChars = 1500
	// a period is only used as the cut point if it falls in the last 30% of the window
	boundaryRatio = 0.7
)

// TruncateCondenser cuts raw text to a character budget.
type TruncateCondenser struct {
	maxChars int
}

// NewTruncateCondenser creates a character-budget condenser.
func NewTruncateCondenser(maxChars int) *TruncateCondenser {
	if maxChars <= 0 {
		maxChars = defaultMaxChars
	}
	return &TruncateCondenser{maxChars: maxChars}
}

// Condense implements domain.Condenser.
func (c *TruncateCondenser) Condense(raw string) string {
	return Truncate(raw, c.maxChars)
}

// Truncate returns raw unchanged when it fits in maxChars characters.
// Otherwise it cuts at the last period inside the window if that period lies
// past 70% of it, else hard-cuts and appends "...".
func Truncate(raw string, maxChars int) string {
	if maxChars <= 0 {
		maxChars = defaultMaxChars
	}
	runes := []rune(raw)
	if len(runes) <= maxChars {
		return raw
	}
	cut := runes[:maxChars]
	last := -1
	for i := len(cut) - 1; i >= 0; i-- {
		if cut[i] == '.' {
			last = i
			break
		}
	}
	if float64(last) > float64(maxChars)*boundaryRatio {
		return string(cut[:last+1])
	}
	return string(cut) + "..."
}
