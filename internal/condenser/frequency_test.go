package condenser

import (
	"strings"
	"testing"
)

func TestFrequencyCondenserKeepsOriginalOrder(t *testing.T) {
	raw := "Go channels connect goroutines. Weather was nice yesterday. Goroutines and channels make Go concurrency simple."
	got := NewFrequencyCondenser(2).Condense(raw)
	first := strings.Index(got, "Go channels connect goroutines.")
	second := strings.Index(got, "Goroutines and channels make Go concurrency simple.")
	if first < 0 || second < 0 {
		t.Fatalf("expected both channel sentences, got %q", got)
	}
	if first > second {
		t.Fatalf("sentences out of original order: %q", got)
	}
	if strings.Contains(got, "Weather") {
		t.Fatalf("expected off-topic sentence to be dropped: %q", got)
	}
}

func TestFrequencyCondenserWithoutSentences(t *testing.T) {
	if got := NewFrequencyCondenser(3).Condense("  no terminator here  "); got != "no terminator here" {
		t.Fatalf("got %q", got)
	}
}
