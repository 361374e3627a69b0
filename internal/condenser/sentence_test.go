package condenser

import (
	"strings"
	"testing"
	"unicode/utf8"
)

const parisResult = "Paris is the capital of France. It has a population of over 2 million. The Eiffel Tower is located there."

func TestSentencesKeepsAllQualifyingSentences(t *testing.T) {
	if got := Sentences(parisResult); got != parisResult {
		t.Fatalf("expected all three sentences verbatim\n got: %q\nwant: %q", got, parisResult)
	}
}

func TestSentencesDropsShortFragments(t *testing.T) {
	raw := "Short. This sentence is long enough to keep. Tiny. Another sentence that qualifies here"
	want := "This sentence is long enough to keep. Another sentence that qualifies here."
	if got := Sentences(raw); got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestSentencesKeepsAtMostFive(t *testing.T) {
	var parts []string
	for _, w := range []string{"one", "two", "three", "four", "five", "six", "seven"} {
		parts = append(parts, "This is sentence number "+w)
	}
	got := Sentences(strings.Join(parts, ". ") + ".")
	want := strings.Join(parts[:5], ". ") + "."
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestSentencesMinimumLengthBoundary(t *testing.T) {
	twenty := "abcdefghijklmnopqrst"
	nineteen := "abcdefghijklmnopqrs"
	if got := Sentences(nineteen + ". " + twenty); got != twenty+"." {
		t.Fatalf("got %q, want %q", got, twenty+".")
	}
}

func TestSentencesFallsBackToLeadingCharacters(t *testing.T) {
	raw := strings.Repeat("short. ", 100)
	got := Sentences(raw)
	if got != raw[:500] {
		t.Fatalf("expected first 500 characters, got %d chars", len(got))
	}
	if got := Sentences("a. b. c"); got != "a. b. c" {
		t.Fatalf("expected short raw text verbatim, got %q", got)
	}
	if got := Sentences(""); got != "" {
		t.Fatalf("expected empty output, got %q", got)
	}
}

func TestSentencesFallbackCountsRunes(t *testing.T) {
	raw := strings.Repeat("é. ", 300)
	got := Sentences(raw)
	if n := utf8.RuneCountInString(got); n != 500 {
		t.Fatalf("expected 500 runes, got %d", n)
	}
	if !utf8.ValidString(got) {
		t.Fatal("fallback cut produced invalid UTF-8")
	}
}

func TestSentencesIdempotent(t *testing.T) {
	inputs := []string{
		parisResult,
		"  Leading whitespace sentence here.   And a second long sentence follows  ",
		"x. This one is long enough to survive. y",
	}
	for _, in := range inputs {
		once := Sentences(in)
		if twice := Sentences(once); twice != once {
			t.Fatalf("not idempotent for %q: %q then %q", in, once, twice)
		}
	}
}

func TestSentenceCondenserCustomLimits(t *testing.T) {
	c := NewSentenceCondenser(2, 5, 10)
	got := c.Condense("alpha beta. gamma delta. epsilon zeta")
	if got != "alpha beta. gamma delta." {
		t.Fatalf("got %q", got)
	}
	if got := c.Condense("a. b. c. d. e. f"); got != "a. b. c. d" {
		t.Fatalf("expected 10 character fallback, got %q", got)
	}
}
