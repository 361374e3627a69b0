package prompt

import (
	"strings"
	"testing"
)

func TestBuildTemplate(t *testing.T) {
	got := Build("Paris is the capital of France.", "What is the capital of France?")
	want := `Based on the search results below, provide a concise, well-structured answer to the user's question.

SEARCH RESULTS:
Paris is the capital of France.

USER QUESTION: What is the capital of France?

Instructions:
- Keep response under 300 words
- Focus on the most recent and relevant information
- Use clear, structured formatting
- If search results are limited, acknowledge this
`
	if got != want {
		t.Fatalf("unexpected prompt:\n%s", got)
	}
}

func TestBuildOverheadIsConstant(t *testing.T) {
	base := len(Build("", ""))
	for _, tc := range []struct{ condensed, question string }{
		{"abc", "def"},
		{strings.Repeat("x", 1000), "q"},
	} {
		got := len(Build(tc.condensed, tc.question))
		if got != base+len(tc.condensed)+len(tc.question) {
			t.Fatalf("overhead changed: base=%d got=%d", base, got)
		}
	}
}

func TestBuildIsDeterministic(t *testing.T) {
	if Build("a", "b") != Build("a", "b") {
		t.Fatal("expected identical prompts for identical input")
	}
}
