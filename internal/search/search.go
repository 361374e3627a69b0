// Package search provides web search clients that return raw result text.
//
// Available providers:
//
//   - DuckDuckGo: free, no API key (scrapes lite.duckduckgo.com)
//   - Brave: requires an API key sent as X-Subscription-Token
//
// Both flatten their hits into one block of text, the shape the condenser
// expects.
package search

import "strings"

// Result is a single hit returned by a provider.
type Result struct {
	Title   string
	URL     string
	Snippet string
}

// Flatten joins result snippets into one text block, using the title when a
// hit has no snippet.
func Flatten(results []Result) string {
	parts := make([]string, 0, len(results))
	for _, r := range results {
		text := strings.TrimSpace(r.Snippet)
		if text == "" {
			text = strings.TrimSpace(r.Title)
		}
		if text == "" {
			continue
		}
		parts = append(parts, text)
	}
	return strings.Join(parts, " ")
}
