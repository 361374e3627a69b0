package domain

import "context"

// Searcher runs a free-text web search and returns the raw result text.
type Searcher interface {
	Search(ctx context.Context, query string) (string, error)
}

// Generator sends a prompt to a language model and returns the generated text.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Condenser shortens raw search text into an excerpt small enough for prompting.
type Condenser interface {
	Condense(raw string) string
}
