// Package prompt formats the single instruction prompt sent to the language
// model for each turn.
package prompt

import "strings"

const preamble = "Based on the search results below, provide a concise, well-structured answer to the user's question."

var instructions = []string{
	"Keep response under 300 words",
	"Focus on the most recent and relevant information",
	"Use clear, structured formatting",
	"If search results are limited, acknowledge this",
}

// Build embeds the condensed search result and the user's question in a fixed
// template. It is deterministic and never fails.
func Build(condensed, question string) string {
	var b strings.Builder
	b.Grow(len(condensed) + len(question) + 400)
	b.WriteString(preamble)
	b.WriteString("\n\nSEARCH RESULTS:\n")
	b.WriteString(condensed)
	b.WriteString("\n\nUSER QUESTION: ")
	b.WriteString(question)
	b.WriteString("\n\nInstructions:\n")
	for _, line := range instructions {
		b.WriteString("- ")
		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String()
}
