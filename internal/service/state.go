package service

import (
	"errors"

	"searchchat/internal/domain"
)

// State is a step of the per-turn state machine.
type State int

const (
	StateIdle State = iota
	StateAwaitingInput
	StateSearching
	StateCondensing
	StateGenerating
	StateResponded
	StateFailed
)

var stateNames = map[State]string{
	StateIdle:          "idle",
	StateAwaitingInput: "awaiting_input",
	StateSearching:     "searching",
	StateCondensing:    "condensing",
	StateGenerating:    "generating",
	StateResponded:     "responded",
	StateFailed:        "failed",
}

func (s State) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return "unknown"
}

// Turn describes what happened during one call to Processor.Process.
type Turn struct {
	// Message is the assistant message appended to the conversation.
	Message  domain.Message
	Question string
	// Prompt is empty when the turn produced the greeting.
	Prompt   string
	States   []State
	Failures []error
}

func (t *Turn) enter(s State) { t.States = append(t.States, s) }

// Failed reports whether any collaborator failed during the turn.
func (t Turn) Failed() bool { return len(t.Failures) > 0 }

// SearchFailed reports whether the search result was replaced by SearchFallback.
func (t Turn) SearchFailed() bool { return t.failedWith(ErrSearchFailure) }

// GenerationFailed reports whether the reply was replaced by GenerationFallback.
func (t Turn) GenerationFailed() bool { return t.failedWith(ErrGenerationFailure) }

func (t Turn) failedWith(target error) bool {
	for _, err := range t.Failures {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
