package domain

import "time"

// Role identifies who authored a message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is a single chat message. It is treated as an immutable value.
type Message struct {
	Role      Role
	Content   string
	CreatedAt time.Time
}

// NewUserMessage creates a user-authored message stamped with the current time.
func NewUserMessage(content string) Message {
	return Message{Role: RoleUser, Content: content, CreatedAt: time.Now()}
}

// NewAssistantMessage creates an assistant-authored message stamped with the current time.
func NewAssistantMessage(content string) Message {
	return Message{Role: RoleAssistant, Content: content, CreatedAt: time.Now()}
}

// Text returns the message content.
func (m Message) Text() string { return m.Content }
