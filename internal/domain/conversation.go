package domain

// Conversation is the ordered list of messages exchanged in one session.
// Insertion order is chronological. It is not safe for concurrent writers;
// callers hand it to one turn at a time.
type Conversation struct {
	messages []Message
}

// NewConversation creates a conversation seeded with the given messages.
func NewConversation(messages ...Message) *Conversation {
	c := &Conversation{}
	c.messages = append(c.messages, messages...)
	return c
}

// Append adds a message to the end of the conversation.
func (c *Conversation) Append(m Message) {
	c.messages = append(c.messages, m)
}

// Messages returns a copy of the messages in chronological order.
func (c *Conversation) Messages() []Message {
	out := make([]Message, len(c.messages))
	copy(out, c.messages)
	return out
}

// Len returns the number of messages.
func (c *Conversation) Len() int { return len(c.messages) }

// Last returns the most recent message, or false if the conversation is empty.
func (c *Conversation) Last() (Message, bool) {
	if len(c.messages) == 0 {
		return Message{}, false
	}
	return c.messages[len(c.messages)-1], true
}

// Reset clears the conversation.
func (c *Conversation) Reset() {
	c.messages = nil
}

// Clone returns an independent copy of the conversation.
func (c *Conversation) Clone() *Conversation {
	return NewConversation(c.messages...)
}
