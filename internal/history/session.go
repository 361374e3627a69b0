package history

import (
	"context"

	"searchchat/internal/domain"
)

// Session binds a Store to one session id.
type Session struct {
	store *Store
	id    string
}

// Session returns a handle that records into the given session.
func (s *Store) Session(id string) *Session {
	return &Session{store: s, id: id}
}

// ID returns the session identifier.
func (s *Session) ID() string { return s.id }

// Record appends m to the session transcript.
func (s *Session) Record(m domain.Message) error {
	return s.store.Append(context.Background(), s.id, m)
}

// Clear drops the session transcript.
func (s *Session) Clear() error {
	return s.store.Clear(context.Background(), s.id)
}

// Load returns the stored conversation of this session.
func (s *Session) Load(ctx context.Context) (*domain.Conversation, error) {
	return s.store.Load(ctx, s.id)
}
