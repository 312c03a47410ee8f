package session

import "github.com/google/uuid"

type EventType string

const (
	EventSignedIn       EventType = "signed_in"
	EventSignedOut      EventType = "signed_out"
	EventCreditsChanged EventType = "credits_changed"
)

// Event is delivered to subscribers whenever a session changes.
type Event struct {
	Type   EventType
	UserID uuid.UUID
}

// Subscription is a handle on the manager's event stream. Callers must call
// Unsubscribe when done or the channel leaks.
type Subscription struct {
	C      <-chan Event
	cancel func()
}

func (s *Subscription) Unsubscribe() {
	s.cancel()
}
