package hub

import "github.com/google/uuid"

const outboundBuffer = 64

// Session is one connected participant: an opaque connection id plus the
// caller-supplied user id. Identity is whatever the client claims, there is
// no auth layer in front of it.
type Session struct {
	ID     uuid.UUID
	UserID string

	out chan Event
}

func NewSession(userID string) *Session {
	return &Session{
		ID:     uuid.New(),
		UserID: userID,
		out:    make(chan Event, outboundBuffer),
	}
}

// Outbound is drained by the connection's write pump.
func (s *Session) Outbound() <-chan Event {
	return s.out
}

// deliver is best effort. A session whose buffer is full, usually one that
// is mid-disconnect, just misses the event. No retries.
func (s *Session) deliver(ev Event) bool {
	select {
	case s.out <- ev:
		return true
	default:
		return false
	}
}
