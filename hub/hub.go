package hub

import (
	"sync"

	"go.uber.org/zap"
)

// Hub tracks room membership and relays events. Rooms are created on first
// join and live for the whole process; membership is the only state the
// relay owns, messages pass straight through.
type Hub struct {
	mu    sync.RWMutex
	rooms map[string]map[*Session]struct{}
}

func New() *Hub {
	return &Hub{
		rooms: make(map[string]map[*Session]struct{}),
	}
}

// Join adds s to room, creating the room if needed. Joining twice is a
// no-op, a double join must not produce duplicate deliveries.
func (h *Hub) Join(room string, s *Session) {
	h.mu.Lock()
	defer h.mu.Unlock()

	members, ok := h.rooms[room]
	if !ok {
		members = make(map[*Session]struct{})
		h.rooms[room] = members
	}
	members[s] = struct{}{}
}

// Unregister drops s from every room it joined. Called when the underlying
// connection closes so no stale membership is ever left behind.
func (h *Hub) Unregister(s *Session) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for _, members := range h.rooms {
		delete(members, s)
	}
}

// snapshot copies the membership set so delivery never iterates a map that
// a concurrent join or disconnect is mutating.
func (h *Hub) snapshot(room string) []*Session {
	h.mu.RLock()
	defer h.mu.RUnlock()

	members := h.rooms[room]
	if len(members) == 0 {
		return nil
	}

	out := make([]*Session, 0, len(members))
	for s := range members {
		out = append(out, s)
	}
	return out
}

// Publish delivers ev to every member of room, sender included. Events
// published from one session arrive in publish order because there is a
// single relay point and no internal reordering. An empty room is a silent
// no-op.
func (h *Hub) Publish(room string, ev Event) {
	for _, s := range h.snapshot(room) {
		if !s.deliver(ev) {
			zap.L().Debug("Dropped event for slow session",
				zap.String("event", ev.Name),
				zap.String("session", s.ID.String()))
		}
	}
}

// NotifyTyping delivers ev to every member of room except the originator.
func (h *Hub) NotifyTyping(room string, from *Session, ev Event) {
	for _, s := range h.snapshot(room) {
		if s == from {
			continue
		}
		if !s.deliver(ev) {
			zap.L().Debug("Dropped typing event for slow session",
				zap.String("session", s.ID.String()))
		}
	}
}
