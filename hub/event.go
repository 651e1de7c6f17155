// Package hub implements the room based relay that fans chat events out to
// connected websocket sessions
package hub

import (
	"encoding/json"
	"fmt"
)

// Event names mirror the socket.io protocol the web client speaks.
const (
	EventJoinRoom    = "join_room"
	EventSendMessage = "send_message"
	EventTyping      = "typing"

	EventReceiveMessage = "receive_message"
	EventUserTyping     = "user_typing"
)

// Event is the JSON envelope for everything that crosses the websocket,
// in both directions.
type Event struct {
	Name string          `json:"event"`
	Data json.RawMessage `json:"data"`
}

func NewEvent(name string, data any) (Event, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return Event{}, fmt.Errorf("failed to encode %s event, %w", name, err)
	}
	return Event{Name: name, Data: raw}, nil
}
