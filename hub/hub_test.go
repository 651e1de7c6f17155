package hub

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func drain(s *Session) []Event {
	var out []Event
	for {
		select {
		case ev := <-s.Outbound():
			out = append(out, ev)
		default:
			return out
		}
	}
}

func mustEvent(t *testing.T, name string, data any) Event {
	t.Helper()
	ev, err := NewEvent(name, data)
	require.NoError(t, err)
	return ev
}

func TestPublish_ReachesEveryMemberIncludingSender(t *testing.T) {
	h := New()
	a := NewSession("u1")
	b := NewSession("u2")

	h.Join("general", a)
	h.Join("general", b)

	h.Publish("general", mustEvent(t, EventReceiveMessage, "hi"))

	require.Len(t, drain(a), 1)
	require.Len(t, drain(b), 1)
}

func TestPublish_PreservesSenderOrder(t *testing.T) {
	h := New()
	a := NewSession("u1")
	b := NewSession("u2")

	h.Join("general", a)
	h.Join("general", b)

	for i := range 20 {
		h.Publish("general", mustEvent(t, EventReceiveMessage, fmt.Sprintf("msg-%d", i)))
	}

	got := drain(b)
	require.Len(t, got, 20)

	for i, ev := range got {
		var body string
		require.NoError(t, json.Unmarshal(ev.Data, &body))
		assert.Equal(t, fmt.Sprintf("msg-%d", i), body)
	}
}

func TestJoin_TwiceDeliversOnce(t *testing.T) {
	h := New()
	a := NewSession("u1")

	h.Join("general", a)
	h.Join("general", a)

	h.Publish("general", mustEvent(t, EventReceiveMessage, "hi"))

	require.Len(t, drain(a), 1, "double join must not duplicate delivery")
}

func TestPublish_EmptyRoomIsNoOp(t *testing.T) {
	h := New()

	// Must not panic or create state
	h.Publish("nowhere", mustEvent(t, EventReceiveMessage, "hi"))
}

func TestNotifyTyping_SkipsOriginator(t *testing.T) {
	h := New()
	a := NewSession("u1")
	b := NewSession("u2")
	c := NewSession("u3")

	h.Join("general", a)
	h.Join("general", b)
	h.Join("general", c)

	h.NotifyTyping("general", a, mustEvent(t, EventUserTyping, map[string]string{"userId": "u1"}))

	assert.Empty(t, drain(a))
	assert.Len(t, drain(b), 1)
	assert.Len(t, drain(c), 1)
}

func TestUnregister_RemovesFromAllRooms(t *testing.T) {
	h := New()
	a := NewSession("u1")
	b := NewSession("u2")

	h.Join("general", a)
	h.Join("files", a)
	h.Join("general", b)

	h.Unregister(a)

	h.Publish("general", mustEvent(t, EventReceiveMessage, "hi"))
	h.Publish("files", mustEvent(t, EventReceiveMessage, "hi"))

	assert.Empty(t, drain(a))
	assert.Len(t, drain(b), 1)
}

func TestDeliver_DropsWhenBufferFull(t *testing.T) {
	h := New()
	a := NewSession("u1")
	h.Join("general", a)

	for i := range outboundBuffer + 5 {
		h.Publish("general", mustEvent(t, EventReceiveMessage, i))
	}

	// Best-effort delivery: the overflow is dropped, not queued
	require.Len(t, drain(a), outboundBuffer)
}
