package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSendToUserDropsSaturatedClient(t *testing.T) {
	hub := NewHub(nil)

	// Unbuffered channel with no reader: the send falls into the default
	// branch and the client is dropped.
	stale := &Client{UserID: 7, Send: make(chan WSMessage)}
	live := &Client{UserID: 7, Send: make(chan WSMessage, 1)}
	other := &Client{UserID: 8, Send: make(chan WSMessage)}
	hub.clients[stale] = true
	hub.clients[live] = true
	hub.clients[other] = true

	hub.SendToUser(7, WSMessage{Type: "notification.new"})

	assert.NotContains(t, hub.clients, stale)
	assert.Contains(t, hub.clients, live)
	assert.Contains(t, hub.clients, other)

	msg := <-live.Send
	assert.Equal(t, "notification.new", msg.Type)

	_, open := <-stale.Send
	assert.False(t, open)
}

func TestSendToUserTargetsOnlyThatUser(t *testing.T) {
	hub := NewHub(nil)

	mine := &Client{UserID: 1, Send: make(chan WSMessage, 1)}
	theirs := &Client{UserID: 2, Send: make(chan WSMessage, 1)}
	hub.clients[mine] = true
	hub.clients[theirs] = true

	hub.SendToUser(1, WSMessage{Type: "notification.new"})

	assert.Len(t, mine.Send, 1)
	assert.Len(t, theirs.Send, 0)
}
