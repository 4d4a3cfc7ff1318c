// Package events provides fan-out of node events to any number of
// subscribers, typically websocket connections.
package events

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// Since a message is dropped if a subscriber is not ready to receive,
// this buffer gives slow websocket writers room to catch up.
const messageBuffer = 100

// Events maintains the set of subscriber channels receiving node events.
type Events struct {
	mu          sync.RWMutex
	subscribers map[string]chan string
}

// New constructs an Events for subscribing to and publishing events.
func New() *Events {
	return &Events{
		subscribers: make(map[string]chan string),
	}
}

// Shutdown closes and removes every subscriber channel.
func (evt *Events) Shutdown() {
	evt.mu.Lock()
	defer evt.mu.Unlock()

	for id, ch := range evt.subscribers {
		delete(evt.subscribers, id)
		close(ch)
	}
}

// Subscribe registers a new subscriber and returns its unique id along
// with the channel events are delivered on. The id is needed to
// Unsubscribe.
func (evt *Events) Subscribe() (string, chan string) {
	evt.mu.Lock()
	defer evt.mu.Unlock()

	id := uuid.NewString()
	ch := make(chan string, messageBuffer)
	evt.subscribers[id] = ch

	return id, ch
}

// Unsubscribe closes and removes the channel registered under the
// specified id.
func (evt *Events) Unsubscribe(id string) error {
	evt.mu.Lock()
	defer evt.mu.Unlock()

	ch, exists := evt.subscribers[id]
	if !exists {
		return fmt.Errorf("subscriber %q does not exist", id)
	}

	delete(evt.subscribers, id)
	close(ch)
	return nil
}

// Send delivers a message to every subscriber. Send never blocks; a
// subscriber with a full buffer misses the message.
func (evt *Events) Send(s string) {
	evt.mu.RLock()
	defer evt.mu.RUnlock()

	for _, ch := range evt.subscribers {
		select {
		case ch <- s:
		default:
		}
	}
}
