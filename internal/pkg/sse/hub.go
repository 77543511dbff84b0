package sse

import (
	"sync"
)

// Event is a value broadcast on a topic.
type Event struct {
	Topic string
	Event string
	Data  interface{}
}

// Hub broadcasts the latest event per topic. Each subscriber channel holds
// at most one event: publishing replaces an unread event instead of
// queueing behind it.
type Hub struct {
	mu          sync.Mutex
	subscribers map[string]map[chan Event]struct{}
	latest      map[string]Event
}

// NewHub creates a new Hub instance
func NewHub() *Hub {
	return &Hub{
		subscribers: make(map[string]map[chan Event]struct{}),
		latest:      make(map[string]Event),
	}
}

// Subscribe registers a subscriber for topic and returns the event channel
// and cleanup function. If the topic already has a value it is delivered
// immediately.
func (h *Hub) Subscribe(topic string) (<-chan Event, func()) {
	h.mu.Lock()
	defer h.mu.Unlock()

	ch := make(chan Event, 1)

	if h.subscribers[topic] == nil {
		h.subscribers[topic] = make(map[chan Event]struct{})
	}
	h.subscribers[topic][ch] = struct{}{}

	if ev, ok := h.latest[topic]; ok {
		ch <- ev
	}

	var once sync.Once
	cleanup := func() {
		once.Do(func() {
			h.mu.Lock()
			defer h.mu.Unlock()
			delete(h.subscribers[topic], ch)
			close(ch)
			if len(h.subscribers[topic]) == 0 {
				delete(h.subscribers, topic)
			}
		})
	}

	return ch, cleanup
}

// Publish stores event as the latest value of topic and hands it to every
// subscriber, dropping whatever they had not read yet.
func (h *Hub) Publish(topic string, event Event) {
	h.mu.Lock()
	defer h.mu.Unlock()

	event.Topic = topic
	h.latest[topic] = event

	for ch := range h.subscribers[topic] {
		// drain the stale value; the lock keeps other publishers out
		select {
		case <-ch:
		default:
		}
		ch <- event
	}
}

// Latest returns the last event published on topic.
func (h *Hub) Latest(topic string) (Event, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	ev, ok := h.latest[topic]
	return ev, ok
}

// SubscriberCount returns the number of active subscribers for a topic
func (h *Hub) SubscriberCount(topic string) int {
	h.mu.Lock()
	defer h.mu.Unlock()

	return len(h.subscribers[topic])
}
