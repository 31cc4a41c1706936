package event

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/google/uuid"
)

// subscriberBuffer is the number of events buffered per subscriber. Events for a subscriber with a
// full buffer are dropped.
const subscriberBuffer = 16

func NewBroker() *Broker {
	return &Broker{
		subscribers: make(map[uuid.UUID]subscriber),
	}
}

type subscriber struct {
	types   []string
	channel chan Event
}

func (s subscriber) wants(eventType string) bool {
	return len(s.types) == 0 || slices.Contains(s.types, eventType)
}

// Broker fans events out to in-process subscribers.
type Broker struct {
	lock        sync.RWMutex
	subscribers map[uuid.UUID]subscriber
}

// Subscribe registers a subscriber for events of the given types or all events if no type is
// given. The returned channel is closed by [Broker.Unsubscribe].
func (b *Broker) Subscribe(types ...string) (uuid.UUID, <-chan Event) {
	b.lock.Lock()
	defer b.lock.Unlock()

	id := uuid.New()
	s := subscriber{
		types:   types,
		channel: make(chan Event, subscriberBuffer),
	}
	b.subscribers[id] = s
	return id, s.channel
}

// Unsubscribe removes the subscriber with id. Unsubscribing twice is a no-op.
func (b *Broker) Unsubscribe(id uuid.UUID) {
	b.lock.Lock()
	defer b.lock.Unlock()

	s, ok := b.subscribers[id]
	if !ok {
		return
	}
	close(s.channel)
	delete(b.subscribers, id)
}

// Close unsubscribes every subscriber which ends their streams.
func (b *Broker) Close() {
	b.lock.Lock()
	defer b.lock.Unlock()

	for id, s := range b.subscribers {
		close(s.channel)
		delete(b.subscribers, id)
	}
}

// Subscribers returns the number of current subscribers.
func (b *Broker) Subscribers() int {
	b.lock.RLock()
	defer b.lock.RUnlock()
	return len(b.subscribers)
}

// Publish sends the event to every subscriber interested in its type without blocking. An error is
// returned if the event had to be dropped for any subscriber.
func (b *Broker) Publish(_ context.Context, event Event) error {
	b.lock.RLock()
	defer b.lock.RUnlock()

	var dropped int
	for _, s := range b.subscribers {
		if !s.wants(event.Type) {
			continue
		}
		select {
		case s.channel <- event:
		default:
			dropped++
		}
	}

	if dropped > 0 {
		return fmt.Errorf("dropped event %s for %d of %d subscribers", event.EventID, dropped, len(b.subscribers))
	}
	return nil
}
