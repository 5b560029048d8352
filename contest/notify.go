// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package contest

import "sync"

// Event identifies what changed.
type Event string

const (
	// EventSubmissions fires after any persisted submission mutation.
	EventSubmissions Event = "submissions"

	// EventPassKey fires after a new pass key is set.
	EventPassKey Event = "pass_key"
)

// subscriberBuffer is the channel depth per subscriber. A slow subscriber
// loses events rather than blocking publishers; consumers treat every event
// as "state changed, re-read", so a dropped event is absorbed by the next.
const subscriberBuffer = 8

// Notifier fans change events out to subscribers. Publish never blocks.
type Notifier struct {
	mu   sync.Mutex
	subs map[int]chan Event
	next int
}

func NewNotifier() *Notifier {
	return &Notifier{subs: make(map[int]chan Event)}
}

// Subscribe registers a new subscriber and returns its channel along with a
// cancel function. Cancel is idempotent and closes the channel.
func (n *Notifier) Subscribe() (<-chan Event, func()) {
	n.mu.Lock()
	defer n.mu.Unlock()

	id := n.next
	n.next++
	ch := make(chan Event, subscriberBuffer)
	n.subs[id] = ch

	cancel := func() {
		n.mu.Lock()
		defer n.mu.Unlock()
		if c, ok := n.subs[id]; ok {
			delete(n.subs, id)
			close(c)
		}
	}
	return ch, cancel
}

// Publish delivers the event to every subscriber, dropping it for any
// subscriber whose buffer is full.
func (n *Notifier) Publish(e Event) {
	n.mu.Lock()
	defer n.mu.Unlock()

	for _, ch := range n.subs {
		select {
		case ch <- e:
		default:
		}
	}
}
