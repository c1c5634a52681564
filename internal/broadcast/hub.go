package broadcast

import "sync"

// subscriberBuffer is the per-subscriber channel capacity. A subscriber
// whose buffer is full misses messages rather than stalling the run.
const subscriberBuffer = 64

// Subscriber receives every message published after it was registered.
// Messages published before subscription are never replayed.
type Subscriber struct {
	ch chan string
}

// C returns the subscriber's message channel. The channel is closed
// on unsubscribe.
func (s *Subscriber) C() <-chan string {
	return s.ch
}

// Hub is a publish/subscribe fan-out for progress messages. Safe for
// concurrent publishes, subscribes and unsubscribes.
type Hub struct {
	mu   sync.RWMutex
	subs map[*Subscriber]struct{}
}

func NewHub() *Hub {
	return &Hub{subs: make(map[*Subscriber]struct{})}
}

// Subscribe registers a new observer and starts delivering subsequent
// publishes to it.
func (h *Hub) Subscribe() *Subscriber {
	sub := &Subscriber{ch: make(chan string, subscriberBuffer)}
	h.mu.Lock()
	h.subs[sub] = struct{}{}
	h.mu.Unlock()
	return sub
}

// Unsubscribe removes a subscriber and closes its channel. Calling it
// twice for the same subscriber is harmless.
func (h *Hub) Unsubscribe(sub *Subscriber) {
	h.mu.Lock()
	if _, ok := h.subs[sub]; ok {
		delete(h.subs, sub)
		close(sub.ch)
	}
	h.mu.Unlock()
}

// Publish delivers message to every current subscriber, in publish order
// per subscriber. With zero subscribers it is a no-op.
func (h *Hub) Publish(message string) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for sub := range h.subs {
		select {
		case sub.ch <- message:
		default:
		}
	}
}

// Len returns the number of currently attached subscribers.
func (h *Hub) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs)
}
