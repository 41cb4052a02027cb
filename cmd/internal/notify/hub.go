package notify

import (
	"context"
	"sync"
)

const recentLimit = 32

// Hub is the in-app sink: the server-side equivalent of a toast. It
// keeps a short history for late joiners and fans out to live stream
// subscribers. Delivery is best-effort; a stalled subscriber drops
// frames instead of blocking the reminder scheduler.
type Hub struct {
	mu     sync.Mutex
	next   int
	subs   map[int]chan Notification
	recent []Notification
}

func NewHub() *Hub {
	return &Hub{subs: make(map[int]chan Notification)}
}

func (h *Hub) RequestPermission(context.Context) error { return nil }

func (h *Hub) Notify(_ context.Context, n Notification) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.recent = append(h.recent, n)
	if len(h.recent) > recentLimit {
		h.recent = h.recent[len(h.recent)-recentLimit:]
	}

	for _, ch := range h.subs {
		select {
		case ch <- n:
		default:
		}
	}
	return nil
}

// Recent returns the retained history, oldest first.
func (h *Hub) Recent() []Notification {
	h.mu.Lock()
	defer h.mu.Unlock()
	cp := make([]Notification, len(h.recent))
	copy(cp, h.recent)
	return cp
}

func (h *Hub) Subscribe() (<-chan Notification, func()) {
	_, ch, unsubscribe := h.SubscribeWithReplay()
	return ch, unsubscribe
}

// SubscribeWithReplay registers a subscriber and returns the retained
// history (oldest first) from the same lock acquisition, so nothing
// published between reading the history and registering can be missed
// or delivered twice.
func (h *Hub) SubscribeWithReplay() ([]Notification, <-chan Notification, func()) {
	h.mu.Lock()
	id := h.next
	h.next++
	ch := make(chan Notification, 16)
	h.subs[id] = ch
	replay := make([]Notification, len(h.recent))
	copy(replay, h.recent)
	h.mu.Unlock()

	return replay, ch, func() {
		h.mu.Lock()
		delete(h.subs, id)
		h.mu.Unlock()
	}
}
