package store

import "sync"

// Listeners is the subscription registry used by both backends. The lock
// is held while callbacks run, so an unsubscribe that returns is a hard
// guarantee of no further invocations. Callbacks therefore must not
// subscribe or unsubscribe from within themselves.
type Listeners[T any] struct {
	mu   sync.Mutex
	next int
	fns  map[int]func([]T)
}

func NewListeners[T any]() *Listeners[T] {
	return &Listeners[T]{fns: make(map[int]func([]T))}
}

func (l *Listeners[T]) Add(fn func([]T)) Unsubscribe {
	l.mu.Lock()
	id := l.next
	l.next++
	l.fns[id] = fn
	l.mu.Unlock()
	return func() {
		l.mu.Lock()
		delete(l.fns, id)
		l.mu.Unlock()
	}
}

// Broadcast hands every callback its own copy of the snapshot, so one
// subscriber can never corrupt what another sees.
func (l *Listeners[T]) Broadcast(snapshot []T) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, fn := range l.fns {
		cp := make([]T, len(snapshot))
		copy(cp, snapshot)
		fn(cp)
	}
}
