package realtime

import (
	"context"
	"sync"
)

// MemoryNotifier is an in-process hub for single-node deployments and
// tests. Dispatch is synchronous under the lock, so subscribers see a
// task's successive updates in publish order.
type MemoryNotifier struct {
	mu     sync.Mutex
	nextID int
	subs   map[int]func(Event)
	closed bool
}

func NewMemoryNotifier() *MemoryNotifier {
	return &MemoryNotifier{subs: make(map[int]func(Event))}
}

func (n *MemoryNotifier) Publish(_ context.Context, event Event) error {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.closed {
		return nil
	}
	for _, fn := range n.subs {
		fn(event)
	}
	return nil
}

func (n *MemoryNotifier) Subscribe(fn func(Event)) (func(), error) {
	n.mu.Lock()
	defer n.mu.Unlock()

	id := n.nextID
	n.nextID++
	n.subs[id] = fn

	return func() {
		n.mu.Lock()
		defer n.mu.Unlock()
		delete(n.subs, id)
	}, nil
}

func (n *MemoryNotifier) Close() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.closed = true
	n.subs = make(map[int]func(Event))
}
