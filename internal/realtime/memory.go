package realtime

import (
	"context"
	"sync"
)

// MemoryHub delivers events in-process, synchronously on the publisher's goroutine.
type MemoryHub struct {
	mu     sync.RWMutex
	nextID int
	subs   map[string]map[int]Handler
	closed bool
}

func NewMemoryHub() *MemoryHub {
	return &MemoryHub{subs: make(map[string]map[int]Handler)}
}

func (h *MemoryHub) Publish(_ context.Context, ev Event) error {
	h.mu.RLock()
	if h.closed {
		h.mu.RUnlock()
		return nil
	}
	handlers := make([]Handler, 0, len(h.subs[Channel(ev.Table, ev.UserID)]))
	for _, fn := range h.subs[Channel(ev.Table, ev.UserID)] {
		handlers = append(handlers, fn)
	}
	h.mu.RUnlock()

	for _, fn := range handlers {
		fn(ev)
	}
	return nil
}

func (h *MemoryHub) Subscribe(table, userID string, fn Handler) (func(), error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	ch := Channel(table, userID)
	if h.subs[ch] == nil {
		h.subs[ch] = make(map[int]Handler)
	}
	id := h.nextID
	h.nextID++
	h.subs[ch][id] = fn

	var once sync.Once
	return func() {
		once.Do(func() {
			h.mu.Lock()
			defer h.mu.Unlock()
			delete(h.subs[ch], id)
			if len(h.subs[ch]) == 0 {
				delete(h.subs, ch)
			}
		})
	}, nil
}

func (h *MemoryHub) Close() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.closed = true
	h.subs = make(map[string]map[int]Handler)
	return nil
}
