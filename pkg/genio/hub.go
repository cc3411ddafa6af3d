package genio

import "sync"

// hub is the shared handler registry embedded by the Session
// implementations. Dispatch runs each registered handler synchronously, in
// registration order.
type hub struct {
	mu       sync.Mutex
	nextID   int
	delta    map[int]func(delta, text string)
	complete map[int]func(text string)
	idle     map[int]func()
}

func (h *hub) OnDelta(fn func(delta, text string)) (cancel func()) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.delta == nil {
		h.delta = make(map[int]func(delta, text string))
	}
	id := h.nextID
	h.nextID++
	h.delta[id] = fn
	return func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		delete(h.delta, id)
	}
}

func (h *hub) OnComplete(fn func(text string)) (cancel func()) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.complete == nil {
		h.complete = make(map[int]func(text string))
	}
	id := h.nextID
	h.nextID++
	h.complete[id] = fn
	return func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		delete(h.complete, id)
	}
}

func (h *hub) OnIdle(fn func()) (cancel func()) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.idle == nil {
		h.idle = make(map[int]func())
	}
	id := h.nextID
	h.nextID++
	h.idle[id] = fn
	return func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		delete(h.idle, id)
	}
}

func (h *hub) emitDelta(delta, text string) {
	for _, fn := range h.snapshotDelta() {
		fn(delta, text)
	}
}

func (h *hub) emitComplete(text string) {
	for _, fn := range h.snapshotComplete() {
		fn(text)
	}
}

func (h *hub) emitIdle() {
	for _, fn := range h.snapshotIdle() {
		fn()
	}
}

// Handlers are snapshotted under the lock and invoked outside it, so a
// handler may cancel subscriptions without deadlocking.
func (h *hub) snapshotDelta() []func(delta, text string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]func(delta, text string), 0, len(h.delta))
	for id := 0; id < h.nextID; id++ {
		if fn, ok := h.delta[id]; ok {
			out = append(out, fn)
		}
	}
	return out
}

func (h *hub) snapshotComplete() []func(text string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]func(text string), 0, len(h.complete))
	for id := 0; id < h.nextID; id++ {
		if fn, ok := h.complete[id]; ok {
			out = append(out, fn)
		}
	}
	return out
}

func (h *hub) snapshotIdle() []func() {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]func(), 0, len(h.idle))
	for id := 0; id < h.nextID; id++ {
		if fn, ok := h.idle[id]; ok {
			out = append(out, fn)
		}
	}
	return out
}

// subscriberCount reports how many handlers are registered, for tests.
func (h *hub) subscriberCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.delta) + len(h.complete) + len(h.idle)
}
