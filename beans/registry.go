package beans

import "sync"

// Disposer removes a previously added listener. Removing twice is a no-op.
type Disposer func()

// listenerRegistry keeps listeners in registration order. Values are stored
// type-erased; each observable type asserts back to its own listener type
// when firing.
type listenerRegistry struct {
	mu    sync.Mutex
	next  int
	order []int
	fns   map[int]interface{}
}

func (r *listenerRegistry) add(fn interface{}) Disposer {
	r.mu.Lock()
	if r.fns == nil {
		r.fns = make(map[int]interface{})
	}
	id := r.next
	r.next++
	r.fns[id] = fn
	r.order = append(r.order, id)
	r.mu.Unlock()
	return func() { r.remove(id) }
}

func (r *listenerRegistry) remove(id int) {
	r.mu.Lock()
	if _, ok := r.fns[id]; ok {
		delete(r.fns, id)
		for i, other := range r.order {
			if other == id {
				r.order = append(r.order[:i], r.order[i+1:]...)
				break
			}
		}
	}
	r.mu.Unlock()
}

// snapshot returns the current listeners in registration order. Firing
// happens outside the registry lock so listeners may add or remove listeners.
func (r *listenerRegistry) snapshot() []interface{} {
	r.mu.Lock()
	out := make([]interface{}, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.fns[id])
	}
	r.mu.Unlock()
	return out
}
