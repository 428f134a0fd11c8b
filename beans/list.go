package beans

import "sync"

// ListChange is one batch of mutations to an ObservableList. A single
// mutating call produces a single batch; element order inside Added and
// Removed follows the order of the mutation.
type ListChange struct {
	Added   []interface{}
	Removed []interface{}
}

// ListChangeListener observes mutation batches on an ObservableList.
type ListChangeListener func(ListChange)

// ObservableList is an ordered collection firing one change batch per
// mutating call.
type ObservableList struct {
	mu        sync.Mutex
	items     []interface{}
	listeners listenerRegistry
}

func NewObservableList(items ...interface{}) *ObservableList {
	l := &ObservableList{}
	l.items = append(l.items, items...)
	return l
}

// AddListener registers a batch listener; the Disposer removes it.
func (l *ObservableList) AddListener(fn ListChangeListener) Disposer {
	return l.listeners.add(fn)
}

func (l *ObservableList) Add(item interface{}) {
	l.AddAll(item)
}

// AddAll appends items and fires a single batch containing all of them.
func (l *ObservableList) AddAll(items ...interface{}) {
	if len(items) == 0 {
		return
	}
	l.mu.Lock()
	l.items = append(l.items, items...)
	l.mu.Unlock()
	l.fire(ListChange{Added: append([]interface{}(nil), items...)})
}

// Remove deletes the first occurrence of item, reporting whether it was
// present.
func (l *ObservableList) Remove(item interface{}) bool {
	l.mu.Lock()
	for i, existing := range l.items {
		if sameValue(existing, item) {
			l.items = append(l.items[:i], l.items[i+1:]...)
			l.mu.Unlock()
			l.fire(ListChange{Removed: []interface{}{item}})
			return true
		}
	}
	l.mu.Unlock()
	return false
}

// RemoveAll deletes the first occurrence of each item and fires a single
// batch with the elements actually removed, in argument order.
func (l *ObservableList) RemoveAll(items ...interface{}) {
	l.mu.Lock()
	var removed []interface{}
	for _, item := range items {
		for i, existing := range l.items {
			if sameValue(existing, item) {
				l.items = append(l.items[:i], l.items[i+1:]...)
				removed = append(removed, item)
				break
			}
		}
	}
	l.mu.Unlock()
	if len(removed) > 0 {
		l.fire(ListChange{Removed: removed})
	}
}

// SetAll replaces the whole content. The batch reports the previous elements
// removed and the new elements added.
func (l *ObservableList) SetAll(items ...interface{}) {
	l.mu.Lock()
	old := l.items
	l.items = append([]interface{}(nil), items...)
	l.mu.Unlock()
	change := ListChange{Removed: old, Added: append([]interface{}(nil), items...)}
	if len(change.Added) == 0 && len(change.Removed) == 0 {
		return
	}
	l.fire(change)
}

// Set replaces the element at index i, reporting it removed and the new
// element added in one batch.
func (l *ObservableList) Set(i int, item interface{}) {
	l.mu.Lock()
	old := l.items[i]
	l.items[i] = item
	l.mu.Unlock()
	l.fire(ListChange{Removed: []interface{}{old}, Added: []interface{}{item}})
}

func (l *ObservableList) Clear() {
	l.mu.Lock()
	old := l.items
	l.items = nil
	l.mu.Unlock()
	if len(old) > 0 {
		l.fire(ListChange{Removed: old})
	}
}

func (l *ObservableList) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.items)
}

// Snapshot returns a copy of the current content.
func (l *ObservableList) Snapshot() []interface{} {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]interface{}(nil), l.items...)
}

func (l *ObservableList) fire(change ListChange) {
	for _, fn := range l.listeners.snapshot() {
		fn.(ListChangeListener)(change)
	}
}
