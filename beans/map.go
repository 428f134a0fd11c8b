package beans

import "sync"

// MapEntry is one key/value pair reported in a MapChange.
type MapEntry struct {
	Key   interface{}
	Value interface{}
}

// MapChange is one batch of mutations to an ObservableMap. Replacing an
// existing key reports the old entry removed and the new entry added in the
// same batch.
type MapChange struct {
	Added   []MapEntry
	Removed []MapEntry
}

// MapChangeListener observes mutation batches on an ObservableMap.
type MapChangeListener func(MapChange)

// ObservableMap is a keyed collection firing one change batch per mutating
// call. Keys must be comparable.
type ObservableMap struct {
	mu        sync.Mutex
	items     map[interface{}]interface{}
	listeners listenerRegistry
}

func NewObservableMap() *ObservableMap {
	return &ObservableMap{items: make(map[interface{}]interface{})}
}

// AddListener registers a batch listener; the Disposer removes it.
func (m *ObservableMap) AddListener(fn MapChangeListener) Disposer {
	return m.listeners.add(fn)
}

func (m *ObservableMap) Put(key, value interface{}) {
	m.mu.Lock()
	old, existed := m.items[key]
	if existed && sameValue(old, value) {
		m.mu.Unlock()
		return
	}
	m.items[key] = value
	m.mu.Unlock()
	change := MapChange{Added: []MapEntry{{Key: key, Value: value}}}
	if existed {
		change.Removed = []MapEntry{{Key: key, Value: old}}
	}
	m.fire(change)
}

// Delete removes key, reporting whether it was present.
func (m *ObservableMap) Delete(key interface{}) bool {
	m.mu.Lock()
	old, existed := m.items[key]
	if !existed {
		m.mu.Unlock()
		return false
	}
	delete(m.items, key)
	m.mu.Unlock()
	m.fire(MapChange{Removed: []MapEntry{{Key: key, Value: old}}})
	return true
}

func (m *ObservableMap) Get(key interface{}) (interface{}, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.items[key]
	return v, ok
}

func (m *ObservableMap) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.items)
}

// Snapshot returns a copy of the current content.
func (m *ObservableMap) Snapshot() map[interface{}]interface{} {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make(map[interface{}]interface{}, len(m.items))
	for k, v := range m.items {
		out[k] = v
	}
	return out
}

func (m *ObservableMap) fire(change MapChange) {
	for _, fn := range m.listeners.snapshot() {
		fn.(MapChangeListener)(change)
	}
}
