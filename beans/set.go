package beans

import "sync"

// SetChange is one batch of mutations to an ObservableSet.
type SetChange struct {
	Added   []interface{}
	Removed []interface{}
}

// SetChangeListener observes mutation batches on an ObservableSet.
type SetChangeListener func(SetChange)

// ObservableSet is an unkeyed collection of distinct comparable elements.
// Snapshot order follows insertion order so consumers see deterministic
// batches.
type ObservableSet struct {
	mu        sync.Mutex
	present   map[interface{}]struct{}
	order     []interface{}
	listeners listenerRegistry
}

func NewObservableSet(items ...interface{}) *ObservableSet {
	s := &ObservableSet{present: make(map[interface{}]struct{})}
	for _, item := range items {
		if _, ok := s.present[item]; ok {
			continue
		}
		s.present[item] = struct{}{}
		s.order = append(s.order, item)
	}
	return s
}

// AddListener registers a batch listener; the Disposer removes it.
func (s *ObservableSet) AddListener(fn SetChangeListener) Disposer {
	return s.listeners.add(fn)
}

// Add inserts item, reporting whether the set changed. Already-present items
// fire nothing.
func (s *ObservableSet) Add(item interface{}) bool {
	s.mu.Lock()
	if _, ok := s.present[item]; ok {
		s.mu.Unlock()
		return false
	}
	s.present[item] = struct{}{}
	s.order = append(s.order, item)
	s.mu.Unlock()
	s.fire(SetChange{Added: []interface{}{item}})
	return true
}

// Remove deletes item, reporting whether it was present.
func (s *ObservableSet) Remove(item interface{}) bool {
	s.mu.Lock()
	if _, ok := s.present[item]; !ok {
		s.mu.Unlock()
		return false
	}
	delete(s.present, item)
	for i, existing := range s.order {
		if sameValue(existing, item) {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	s.mu.Unlock()
	s.fire(SetChange{Removed: []interface{}{item}})
	return true
}

func (s *ObservableSet) Contains(item interface{}) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.present[item]
	return ok
}

func (s *ObservableSet) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.order)
}

// Snapshot returns the elements in insertion order.
func (s *ObservableSet) Snapshot() []interface{} {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]interface{}(nil), s.order...)
}

func (s *ObservableSet) fire(change SetChange) {
	for _, fn := range s.listeners.snapshot() {
		fn.(SetChangeListener)(change)
	}
}
