package beans

import "sync"

// ArrayChange describes one mutation of an ObservableArray: the touched index
// range plus full old and new snapshots. Immutable once constructed.
type ArrayChange struct {
	From int
	To   int
	Old  []float64
	New  []float64
}

// ArrayChangeListener observes mutations on an ObservableArray.
type ArrayChangeListener func(ArrayChange)

// ObservableArray is a resizable array of float64 elements firing one change
// per mutating call, in the manner of a numeric toolkit array.
type ObservableArray struct {
	mu        sync.Mutex
	data      []float64
	listeners listenerRegistry
}

func NewObservableArray(values ...float64) *ObservableArray {
	a := &ObservableArray{}
	a.data = append(a.data, values...)
	return a
}

// AddListener registers a change listener; the Disposer removes it.
func (a *ObservableArray) AddListener(fn ArrayChangeListener) Disposer {
	return a.listeners.add(fn)
}

// SetAll replaces the whole content.
func (a *ObservableArray) SetAll(values ...float64) {
	a.mu.Lock()
	old := a.data
	a.data = append([]float64(nil), values...)
	snap := append([]float64(nil), a.data...)
	a.mu.Unlock()
	a.fire(ArrayChange{From: 0, To: len(snap), Old: old, New: snap})
}

// Set replaces the element at index i.
func (a *ObservableArray) Set(i int, value float64) {
	a.mu.Lock()
	old := append([]float64(nil), a.data...)
	a.data[i] = value
	snap := append([]float64(nil), a.data...)
	a.mu.Unlock()
	a.fire(ArrayChange{From: i, To: i + 1, Old: old, New: snap})
}

// Resize grows or truncates the array; new elements are zero.
func (a *ObservableArray) Resize(n int) {
	a.mu.Lock()
	old := a.data
	next := make([]float64, n)
	copy(next, old)
	a.data = next
	snap := append([]float64(nil), next...)
	a.mu.Unlock()
	a.fire(ArrayChange{From: 0, To: n, Old: old, New: snap})
}

func (a *ObservableArray) Len() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.data)
}

// Snapshot returns a copy of the current content.
func (a *ObservableArray) Snapshot() []float64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]float64(nil), a.data...)
}

func (a *ObservableArray) fire(change ArrayChange) {
	for _, fn := range a.listeners.snapshot() {
		fn.(ArrayChangeListener)(change)
	}
}
