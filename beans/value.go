// Package beans provides the toolkit-side observable types bridged by
// reactorfx: single values, collections, and fixed-element arrays that notify
// registered listeners on every mutation. Mutations are expected to happen on
// the toolkit's UI thread; listener registration and removal are safe from
// any goroutine.
package beans

import (
	"reflect"
	"sync"
)

// ChangeListener observes value transitions on an ObservableValue.
type ChangeListener func(old, new interface{})

// Change pairs an old and a new value snapshot. Immutable once constructed.
type Change struct {
	Old interface{}
	New interface{}
}

// ObservableValue is a readable single value whose changes can be listened
// to. Values may be nil.
type ObservableValue interface {
	Get() interface{}
	AddListener(ChangeListener) Disposer
}

// Property is the writable ObservableValue implementation.
type Property struct {
	mu        sync.Mutex
	value     interface{}
	listeners listenerRegistry
}

// NewProperty returns a Property holding the given initial value, which may
// be nil.
func NewProperty(initial interface{}) *Property {
	return &Property{value: initial}
}

func (p *Property) Get() interface{} {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.value
}

// Set stores a new value and fires listeners in registration order, passing
// the old and new values. Listeners do not fire when the value is unchanged.
func (p *Property) Set(value interface{}) {
	p.mu.Lock()
	old := p.value
	if sameValue(old, value) {
		p.mu.Unlock()
		return
	}
	p.value = value
	p.mu.Unlock()
	for _, fn := range p.listeners.snapshot() {
		fn.(ChangeListener)(old, value)
	}
}

// AddListener registers a change listener. The returned Disposer removes it;
// removal is idempotent.
func (p *Property) AddListener(fn ChangeListener) Disposer {
	return p.listeners.add(fn)
}

// sameValue compares without panicking on uncomparable dynamic types;
// uncomparable values always count as changed.
func sameValue(a, b interface{}) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if !reflect.TypeOf(a).Comparable() || !reflect.TypeOf(b).Comparable() {
		return false
	}
	return a == b
}
