package reactorfx

import "sync"

// Disposer removes a previously registered native listener. The bridge
// guarantees it is invoked at most once per registration, so a Disposer does
// not need its own idempotence guard.
type Disposer func()

// Disposable is a handle to something that can be torn down once.
type Disposable interface {
	Dispose()
	IsDisposed() bool
}

// NewDisposable wraps a teardown func as a Disposable that runs it at most
// once.
func NewDisposable(f func()) Disposable {
	return &funcDisposable{f: f}
}

type funcDisposable struct {
	mu   sync.Mutex
	f    func()
	done bool
}

func (d *funcDisposable) Dispose() {
	d.mu.Lock()
	if d.done {
		d.mu.Unlock()
		return
	}
	d.done = true
	f := d.f
	d.f = nil
	d.mu.Unlock()
	if f != nil {
		f()
	}
}

func (d *funcDisposable) IsDisposed() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.done
}

// CompositeDisposable owns a set of Disposables and disposes them together.
// Adding to an already-disposed composite disposes the child immediately.
type CompositeDisposable struct {
	mu       sync.Mutex
	disposed bool
	children map[Disposable]struct{}
}

func (c *CompositeDisposable) Add(d Disposable) {
	c.mu.Lock()
	if c.disposed {
		c.mu.Unlock()
		d.Dispose()
		return
	}
	if c.children == nil {
		c.children = make(map[Disposable]struct{})
	}
	c.children[d] = struct{}{}
	c.mu.Unlock()
}

// Remove drops a child without disposing it. Used by owners whose children
// retire themselves after running.
func (c *CompositeDisposable) Remove(d Disposable) {
	c.mu.Lock()
	delete(c.children, d)
	c.mu.Unlock()
}

func (c *CompositeDisposable) Dispose() {
	c.mu.Lock()
	if c.disposed {
		c.mu.Unlock()
		return
	}
	c.disposed = true
	children := c.children
	c.children = nil
	c.mu.Unlock()
	for d := range children {
		d.Dispose()
	}
}

func (c *CompositeDisposable) IsDisposed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.disposed
}
