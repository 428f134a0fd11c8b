package reactorfx

import "sync"

// DefaultBufferCapacity is the per-subscription buffer between a native
// callback and the downstream consumer. UI event streams are lossy-tolerant,
// so overflow drops the oldest buffered emission rather than blocking the UI
// thread or growing without bound.
const DefaultBufferCapacity = 128

// bridgeSubscriber is the subscription produced by a listener bridge. Native
// callbacks push into buf, usually from the UI thread; the pump goroutine
// moves notifications to out at whatever pace the consumer reads.
type bridgeSubscriber struct {
	buf   chan Notification
	out   chan Notification
	unsub chan struct{}
	stop  sync.Once

	// held across every delivery attempt; Unsubscribe uses it as a barrier
	// so no delivery can land after cancellation returns
	deliverMu sync.Mutex

	mu       sync.RWMutex
	closed   bool // no further emissions are accepted
	disposed bool
	disposer Disposer
	h        hooks
}

func newBridgeSubscriber(capacity int) *bridgeSubscriber {
	if capacity < 1 {
		capacity = 1
	}
	return &bridgeSubscriber{
		buf:   make(chan Notification, capacity),
		out:   make(chan Notification),
		unsub: make(chan struct{}),
	}
}

// Emitter side: called by the native listener.

func (s *bridgeSubscriber) Next(value interface{}) {
	s.mu.RLock()
	if s.closed {
		s.mu.RUnlock()
		return
	}
	s.enqueue(Next(value))
	s.mu.RUnlock()
}

func (s *bridgeSubscriber) Fail(err error) {
	s.terminate(Fail(err))
}

func (s *bridgeSubscriber) Complete() {
	s.terminate(Complete())
}

// terminate closes the emitter side, deregisters the native listener exactly
// once, then forwards the terminal signal.
func (s *bridgeSubscriber) terminate(n Notification) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	s.mu.Unlock()
	s.dispose()
	s.enqueue(n)
	s.mu.Lock()
	s.h.callHooks()
	s.mu.Unlock()
}

// enqueue buffers a notification without ever blocking the caller, dropping
// the oldest buffered one on overflow. The terminal signal always lands
// because closed is already set, so no producer can refill the slot we free.
func (s *bridgeSubscriber) enqueue(n Notification) {
	for {
		select {
		case s.buf <- n:
			return
		default:
		}
		select {
		case <-s.buf:
		default:
		}
	}
}

func (s *bridgeSubscriber) pump() {
	for {
		select {
		case n := <-s.buf:
			if !s.deliver(n) || n.IsTerminal() {
				close(s.out)
				return
			}
		case <-s.unsub:
			close(s.out)
			return
		}
	}
}

// deliver hands one notification to the consumer, unless the consumer has
// cancelled. A delivery in flight when Unsubscribe arrives is released by the
// unsub close and aborted.
func (s *bridgeSubscriber) deliver(n Notification) bool {
	s.deliverMu.Lock()
	defer s.deliverMu.Unlock()
	if s.cancelled() {
		return false
	}
	select {
	case s.out <- n:
		return true
	case <-s.unsub:
		return false
	}
}

// cancelled is true only for consumer-initiated teardown; a native terminal
// sets closed but must still be delivered.
func (s *bridgeSubscriber) cancelled() bool {
	select {
	case <-s.unsub:
		return true
	default:
		return false
	}
}

// Subscription side.

func (s *bridgeSubscriber) Events() <-chan Notification {
	return s.out
}

// Unsubscribe cancels the subscription. The native listener is deregistered
// synchronously before this returns, and no emission reaches the consumer
// afterwards: buffered and in-flight notifications are dropped.
func (s *bridgeSubscriber) Unsubscribe() {
	// release any in-flight delivery, then wait it out
	s.stop.Do(func() { close(s.unsub) })
	s.deliverMu.Lock()
	s.deliverMu.Unlock()
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()
	s.dispose()
	s.mu.Lock()
	s.h.callHooks()
	s.mu.Unlock()
}

func (s *bridgeSubscriber) IsSubscribed() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return !s.closed
}

func (s *bridgeSubscriber) Add(hook CompleteHook) {
	s.mu.Lock()
	s.h.Add(hook)
	s.mu.Unlock()
}

// dispose runs the registered Disposer at most once, no matter how many
// teardown paths race to it.
func (s *bridgeSubscriber) dispose() {
	s.mu.Lock()
	d := s.disposer
	already := s.disposed
	s.disposed = true
	s.disposer = nil
	s.mu.Unlock()
	if !already && d != nil {
		d()
	}
}

// setDisposer records the Disposer produced by registration. If teardown beat
// the registration (a listener that fires a terminal synchronously), the
// Disposer is invoked immediately so the registration never leaks.
func (s *bridgeSubscriber) setDisposer(d Disposer) {
	s.mu.Lock()
	if s.disposed {
		s.mu.Unlock()
		if d != nil {
			d()
		}
		return
	}
	s.disposer = d
	s.mu.Unlock()
}
