package reactorfx

import "sync"

type liftedObservable struct {
	source observable
	op     Operator
}

func (l *liftedObservable) subscribe() subscription {
	src := l.source.subscribe()
	out := &liftedSubscriber{
		source: src,
		op:     l.op,
		events: make(chan Notification),
		unsub:  make(chan struct{}),
	}
	out.h.Add(func() { src.Unsubscribe() })
	go out.pump()
	return out
}

func (l *liftedObservable) lift(op Operator) observable {
	return &liftedObservable{source: l, op: op}
}

// liftedSubscriber pumps source notifications through the operator. All sends
// on events happen from the pump goroutine, which is also the only closer.
type liftedSubscriber struct {
	source subscription
	op     Operator
	events chan Notification
	unsub  chan struct{}
	stop   sync.Once

	// held across every delivery; Unsubscribe uses it as a barrier so no
	// notification can land downstream after cancellation returns
	deliverMu sync.Mutex

	mu     sync.Mutex
	closed bool
	h      hooks
}

func (s *liftedSubscriber) pump() {
	for ev := range s.source.Events() {
		s.op.Notify(s, ev)
	}
	// source closed: terminal already forwarded, or the consumer cancelled
	s.stop.Do(func() { close(s.unsub) })
	s.finish()
	close(s.events)
}

func (s *liftedSubscriber) Events() <-chan Notification {
	return s.events
}

// Notify delivers a notification downstream, dropping it if the consumer has
// cancelled.
func (s *liftedSubscriber) Notify(n Notification) {
	s.deliverMu.Lock()
	defer s.deliverMu.Unlock()
	select {
	case <-s.unsub:
		return
	default:
	}
	select {
	case s.events <- n:
	case <-s.unsub:
	}
}

func (s *liftedSubscriber) Unsubscribe() {
	// release any in-flight delivery, then wait it out
	s.stop.Do(func() { close(s.unsub) })
	s.deliverMu.Lock()
	s.deliverMu.Unlock()
	s.finish()
}

func (s *liftedSubscriber) finish() {
	s.mu.Lock()
	s.closed = true
	s.h.callHooks()
	s.mu.Unlock()
}

func (s *liftedSubscriber) IsSubscribed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return !s.closed && s.source.IsSubscribed()
}

func (s *liftedSubscriber) Add(hook CompleteHook) {
	s.mu.Lock()
	s.h.Add(hook)
	s.mu.Unlock()
}
