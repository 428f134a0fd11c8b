package reactorfx

// Operator transforms notifications on their way downstream. Notify may
// forward zero, one, or many notifications to the subscriber.
type Operator interface {
	Notify(Subscriber, Notification)
}

// FunctionOperator adapts a plain function to the Operator interface.
type FunctionOperator func(Subscriber, Notification)

func (o FunctionOperator) Notify(s Subscriber, n Notification) {
	o(s, n)
}

// Subscriber is the downstream-facing side of a subscription, handed to
// operators and to listener-bridge registrations.
type Subscriber interface {
	Notify(Notification)
	Add(CompleteHook)
	IsSubscribed() bool
}

// Subscription is an active consumer-side handle on a sequence. Use exactly
// one of the channel accessors per subscription; each call drains the same
// underlying event stream.
type Subscription interface {
	Events() <-chan Notification
	Values() <-chan interface{}
	Err() <-chan error
	Done() <-chan struct{}
	Unsubscribe()
	IsSubscribed() bool
	Add(CompleteHook)
}

// the internal observable interface is what fundamentally defines a sequence:
// it can be subscribed to, and derived sequences are built by lifting
type observable interface {
	subscribe() subscription
	lift(Operator) observable
}

type subscription interface {
	Events() <-chan Notification
	Unsubscribe()
	IsSubscribed() bool
	Add(CompleteHook)
}

// Observable is a lazily-started push sequence. Each Subscribe starts an
// independent upstream; nothing is shared between subscriptions.
type Observable struct {
	source observable
}

func wrapObservable(source observable) Observable {
	return Observable{source: source}
}

func (o Observable) Subscribe() Subscription {
	return wrappedSubscription{source: o.source.subscribe()}
}

func (o Observable) Lift(op Operator) Observable {
	return wrapObservable(o.source.lift(op))
}

func (o Observable) Map(m func(interface{}) interface{}) Observable {
	return o.Lift(FunctionOperator(func(sub Subscriber, n Notification) {
		if n.Kind() == OnNext {
			n = Next(m(n.Value()))
		}
		sub.Notify(n)
	}))
}

func (o Observable) Filter(f func(interface{}) bool) Observable {
	return o.Lift(FunctionOperator(func(sub Subscriber, n Notification) {
		if n.Kind() == OnNext && !f(n.Value()) {
			return
		}
		sub.Notify(n)
	}))
}

// expand fans one emission out into zero or more emissions, preserving the
// order f returns them. Terminal signals pass through untouched.
func (o Observable) expand(f func(interface{}) []interface{}) Observable {
	return o.Lift(FunctionOperator(func(sub Subscriber, n Notification) {
		if n.Kind() != OnNext {
			sub.Notify(n)
			return
		}
		for _, v := range f(n.Value()) {
			sub.Notify(Next(v))
		}
	}))
}

// ObserveOn re-delivers notifications through the given scheduler, so the
// downstream side of the sequence runs on the toolkit's UI thread. Delivery
// order is preserved; a scheduling failure surfaces as a terminal error.
func (o Observable) ObserveOn(s *Scheduler) Observable {
	return FromListener(func(e Emitter) (Disposer, error) {
		sub := o.Subscribe()
		go func() {
			for n := range sub.Events() {
				n := n
				if _, err := s.Schedule(func() { relay(e, n) }); err != nil {
					e.Fail(err)
					return
				}
			}
		}()
		return func() { sub.Unsubscribe() }, nil
	})
}

func relay(e Emitter, n Notification) {
	switch n.Kind() {
	case OnNext:
		e.Next(n.Value())
	case OnError:
		e.Fail(n.Err())
	case OnComplete:
		e.Complete()
	}
}

// wrappedSubscription is the public face of an internal subscription, adding
// the convenience drain channels.
type wrappedSubscription struct {
	source subscription
}

func (s wrappedSubscription) Events() <-chan Notification {
	return s.source.Events()
}

func (s wrappedSubscription) Unsubscribe() {
	s.source.Unsubscribe()
}

func (s wrappedSubscription) IsSubscribed() bool {
	return s.source.IsSubscribed()
}

func (s wrappedSubscription) Add(hook CompleteHook) {
	s.source.Add(hook)
}

func (s wrappedSubscription) Values() <-chan interface{} {
	out := make(chan interface{})
	go func() {
		defer close(out)
		for e := range s.source.Events() {
			if e.Kind() == OnNext {
				out <- e.Value()
			}
		}
	}()
	return out
}

func (s wrappedSubscription) Err() <-chan error {
	out := make(chan error)
	go func() {
		defer close(out)
		for e := range s.source.Events() {
			if e.Kind() == OnError {
				out <- e.Err()
				return
			}
		}
	}()
	return out
}

func (s wrappedSubscription) Done() <-chan struct{} {
	out := make(chan struct{})
	go func() {
		defer close(out)
		for range s.source.Events() {
		}
	}()
	return out
}
