package reactorfx

// Emitter is the native-facing side of a listener bridge: the registered
// callback feeds payloads and terminal signals through it. After Fail or
// Complete, or after the consumer cancels, further calls are dropped.
type Emitter interface {
	Next(interface{})
	Fail(error)
	Complete()
}

// RegisterFunc hooks a native listener up to an Emitter and returns the
// Disposer that removes the listener again. Returning an error instead makes
// the subscription fail immediately; no Disposer is involved in that case.
type RegisterFunc func(Emitter) (Disposer, error)

// FromListener converts an imperative register/deregister pair into a
// lazily-started sequence. Every Subscribe invokes register exactly once and
// owns its own native listener; there is no sharing between subscriptions.
//
// The Disposer runs exactly once per subscription: synchronously inside
// Unsubscribe, or before a terminal signal from the native side is forwarded.
// Emissions racing with cancellation are dropped; once Unsubscribe returns,
// nothing more reaches the consumer.
func FromListener(register RegisterFunc) Observable {
	return FromListenerBuffered(register, DefaultBufferCapacity)
}

// FromListenerBuffered is FromListener with an explicit per-subscription
// buffer capacity. When the native side outruns the consumer, the oldest
// buffered emission is dropped first.
func FromListenerBuffered(register RegisterFunc, capacity int) Observable {
	return wrapObservable(&bridgeObservable{register: register, capacity: capacity})
}

type bridgeObservable struct {
	register RegisterFunc
	capacity int
}

func (b *bridgeObservable) subscribe() subscription {
	sub := newBridgeSubscriber(b.capacity)
	go sub.pump()
	disposer, err := b.register(sub)
	if err != nil {
		sub.Fail(err)
		return sub
	}
	sub.setDisposer(disposer)
	return sub
}

func (b *bridgeObservable) lift(op Operator) observable {
	return &liftedObservable{source: b, op: op}
}
