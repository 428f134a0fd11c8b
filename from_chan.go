package reactorfx

// FromChan adapts a receive channel into a sequence. The channel closing
// completes the sequence; cancelling the subscription stops the drain without
// closing the source channel.
func FromChan(source <-chan interface{}) Observable {
	return FromListener(func(e Emitter) (Disposer, error) {
		done := make(chan struct{})
		go func() {
			for {
				select {
				case v, ok := <-source:
					if !ok {
						e.Complete()
						return
					}
					e.Next(v)
				case <-done:
					return
				}
			}
		}()
		return func() { close(done) }, nil
	})
}
