package reactorfx

import "sync"

// Merge emits the values of all source sequences as they arrive and completes
// once every source has terminated. An error from any source terminates the
// merged sequence and unsubscribes the rest.
func Merge(sources ...Observable) Observable {
	return FromListener(func(e Emitter) (Disposer, error) {
		subs := make([]Subscription, 0, len(sources))
		for _, src := range sources {
			subs = append(subs, src.Subscribe())
		}

		var wg sync.WaitGroup
		for _, sub := range subs {
			wg.Add(1)
			go func(sub Subscription) {
				defer wg.Done()
				for n := range sub.Events() {
					switch n.Kind() {
					case OnNext:
						e.Next(n.Value())
					case OnError:
						e.Fail(n.Err())
					}
				}
			}(sub)
		}
		go func() {
			wg.Wait()
			e.Complete()
		}()

		return func() {
			for _, sub := range subs {
				if sub.IsSubscribed() {
					sub.Unsubscribe()
				}
			}
		}, nil
	})
}
