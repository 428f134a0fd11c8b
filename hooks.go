package reactorfx

// CompleteHook runs exactly once when the subscription it was added to tears
// down, whether by cancellation or by a terminal signal.
type CompleteHook func()

// hooks collects completion hooks. Not goroutine safe on its own; holders
// guard it with their own lock.
type hooks struct {
	slice    []CompleteHook
	finished bool
}

// Add registers a hook, running it immediately if teardown already happened.
func (h *hooks) Add(hook CompleteHook) {
	if h.finished {
		hook()
		return
	}
	h.slice = append(h.slice, hook)
}

func (h *hooks) callHooks() {
	if h.finished {
		return
	}
	h.finished = true
	for _, hook := range h.slice {
		hook()
	}
	h.slice = nil
}
