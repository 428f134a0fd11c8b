// Package tcellfx binds reactorfx to tcell: the terminal's single event-loop
// goroutine plays the toolkit UI thread. A Looper owns the loop, registers
// the platform dispatch primitive, and exposes screen events as an
// EventTarget so the reactorfx factories work against it directly.
package tcellfx

import (
	"errors"
	"sync"
	"sync/atomic"

	"github.com/gdamore/tcell/v2"

	reactorfx "github.com/skroll/ReactorFX"
)

// Event kinds fired by a terminal screen.
const (
	KeyEvents    reactorfx.EventKind = "tcell.key"
	MouseEvents  reactorfx.EventKind = "tcell.mouse"
	ResizeEvents reactorfx.EventKind = "tcell.resize"
)

var ErrAlreadyStarted = errors.New("tcellfx: looper already started")

// ScreenEvent wraps a native tcell event for delivery through a sequence.
type ScreenEvent struct {
	kind   reactorfx.EventKind
	native tcell.Event
}

func (e ScreenEvent) Kind() reactorfx.EventKind {
	return e.kind
}

// Native returns the underlying tcell event.
func (e ScreenEvent) Native() tcell.Event {
	return e.native
}

// workEvent carries a dispatched callback through the screen's event queue,
// so posted work and input events stay in one ordered stream.
type workEvent struct {
	tcell.EventTime
	fn func()
}

// Looper runs the single event-loop goroutine over a tcell screen and
// implements reactorfx.EventTarget for its input events.
type Looper struct {
	screen  tcell.Screen
	running atomic.Bool
	done    chan struct{}

	mu        sync.Mutex
	nextID    int
	listeners map[reactorfx.EventKind]map[int]func(reactorfx.Event)
}

func NewLooper(screen tcell.Screen) *Looper {
	return &Looper{
		screen:    screen,
		listeners: make(map[reactorfx.EventKind]map[int]func(reactorfx.Event)),
	}
}

// Start initializes the screen, registers the platform dispatch primitive,
// and starts the event loop. tcell gives no way to identify the loop
// goroutine from the outside, so no isPlatformThread check is registered and
// every scheduled task is posted.
func (l *Looper) Start() error {
	if !l.running.CompareAndSwap(false, true) {
		return ErrAlreadyStarted
	}
	if err := l.screen.Init(); err != nil {
		l.running.Store(false)
		return err
	}
	l.done = make(chan struct{})
	reactorfx.RegisterPlatform(l.post, nil)
	go l.loop()
	return nil
}

// Stop unregisters the platform, finalizes the screen to unblock the poll,
// and waits for the loop goroutine to exit. Posted work still queued is
// dropped.
func (l *Looper) Stop() {
	if !l.running.CompareAndSwap(true, false) {
		return
	}
	reactorfx.ResetPlatform()
	l.screen.Fini()
	<-l.done
}

// post marshals a callback onto the loop goroutine. Best-effort: the event
// queue may be full or the screen already finalized.
func (l *Looper) post(fn func()) {
	ev := &workEvent{fn: fn}
	ev.SetEventNow()
	_ = l.screen.PostEvent(ev)
}

func (l *Looper) loop() {
	defer close(l.done)
	for {
		ev := l.screen.PollEvent()
		if ev == nil {
			return
		}
		switch ev := ev.(type) {
		case *workEvent:
			ev.fn()
		case *tcell.EventKey:
			l.dispatch(KeyEvents, ev)
		case *tcell.EventMouse:
			l.dispatch(MouseEvents, ev)
		case *tcell.EventResize:
			l.dispatch(ResizeEvents, ev)
		}
	}
}

// AddEventListener implements reactorfx.EventTarget. The remove func is safe
// to call more than once and from any goroutine.
func (l *Looper) AddEventListener(kind reactorfx.EventKind, handler func(reactorfx.Event)) (remove func()) {
	l.mu.Lock()
	id := l.nextID
	l.nextID++
	if l.listeners[kind] == nil {
		l.listeners[kind] = make(map[int]func(reactorfx.Event))
	}
	l.listeners[kind][id] = handler
	l.mu.Unlock()
	return func() {
		l.mu.Lock()
		delete(l.listeners[kind], id)
		l.mu.Unlock()
	}
}

func (l *Looper) dispatch(kind reactorfx.EventKind, native tcell.Event) {
	l.mu.Lock()
	handlers := make([]func(reactorfx.Event), 0, len(l.listeners[kind]))
	for _, h := range l.listeners[kind] {
		handlers = append(handlers, h)
	}
	l.mu.Unlock()
	ev := ScreenEvent{kind: kind, native: native}
	for _, h := range handlers {
		h(ev)
	}
}
