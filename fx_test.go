package reactorfx_test

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	reactorfx "github.com/skroll/ReactorFX"
	"github.com/skroll/ReactorFX/beans"
)

func nextNotification(t *testing.T, sub reactorfx.Subscription) reactorfx.Notification {
	t.Helper()
	select {
	case n, ok := <-sub.Events():
		require.True(t, ok, "sequence ended unexpectedly")
		return n
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for a notification")
		return reactorfx.Notification{}
	}
}

func nextValue(t *testing.T, sub reactorfx.Subscription) interface{} {
	t.Helper()
	n := nextNotification(t, sub)
	require.Equal(t, reactorfx.OnNext, n.Kind(), "expected a value, got %v", n)
	return n.Value()
}

func expectComplete(t *testing.T, sub reactorfx.Subscription) {
	t.Helper()
	n := nextNotification(t, sub)
	require.Equal(t, reactorfx.OnComplete, n.Kind(), "expected completion, got %v", n)
}

func expectClosed(t *testing.T, sub reactorfx.Subscription) {
	t.Helper()
	select {
	case n, ok := <-sub.Events():
		require.False(t, ok, "expected closed stream, got %v", n)
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for the stream to close")
	}
}

func TestFromValueEmitsCurrentValueFirst(t *testing.T) {
	prop := beans.NewProperty("initial")
	sub := reactorfx.FromValue(prop).Subscribe()
	defer sub.Unsubscribe()

	assert.Equal(t, "initial", nextValue(t, sub))
	prop.Set("changed")
	assert.Equal(t, "changed", nextValue(t, sub))
}

func TestFromValueSkipsNil(t *testing.T) {
	prop := beans.NewProperty(nil)
	sub := reactorfx.FromValue(prop).Subscribe()
	defer sub.Unsubscribe()

	prop.Set(nil) // no-op, still nil
	prop.Set("first non-nil")
	// the nil initial value produced no emission; the first thing seen is
	// the change
	assert.Equal(t, "first non-nil", nextValue(t, sub))

	prop.Set(nil)
	prop.Set("after nil")
	assert.Equal(t, "after nil", nextValue(t, sub), "nil change must be skipped, not forwarded")
}

func TestFromValueChanges(t *testing.T) {
	prop := beans.NewProperty(nil)
	sub := reactorfx.FromValueChanges(prop).Subscribe()
	defer sub.Unsubscribe()

	prop.Set("a")
	prop.Set("b")

	first := nextValue(t, sub).(beans.Change)
	assert.Nil(t, first.Old)
	assert.Equal(t, "a", first.New)
	second := nextValue(t, sub).(beans.Change)
	assert.Equal(t, "a", second.Old)
	assert.Equal(t, "b", second.New)
}

func TestFromValueUnsubscribeRemovesListener(t *testing.T) {
	prop := beans.NewProperty("v")
	sub := reactorfx.FromValue(prop).Subscribe()
	assert.Equal(t, "v", nextValue(t, sub))
	sub.Unsubscribe()

	prop.Set("unseen")
	expectClosed(t, sub)
}

func TestFromListEmitsSnapshots(t *testing.T) {
	list := beans.NewObservableList("x")
	sub := reactorfx.FromList(list).Subscribe()
	defer sub.Unsubscribe()

	list.Add("y")
	assert.Equal(t, []interface{}{"x", "y"}, nextValue(t, sub))
}

func TestFromListAdditionsFanOut(t *testing.T) {
	list := beans.NewObservableList()
	sub := reactorfx.FromListAdditions(list).Subscribe()
	defer sub.Unsubscribe()

	list.AddAll("A", "B", "C")

	assert.Equal(t, "A", nextValue(t, sub))
	assert.Equal(t, "B", nextValue(t, sub))
	assert.Equal(t, "C", nextValue(t, sub))
}

func TestFromListRemovalsIgnoreAdditionsInSameBatch(t *testing.T) {
	list := beans.NewObservableList("X", "Y")
	sub := reactorfx.FromListRemovals(list).Subscribe()
	defer sub.Unsubscribe()

	// one batch: removes X and Y, adds A
	list.SetAll("A")

	assert.Equal(t, "X", nextValue(t, sub))
	assert.Equal(t, "Y", nextValue(t, sub))

	// prove A was never emitted: the next removal comes straight through
	list.Remove("A")
	assert.Equal(t, "A", nextValue(t, sub))
}

func TestFromMapAdditionsAndRemovals(t *testing.T) {
	m := beans.NewObservableMap()
	additions := reactorfx.FromMapAdditions(m).Subscribe()
	defer additions.Unsubscribe()
	removals := reactorfx.FromMapRemovals(m).Subscribe()
	defer removals.Unsubscribe()

	m.Put("k", 1)
	assert.Equal(t, beans.MapEntry{Key: "k", Value: 1}, nextValue(t, additions))

	// replacing reports the old entry removed and the new one added
	m.Put("k", 2)
	assert.Equal(t, beans.MapEntry{Key: "k", Value: 2}, nextValue(t, additions))
	assert.Equal(t, beans.MapEntry{Key: "k", Value: 1}, nextValue(t, removals))

	m.Delete("k")
	assert.Equal(t, beans.MapEntry{Key: "k", Value: 2}, nextValue(t, removals))
}

func TestFromSetAdditions(t *testing.T) {
	s := beans.NewObservableSet()
	sub := reactorfx.FromSetAdditions(s).Subscribe()
	defer sub.Unsubscribe()

	s.Add("a")
	s.Add("a") // duplicate, no change, no emission
	s.Add("b")

	assert.Equal(t, "a", nextValue(t, sub))
	assert.Equal(t, "b", nextValue(t, sub))
}

func TestFromSetRemovals(t *testing.T) {
	s := beans.NewObservableSet("a", "b")
	sub := reactorfx.FromSetRemovals(s).Subscribe()
	defer sub.Unsubscribe()

	s.Remove("missing")
	s.Remove("b")
	assert.Equal(t, "b", nextValue(t, sub))
}

func TestFromArray(t *testing.T) {
	a := beans.NewObservableArray(1, 2, 3)
	snapshots := reactorfx.FromArray(a).Subscribe()
	defer snapshots.Unsubscribe()
	changes := reactorfx.FromArrayChanges(a).Subscribe()
	defer changes.Unsubscribe()

	a.Set(1, 20)

	assert.Equal(t, []float64{1, 20, 3}, nextValue(t, snapshots))
	change := nextValue(t, changes).(beans.Change)
	assert.Equal(t, []float64{1, 2, 3}, change.Old)
	assert.Equal(t, []float64{1, 20, 3}, change.New)
}

// fakeTarget is a minimal widget with per-kind event handlers.
type fakeTarget struct {
	mu       sync.Mutex
	nextID   int
	handlers map[reactorfx.EventKind]map[int]func(reactorfx.Event)
}

type fakeEvent struct {
	kind    reactorfx.EventKind
	payload string
}

func (e fakeEvent) Kind() reactorfx.EventKind { return e.kind }

func newFakeTarget() *fakeTarget {
	return &fakeTarget{handlers: make(map[reactorfx.EventKind]map[int]func(reactorfx.Event))}
}

func (f *fakeTarget) AddEventListener(kind reactorfx.EventKind, handler func(reactorfx.Event)) func() {
	f.mu.Lock()
	id := f.nextID
	f.nextID++
	if f.handlers[kind] == nil {
		f.handlers[kind] = make(map[int]func(reactorfx.Event))
	}
	f.handlers[kind][id] = handler
	f.mu.Unlock()
	return func() {
		f.mu.Lock()
		delete(f.handlers[kind], id)
		f.mu.Unlock()
	}
}

func (f *fakeTarget) fire(ev fakeEvent) {
	f.mu.Lock()
	handlers := make([]func(reactorfx.Event), 0, len(f.handlers[ev.kind]))
	for _, h := range f.handlers[ev.kind] {
		handlers = append(handlers, h)
	}
	f.mu.Unlock()
	for _, h := range handlers {
		h(ev)
	}
}

func (f *fakeTarget) listenerCount(kind reactorfx.EventKind) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.handlers[kind])
}

func TestFromEvents(t *testing.T) {
	target := newFakeTarget()
	sub := reactorfx.FromActionEvents(target).Subscribe()

	require.Equal(t, 1, target.listenerCount(reactorfx.ActionEvent))

	target.fire(fakeEvent{kind: reactorfx.ActionEvent, payload: "click"})
	target.fire(fakeEvent{kind: "ignored"})
	target.fire(fakeEvent{kind: reactorfx.ActionEvent, payload: "click2"})

	assert.Equal(t, "click", nextValue(t, sub).(fakeEvent).payload)
	assert.Equal(t, "click2", nextValue(t, sub).(fakeEvent).payload)

	sub.Unsubscribe()
	assert.Equal(t, 0, target.listenerCount(reactorfx.ActionEvent), "cancellation must deregister the handler")
}

func TestFromEventsIndependentListeners(t *testing.T) {
	target := newFakeTarget()
	obs := reactorfx.FromActionEvents(target)
	first := obs.Subscribe()
	second := obs.Subscribe()

	assert.Equal(t, 2, target.listenerCount(reactorfx.ActionEvent))
	first.Unsubscribe()
	assert.Equal(t, 1, target.listenerCount(reactorfx.ActionEvent))
	second.Unsubscribe()
	assert.Equal(t, 0, target.listenerCount(reactorfx.ActionEvent))
}

// fakeDialog completes through whatever done callback the bridge supplies.
type fakeDialog struct {
	result interface{}
	ok     bool
	shown  int
}

func (d *fakeDialog) Show(done func(result interface{}, ok bool)) {
	d.shown++
	done(d.result, d.ok)
}

func registerDirectPlatform(t *testing.T) {
	t.Helper()
	reactorfx.RegisterPlatform(func(fn func()) { fn() }, nil)
	t.Cleanup(reactorfx.ResetPlatform)
}

func TestFromDialogResult(t *testing.T) {
	registerDirectPlatform(t)
	dialog := &fakeDialog{result: "R", ok: true}
	sub := reactorfx.FromDialog(dialog).Subscribe()

	assert.Equal(t, "R", nextValue(t, sub))
	expectComplete(t, sub)
	expectClosed(t, sub)
	assert.Equal(t, 1, dialog.shown)
}

func TestFromDialogDismissed(t *testing.T) {
	registerDirectPlatform(t)
	dialog := &fakeDialog{ok: false}
	sub := reactorfx.FromDialog(dialog).Subscribe()

	expectComplete(t, sub)
	expectClosed(t, sub)
}

func TestFromDialogWithoutPlatform(t *testing.T) {
	reactorfx.ResetPlatform()
	sub := reactorfx.FromDialog(&fakeDialog{}).Subscribe()

	n := nextNotification(t, sub)
	require.Equal(t, reactorfx.OnError, n.Kind())
	assert.ErrorIs(t, n.Err(), reactorfx.ErrPlatformNotRunning)
}

func TestFromDialogShowsOncePerSubscription(t *testing.T) {
	registerDirectPlatform(t)
	dialog := &fakeDialog{result: "R", ok: true}
	obs := reactorfx.FromDialog(dialog)

	first := obs.Subscribe()
	assert.Equal(t, "R", nextValue(t, first))
	second := obs.Subscribe()
	assert.Equal(t, "R", nextValue(t, second))
	assert.Equal(t, 2, dialog.shown)
}
