// Package reactorfx turns GUI-toolkit event sources into push-based,
// cancellable sequences. Every factory registers a native listener when a
// consumer subscribes and removes it again when the consumer cancels or the
// sequence terminates; the Platform scheduler marshals work onto the
// toolkit's single UI thread.
package reactorfx

import "github.com/skroll/ReactorFX/beans"

// EventKind names a category of toolkit events. Toolkit bindings define
// their own kinds.
type EventKind string

// ActionEvent is the conventional kind for widget activation events.
const ActionEvent EventKind = "action"

// Event is a native toolkit event carried through a sequence.
type Event interface {
	Kind() EventKind
}

// EventTarget is anything native listeners can be attached to: a widget, a
// scene, a window, a menu item. The returned remove func deregisters the
// handler and must tolerate being called after the target is gone.
type EventTarget interface {
	AddEventListener(kind EventKind, handler func(Event)) (remove func())
}

// FromEvents emits every event of the given kind fired by target. The
// sequence never completes on its own; it ends only through cancellation.
func FromEvents(target EventTarget, kind EventKind) Observable {
	return FromListener(func(e Emitter) (Disposer, error) {
		remove := target.AddEventListener(kind, func(ev Event) {
			e.Next(ev)
		})
		return Disposer(remove), nil
	})
}

// FromActionEvents emits the target's action events.
func FromActionEvents(target EventTarget) Observable {
	return FromEvents(target, ActionEvent)
}

// FromValue emits the observable's current value at subscription time, then
// every new value as it changes. Nil values are skipped, never forwarded: a
// nil current value means no initial emission, and a change to nil emits
// nothing.
func FromValue(value beans.ObservableValue) Observable {
	return FromListener(func(e Emitter) (Disposer, error) {
		if v := value.Get(); v != nil {
			e.Next(v)
		}
		remove := value.AddListener(func(_, new interface{}) {
			if new != nil {
				e.Next(new)
			}
		})
		return Disposer(remove), nil
	})
}

// FromValueChanges emits an old/new Change record for every change of the
// observable. There is no initial emission; a change requires both sides of
// the pair. Old may be nil inside the record.
func FromValueChanges(value beans.ObservableValue) Observable {
	return FromListener(func(e Emitter) (Disposer, error) {
		remove := value.AddListener(func(old, new interface{}) {
			e.Next(beans.Change{Old: old, New: new})
		})
		return Disposer(remove), nil
	})
}

// FromList emits a full snapshot of the list after every mutation batch.
func FromList(list *beans.ObservableList) Observable {
	return FromListener(func(e Emitter) (Disposer, error) {
		remove := list.AddListener(func(beans.ListChange) {
			e.Next(list.Snapshot())
		})
		return Disposer(remove), nil
	})
}

// FromListAdditions emits each element added to the list, one emission per
// element, preserving the batch's internal order.
func FromListAdditions(list *beans.ObservableList) Observable {
	return listChanges(list).expand(func(v interface{}) []interface{} {
		return v.(beans.ListChange).Added
	})
}

// FromListRemovals emits each element removed from the list, one emission
// per element, preserving the batch's internal order.
func FromListRemovals(list *beans.ObservableList) Observable {
	return listChanges(list).expand(func(v interface{}) []interface{} {
		return v.(beans.ListChange).Removed
	})
}

func listChanges(list *beans.ObservableList) Observable {
	return FromListener(func(e Emitter) (Disposer, error) {
		remove := list.AddListener(func(change beans.ListChange) {
			e.Next(change)
		})
		return Disposer(remove), nil
	})
}

// FromMap emits a full snapshot of the map after every mutation batch.
func FromMap(m *beans.ObservableMap) Observable {
	return FromListener(func(e Emitter) (Disposer, error) {
		remove := m.AddListener(func(beans.MapChange) {
			e.Next(m.Snapshot())
		})
		return Disposer(remove), nil
	})
}

// FromMapAdditions emits every entry added to the map as a beans.MapEntry.
// Replacing a key counts as a removal of the old entry and an addition of
// the new one.
func FromMapAdditions(m *beans.ObservableMap) Observable {
	return mapChanges(m).expand(func(v interface{}) []interface{} {
		return entryValues(v.(beans.MapChange).Added)
	})
}

// FromMapRemovals emits every entry removed from the map as a beans.MapEntry.
func FromMapRemovals(m *beans.ObservableMap) Observable {
	return mapChanges(m).expand(func(v interface{}) []interface{} {
		return entryValues(v.(beans.MapChange).Removed)
	})
}

func mapChanges(m *beans.ObservableMap) Observable {
	return FromListener(func(e Emitter) (Disposer, error) {
		remove := m.AddListener(func(change beans.MapChange) {
			e.Next(change)
		})
		return Disposer(remove), nil
	})
}

func entryValues(entries []beans.MapEntry) []interface{} {
	out := make([]interface{}, len(entries))
	for i, entry := range entries {
		out[i] = entry
	}
	return out
}

// FromSet emits a full snapshot of the set after every mutation batch.
func FromSet(s *beans.ObservableSet) Observable {
	return FromListener(func(e Emitter) (Disposer, error) {
		remove := s.AddListener(func(beans.SetChange) {
			e.Next(s.Snapshot())
		})
		return Disposer(remove), nil
	})
}

// FromSetAdditions emits each element added to the set.
func FromSetAdditions(s *beans.ObservableSet) Observable {
	return setChanges(s).expand(func(v interface{}) []interface{} {
		return v.(beans.SetChange).Added
	})
}

// FromSetRemovals emits each element removed from the set.
func FromSetRemovals(s *beans.ObservableSet) Observable {
	return setChanges(s).expand(func(v interface{}) []interface{} {
		return v.(beans.SetChange).Removed
	})
}

func setChanges(s *beans.ObservableSet) Observable {
	return FromListener(func(e Emitter) (Disposer, error) {
		remove := s.AddListener(func(change beans.SetChange) {
			e.Next(change)
		})
		return Disposer(remove), nil
	})
}

// FromArray emits the new array snapshot after every mutation.
func FromArray(a *beans.ObservableArray) Observable {
	return FromListener(func(e Emitter) (Disposer, error) {
		remove := a.AddListener(func(change beans.ArrayChange) {
			e.Next(change.New)
		})
		return Disposer(remove), nil
	})
}

// FromArrayChanges emits an old/new snapshot Change record after every
// mutation.
func FromArrayChanges(a *beans.ObservableArray) Observable {
	return FromListener(func(e Emitter) (Disposer, error) {
		remove := a.AddListener(func(change beans.ArrayChange) {
			e.Next(beans.Change{Old: change.Old, New: change.New})
		})
		return Disposer(remove), nil
	})
}

// Dialog is a modal interaction whose result is observed by showing it.
// Show must invoke done exactly once: ok reports whether the user completed
// the dialog with a result rather than dismissing it.
type Dialog interface {
	Show(done func(result interface{}, ok bool))
}

// FromDialog shows the dialog on the platform scheduler and emits its result.
// Completing the dialog with a non-nil result yields exactly one emission
// followed by completion; dismissing it yields completion with no emission.
// Each subscription shows the dialog once.
func FromDialog(d Dialog) Observable {
	return FromDialogOn(d, Platform())
}

// FromDialogOn is FromDialog with an explicit scheduler, which must provide
// access to the toolkit's UI thread.
func FromDialogOn(d Dialog, s *Scheduler) Observable {
	return FromListener(func(e Emitter) (Disposer, error) {
		if _, err := s.Schedule(func() {
			d.Show(func(result interface{}, ok bool) {
				if ok && result != nil {
					e.Next(result)
				}
				e.Complete()
			})
		}); err != nil {
			return nil, err
		}
		// nothing to deregister: the completion callback is one-shot and
		// post-cancellation signals are dropped by the bridge
		return func() {}, nil
	})
}
