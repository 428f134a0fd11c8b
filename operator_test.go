package reactorfx

import (
	"testing"
	"time"
)

func TestFilter(t *testing.T) {
	sub := createChanObs(10, time.Millisecond).Filter(func(in interface{}) bool {
		return in.(int)%2 == 0
	}).Subscribe()
	count := 0
	for v := range sub.Values() {
		if v.(int)%2 != 0 {
			t.Errorf("the filter was ignored, got %d", v.(int))
		}
		count++
	}
	if count != 5 {
		t.Errorf("expected 5 even values, got %d", count)
	}
}

func TestMap(t *testing.T) {
	sub := createChanObs(5, time.Millisecond).Map(func(in interface{}) interface{} {
		return in.(int) * 10
	}).Subscribe()
	i := 0
	for v := range sub.Values() {
		if v.(int) != i*10 {
			t.Errorf("expected %d, got %d", i*10, v.(int))
		}
		i++
	}
}

func TestExpandFansOutInOrder(t *testing.T) {
	obs := FromListener(func(e Emitter) (Disposer, error) {
		go func() {
			e.Next([]interface{}{"a", "b", "c"})
			e.Next([]interface{}{})
			e.Next([]interface{}{"d"})
			e.Complete()
		}()
		return func() {}, nil
	}).expand(func(v interface{}) []interface{} {
		return v.([]interface{})
	})

	var got []interface{}
	for v := range obs.Subscribe().Values() {
		got = append(got, v)
	}
	want := []interface{}{"a", "b", "c", "d"}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}
}

func TestOperatorChainCancelDisposesSource(t *testing.T) {
	src := &countingSource{}
	sub := FromListener(src.register).Filter(func(interface{}) bool { return true }).Subscribe()
	sub.Unsubscribe()

	// deregistration propagates through the chain synchronously
	if _, disposed := src.counts(); disposed != 1 {
		t.Errorf("expected 1 disposal through the operator chain, got %d", disposed)
	}
}
