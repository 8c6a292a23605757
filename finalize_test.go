package stream

import (
	"errors"
	"reflect"
	"testing"
)

func TestOnExhaustedRunsActionExactlyOnce(t *testing.T) {
	calls := 0
	s := OnExhausted(FromSlice([]int{1, 2}), func() { calls++ })

	expectPolls(t, s, Item(1), Item(2), End[int]())
	if calls != 1 {
		t.Fatalf("wrong number of action calls: got %d, expect 1", calls)
	}

	// Keep polling past exhaustion; the action must not run again.
	expectPolls(t, s, End[int](), End[int](), End[int]())
	if calls != 1 {
		t.Errorf("action ran again after exhaustion: got %d calls, expect 1", calls)
	}
}

func TestOnExhaustedFiresOnFirstExhaustionOnly(t *testing.T) {
	calls := 0
	s := OnExhausted(scripted(Item(1), End[int](), End[int]()), func() { calls++ })

	for i, expect := range []int{0, 1, 1, 1} {
		s.Poll()
		if calls != expect {
			t.Errorf("after poll %d: got %d action calls, expect %d", i, calls, expect)
		}
	}
}

func TestOnExhaustedOrdering(t *testing.T) {
	// The caller observing an Exhausted result must already see the action's
	// effect; no other result may see it.
	done := false
	s := OnExhausted(scripted(NoItem[int](), Item(1), End[int]()), func() { done = true })

	for i := 0; i < 5; i++ {
		p := s.Poll()
		if expect := p.State() == Exhausted; done != expect {
			t.Fatalf("poll %d (%v): action done = %v, expect %v", i, p, done, expect)
		}
	}
}

func TestOnExhaustedNeverFiresWhenAbandoned(t *testing.T) {
	calls := 0
	s := OnExhausted(FromSlice([]int{1, 2, 3}), func() { calls++ })

	s.Poll()
	s.Poll()

	if calls != 0 {
		t.Errorf("action ran before exhaustion: got %d calls, expect 0", calls)
	}
}

func TestOnExhaustedForwardsResultsUnchanged(t *testing.T) {
	errBroken := errors.New("broken")
	script := []Poll[int]{Item(1), NoItem[int](), Fail[int](errBroken), Item(2), End[int]()}

	calls := 0
	s := OnExhausted(scripted(script...), func() { calls++ })

	expectPolls(t, s, script...)
	if calls != 1 {
		t.Errorf("wrong number of action calls: got %d, expect 1", calls)
	}
}

func TestOnExhaustedDoesNotFireOnFailure(t *testing.T) {
	errBroken := errors.New("broken")
	calls := 0
	s := OnExhausted(scripted(Fail[int](errBroken), Fail[int](errBroken)), func() { calls++ })

	s.Poll()
	s.Poll()
	if calls != 0 {
		t.Fatalf("action ran on failure: got %d calls, expect 0", calls)
	}

	// Exhaustion after failures still fires it.
	s.Poll()
	if calls != 1 {
		t.Errorf("wrong number of action calls after exhaustion: got %d, expect 1", calls)
	}
}

func TestOnExhaustedPreservesItemSequence(t *testing.T) {
	values := []int{4, 8, 15, 16, 23, 42}

	got, err := Collect(OnExhausted(FromSlice(values), func() {}))
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(got, values) {
		t.Errorf("wrong items: got %v, expect %v", got, values)
	}
}

func TestOnExhaustedNested(t *testing.T) {
	var order []string
	s := OnExhausted(OnExhausted(FromSlice([]int{1}), func() {
		order = append(order, "inner")
	}), func() {
		order = append(order, "outer")
	})

	if _, err := Collect(s); err != nil {
		t.Fatal(err)
	}
	if expect := []string{"inner", "outer"}; !reflect.DeepEqual(order, expect) {
		t.Errorf("wrong action order: got %v, expect %v", order, expect)
	}
}

func TestOnExhaustedNilAction(t *testing.T) {
	s := OnExhausted(FromSlice([]int{1}), nil)
	expectPolls(t, s, Item(1), End[int](), End[int]())
}
