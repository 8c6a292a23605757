package stream

import (
	"reflect"
	"testing"
)

func TestGenerator(t *testing.T) {
	g := Generate(func(p *Producer[int]) {
		for i := 1; i <= 3; i++ {
			p.Yield(i)
		}
	})

	items, err := Collect[int](g)
	if err != nil {
		t.Fatal(err)
	}
	if expect := []int{1, 2, 3}; !reflect.DeepEqual(items, expect) {
		t.Errorf("wrong items: got %v, expect %v", items, expect)
	}
	if !g.Done() {
		t.Error("generator not done after exhaustion")
	}

	expectPolls[int](t, g, End[int](), End[int]())
}

func TestGeneratorLazy(t *testing.T) {
	started := false
	g := Generate(func(p *Producer[int]) {
		started = true
		p.Yield(1)
	})

	if started {
		t.Fatal("producer function ran before the first poll")
	}
	if p := g.Poll(); !started {
		t.Fatalf("producer function did not run on poll (got %v)", p)
	}
	g.Release()
}

func TestGeneratorStop(t *testing.T) {
	unwound := false
	g := Generate(func(p *Producer[int]) {
		defer func() { unwound = true }()
		for i := 0; ; i++ {
			p.Yield(i)
		}
	})

	expectPolls[int](t, g, Item(0), Item(1))

	g.Stop()
	g.Stop() // idempotent

	expectPolls[int](t, g, End[int](), End[int]())
	if !unwound {
		t.Error("producer defers did not run after stop")
	}
	if !g.Done() {
		t.Error("generator not done after stop")
	}
}

func TestGeneratorStopBeforeFirstPoll(t *testing.T) {
	started := false
	g := Generate(func(p *Producer[int]) {
		started = true
		p.Yield(1)
	})

	g.Stop()

	expectPolls[int](t, g, End[int]())
	if started {
		t.Error("producer function ran after an early stop")
	}
}

func TestGeneratorRelease(t *testing.T) {
	unwound := false
	g := Generate(func(p *Producer[int]) {
		defer func() { unwound = true }()
		for i := 0; ; i++ {
			p.Yield(i)
		}
	})

	g.Poll()
	g.Release()
	g.Release() // no effect on a completed generator

	if !unwound {
		t.Error("producer defers did not run after release")
	}
	if !g.Done() {
		t.Error("generator not done after release")
	}
}

func TestGeneratorOnExhausted(t *testing.T) {
	calls := 0
	g := Generate(func(p *Producer[string]) {
		p.Yield("a")
	})
	s := OnExhausted[string](g, func() { calls++ })

	expectPolls(t, s, Item("a"), End[string](), End[string]())
	if calls != 1 {
		t.Errorf("wrong number of action calls: got %d, expect 1", calls)
	}
}

func TestGeneratorStopOnExhausted(t *testing.T) {
	calls := 0
	g := Generate(func(p *Producer[string]) {
		for {
			p.Yield("a")
		}
	})
	s := OnExhausted[string](g, func() { calls++ })

	expectPolls(t, s, Item("a"))

	// Stopping the generator makes the next poll report Exhausted, which
	// must fire the action like natural exhaustion does.
	g.Stop()

	expectPolls(t, s, End[string](), End[string]())
	if calls != 1 {
		t.Errorf("wrong number of action calls after stop: got %d, expect 1", calls)
	}
}
