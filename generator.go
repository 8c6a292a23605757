package stream

import "runtime"

// A Producer is handed to the function driving a Generator. It is only valid
// inside that function and must not escape to another goroutine.
type Producer[T any] struct {
	send T
	next chan struct{}
	stop bool
	done bool
}

// Yield hands v to the consumer and suspends the producer function until the
// generator is polled again. If the generator has been stopped in the
// meantime, Yield does not return; the goroutine unwinds, calling each defer
// statement in the inverse order that they were declared.
func (p *Producer[T]) Yield(v T) {
	if p.stop {
		panic("stream: cannot yield from a producer that has been stopped")
	}
	p.send = v
	p.next <- struct{}{}
	<-p.next
	if p.stop {
		runtime.Goexit()
	}
}

// A Generator runs a producer function on its own goroutine, advancing it
// only while the consumer is blocked in Poll. Control transfers back and
// forth between the two goroutines; they never run concurrently, so the
// producer function needs no synchronization with its consumer.
//
// A Generator never reports Pending: each poll either resumes the producer
// up to its next yield point or observes its completion.
type Generator[T any] struct{ p *Producer[T] }

// Generate creates a generator which executes f as entry point. f starts
// suspended; nothing runs until the first poll.
func Generate[T any](f func(*Producer[T])) *Generator[T] {
	p := &Producer[T]{
		next: make(chan struct{}),
	}

	go func() {
		defer func() {
			p.done = true
			close(p.next)
		}()

		<-p.next

		if !p.stop {
			f(p)
		}
	}()

	return &Generator[T]{p: p}
}

// Poll resumes the producer function until its next yield point, producing
// the yielded item, or until completion, reporting Exhausted. Polling after
// completion keeps reporting Exhausted.
func (g *Generator[T]) Poll() Poll[T] {
	p := g.p
	if p.done {
		return End[T]()
	}
	p.next <- struct{}{}
	if _, ok := <-p.next; !ok {
		return End[T]()
	}
	return Item(p.send)
}

// Stop interrupts the generator. On the next poll, the producer function does
// not return from its yield point; instead it unwinds its call stack, calling
// each defer statement in the inverse order that they were declared, and the
// poll reports Exhausted.
//
// Stop is idempotent, calling it multiple times or after completion of the
// generator has no effect. When abandoning a generator before exhaustion,
// call Stop and poll once more so the producer goroutine unwinds; a suspended
// producer goroutine is otherwise never collected.
func (g *Generator[T]) Stop() { g.p.stop = true }

// Done reports whether the producer function completed, either because it
// was stopped or because it returned.
func (g *Generator[T]) Done() bool { return g.p.done }

// Release interrupts the generator and drives it to completion so that the
// producer goroutine unwinds. It has no effect on a completed generator.
func (g *Generator[T]) Release() {
	if !g.p.done {
		g.Stop()
		g.Poll()
	}
}
