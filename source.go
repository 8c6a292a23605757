// Package stream implements lazy pull-based sequence producers.
//
// A Source produces its items one poll at a time, entirely driven by its
// consumer: it introduces no goroutines, locks or timers of its own, and it
// only makes progress while a caller is blocked in Poll. Sources compose; the
// adapters in this package wrap a source into another source, forwarding
// polls and results while adding one narrow behavior each.
package stream

import (
	"errors"
	"io"
	"iter"
)

// A Source produces a lazy sequence of items. Each call to Poll advances the
// source by at most one item and reports the outcome.
//
// A source must only be polled by one caller at a time. Once a source reports
// Exhausted it should keep reporting Exhausted on later polls; Fuse makes any
// source safe in that regard.
type Source[T any] interface {
	Poll() Poll[T]
}

// FromSlice returns a source producing the elements of s in order.
func FromSlice[T any](s []T) Source[T] {
	return &sliceSource[T]{items: s}
}

type sliceSource[T any] struct {
	items []T
	pos   int
}

func (s *sliceSource[T]) Poll() Poll[T] {
	if s.pos == len(s.items) {
		return End[T]()
	}
	v := s.items[s.pos]
	s.pos++
	return Item(v)
}

// FromSeq returns a source producing the values of seq.
//
// The sequence is pulled lazily; its iterator goroutine is stopped when the
// source reports exhaustion. A source abandoned before exhaustion keeps the
// iterator alive, like any other abandoned iter.Pull.
func FromSeq[T any](seq iter.Seq[T]) Source[T] {
	next, stop := iter.Pull(seq)
	return &seqSource[T]{next: next, stop: stop}
}

type seqSource[T any] struct {
	next func() (T, bool)
	stop func()
	done bool
}

func (s *seqSource[T]) Poll() Poll[T] {
	if s.done {
		return End[T]()
	}
	v, ok := s.next()
	if !ok {
		s.done = true
		s.stop()
		return End[T]()
	}
	return Item(v)
}

// FromNext adapts a Next-style producer into a source. Each poll calls next;
// a nil error produces the item, io.EOF reports exhaustion, and any other
// error is reported as a failure. Once exhausted, next is never called again.
func FromNext[T any](next func() (T, error)) Source[T] {
	return &nextSource[T]{next: next}
}

type nextSource[T any] struct {
	next func() (T, error)
	done bool
}

func (s *nextSource[T]) Poll() Poll[T] {
	if s.done {
		return End[T]()
	}
	v, err := s.next()
	switch {
	case err == nil:
		return Item(v)
	case errors.Is(err, io.EOF):
		s.done = true
		return End[T]()
	default:
		return Fail[T](err)
	}
}

// Empty returns a source that is exhausted from the start.
func Empty[T any]() Source[T] {
	return emptySource[T]{}
}

type emptySource[T any] struct{}

func (emptySource[T]) Poll() Poll[T] { return End[T]() }

// Once returns a source producing v and nothing else.
func Once[T any](v T) Source[T] {
	return &onceSource[T]{value: v}
}

type onceSource[T any] struct {
	value T
	done  bool
}

func (s *onceSource[T]) Poll() Poll[T] {
	if s.done {
		return End[T]()
	}
	s.done = true
	return Item(s.value)
}
