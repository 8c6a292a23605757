package stream

import "fmt"

// State describes the outcome of a single poll of a Source.
type State int

const (
	// Pending means the source has no item available yet. The caller should
	// poll again later; the source made no promise about when.
	Pending State = iota

	// Ready means the poll produced an item.
	Ready

	// Exhausted means the source has permanently ended. No further items
	// will ever be produced.
	Exhausted

	// Failed means the source reported an error. Failure is not terminal:
	// whether the source can produce items after a failure is up to the
	// source's own contract.
	Failed
)

func (s State) String() string {
	switch s {
	case Pending:
		return "pending"
	case Ready:
		return "ready"
	case Exhausted:
		return "exhausted"
	case Failed:
		return "failed"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Poll is the result of advancing a Source once. Depending on its state it
// carries an item (Ready), an error (Failed), or nothing (Pending, Exhausted).
type Poll[T any] struct {
	state State
	value T
	err   error
}

// Item returns a Ready poll carrying v.
func Item[T any](v T) Poll[T] {
	return Poll[T]{state: Ready, value: v}
}

// NoItem returns a Pending poll.
func NoItem[T any]() Poll[T] {
	return Poll[T]{state: Pending}
}

// End returns an Exhausted poll.
func End[T any]() Poll[T] {
	return Poll[T]{state: Exhausted}
}

// Fail returns a Failed poll carrying err. Fail panics if err is nil.
func Fail[T any](err error) Poll[T] {
	if err == nil {
		panic("stream: Fail called with nil error")
	}
	return Poll[T]{state: Failed, err: err}
}

// State returns the outcome of the poll.
func (p Poll[T]) State() State { return p.state }

// Value returns the item carried by the poll. The second return value is
// false unless the poll is Ready.
func (p Poll[T]) Value() (T, bool) {
	return p.value, p.state == Ready
}

// Err returns the error carried by the poll, or nil unless the poll is Failed.
func (p Poll[T]) Err() error { return p.err }

func (p Poll[T]) String() string {
	switch p.state {
	case Ready:
		return fmt.Sprintf("ready(%v)", p.value)
	case Failed:
		return fmt.Sprintf("failed(%v)", p.err)
	default:
		return p.state.String()
	}
}
