package stream

// OnExhausted wraps source so that fn runs exactly once, the first time
// source reports Exhausted. The action runs synchronously during that poll,
// after the inner source reported exhaustion and before the result is
// returned, so a caller observing the first Exhausted result is guaranteed
// the action has already run.
//
// Every poll result is forwarded unchanged. Pending and Failed results do not
// trigger the action; neither does abandoning the adapter before exhaustion.
// A nil fn leaves the source's behavior unmodified.
func OnExhausted[T any](source Source[T], fn func()) Source[T] {
	return &finalizeSource[T]{source: source, fn: fn}
}

type finalizeSource[T any] struct {
	source Source[T]
	fn     func() // cleared on first invocation
}

func (f *finalizeSource[T]) Poll() Poll[T] {
	p := f.source.Poll()
	if p.state == Exhausted && f.fn != nil {
		fn := f.fn
		f.fn = nil
		fn()
	}
	return p
}
