package stream

// Fuse wraps source so that once it reports Exhausted it is never polled
// again; the fused source keeps reporting Exhausted on its own. Use it around
// sources whose behavior after exhaustion is undefined.
func Fuse[T any](source Source[T]) Source[T] {
	return &fusedSource[T]{source: source}
}

type fusedSource[T any] struct {
	source Source[T]
	done   bool
}

func (f *fusedSource[T]) Poll() Poll[T] {
	if f.done {
		return End[T]()
	}
	p := f.source.Poll()
	if p.state == Exhausted {
		f.done = true
		f.source = nil
	}
	return p
}
