package stream

import (
	"iter"
	"runtime"
)

// Seq drains source as a range-over-func iterator of (item, error) pairs.
// Pending polls yield the processor and retry, so ranging over a source that
// stays Pending forever spins; only use Seq with sources that eventually
// produce. Iteration stops at the first Exhausted or Failed result; a failure
// is yielded as the final pair with a zero item.
func Seq[T any](source Source[T]) iter.Seq2[T, error] {
	return func(yield func(T, error) bool) {
		for {
			p := source.Poll()
			switch p.state {
			case Ready:
				if !yield(p.value, nil) {
					return
				}
			case Exhausted:
				return
			case Failed:
				var zero T
				yield(zero, p.err)
				return
			default:
				runtime.Gosched()
			}
		}
	}
}

// Collect drains source into a slice. It returns the items produced before
// the first failure, if any, along with that failure.
func Collect[T any](source Source[T]) ([]T, error) {
	var items []T
	for v, err := range Seq(source) {
		if err != nil {
			return items, err
		}
		items = append(items, v)
	}
	return items, nil
}
