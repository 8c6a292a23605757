package stream

// Map returns a source producing f(v) for each item v of source. Pending,
// Exhausted and Failed results are forwarded unchanged.
func Map[T, U any](source Source[T], f func(T) U) Source[U] {
	return &mapSource[T, U]{source: source, f: f}
}

type mapSource[T, U any] struct {
	source Source[T]
	f      func(T) U
}

func (s *mapSource[T, U]) Poll() Poll[U] {
	p := s.source.Poll()
	switch p.state {
	case Ready:
		return Item(s.f(p.value))
	case Failed:
		return Fail[U](p.err)
	case Exhausted:
		return End[U]()
	default:
		return NoItem[U]()
	}
}

// Filter returns a source producing the items of source for which keep
// returns true. A poll keeps advancing the inner source until it produces an
// item that passes, or reports anything other than an item.
func Filter[T any](source Source[T], keep func(T) bool) Source[T] {
	return &filterSource[T]{source: source, keep: keep}
}

type filterSource[T any] struct {
	source Source[T]
	keep   func(T) bool
}

func (s *filterSource[T]) Poll() Poll[T] {
	for {
		p := s.source.Poll()
		if p.state != Ready || s.keep(p.value) {
			return p
		}
	}
}

// Take returns a source producing at most n items of source, then reporting
// Exhausted without polling the inner source further.
func Take[T any](source Source[T], n int) Source[T] {
	return &takeSource[T]{source: source, left: n}
}

type takeSource[T any] struct {
	source Source[T]
	left   int
}

func (s *takeSource[T]) Poll() Poll[T] {
	if s.left <= 0 {
		s.source = nil
		return End[T]()
	}
	p := s.source.Poll()
	if p.state == Ready {
		s.left--
	}
	return p
}

// Concat returns a source producing the items of each given source in turn,
// moving on to the next one when the current one reports Exhausted.
func Concat[T any](sources ...Source[T]) Source[T] {
	switch len(sources) {
	case 0:
		return Empty[T]()
	case 1:
		return sources[0]
	}
	return &concatSource[T]{sources: sources}
}

type concatSource[T any] struct {
	sources []Source[T]
}

func (s *concatSource[T]) Poll() Poll[T] {
	for len(s.sources) != 0 {
		p := s.sources[0].Poll()
		if p.state != Exhausted {
			return p
		}
		s.sources = s.sources[1:]
	}
	return End[T]()
}
