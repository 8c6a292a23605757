package stream

import (
	"fmt"
	"math"

	"github.com/streamkit/stream/checkpoint"
)

// A PageFunc fetches one page of a paginated sequence. The cursor is nil for
// the first page. The returned next cursor addresses the following page and
// is nil when the fetched page is the last one. A page may be empty without
// ending the sequence, as long as a next cursor is returned.
type PageFunc[T any] func(cursor []byte) (items []T, next []byte, err error)

// Pages returns a source producing the items of a paginated sequence, one
// page fetched at a time, each page drained item by item.
func Pages[T any](fetch PageFunc[T]) *PageSource[T] {
	return &PageSource[T]{fetch: fetch}
}

// ResumePages reconstructs a page source from a checkpoint previously taken
// with [PageSource.Checkpoint]. The fetch function must address the same
// underlying sequence; the source picks up at the exact item the checkpoint
// was taken at.
func ResumePages[T any](fetch PageFunc[T], snapshot []byte) (*PageSource[T], error) {
	c, err := checkpoint.Unmarshal(snapshot)
	if err != nil {
		return nil, err
	}
	if c.Offset > math.MaxInt {
		return nil, fmt.Errorf("stream: checkpoint offset %d out of range", c.Offset)
	}
	return &PageSource[T]{fetch: fetch, cursor: c.Token, skip: int(c.Offset)}, nil
}

// A PageSource is a source over a paginated fetch function. It is resumable:
// Checkpoint snapshots its position between any two polls.
type PageSource[T any] struct {
	fetch   PageFunc[T]
	page    []T
	pos     int
	cursor  []byte // cursor that fetched the current page
	next    []byte // cursor of the following page
	skip    int    // items to drop after the next fetch, set when resuming
	started bool
	done    bool
}

// Poll produces the next item of the current page, fetching the next page
// when the current one is drained. A fetch error is reported as a failure
// without advancing; the same fetch is retried on the next poll.
func (s *PageSource[T]) Poll() Poll[T] {
	for {
		if s.pos < len(s.page) {
			v := s.page[s.pos]
			s.pos++
			return Item(v)
		}
		if s.done {
			return End[T]()
		}
		cursor := s.cursor
		if s.started {
			if s.next == nil {
				s.done = true
				s.page = nil
				return End[T]()
			}
			cursor = s.next
		}
		items, next, err := s.fetch(cursor)
		if err != nil {
			// State is untouched so that a checkpoint taken now still
			// addresses the last page fetched; the next poll retries.
			return Fail[T](err)
		}
		s.cursor = cursor
		s.started = true
		s.page, s.pos, s.next = items, 0, next
		if s.skip != 0 {
			s.pos = min(s.skip, len(items))
			s.skip = 0
		}
	}
}

// Checkpoint snapshots the source's position. Restoring the snapshot with
// [ResumePages] refetches the current page and skips the items already
// produced, so the producer behind fetch only needs stable pages, not stable
// item offsets across the whole sequence.
func (s *PageSource[T]) Checkpoint() ([]byte, error) {
	return checkpoint.Marshal(checkpoint.Cursor{
		Token:  s.cursor,
		Offset: uint64(s.pos + s.skip),
	})
}
