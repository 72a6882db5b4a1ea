package dataset

import (
	"runtime"

	"gonum.org/v1/gonum/mat"
)

// Stream is a finite, non-restartable sequence of records, one per
// window, delivered in window order.
type Stream struct {
	conv    *Converter
	windows [][]*mat.Dense
	workers int
}

func newStream(conv *Converter, windows [][]*mat.Dense, workers int) *Stream {
	if workers < 1 {
		workers = runtime.NumCPU()
	}
	return &Stream{conv: conv, windows: windows, workers: workers}
}

// Len reports the number of records the stream will yield.
func (s *Stream) Len() int { return len(s.windows) }

type convResult struct {
	rec *Record
	err error
}

// Each converts every window and hands the records to yield in window
// order. Conversion fans out across the worker pool; at most workers
// results are in flight at once, so peak memory stays bounded while the
// consumer still observes the sequential order. The first conversion or
// yield error stops delivery; remaining in-flight workers are drained.
func (s *Stream) Each(yield func(*Record) error) error {
	sem := make(chan struct{}, s.workers)
	pending := make(chan chan convResult, s.workers)

	go func() {
		for _, w := range s.windows {
			out := make(chan convResult, 1)
			pending <- out
			sem <- struct{}{}
			go func(w []*mat.Dense, out chan<- convResult) {
				defer func() { <-sem }()
				rec, err := s.conv.Convert(w)
				out <- convResult{rec, err}
			}(w, out)
		}
		close(pending)
	}()

	var firstErr error
	for out := range pending {
		r := <-out
		if firstErr != nil {
			continue
		}
		if r.err != nil {
			firstErr = r.err
			continue
		}
		if err := yield(r.rec); err != nil {
			firstErr = err
		}
	}
	return firstErr
}

// Collect drains the stream into a slice. Intended for small splits and
// tests; production writing goes through Each to keep one window in
// memory at a time.
func (s *Stream) Collect() ([]*Record, error) {
	recs := make([]*Record, 0, s.Len())
	err := s.Each(func(r *Record) error {
		recs = append(recs, r)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return recs, nil
}
