// Package heap implements a min-max heap of ints over a dense slice.
//
// Even depths (the root is depth 0) are max levels: a value there is >= every
// value below it. Odd depths are min levels: a value there is <= every value
// below it. The maximum is always at index 0 and the minimum at index 1 or 2.
//
// A Heap is not safe for concurrent use.
package heap

import (
	"github.com/pkg/errors"

	"github.com/tufitko/minmaxheap/pkg/logging"
)

type Heap struct {
	buf    []int
	logger logging.Logger
}

type Option func(*Heap)

// WithLogger sets where diagnostics go. Defaults to logging.DefaultLogger.
func WithLogger(logger logging.Logger) Option {
	return func(h *Heap) {
		h.logger = logger
	}
}

func NewHeap(opts ...Option) *Heap {
	h := &Heap{
		buf:    make([]int, 0),
		logger: logging.DefaultLogger,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// NewHeapFrom copies values into a new heap. The order is kept as given;
// call Build to establish the heap ordering.
func NewHeapFrom(values []int, opts ...Option) *Heap {
	h := NewHeap(opts...)
	h.buf = append(h.buf, values...)
	return h
}

// Build reorders an arbitrary slice into a min-max heap, bottom-up.
func (h *Heap) Build() {
	for i := len(h.buf)/2 - 1; i >= 0; i-- {
		h.heapify(i)
	}
}

// Insert appends x and bubbles it up to its place.
func (h *Heap) Insert(x int) {
	h.buf = append(h.buf, x)
	h.bubbleUp(len(h.buf) - 1)
}

// ExtractMax removes and returns the largest value.
func (h *Heap) ExtractMax() (int, error) {
	if len(h.buf) == 0 {
		return 0, ErrEmptyHeap
	}
	return h.removeAt(0), nil
}

// ExtractMin removes and returns the smallest value.
func (h *Heap) ExtractMin() (int, error) {
	if len(h.buf) == 0 {
		return 0, ErrEmptyHeap
	}
	return h.removeAt(h.minIndex()), nil
}

// DeleteAt removes the value at index i and repairs downwards from i.
//
// The value moved into i is never bubbled up, so deleting below the second
// level can leave a smaller (or larger) value under an ancestor it should not
// sit under. DeleteAtRepaired closes that gap.
func (h *Heap) DeleteAt(i int) error {
	if !h.exists(i) {
		return errors.Wrapf(ErrIndexOutOfRange, "delete index %d, heap length %d", i, len(h.buf))
	}
	h.removeAt(i)
	return nil
}

// DeleteAtRepaired is DeleteAt followed by an upward repair of the moved value.
func (h *Heap) DeleteAtRepaired(i int) error {
	if !h.exists(i) {
		return errors.Wrapf(ErrIndexOutOfRange, "delete index %d, heap length %d", i, len(h.buf))
	}
	last := len(h.buf) - 1
	h.swap(i, last)
	h.buf = h.buf[:last]
	if h.exists(i) {
		h.bubbleUp(i)
		h.heapify(i)
	}
	return nil
}

// Heapify repairs the subtree at i. An out-of-range index is logged and
// otherwise ignored.
func (h *Heap) Heapify(i int) {
	h.heapify(i)
}

// Max returns the largest value without removing it.
func (h *Heap) Max() (int, error) {
	if len(h.buf) == 0 {
		return 0, ErrEmptyHeap
	}
	return h.buf[0], nil
}

// Min returns the smallest value without removing it.
func (h *Heap) Min() (int, error) {
	if len(h.buf) == 0 {
		return 0, ErrEmptyHeap
	}
	return h.buf[h.minIndex()], nil
}

// Snapshot returns a copy of the backing slice in array order.
func (h *Heap) Snapshot() []int {
	out := make([]int, len(h.buf))
	copy(out, h.buf)
	return out
}

func (h *Heap) Len() int { return len(h.buf) }

// minIndex picks the smallest of indexes 0..2, earliest on ties.
func (h *Heap) minIndex() int {
	m := 0
	for i := 1; i <= 2 && h.exists(i); i++ {
		if h.buf[i] < h.buf[m] {
			m = i
		}
	}
	return m
}

// removeAt swaps i with the last slot, shrinks the slice and repairs
// downwards from i. The caller guarantees i exists.
func (h *Heap) removeAt(i int) int {
	x := h.buf[i]
	last := len(h.buf) - 1
	h.swap(i, last)
	h.buf = h.buf[:last]
	if h.exists(i) {
		h.heapify(i)
	}
	return x
}
