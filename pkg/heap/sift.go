package heap

import "github.com/tufitko/minmaxheap/pkg/logging"

// heapify repairs the subtree rooted at i, assuming both subtrees below it
// already satisfy the invariant. Out-of-range indexes are reported and ignored.
func (h *Heap) heapify(i int) {
	if !h.exists(i) {
		h.logger.WithFields(logging.Fields{
			"index": i,
			"len":   len(h.buf),
		}).Warn("heapify index not in heap, no action taken")
		return
	}
	h.siftDown(i, polarityOf(i))
}

// siftDown looks two levels down from i. A direct child winning is terminal;
// a grandchild winning may push a value onto the opposite-polarity level in
// between, which is repaired before descending from the grandchild.
func (h *Heap) siftDown(i int, pol Polarity) {
	if h.leftChild(i) < 0 {
		return
	}

	m := h.bestDescendant(i, pol, false)
	if isGrandchildOf(i, m) {
		if !h.better(m, i, pol) {
			return
		}
		h.swap(i, m)
		if p := h.parent(m); h.better(p, m, pol) {
			h.swap(m, p)
		}
		h.siftDown(m, pol)
		return
	}

	if h.better(m, i, pol) {
		h.swap(m, i)
	}
}

// bubbleUp moves a freshly placed value at i towards the root.
func (h *Heap) bubbleUp(i int) {
	p := h.parent(i)
	if p < 0 {
		return
	}

	pol := polarityOf(i)
	if h.better(p, i, pol) {
		// the value belongs to the parent's chain
		h.swap(i, p)
		h.bubbleUpLevel(p, pol.opposite())
		return
	}
	h.bubbleUpLevel(i, pol)
}

// bubbleUpLevel climbs same-polarity ancestors only; the parent relation is
// already settled by the time it is called.
func (h *Heap) bubbleUpLevel(i int, pol Polarity) {
	g := h.grandparent(i)
	if g < 0 || !h.better(i, g, pol) {
		return
	}
	h.swap(i, g)
	h.bubbleUpLevel(g, pol)
}
