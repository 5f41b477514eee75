package heap

import "math/bits"

// Polarity is the ordering a level enforces over its whole subtree.
type Polarity int

const (
	// Max levels (even depth) hold values >= every descendant.
	Max Polarity = iota
	// Min levels (odd depth) hold values <= every descendant.
	Min
)

func (p Polarity) String() string {
	if p == Min {
		return "min"
	}
	return "max"
}

func (p Polarity) opposite() Polarity {
	if p == Min {
		return Max
	}
	return Min
}

// depth is floor(log2(i + 1)).
func depth(i int) int {
	return bits.Len(uint(i)+1) - 1
}

func polarityOf(i int) Polarity {
	if depth(i)%2 == 0 {
		return Max
	}
	return Min
}

// isGrandchildOf only tests whether i lies in the span p's grandchildren
// would occupy; it says nothing about which of those slots are populated.
func isGrandchildOf(p, i int) bool {
	leftmost := ((p+1)*2-1+1)*2 - 1
	rightmost := ((p+1)*2 + 1) * 2
	return leftmost <= i && i <= rightmost
}

func (h *Heap) exists(i int) bool {
	return i >= 0 && i < len(h.buf)
}

// parent returns -1 for the root and for indexes outside the heap.
func (h *Heap) parent(i int) int {
	if i <= 0 {
		return -1
	}
	p := (i+1)/2 - 1
	if !h.exists(p) {
		return -1
	}
	return p
}

func (h *Heap) grandparent(i int) int {
	return h.parent(h.parent(i))
}

func (h *Heap) leftChild(i int) int {
	if !h.exists(i) {
		return -1
	}
	if c := (i+1)*2 - 1; h.exists(c) {
		return c
	}
	return -1
}

func (h *Heap) rightChild(i int) int {
	if !h.exists(i) {
		return -1
	}
	if c := (i + 1) * 2; h.exists(c) {
		return c
	}
	return -1
}

// better reports whether the value at a should sit above the value at b on
// a level of the given polarity. Ties are never better.
func (h *Heap) better(a, b int, pol Polarity) bool {
	if pol == Min {
		return h.buf[a] < h.buf[b]
	}
	return h.buf[a] > h.buf[b]
}

// bestDescendant returns the index holding the extreme value (per pol) among
// the children and grandchildren of p, and p itself when includeSelf is set.
// Scan order is left child, its two children, right child, its two children;
// the first index reaching the extreme wins. Returns -1 if nothing qualifies.
func (h *Heap) bestDescendant(p int, pol Polarity, includeSelf bool) int {
	l, r := h.leftChild(p), h.rightChild(p)
	scan := [...]int{l, h.leftChild(l), h.rightChild(l), r, h.leftChild(r), h.rightChild(r)}

	best := -1
	if includeSelf && h.exists(p) {
		best = p
	}
	for _, c := range scan {
		if !h.exists(c) {
			continue
		}
		if best < 0 || h.better(c, best, pol) {
			best = c
		}
	}
	return best
}

func (h *Heap) swap(i, j int) {
	h.buf[i], h.buf[j] = h.buf[j], h.buf[i]
}
