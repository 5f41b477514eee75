package heap

// Violation returns the first ancestor/descendant pair breaking the min-max
// ordering, scanning descendants in array order and ancestors nearest first.
func (h *Heap) Violation() (ancestor, descendant int, found bool) {
	for i := 1; i < len(h.buf); i++ {
		for a := h.parent(i); a >= 0; a = h.parent(a) {
			if h.better(i, a, polarityOf(a)) {
				return a, i, true
			}
		}
	}
	return -1, -1, false
}

// Valid reports whether every value respects every ancestor.
func (h *Heap) Valid() bool {
	_, _, found := h.Violation()
	return !found
}
