// Package render draws heap snapshots for people: the flat array and the
// tree level by level, each level tagged with the ordering it enforces.
package render

import (
	"io"
	"math/bits"
	"strconv"
	"strings"
)

func depth(i int) int {
	return bits.Len(uint(i)+1) - 1
}

// Array writes values as "[a, b, c]".
func Array(w io.Writer, values []int) error {
	var b strings.Builder
	b.WriteByte('[')
	for i, v := range values {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(strconv.Itoa(v))
	}
	b.WriteString("]\n")
	_, err := io.WriteString(w, b.String())
	return err
}

// Layers writes one line per tree level, "Max: " or "Min: " first, shifted
// right by two spaces for every level above the deepest one.
func Layers(w io.Writer, values []int) error {
	if len(values) == 0 {
		return nil
	}

	deepest := depth(len(values) - 1)
	var b strings.Builder
	for level, start := 0, 0; start < len(values); level, start = level+1, start*2+1 {
		end := start*2 + 1
		if end > len(values) {
			end = len(values)
		}

		if level%2 == 0 {
			b.WriteString("Max: ")
		} else {
			b.WriteString("Min: ")
		}
		b.WriteString(strings.Repeat("  ", deepest-level))
		for i := start; i < end; i++ {
			if i > start {
				b.WriteString("  ")
			}
			b.WriteString(strconv.Itoa(values[i]))
		}
		b.WriteByte('\n')
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// Heap writes both representations under their headings.
func Heap(w io.Writer, values []int) error {
	if _, err := io.WriteString(w, "Array representation:\n"); err != nil {
		return err
	}
	if err := Array(w, values); err != nil {
		return err
	}
	if _, err := io.WriteString(w, "Tree layers representation:\n"); err != nil {
		return err
	}
	return Layers(w, values)
}
