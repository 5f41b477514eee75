package heap

import (
	"bufio"
	"io"
	"os"
	"strconv"

	"github.com/pkg/errors"
)

// NewHeapFromReader reads whitespace separated integers until r is drained.
// The values are kept in input order; call Build to order them.
func NewHeapFromReader(r io.Reader, opts ...Option) (*Heap, error) {
	values, err := ReadValues(r)
	if err != nil {
		return nil, err
	}
	h := NewHeap(opts...)
	h.buf = values
	return h, nil
}

// NewHeapFromFile is NewHeapFromReader over the file at path.
func NewHeapFromFile(path string, opts ...Option) (*Heap, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(ErrSourceUnavailable, "open %s: %v", path, err)
	}
	defer f.Close()

	return NewHeapFromReader(f, opts...)
}

// ReadValues parses whitespace separated integers from r.
func ReadValues(r io.Reader) ([]int, error) {
	scanner := bufio.NewScanner(r)
	scanner.Split(bufio.ScanWords)

	values := make([]int, 0)
	for n := 1; scanner.Scan(); n++ {
		v, err := strconv.Atoi(scanner.Text())
		if err != nil {
			return nil, errors.Wrapf(ErrMalformedInput, "token %d %q is not an integer", n, scanner.Text())
		}
		values = append(values, v)
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrapf(ErrSourceUnavailable, "read: %v", err)
	}
	return values, nil
}
