package heap

import "github.com/pkg/errors"

var (
	ErrEmptyHeap         = errors.New("heap is empty")
	ErrIndexOutOfRange   = errors.New("index out of range")
	ErrMalformedInput    = errors.New("malformed input")
	ErrSourceUnavailable = errors.New("source unavailable")
)
