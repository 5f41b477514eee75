package command

import (
	"context"
	"sync"
	"time"

	"github.com/pkg/errors"

	"github.com/tufitko/minmaxheap/pkg/heap"
	"github.com/tufitko/minmaxheap/pkg/logging"
	"github.com/tufitko/minmaxheap/pkg/metric"
	"github.com/tufitko/minmaxheap/pkg/retry"
)

// Dispatcher owns a single heap and serializes every command against it.
type Dispatcher struct {
	mu       sync.Mutex
	heap     *heap.Heap
	built    bool
	logger   logging.Logger
	metrics  *metric.HeapMetrics
	load     retry.Retry
	repaired bool
}

type Option func(*Dispatcher)

func WithLogger(logger logging.Logger) Option {
	return func(d *Dispatcher) {
		d.logger = logger
	}
}

func WithMetrics(m *metric.HeapMetrics) Option {
	return func(d *Dispatcher) {
		d.metrics = m
	}
}

// WithLoadRetry sets how Build retries a source file that cannot be opened.
func WithLoadRetry(r retry.Retry) Option {
	return func(d *Dispatcher) {
		d.load = r
	}
}

// WithRepairedDelete makes Delete bubble the moved value up as well.
func WithRepairedDelete(enabled bool) Option {
	return func(d *Dispatcher) {
		d.repaired = enabled
	}
}

func NewDispatcher(opts ...Option) *Dispatcher {
	d := &Dispatcher{
		logger: logging.DefaultLogger,
		load:   retry.NewOnce(),
	}
	for _, opt := range opts {
		opt(d)
	}
	d.heap = heap.NewHeap(heap.WithLogger(d.logger))
	return d
}

// Built reports whether a Build command has succeeded.
func (d *Dispatcher) Built() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.built
}

func (d *Dispatcher) Snapshot() (elements []int, valid bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.heap.Snapshot(), d.heap.Valid()
}

func (d *Dispatcher) Execute(ctx context.Context, cmd Command) (Result, error) {
	start := time.Now()

	d.mu.Lock()
	defer d.mu.Unlock()

	res, err := d.apply(ctx, cmd)
	d.observe(cmd, start, err)
	if err != nil {
		return Result{Kind: cmd.Kind}, err
	}

	res.Kind = cmd.Kind
	res.Elements = d.heap.Snapshot()
	res.Valid = d.heap.Valid()
	if d.metrics != nil {
		d.metrics.Size.Set(float64(len(res.Elements)))
		if res.Valid {
			d.metrics.InvariantViolations.Set(0)
		} else {
			d.metrics.InvariantViolations.Set(1)
		}
	}
	if !res.Valid {
		ancestor, descendant, _ := d.heap.Violation()
		d.logger.WithFields(logging.Fields{
			"command":    cmd.Kind.String(),
			"ancestor":   ancestor,
			"descendant": descendant,
		}).Warn("heap ordering broken after command")
	}
	return res, nil
}

func (d *Dispatcher) apply(ctx context.Context, cmd Command) (Result, error) {
	var res Result
	switch cmd.Kind {
	case Build:
		h, err := d.source(ctx, cmd)
		if err != nil {
			return res, err
		}
		h.Build()
		d.heap = h
		d.built = true
	case Insert:
		d.heap.Insert(cmd.Value)
	case Delete:
		if d.repaired {
			return res, d.heap.DeleteAtRepaired(cmd.Index)
		}
		return res, d.heap.DeleteAt(cmd.Index)
	case ExtractMax:
		v, err := d.heap.ExtractMax()
		if err != nil {
			return res, err
		}
		res.Value = &v
	case ExtractMin:
		v, err := d.heap.ExtractMin()
		if err != nil {
			return res, err
		}
		res.Value = &v
	case Heapify:
		d.heap.Heapify(cmd.Index)
	case Snapshot:
	case Exit:
		res.Exit = true
	default:
		return res, errors.Wrapf(ErrUnknownCommand, "%s", cmd.Kind)
	}
	return res, nil
}

func (d *Dispatcher) source(ctx context.Context, cmd Command) (*heap.Heap, error) {
	if cmd.Path == "" {
		return heap.NewHeapFrom(cmd.Values, heap.WithLogger(d.logger)), nil
	}

	var h *heap.Heap
	err := d.load.DoContext(ctx, func(attempt int) error {
		var err error
		h, err = heap.NewHeapFromFile(cmd.Path, heap.WithLogger(d.logger))
		if errors.Is(err, heap.ErrMalformedInput) {
			return retry.Stop(err)
		}
		if err != nil {
			d.logger.WithError(err).WithFields(logging.Fields{
				"path":    cmd.Path,
				"attempt": attempt,
			}).Warn("heap source load failed")
		}
		return err
	})
	return h, retry.Cause(err)
}

func (d *Dispatcher) observe(cmd Command, start time.Time, err error) {
	logger := d.logger.WithField("command", cmd.Kind.String())
	if err != nil {
		logger.WithError(err).Info("command rejected")
	} else {
		logger.Debug("command applied")
	}

	if d.metrics == nil {
		return
	}
	op := cmd.Kind.String()
	d.metrics.OperationsCount.WithLabelValues(op).Inc()
	d.metrics.OperationDurationSeconds.WithLabelValues(op).Observe(time.Since(start).Seconds())
	if err != nil {
		d.metrics.OperationErrorsCount.WithLabelValues(op, Reason(err)).Inc()
	}
}

// Reason maps an error to a short, stable label.
func Reason(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, heap.ErrEmptyHeap):
		return "empty"
	case errors.Is(err, heap.ErrIndexOutOfRange):
		return "out_of_range"
	case errors.Is(err, heap.ErrMalformedInput):
		return "malformed_input"
	case errors.Is(err, heap.ErrSourceUnavailable):
		return "source_unavailable"
	case errors.Is(err, ErrUnknownCommand):
		return "unknown_command"
	case errors.Is(err, ErrPathNotAllowed):
		return "path_not_allowed"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "canceled"
	default:
		return "other"
	}
}
