package audit

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

const (
	defaultBufferSize   = 1024
	defaultDrainTimeout = 5 * time.Second
)

// AsyncOption configures an AsyncSink.
type AsyncOption func(*AsyncSink)

// WithBufferSize sets the channel buffer capacity. Default: 1024.
func WithBufferSize(n int) AsyncOption {
	return func(a *AsyncSink) { a.bufSize = n }
}

// WithOnError sets the callback invoked when the inner sink's Write fails.
// Default: logs a warning via slog.
func WithOnError(f func(error)) AsyncOption {
	return func(a *AsyncSink) { a.errFunc = f }
}

// AsyncSink decouples request handling from audit I/O via a buffered
// channel. Handlers write into the channel; a background goroutine drains
// it to the wrapped sink. A full buffer drops the entry rather than stall
// a diagnosis, and inner errors go to errFunc instead of the caller.
type AsyncSink struct {
	inner     Sink
	ch        chan Entry
	done      chan struct{}
	errFunc   func(error)
	bufSize   int
	closeOnce sync.Once
}

// NewAsyncSink wraps a Sink in a channel-based writer. The background drain
// goroutine starts immediately.
func NewAsyncSink(inner Sink, opts ...AsyncOption) *AsyncSink {
	a := &AsyncSink{
		inner:   inner,
		bufSize: defaultBufferSize,
		errFunc: func(err error) { slog.Warn("audit write error", "error", err) },
	}
	for _, opt := range opts {
		opt(a)
	}
	a.ch = make(chan Entry, a.bufSize)
	a.done = make(chan struct{})
	go a.drain()
	return a
}

// Write sends the entry into the channel. Never blocks: when the buffer is
// full the entry is dropped with a warning.
func (a *AsyncSink) Write(_ context.Context, e Entry) error {
	select {
	case a.ch <- e:
	default:
		slog.Warn("audit buffer full, dropping entry", "id", e.ID)
	}
	return nil
}

// Close closes the channel, waits for the drain goroutine to finish
// (with a timeout), then closes the inner sink.
func (a *AsyncSink) Close() error {
	var err error
	a.closeOnce.Do(func() {
		close(a.ch)
		select {
		case <-a.done:
		case <-time.After(defaultDrainTimeout):
			slog.Warn("audit drain timed out")
		}
		err = a.inner.Close()
	})
	return err
}

// drain reads entries from the channel and writes them to the inner sink.
func (a *AsyncSink) drain() {
	defer close(a.done)
	for e := range a.ch {
		if err := a.inner.Write(context.Background(), e); err != nil {
			a.errFunc(err)
		}
	}
}
