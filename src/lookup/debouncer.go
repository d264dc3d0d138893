package lookup

import (
	"context"
	"errors"
	"sync"
	"time"
)

// ErrSuperseded is returned to a caller whose lookup was replaced by a newer
// input before it could deliver.
var ErrSuperseded = errors.New("lookup superseded by a newer input")

type Result[K comparable, V any] struct {
	Input K
	Value V
	Err   error
}

type call[K comparable, V any] struct {
	input  K
	ctx    context.Context
	cancel context.CancelFunc
	timer  *time.Timer
	out    chan Result[K, V]
}

// Debouncer runs fetch once the input has been stable for delay. Every new
// Trigger cancels the pending or in-flight call, and a result is delivered
// only when its input is still the latest one.
type Debouncer[K comparable, V any] struct {
	delay   time.Duration
	fetch   func(ctx context.Context, input K) (V, error)
	deliver func(Result[K, V])

	mu      sync.Mutex
	current *call[K, V]
}

// NewDebouncer builds a debouncer. deliver may be nil.
func NewDebouncer[K comparable, V any](delay time.Duration, fetch func(ctx context.Context, input K) (V, error), deliver func(Result[K, V])) *Debouncer[K, V] {
	return &Debouncer[K, V]{delay: delay, fetch: fetch, deliver: deliver}
}

// Trigger schedules a lookup for input. The returned channel yields the
// result once, or is closed empty if the lookup gets superseded.
func (d *Debouncer[K, V]) Trigger(input K) <-chan Result[K, V] {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.abandonLocked()

	ctx, cancel := context.WithCancel(context.Background())
	c := &call[K, V]{input: input, ctx: ctx, cancel: cancel, out: make(chan Result[K, V], 1)}
	d.current = c
	c.timer = time.AfterFunc(d.delay, func() { d.run(c) })
	return c.out
}

// Resolve triggers a lookup and waits for its outcome.
func (d *Debouncer[K, V]) Resolve(ctx context.Context, input K) (V, error) {
	var zero V
	ch := d.Trigger(input)
	select {
	case r, ok := <-ch:
		if !ok {
			return zero, ErrSuperseded
		}
		return r.Value, r.Err
	case <-ctx.Done():
		return zero, ctx.Err()
	}
}

// Stop cancels whatever is pending.
func (d *Debouncer[K, V]) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.abandonLocked()
	d.current = nil
}

func (d *Debouncer[K, V]) abandonLocked() {
	prev := d.current
	if prev == nil {
		return
	}
	prev.cancel()
	// a timer that never fired leaves nobody else to close the channel
	if prev.timer != nil && prev.timer.Stop() {
		close(prev.out)
	}
}

func (d *Debouncer[K, V]) run(c *call[K, V]) {
	v, err := d.fetch(c.ctx, c.input)

	d.mu.Lock()
	latest := d.current != nil && d.current.input == c.input && c.ctx.Err() == nil
	if d.current == c {
		d.current = nil
	}
	d.mu.Unlock()
	c.cancel()

	if latest {
		r := Result[K, V]{Input: c.input, Value: v, Err: err}
		c.out <- r
		if d.deliver != nil {
			d.deliver(r)
		}
	}
	close(c.out)
}
