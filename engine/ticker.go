package engine

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"
)

// Ticker runs a fixed-rate simulation loop with wall-clock delta times.
// The delta passed to the tick function is capped so a stall (debugger,
// laptop sleep) does not teleport entities on resume.
type Ticker struct {
	interval time.Duration
	maxDelta time.Duration
	warnTo   io.Writer
}

// TickerOption configures a Ticker.
type TickerOption func(*Ticker)

// WithTickRate sets ticks per second. Default 60.
func WithTickRate(hz int) TickerOption {
	return func(t *Ticker) {
		if hz > 0 {
			t.interval = time.Second / time.Duration(hz)
		}
	}
}

// WithMaxDelta caps the delta time handed to the tick function.
// Default 50ms.
func WithMaxDelta(d time.Duration) TickerOption {
	return func(t *Ticker) { t.maxDelta = d }
}

// NewTicker returns a loop with the given options.
func NewTicker(opts ...TickerOption) *Ticker {
	t := &Ticker{
		interval: time.Second / 60,
		maxDelta: 50 * time.Millisecond,
		warnTo:   os.Stderr,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Run calls fn once per tick with the capped elapsed seconds until the
// context is canceled or fn returns an error. Context cancellation is a
// clean stop and returns nil.
func (t *Ticker) Run(ctx context.Context, fn func(dt float32) error) error {
	ticker := time.NewTicker(t.interval)
	defer ticker.Stop()

	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			return nil
		case now := <-ticker.C:
			dt := now.Sub(last)
			last = now
			if dt > t.maxDelta {
				dt = t.maxDelta
			}
			if err := fn(t.checked(float32(dt.Seconds()))); err != nil {
				if ctx.Err() != nil {
					return nil
				}
				return err
			}
		}
	}
}

// Step runs exactly n ticks with a fixed dt, for headless and scripted
// runs.
func (t *Ticker) Step(n int, dt float32, fn func(dt float32) error) error {
	for i := 0; i < n; i++ {
		if err := fn(t.checked(dt)); err != nil {
			return err
		}
	}
	return nil
}

// checked warns on unusual delta times but passes them through
// unmodified: numeric policy belongs to each script.
func (t *Ticker) checked(dt float32) float32 {
	if dt < 0 || dt > 1 {
		fmt.Fprintf(t.warnTo, "warning: unusual delta time: %.6fs\n", dt)
	}
	return dt
}
