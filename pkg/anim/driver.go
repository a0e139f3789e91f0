package anim

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/taigrr/tumble/internal/logger"
	"github.com/taigrr/tumble/pkg/render"
)

// Sink receives rendered frames.
type Sink interface {
	// Begin prepares the output, e.g. clears the screen and hides the cursor.
	Begin() error
	// Frame writes one frame.
	Frame(fb *render.Framebuffer, index int) error
	// End restores the output. It runs on every exit path of Driver.Run.
	End() error
	// Live reports whether frames are shown as they are produced and so
	// need pacing.
	Live() bool
}

// Resizer is implemented by sinks that can report a new output size.
type Resizer interface {
	// PendingResize returns a size change seen since the last call.
	PendingResize() (width, height int, ok bool)
}

// Options configures a Driver.
type Options struct {
	FrameRate  int   // Frames per second for live sinks and script sleeps
	FrameCount int   // Frames to produce, ≤ 0 runs until cancelled
	Rates      Rates // Spin rates in turns per frame
	SpinUp     bool  // Ease the spin in from rest
}

// DefaultOptions returns 60 fps, unbounded, with DefaultRates.
func DefaultOptions() Options {
	return Options{
		FrameRate: 60,
		Rates:     DefaultRates,
	}
}

// Driver renders frames in sequence and passes them to a sink.
type Driver struct {
	r    *render.Renderer
	sink Sink
	opts Options
	spin *Spinner

	frames int
	stats  render.Stats
}

// NewDriver creates a driver for r writing to sink.
func NewDriver(r *render.Renderer, sink Sink, opts Options) *Driver {
	if opts.FrameRate <= 0 {
		opts.FrameRate = DefaultOptions().FrameRate
	}
	return &Driver{
		r:    r,
		sink: sink,
		opts: opts,
		spin: NewSpinner(opts.Rates, opts.FrameRate, opts.SpinUp),
	}
}

// Period returns the target time between frames.
func (d *Driver) Period() time.Duration {
	return time.Second / time.Duration(d.opts.FrameRate)
}

// Run renders until the frame count is reached or ctx is cancelled.
// Cancellation is a normal stop and returns nil. The sink's End is called
// on every path, including panics.
func (d *Driver) Run(ctx context.Context) (err error) {
	if err := d.sink.Begin(); err != nil {
		return fmt.Errorf("begin output: %w", err)
	}
	defer func() {
		endErr := d.sink.End()
		switch {
		case endErr == nil:
		case err == nil:
			err = fmt.Errorf("end output: %w", endErr)
		default:
			logger.Error("end output", zap.Error(endErr))
		}
	}()

	frames := NewFrames(d.opts.FrameCount)
	logger.Debug("animation started",
		zap.String("mesh", d.r.Mesh().Name),
		zap.Int("frames", d.opts.FrameCount),
		zap.Int("fps", d.opts.FrameRate),
		zap.Bool("live", d.sink.Live()))
	defer func() {
		logger.Debug("animation stopped",
			zap.Int("frames", d.frames),
			zap.Int("trianglesDrawn", d.stats.TrianglesDrawn),
			zap.Int("trianglesCulled", d.stats.TrianglesCulled),
			zap.Int("pixelsWritten", d.stats.PixelsWritten),
			zap.Int("pixelsRejected", d.stats.PixelsRejected))
	}()

	for {
		i, ok := frames.Next()
		if !ok {
			return nil
		}
		if ctx.Err() != nil {
			return nil
		}
		start := time.Now()

		if rs, ok := d.sink.(Resizer); ok {
			if w, h, ok := rs.PendingResize(); ok {
				if err := d.r.Resize(w, h); err != nil {
					logger.Warn("ignoring resize", zap.Error(err))
				}
			}
		}

		d.r.Camera.SetRotation(d.spin.Next())
		d.stats.Add(d.r.Render())
		if err := d.sink.Frame(d.r.Framebuffer(), i); err != nil {
			return fmt.Errorf("write frame %d: %w", i, err)
		}
		d.frames++

		if d.sink.Live() && !sleep(ctx, d.Period()-time.Since(start)) {
			return nil
		}
	}
}

// Frames returns how many frames were written.
func (d *Driver) Frames() int {
	return d.frames
}

// Stats returns the accumulated rasterizer statistics.
func (d *Driver) Stats() render.Stats {
	return d.stats
}

// sleep waits for dur or until ctx is done. It reports false on
// cancellation.
func sleep(ctx context.Context, dur time.Duration) bool {
	if dur <= 0 {
		return ctx.Err() == nil
	}
	timer := time.NewTimer(dur)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
