package shaderbox

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"
)

// Host schedules frames. NextFrame presents the frame just drawn, dispatches
// pending window events (including resize callbacks) and blocks until the
// next tick is due. It returns false once the host has closed.
type Host interface {
	NextFrame() bool
}

// Clock supplies monotonic time.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// LoopState is the render loop's lifecycle state.
type LoopState int32

const (
	Idle LoopState = iota
	Running
	Stopped
)

func (s LoopState) String() string {
	switch s {
	case Idle:
		return "idle"
	case Running:
		return "running"
	case Stopped:
		return "stopped"
	default:
		return "unknown"
	}
}

// FrameState is recomputed every tick.
type FrameState struct {
	Frame   uint64
	Elapsed time.Duration
}

// Loop drives one draw per frame until stopped.
type Loop struct {
	rc     *RendererContext
	host   Host
	clock  Clock
	logger *slog.Logger

	onFrameError func(*FrameError)
	maxFrames    uint64

	state  atomic.Int32
	stop   atomic.Bool
	frames atomic.Uint64
	epoch  time.Time
}

// LoopOption configures a Loop.
type LoopOption func(*Loop)

// WithClock replaces the wall clock.
func WithClock(c Clock) LoopOption {
	return func(l *Loop) { l.clock = c }
}

// WithFrameErrorHandler is called for every frame that reports a backend error.
func WithFrameErrorHandler(fn func(*FrameError)) LoopOption {
	return func(l *Loop) { l.onFrameError = fn }
}

// WithMaxFrames stops the loop after n frames. Zero means unbounded.
func WithMaxFrames(n uint64) LoopOption {
	return func(l *Loop) { l.maxFrames = n }
}

// WithLogger sets the loop logger.
func WithLogger(lg *slog.Logger) LoopOption {
	return func(l *Loop) { l.logger = lg }
}

// NewLoop creates an idle loop rendering rc on host.
func NewLoop(rc *RendererContext, host Host, opts ...LoopOption) *Loop {
	l := &Loop{
		rc:     rc,
		host:   host,
		clock:  systemClock{},
		logger: defaultLogger,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Run renders frames until Stop is called, ctx is done, the host closes,
// the frame limit is reached or the device loses its context. Only a lost
// context is returned as an error; other per-frame faults are reported
// through the frame error handler and rendering continues.
func (l *Loop) Run(ctx context.Context) error {
	if !l.rc.Ready() {
		return errors.New("render loop: renderer context is not set up")
	}
	if !l.state.CompareAndSwap(int32(Idle), int32(Running)) {
		return fmt.Errorf("render loop: cannot run from state %s", l.State())
	}
	defer l.state.Store(int32(Stopped))

	l.epoch = l.clock.Now()
	l.logger.Debug("render loop started")

	for {
		if l.stop.Load() {
			l.logger.Debug("render loop stopped", "frames", l.frames.Load())
			return nil
		}
		if err := ctx.Err(); err != nil {
			l.logger.Debug("render loop cancelled", "frames", l.frames.Load(), "err", err)
			return nil
		}

		fs := l.tick()
		if err := l.rc.dev.Err(); err != nil {
			if errors.Is(err, ErrContextLost) {
				l.logger.Error("render loop aborted", "frame", fs.Frame, "err", err)
				return &FrameError{Frame: fs.Frame, Err: err}
			}
			fe := &FrameError{Frame: fs.Frame, Err: err}
			l.logger.Warn("frame failed", "frame", fs.Frame, "err", err)
			if l.onFrameError != nil {
				l.onFrameError(fe)
			}
		}

		if l.maxFrames > 0 && fs.Frame >= l.maxFrames {
			return nil
		}
		if !l.host.NextFrame() {
			l.logger.Debug("host closed", "frames", fs.Frame)
			return nil
		}
	}
}

// tick renders one frame.
func (l *Loop) tick() FrameState {
	fs := FrameState{
		Frame:   l.frames.Add(1),
		Elapsed: l.clock.Now().Sub(l.epoch),
	}
	if fs.Elapsed < 0 {
		fs.Elapsed = 0
	}

	dev := l.rc.dev
	l.rc.current.SetFloat(dev, UniformTime, float32(fs.Elapsed.Seconds()))
	dev.Clear()
	l.rc.geom.Draw(dev)
	return fs
}

// Stop asks the loop to exit before its next tick. Safe from any goroutine.
func (l *Loop) Stop() {
	l.stop.Store(true)
}

// State returns the current lifecycle state.
func (l *Loop) State() LoopState {
	return LoopState(l.state.Load())
}

// Frames returns the number of frames rendered so far.
func (l *Loop) Frames() uint64 {
	return l.frames.Load()
}
