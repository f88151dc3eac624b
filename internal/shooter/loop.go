package shooter

import (
	"context"
	"time"

	"github.com/vovakirdan/skyraid/internal/core"
)

// InputSource is polled once per frame by Loop.
type InputSource interface {
	Poll() core.InputFrame
}

// clearer is implemented by canvases that must be wiped before each frame.
type clearer interface {
	Clear()
}

// Loop drives a World at a capped frame rate until the session ends, the
// frame limit is reached or the context is cancelled. Frames that fall
// behind are dropped rather than caught up.
type Loop struct {
	World  *World
	Input  InputSource
	Canvas Canvas // Optional
	FPS    int    // 0 runs frames back to back

	// MaxFrames stops the loop after that many steps; 0 means no limit.
	MaxFrames int

	// OnFrame, when set, observes every step report.
	OnFrame func(StepReport)
}

// Run executes frames until the world stops running. Cancelling ctx quits
// immediately and returns the context error with the last report.
func (l *Loop) Run(ctx context.Context) (StepReport, error) {
	var tick <-chan time.Time
	if l.FPS > 0 {
		t := time.NewTicker(time.Second / time.Duration(l.FPS))
		defer t.Stop()
		tick = t.C
	}

	var last StepReport
	for steps := 0; l.MaxFrames <= 0 || steps < l.MaxFrames; steps++ {
		if tick != nil {
			select {
			case <-ctx.Done():
				return last, ctx.Err()
			case <-tick:
			}
		} else if err := ctx.Err(); err != nil {
			return last, err
		}

		in := core.NewInputFrame()
		if l.Input != nil {
			in = l.Input.Poll()
		}
		last = l.World.Step(in)
		l.draw()
		if l.OnFrame != nil {
			l.OnFrame(last)
		}
		if last.Outcome != OutcomeRunning {
			return last, nil
		}
	}
	return last, nil
}

func (l *Loop) draw() {
	if l.Canvas == nil {
		return
	}
	if c, ok := l.Canvas.(clearer); ok {
		c.Clear()
	}
	l.World.Render(l.Canvas)
	l.Canvas.Present()
}
