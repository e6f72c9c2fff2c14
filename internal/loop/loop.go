// Package loop drives a game against a session: one Step and one Update per
// frame, with cooperative frame-rate pacing.
package loop

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/qisge/qisge/internal/core"
	"github.com/qisge/qisge/internal/engine"
	"github.com/qisge/qisge/internal/registry"
)

// Stats summarizes a finished run for the session log.
type Stats struct {
	Frames   int
	Duration time.Duration
}

// Runner owns the per-frame cycle for one game run.
type Runner struct {
	Session *engine.Session
	Logger  *log.Logger
}

// Run initializes the game and loops until it stops, the quit key arrives, or
// the context is cancelled. Pacing compares frames completed against frames
// the wall clock says should have completed and sleeps one frame when ahead,
// the same scheme the sample games always used.
func (r *Runner) Run(ctx context.Context, g registry.Game, cfg core.RuntimeConfig) (Stats, error) {
	if cfg.FPS <= 0 {
		cfg.FPS = core.DefaultConfig().FPS
	}
	frameDur := time.Second / time.Duration(cfg.FPS)

	if err := g.Init(r.Session, cfg); err != nil {
		return Stats{}, fmt.Errorf("init %s: %w", g.ID(), err)
	}

	// Flush the initial scene and fetch the first snapshot.
	in, err := r.Session.Update(ctx)
	if err != nil {
		return Stats{}, err
	}

	start := time.Now()
	frames := 0

	for {
		select {
		case <-ctx.Done():
			return r.stats(frames, start), ctx.Err()
		default:
		}

		running, err := g.Step(in)
		if err != nil {
			return r.stats(frames, start), fmt.Errorf("step %s: %w", g.ID(), err)
		}
		if !running {
			return r.stats(frames, start), nil
		}

		in, err = r.Session.Update(ctx)
		if err != nil {
			return r.stats(frames, start), err
		}
		frames++

		expected := time.Since(start).Seconds() * float64(cfg.FPS)
		if float64(frames) > expected {
			if err := sleep(ctx, frameDur); err != nil {
				return r.stats(frames, start), err
			}
		}
	}
}

func (r *Runner) stats(frames int, start time.Time) Stats {
	s := Stats{Frames: frames, Duration: time.Since(start)}
	if r.Logger != nil {
		r.Logger.Info("run finished", "frames", s.Frames, "duration", s.Duration)
	}
	return s
}

// sleep waits for d unless the context ends first.
func sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
