// Package replay executes a recorded gesture sequence against an actuation
// interface, reproducing the captured inter-command timing.
package replay

import (
	"context"
	"errors"
	"fmt"
	"time"

	"touchrec/internal/core/gesture"
)

// ErrActuationFailed marks a tap/swipe the actuation interface rejected.
// Replay halts at the first one; nothing is retried or rolled back.
var ErrActuationFailed = errors.New("actuation failed")

// Actuator is the external interface that performs gestures on the screen.
type Actuator interface {
	Tap(x, y int) error
	Swipe(x1, y1, x2, y2 int, durationMS int64) error
}

// Config bounds the replayed inter-command intervals. Captured intervals
// above MaxIntervalMS are considered recording artifacts (the operator
// walked away) and replaced by the default; intervals below MinIntervalMS
// are raised to the minimum so the target can keep up.
type Config struct {
	MinIntervalMS     int64
	MaxIntervalMS     int64
	DefaultIntervalMS int64
}

func DefaultConfig() Config {
	return Config{
		MinIntervalMS:     100,
		MaxIntervalMS:     10000,
		DefaultIntervalMS: 500,
	}
}

type Scheduler struct {
	cfg      Config
	actuator Actuator
	log      gesture.Logger
}

func NewScheduler(cfg Config, actuator Actuator, log gesture.Logger) (*Scheduler, error) {
	if actuator == nil {
		return nil, fmt.Errorf("actuator is nil")
	}
	if log == nil {
		log = gesture.NopLogger{}
	}
	if cfg.MinIntervalMS <= 0 {
		return nil, fmt.Errorf("minimum interval must be > 0, got %dms", cfg.MinIntervalMS)
	}
	if cfg.MaxIntervalMS < cfg.MinIntervalMS {
		return nil, fmt.Errorf("maximum interval %dms below minimum %dms", cfg.MaxIntervalMS, cfg.MinIntervalMS)
	}
	if cfg.DefaultIntervalMS < cfg.MinIntervalMS || cfg.DefaultIntervalMS > cfg.MaxIntervalMS {
		return nil, fmt.Errorf("default interval %dms outside [%dms, %dms]",
			cfg.DefaultIntervalMS, cfg.MinIntervalMS, cfg.MaxIntervalMS)
	}
	return &Scheduler{cfg: cfg, actuator: actuator, log: log}, nil
}

// Run executes the sequence strictly in order: sleep the (bounded) recorded
// interval, actuate, wait for the call to return, move on. It returns how
// many commands completed. Cancellation takes effect between commands; an
// in-flight actuation is allowed to finish.
func (s *Scheduler) Run(ctx context.Context, commands []gesture.Command) (int, error) {
	for i, cmd := range commands {
		if i > 0 {
			wait := s.intervalFor(cmd)
			if !s.sleepWithContext(ctx, time.Duration(wait)*time.Millisecond) {
				return i, ctx.Err()
			}
		}
		if err := ctx.Err(); err != nil {
			return i, err
		}

		s.log.Info("replaying command", "index", i+1, "total", len(commands), "kind", string(cmd.Kind))
		if err := s.execute(cmd); err != nil {
			return i, fmt.Errorf("command %d/%d: %w", i+1, len(commands), err)
		}
	}
	return len(commands), nil
}

func (s *Scheduler) intervalFor(cmd gesture.Command) int64 {
	if cmd.IntervalBeforeMS == nil {
		return s.cfg.DefaultIntervalMS
	}
	interval := *cmd.IntervalBeforeMS
	if interval > s.cfg.MaxIntervalMS {
		s.log.Warn("captured interval too long, using default",
			"interval_ms", interval, "default_ms", s.cfg.DefaultIntervalMS)
		return s.cfg.DefaultIntervalMS
	}
	if interval < s.cfg.MinIntervalMS {
		s.log.Warn("captured interval too short, using minimum",
			"interval_ms", interval, "min_ms", s.cfg.MinIntervalMS)
		return s.cfg.MinIntervalMS
	}
	return interval
}

func (s *Scheduler) execute(cmd gesture.Command) error {
	switch cmd.Kind {
	case gesture.KindTap:
		if err := s.actuator.Tap(cmd.X, cmd.Y); err != nil {
			return fmt.Errorf("%w: tap (%d,%d): %w", ErrActuationFailed, cmd.X, cmd.Y, err)
		}
	case gesture.KindSwipe:
		if err := s.actuator.Swipe(cmd.X, cmd.Y, cmd.X2, cmd.Y2, cmd.DurationMS); err != nil {
			return fmt.Errorf("%w: swipe (%d,%d)->(%d,%d): %w",
				ErrActuationFailed, cmd.X, cmd.Y, cmd.X2, cmd.Y2, err)
		}
	default:
		return fmt.Errorf("unknown command kind %q", cmd.Kind)
	}
	return nil
}

func (s *Scheduler) sleepWithContext(ctx context.Context, d time.Duration) bool {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
