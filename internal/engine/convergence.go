package engine

import (
	"context"
	"log/slog"
	"time"

	"github.com/IshaanNene/FeedStalk/internal/feed"
	"github.com/IshaanNene/FeedStalk/internal/types"
)

// Phase represents the convergence loop's lifecycle state.
type Phase int32

const (
	PhaseIdle      Phase = 0
	PhaseLoading   Phase = 1
	PhaseStalling  Phase = 2
	PhaseSatisfied Phase = 3
	PhaseExhausted Phase = 4
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseLoading:
		return "loading"
	case PhaseStalling:
		return "stalling"
	case PhaseSatisfied:
		return "satisfied"
	case PhaseExhausted:
		return "exhausted"
	default:
		return "unknown"
	}
}

// Terminal reports whether the phase ends the load loop. Both terminal
// phases hand whatever is currently loaded to extraction; Exhausted is
// a best-effort cutoff, not an error.
func (p Phase) Terminal() bool {
	return p == PhaseSatisfied || p == PhaseExhausted
}

// ConvergenceState is the loop state of one run. It is constructed
// fresh per run, owned by the controller while the loop executes, and
// returned by value when it ends. StallCount resets to 0 whenever
// LastObservedCount increases and only increments on non-increasing
// counts.
type ConvergenceState struct {
	LastObservedCount int
	StallCount        int
	Iteration         int
	Reveals           int
	Phase             Phase
}

// Controller drives the collaborator's reveal-more action until the
// target item count is reached, growth stalls, or the iteration budget
// runs out.
type Controller struct {
	target        int
	stallLimit    int
	maxIterations int
	revealDelay   time.Duration
	logger        *slog.Logger
}

// NewController creates a convergence controller.
func NewController(target, stallLimit, maxIterations int, revealDelay time.Duration, logger *slog.Logger) *Controller {
	return &Controller{
		target:        target,
		stallLimit:    stallLimit,
		maxIterations: maxIterations,
		revealDelay:   revealDelay,
		logger:        logger.With("component", "convergence"),
	}
}

// Converge runs the load-until-stable loop against src and returns the
// final state. A non-nil error means the collaborator itself failed;
// stalls and budget exhaustion are not errors.
func (c *Controller) Converge(ctx context.Context, src feed.Source) (ConvergenceState, error) {
	state := ConvergenceState{Phase: PhaseLoading}

	for {
		if err := ctx.Err(); err != nil {
			return state, err
		}

		if err := src.RevealMore(ctx); err != nil {
			return state, &types.SourceError{Op: "reveal", Err: err}
		}
		state.Reveals++
		if c.revealDelay > 0 {
			if err := sleepCtx(ctx, c.revealDelay); err != nil {
				return state, err
			}
		}

		count, err := src.ItemCount(ctx)
		if err != nil {
			return state, &types.SourceError{Op: "count", Err: err}
		}

		if count >= c.target {
			state.LastObservedCount = count
			state.Phase = PhaseSatisfied
			c.logger.Info("target reached", "count", count, "target", c.target, "iterations", state.Iteration)
			return state, nil
		}

		if count > state.LastObservedCount {
			state.LastObservedCount = count
			state.StallCount = 0
		} else {
			state.StallCount++
			state.Phase = PhaseStalling
			c.logger.Debug("no growth", "count", count, "stalls", state.StallCount)
			if state.StallCount >= c.stallLimit {
				state.Phase = PhaseExhausted
				c.logger.Info("growth stalled, giving up",
					"loaded", state.LastObservedCount,
					"target", c.target,
					"stalls", state.StallCount,
				)
				return state, nil
			}
			state.Phase = PhaseLoading
		}

		state.Iteration++
		if state.Iteration >= c.maxIterations {
			// Hard ceiling against pathological pages that keep
			// reporting growth without ever reaching the target.
			state.Phase = PhaseExhausted
			c.logger.Info("iteration budget exhausted",
				"loaded", state.LastObservedCount,
				"target", c.target,
				"iterations", state.Iteration,
			)
			return state, nil
		}
	}
}

// sleepCtx sleeps for d or until ctx is done.
func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
