package session

import (
	"context"
	"time"
)

// Run drives the controller until ctx is cancelled or the game tops out.
// Fall steps come from a ticker at the configured interval and commands from
// input; both are handled on this goroutine one at a time, so each finishes
// its mutation and render before the next begins. A nil or closed input
// channel leaves only the fall loop running.
//
// Run returns nil when ctx is cancelled and ErrToppedOut on top-out.
func (c *Controller) Run(ctx context.Context, input <-chan Command) error {
	if err := c.Start(); err != nil {
		return err
	}
	if c.over {
		return ErrToppedOut
	}

	fall := time.NewTicker(c.cfg.FallInterval)
	defer fall.Stop()

	for {
		select {
		case <-ctx.Done():
			c.log.Info("session stopped")
			return nil

		case <-fall.C:
			if c.fallStep(fall) == StepToppedOut {
				return ErrToppedOut
			}

		case cmd, ok := <-input:
			if !ok {
				input = nil
				continue
			}
			if cmd == Fall {
				if c.fallStep(fall) == StepToppedOut {
					return ErrToppedOut
				}
				continue
			}
			c.Apply(cmd)
		}
	}
}

func (c *Controller) fallStep(fall *time.Ticker) StepResult {
	res := c.Step()
	if res == StepFossilized {
		// New piece, new fall chain.
		fall.Reset(c.cfg.FallInterval)
	}
	return res
}
