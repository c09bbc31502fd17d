package main

import (
	"context"
	"math/rand/v2"
	"time"

	"github.com/plus3/tetrino/session"
	"github.com/plus3/tetrino/tetrino"
	"github.com/sirupsen/logrus"
)

// Runner plays seeded games with random input.
type Runner struct {
	cfg tetrino.Config
	rng *rand.Rand
	log logrus.FieldLogger
}

func NewRunner(cfg tetrino.Config, seed uint64, log logrus.FieldLogger) *Runner {
	return &Runner{
		cfg: cfg,
		rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		log: log,
	}
}

// nextCommand favours sideways moves so pieces spread across the board.
func (r *Runner) nextCommand() session.Command {
	switch n := r.rng.IntN(10); {
	case n < 3:
		return session.MoveLeft
	case n < 6:
		return session.MoveRight
	case n < 7:
		return session.Rotate
	case n < 8:
		return session.SoftDrop
	default:
		return session.Fall
	}
}

// Play runs up to games games one after another until ctx is done. Each
// game ends when it tops out.
func (r *Runner) Play(ctx context.Context, games int, report *Report) error {
	for i := 0; i < games; i++ {
		if ctx.Err() != nil {
			return nil
		}

		c, err := session.New(r.cfg,
			session.WithLogger(r.log.WithField("game", i)),
			session.WithPicker(session.RandomPicker(r.rng)),
		)
		if err != nil {
			return err
		}

		if err := c.Start(); err == nil {
			r.drive(ctx, c, report)
		}
		report.AddGame(c.GetStats())
	}
	return nil
}

func (r *Runner) drive(ctx context.Context, c *session.Controller, report *Report) {
	for !c.Over() {
		select {
		case <-ctx.Done():
			return
		default:
			start := time.Now()
			c.Apply(r.nextCommand())
			report.UpdateTime.Add(time.Since(start))
			report.TotalUpdates++
		}
	}
}
