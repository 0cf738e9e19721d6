// Package scheduler runs the background completion sweeper.
package scheduler

import (
	"context"
	"log"
	"time"

	"github.com/dshs-dev/studentlife/internal/config"
	"github.com/dshs-dev/studentlife/internal/repository"
)

// Sweeper periodically moves bookings and passes whose time window has
// passed into COMPLETED and purges long-expired refresh tokens. All
// sweeps are idempotent single statements, so overlapping instances or
// a missed tick cannot corrupt state; the next run simply catches up.
type Sweeper struct {
	cfg      config.SweepConfig
	bookings *repository.BookingRepo
	passes   *repository.PassRepo
	tokens   *repository.TokenRepo
}

func NewSweeper(cfg config.SweepConfig, bookings *repository.BookingRepo, passes *repository.PassRepo, tokens *repository.TokenRepo) *Sweeper {
	return &Sweeper{cfg: cfg, bookings: bookings, passes: passes, tokens: tokens}
}

// Run sweeps once immediately, then on every tick until ctx is
// cancelled. Intended to run in its own goroutine.
func (s *Sweeper) Run(ctx context.Context) {
	if !s.cfg.Enabled {
		log.Println("sweeper: disabled")
		return
	}
	s.sweep(ctx)

	ticker := time.NewTicker(s.cfg.Interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			log.Println("sweeper: stopping")
			return
		case <-ticker.C:
			s.sweep(ctx)
		}
	}
}

func (s *Sweeper) sweep(ctx context.Context) {
	now := time.Now()

	if n, err := s.bookings.CompleteExpired(ctx, now); err != nil {
		log.Printf("sweeper: completing bookings failed: %v", err)
	} else if n > 0 {
		log.Printf("sweeper: completed %d expired bookings", n)
	}

	if n, err := s.passes.CompleteExpired(ctx, now); err != nil {
		log.Printf("sweeper: completing passes failed: %v", err)
	} else if n > 0 {
		log.Printf("sweeper: completed %d expired passes", n)
	}

	if n, err := s.tokens.PurgeExpired(ctx, s.cfg.TokenGrace); err != nil {
		log.Printf("sweeper: purging refresh tokens failed: %v", err)
	} else if n > 0 {
		log.Printf("sweeper: purged %d expired refresh tokens", n)
	}
}
