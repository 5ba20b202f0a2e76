package applicator

import (
	"context"
	"errors"
	"sync"
	"time"
)

var ErrReviewCancelled = errors.New("submission cancelled during review")

// Gate is the human-review pause between form fill and recording. It
// is an awaitable signal rather than a blind sleep: a caller can
// confirm early, cancel outright, or let the window expire. Expiry
// counts as approval, matching the fixed-pause behavior the hosted
// product shipped with.
type Gate struct {
	confirm     chan struct{}
	cancel      chan struct{}
	confirmOnce sync.Once
	cancelOnce  sync.Once
}

func NewGate() *Gate {
	return &Gate{
		confirm: make(chan struct{}),
		cancel:  make(chan struct{}),
	}
}

func (g *Gate) Confirm() {
	g.confirmOnce.Do(func() { close(g.confirm) })
}

func (g *Gate) Cancel() {
	g.cancelOnce.Do(func() { close(g.cancel) })
}

// Wait blocks until confirmation, cancellation, window expiry or
// context cancellation, whichever comes first.
func (g *Gate) Wait(ctx context.Context, window time.Duration) error {
	timer := time.NewTimer(window)
	defer timer.Stop()

	select {
	case <-g.confirm:
		return nil
	case <-g.cancel:
		return ErrReviewCancelled
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
