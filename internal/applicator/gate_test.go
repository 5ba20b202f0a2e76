package applicator

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGateConfirmReturnsEarly(t *testing.T) {
	gate := NewGate()
	gate.Confirm()

	start := time.Now()
	err := gate.Wait(context.Background(), time.Minute)

	assert.NoError(t, err)
	assert.Less(t, time.Since(start), time.Second)
}

func TestGateCancel(t *testing.T) {
	gate := NewGate()
	gate.Cancel()

	err := gate.Wait(context.Background(), time.Minute)
	assert.ErrorIs(t, err, ErrReviewCancelled)
}

func TestGateExpiryCountsAsApproval(t *testing.T) {
	gate := NewGate()

	err := gate.Wait(context.Background(), 10*time.Millisecond)
	assert.NoError(t, err)
}

func TestGateContextCancellation(t *testing.T) {
	gate := NewGate()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := gate.Wait(ctx, time.Minute)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestGateRepeatedSignalsDoNotPanic(t *testing.T) {
	gate := NewGate()
	gate.Confirm()
	gate.Confirm()
	assert.NoError(t, gate.Wait(context.Background(), time.Minute))

	gate = NewGate()
	gate.Cancel()
	gate.Cancel()
	assert.ErrorIs(t, gate.Wait(context.Background(), time.Minute), ErrReviewCancelled)
}
