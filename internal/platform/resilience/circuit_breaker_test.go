package resilience

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errShip = errors.New("ship failed")

func newTestBreaker(threshold int, transitions *[]State) (*Breaker, *time.Time) {
	now := time.Date(2026, 5, 2, 14, 0, 0, 0, time.UTC)
	b := NewBreaker(Settings{
		FailureThreshold: threshold,
		OpenTimeout:      5 * time.Second,
		OnStateChange: func(_, to State) {
			*transitions = append(*transitions, to)
		},
	})
	b.now = func() time.Time { return now }
	return b, &now
}

func TestBreaker_OpensAfterThresholdAndRecoversOnProbe(t *testing.T) {
	var transitions []State
	b, now := newTestBreaker(2, &transitions)
	fail := func() error { return errShip }

	require.ErrorIs(t, b.Do(fail), errShip)
	assert.Equal(t, StateClosed, b.State())
	require.ErrorIs(t, b.Do(fail), errShip)
	assert.Equal(t, StateOpen, b.State())

	calls := 0
	err := b.Do(func() error { calls++; return nil })
	require.ErrorIs(t, err, ErrCircuitOpen)
	assert.Zero(t, calls)

	*now = now.Add(6 * time.Second)
	assert.Equal(t, StateHalfOpen, b.State())
	require.NoError(t, b.Do(func() error { calls++; return nil }))
	assert.Equal(t, 1, calls)
	assert.Equal(t, StateClosed, b.State())

	assert.Equal(t, []State{StateOpen, StateHalfOpen, StateClosed}, transitions)
}

func TestBreaker_FailedProbeReopens(t *testing.T) {
	var transitions []State
	b, now := newTestBreaker(1, &transitions)

	require.Error(t, b.Do(func() error { return errShip }))
	*now = now.Add(6 * time.Second)
	require.ErrorIs(t, b.Do(func() error { return errShip }), errShip)
	assert.Equal(t, StateOpen, b.State())

	*now = now.Add(time.Second)
	require.ErrorIs(t, b.Do(func() error { return nil }), ErrCircuitOpen)
}

func TestBreaker_SingleProbeInFlight(t *testing.T) {
	var transitions []State
	b, now := newTestBreaker(1, &transitions)

	require.Error(t, b.Do(func() error { return errShip }))
	*now = now.Add(6 * time.Second)

	err := b.Do(func() error {
		return b.Do(func() error { return nil })
	})
	require.ErrorIs(t, err, ErrCircuitOpen)
}

func TestBreaker_SuccessResetsFailureCount(t *testing.T) {
	var transitions []State
	b, _ := newTestBreaker(2, &transitions)

	require.Error(t, b.Do(func() error { return errShip }))
	require.NoError(t, b.Do(func() error { return nil }))
	require.Error(t, b.Do(func() error { return errShip }))
	assert.Equal(t, StateClosed, b.State())
	assert.Empty(t, transitions)
}
