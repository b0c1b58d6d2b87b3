// Package resilience guards calls to an outbound dependency.
package resilience

import (
	"errors"
	"sync"
	"time"
)

var ErrCircuitOpen = errors.New("circuit breaker is open")

type State string

const (
	StateClosed   State = "closed"
	StateOpen     State = "open"
	StateHalfOpen State = "half_open"
)

// Settings configures a Breaker. Zero values fall back to 5 failures and a
// 15s open window.
type Settings struct {
	FailureThreshold int
	OpenTimeout      time.Duration
	// OnStateChange runs with the breaker lock held; keep it short.
	OnStateChange func(from, to State)
}

// Breaker opens after FailureThreshold consecutive failures, rejects calls
// for OpenTimeout, then lets a single probe through. The probe's outcome
// closes or reopens the circuit.
type Breaker struct {
	mu       sync.Mutex
	settings Settings
	now      func() time.Time

	state    State
	failures int
	openedAt time.Time
	probing  bool
}

func NewBreaker(settings Settings) *Breaker {
	if settings.FailureThreshold < 1 {
		settings.FailureThreshold = 5
	}
	if settings.OpenTimeout <= 0 {
		settings.OpenTimeout = 15 * time.Second
	}
	return &Breaker{settings: settings, now: time.Now, state: StateClosed}
}

// Do runs fn when the circuit allows it and records the result.
func (b *Breaker) Do(fn func() error) error {
	if err := b.acquire(); err != nil {
		return err
	}
	err := fn()
	b.record(err == nil)
	return err
}

func (b *Breaker) State() State {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.state == StateOpen && b.now().Sub(b.openedAt) >= b.settings.OpenTimeout {
		return StateHalfOpen
	}
	return b.state
}

func (b *Breaker) acquire() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.state == StateOpen {
		if b.now().Sub(b.openedAt) < b.settings.OpenTimeout {
			return ErrCircuitOpen
		}
		b.transition(StateHalfOpen)
	}
	if b.state == StateHalfOpen {
		if b.probing {
			return ErrCircuitOpen
		}
		b.probing = true
	}
	return nil
}

func (b *Breaker) record(ok bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.state == StateHalfOpen {
		b.probing = false
		if ok {
			b.failures = 0
			b.transition(StateClosed)
		} else {
			b.open()
		}
		return
	}

	if ok {
		b.failures = 0
		return
	}
	b.failures++
	if b.state == StateClosed && b.failures >= b.settings.FailureThreshold {
		b.open()
	}
}

func (b *Breaker) open() {
	b.openedAt = b.now()
	b.transition(StateOpen)
}

func (b *Breaker) transition(to State) {
	from := b.state
	if from == to {
		return
	}
	b.state = to
	if b.settings.OnStateChange != nil {
		b.settings.OnStateChange(from, to)
	}
}
