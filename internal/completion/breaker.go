package completion

import (
	"context"
	"errors"
	"sync"
	"time"
)

// ErrCircuitOpen is returned instead of calling the model while the breaker is open
var ErrCircuitOpen = errors.New("model service temporarily unavailable after repeated failures")

// CircuitState represents the state of the circuit breaker
type CircuitState int

const (
	CircuitClosed   CircuitState = iota // Normal operation
	CircuitOpen                         // Failing, reject requests
	CircuitHalfOpen                     // Testing if recovered
)

func (s CircuitState) String() string {
	switch s {
	case CircuitClosed:
		return "closed"
	case CircuitOpen:
		return "open"
	case CircuitHalfOpen:
		return "half_open"
	}
	return "unknown"
}

// Breaker is a Generator that stops calling the wrapped one after
// FailureThreshold consecutive errors, until Timeout has passed
type Breaker struct {
	next Generator

	mu              sync.Mutex
	state           CircuitState
	failures        int
	successes       int
	lastFailureTime time.Time
	now             func() time.Time

	FailureThreshold int
	SuccessThreshold int
	Timeout          time.Duration
	OnStateChange    func(from, to CircuitState)
}

// NewBreaker wraps next with a breaker using the default thresholds
func NewBreaker(next Generator) *Breaker {
	return &Breaker{
		next:             next,
		state:            CircuitClosed,
		now:              time.Now,
		FailureThreshold: 5,
		SuccessThreshold: 2,
		Timeout:          30 * time.Second,
	}
}

// State returns the current state
func (b *Breaker) State() CircuitState {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.state
}

// GenerateText forwards to the wrapped generator unless the circuit is open.
// An empty reply counts as a success; caller cancellation counts as neither.
func (b *Breaker) GenerateText(ctx context.Context, model, prompt string, params Params) (string, error) {
	if !b.allow() {
		return "", ErrCircuitOpen
	}
	text, err := b.next.GenerateText(ctx, model, prompt, params)
	switch {
	case err == nil:
		b.recordSuccess()
	case errors.Is(err, context.Canceled):
	default:
		b.recordFailure()
	}
	return text, err
}

func (b *Breaker) allow() bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch b.state {
	case CircuitClosed, CircuitHalfOpen:
		return true
	case CircuitOpen:
		if b.now().Sub(b.lastFailureTime) > b.Timeout {
			b.setState(CircuitHalfOpen)
			return true
		}
	}
	return false
}

func (b *Breaker) recordSuccess() {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch b.state {
	case CircuitHalfOpen:
		b.successes++
		if b.successes >= b.SuccessThreshold {
			b.setState(CircuitClosed)
			b.failures = 0
			b.successes = 0
		}
	case CircuitClosed:
		b.failures = 0
	}
}

func (b *Breaker) recordFailure() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.failures++
	b.lastFailureTime = b.now()

	switch b.state {
	case CircuitClosed:
		if b.failures >= b.FailureThreshold {
			b.setState(CircuitOpen)
		}
	case CircuitHalfOpen:
		b.setState(CircuitOpen)
		b.successes = 0
	}
}

func (b *Breaker) setState(to CircuitState) {
	if b.OnStateChange != nil && b.state != to {
		b.OnStateChange(b.state, to)
	}
	b.state = to
}
