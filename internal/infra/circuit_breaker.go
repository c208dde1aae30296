package infra

import (
	"errors"
	"sync"
	"time"
)

// BreakerState is the state of a CircuitBreaker.
type BreakerState int

const (
	BreakerClosed   BreakerState = iota // calls pass through
	BreakerOpen                         // calls fail fast
	BreakerHalfOpen                     // probing after the cool-down
)

func (s BreakerState) String() string {
	switch s {
	case BreakerClosed:
		return "closed"
	case BreakerOpen:
		return "open"
	case BreakerHalfOpen:
		return "half-open"
	default:
		return "unknown"
	}
}

// ErrCircuitOpen is returned by Execute while the breaker is open.
var ErrCircuitOpen = errors.New("circuit breaker is open")

// CBConfig holds the breaker thresholds.
type CBConfig struct {
	FailureThreshold int           // consecutive failures that trip the breaker
	SuccessThreshold int           // half-open successes needed to close again
	OpenTimeout      time.Duration // cool-down before probing
}

// DefaultCBConfig returns the defaults used for the SMTP breaker.
func DefaultCBConfig() CBConfig {
	return CBConfig{FailureThreshold: 3, SuccessThreshold: 1, OpenTimeout: 2 * time.Minute}
}

// CircuitBreaker guards outbound SMTP so a dead mail server does not stall
// the report worker on every job. Safe for concurrent use.
type CircuitBreaker struct {
	mu       sync.Mutex
	cfg      CBConfig
	state    BreakerState
	failures int
	probes   int
	openedAt time.Time
	now      func() time.Time
}

func NewCircuitBreaker(cfg CBConfig) *CircuitBreaker {
	def := DefaultCBConfig()
	if cfg.FailureThreshold <= 0 {
		cfg.FailureThreshold = def.FailureThreshold
	}
	if cfg.SuccessThreshold <= 0 {
		cfg.SuccessThreshold = def.SuccessThreshold
	}
	if cfg.OpenTimeout <= 0 {
		cfg.OpenTimeout = def.OpenTimeout
	}
	return &CircuitBreaker{cfg: cfg, now: time.Now}
}

// State returns the current state, moving open → half-open once the cool-down elapsed.
func (cb *CircuitBreaker) State() BreakerState {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	return cb.stateLocked()
}

func (cb *CircuitBreaker) stateLocked() BreakerState {
	if cb.state == BreakerOpen && cb.now().Sub(cb.openedAt) >= cb.cfg.OpenTimeout {
		cb.state = BreakerHalfOpen
		cb.probes = 0
	}
	return cb.state
}

// Execute runs fn unless the breaker is open.
func (cb *CircuitBreaker) Execute(fn func() error) error {
	if cb.State() == BreakerOpen {
		return ErrCircuitOpen
	}

	err := fn()

	cb.mu.Lock()
	defer cb.mu.Unlock()
	if err != nil {
		cb.failures++
		if cb.state == BreakerHalfOpen || cb.failures >= cb.cfg.FailureThreshold {
			cb.state = BreakerOpen
			cb.openedAt = cb.now()
			cb.failures = 0
		}
		return err
	}

	cb.failures = 0
	if cb.state == BreakerHalfOpen {
		cb.probes++
		if cb.probes >= cb.cfg.SuccessThreshold {
			cb.state = BreakerClosed
		}
	}
	return nil
}
