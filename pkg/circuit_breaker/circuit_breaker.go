package circuit_breaker

import (
	"errors"
	"sync"
	"time"
)

type Status uint8

const (
	Closed   Status = 1
	Open     Status = 2
	HalfOpen Status = 3
)

func (s Status) String() string {
	switch s {
	case Closed:
		return "closed"
	case Open:
		return "open"
	case HalfOpen:
		return "half-open"
	default:
		return "unknown"
	}
}

type Config struct {
	// number of most recent calls the failure ratio is computed over
	RecordLength int
	// how long the breaker stays open before letting a probe through
	Timeout time.Duration
	// failure ratio that opens the breaker
	Percentile float64
	// consecutive half-open successes needed to close again
	RecoveryRequests int
	// decides whether an error returned by the call counts as a failure; nil counts every error
	IsFailure func(err error) bool
}

var DefaultConfig = Config{
	RecordLength:     100,
	Timeout:          time.Second,
	Percentile:       0.2,
	RecoveryRequests: 2,
}

type circuitBreaker struct {
	mu sync.Mutex
	// Closed - calls pass, Open - calls rejected, HalfOpen - calls pass until one fails
	state           Status
	cfg             Config
	lastAttemptedAt time.Time
	// ring of recent outcomes, true means failed
	buffer       []bool
	pos          int
	successCount int
	now          func() time.Time
}

type CircuitBreaker interface {
	Call(service func() error) error
	State() Status
	Reset()
}

func New(cfg Config) CircuitBreaker {
	if cfg.RecordLength <= 0 {
		cfg.RecordLength = DefaultConfig.RecordLength
	}
	if cfg.IsFailure == nil {
		cfg.IsFailure = func(err error) bool { return err != nil }
	}
	return &circuitBreaker{
		state:  Closed,
		cfg:    cfg,
		buffer: make([]bool, cfg.RecordLength),
		now:    time.Now,
	}
}

var ErrOpenCB = errors.New("circuit breaker is open")

func (cb *circuitBreaker) Call(service func() error) error {
	cb.mu.Lock()
	if cb.state == Open {
		if cb.now().Sub(cb.lastAttemptedAt) > cb.cfg.Timeout {
			cb.state = HalfOpen
			cb.successCount = 0
		} else {
			cb.mu.Unlock()
			return ErrOpenCB
		}
	}
	cb.mu.Unlock()

	err := service()
	failed := cb.cfg.IsFailure(err)

	cb.mu.Lock()
	defer cb.mu.Unlock()

	cb.buffer[cb.pos] = failed
	cb.pos = (cb.pos + 1) % cb.cfg.RecordLength

	if cb.state == HalfOpen {
		if failed {
			cb.trip()
		} else {
			cb.successCount++
			if cb.successCount >= cb.cfg.RecoveryRequests {
				cb.reset()
			}
		}
		return err
	}

	fails := 0
	for _, f := range cb.buffer {
		if f {
			fails++
		}
	}
	if float64(fails)/float64(cb.cfg.RecordLength) >= cb.cfg.Percentile {
		cb.trip()
	}
	return err
}

func (cb *circuitBreaker) State() Status {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	return cb.state
}

func (cb *circuitBreaker) Reset() {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	cb.reset()
}

func (cb *circuitBreaker) trip() {
	cb.state = Open
	cb.successCount = 0
	cb.lastAttemptedAt = cb.now()
}

func (cb *circuitBreaker) reset() {
	for i := range cb.buffer {
		cb.buffer[i] = false
	}
	cb.successCount = 0
	cb.pos = 0
	cb.state = Closed
}
