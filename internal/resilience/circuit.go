package resilience

import (
	"sync"
	"time"

	"github.com/rotisserie/eris"
)

// ErrCircuitOpen is returned when a call is rejected without being attempted.
var ErrCircuitOpen = eris.New("resilience: circuit open")

// Breaker is a minimal circuit breaker for one upstream service. After
// Threshold consecutive transient failures the circuit opens and calls are
// rejected until Cooldown has passed; the next call then probes the service
// and either closes the circuit or re-opens it.
type Breaker struct {
	// Threshold is the consecutive-failure count that opens the circuit.
	Threshold int
	// Cooldown is how long the circuit stays open before a probe.
	Cooldown time.Duration

	mu       sync.Mutex
	failures int
	openedAt time.Time
	now      func() time.Time
}

// NewBreaker creates a breaker with defaults filled in.
func NewBreaker(threshold int, cooldown time.Duration) *Breaker {
	if threshold <= 0 {
		threshold = 5
	}
	if cooldown <= 0 {
		cooldown = 30 * time.Second
	}
	return &Breaker{Threshold: threshold, Cooldown: cooldown, now: time.Now}
}

// Allow reports whether a call may proceed right now.
func (b *Breaker) Allow() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.failures < b.Threshold {
		return nil
	}
	if b.now().Sub(b.openedAt) >= b.Cooldown {
		// Half-open: let one probe through by dropping just below the
		// threshold. A failure re-opens immediately.
		b.failures = b.Threshold - 1
		return nil
	}
	return ErrCircuitOpen
}

// Record feeds a call outcome into the breaker. Only transient errors count
// toward opening the circuit; any success closes it.
func (b *Breaker) Record(err error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err == nil {
		b.failures = 0
		return
	}
	if !IsTransient(err) {
		return
	}
	b.failures++
	if b.failures == b.Threshold {
		b.openedAt = b.now()
	}
}
