package circuitbreaker

import (
	"time"

	"github.com/sony/gobreaker/v2"
)

// ErrOpen is returned by Do while the breaker rejects calls.
var ErrOpen = gobreaker.ErrOpenState

// Breaker stops calling a dependency after it fails several times in a row
// and lets a few probe calls through once cooldown has passed.
type Breaker struct {
	cb *gobreaker.CircuitBreaker[struct{}]
}

func New(name string, failures uint32, cooldown time.Duration) *Breaker {
	settings := gobreaker.Settings{
		Name:        name,
		MaxRequests: 3,
		Interval:    60 * time.Second,
		Timeout:     cooldown,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= failures
		},
	}

	return &Breaker{
		cb: gobreaker.NewCircuitBreaker[struct{}](settings),
	}
}

func (b *Breaker) Do(fn func() error) error {
	_, err := b.cb.Execute(func() (struct{}, error) {
		return struct{}{}, fn()
	})
	return err
}

func (b *Breaker) State() string {
	return b.cb.State().String()
}
