// Package circuitbreaker wraps sony/gobreaker with the settings shared by
// the backend's optional collaborators (the cache, for now). A tripped
// breaker fails fast instead of stacking timeouts on an unhealthy backend.
package circuitbreaker

import (
	"errors"
	"time"

	"github.com/sony/gobreaker/v2"
)

// ErrOpen is returned while the breaker rejects calls.
var ErrOpen = gobreaker.ErrOpenState

type Breaker struct {
	cb *gobreaker.CircuitBreaker[any]
}

// New builds a breaker that trips after five consecutive failures and
// probes again after 30 seconds. Errors listed in ignore (e.g. a cache
// miss) count as success.
func New(name string, ignore ...error) *Breaker {
	settings := gobreaker.Settings{
		Name:        name,
		MaxRequests: 3,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		IsSuccessful: func(err error) bool {
			if err == nil {
				return true
			}
			for _, ig := range ignore {
				if errors.Is(err, ig) {
					return true
				}
			}
			return false
		},
	}

	return &Breaker{cb: gobreaker.NewCircuitBreaker[any](settings)}
}

func (b *Breaker) Execute(fn func() (any, error)) (any, error) {
	return b.cb.Execute(fn)
}
