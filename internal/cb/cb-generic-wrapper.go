package cb

import (
	"context"
	"errors"
	"fmt"

	"github.com/sony/gobreaker/v2"
)

type circuitBreaker[T any, V any] struct {
	*gobreaker.CircuitBreaker[*V]
}

func (cb *circuitBreaker[T, V]) execute(f func(request *T) (*V, error), request *T) (*V, error) {
	return cb.CircuitBreaker.Execute(func() (*V, error) {
		return f(request)
	})
}

func newCircuitBreaker[T any, V any](parameters *CircuitBreakerParameters, resource string) *circuitBreaker[T, V] {
	consecutiveFailures := parameters.ConsecutiveFailures
	return &circuitBreaker[T, V]{
		CircuitBreaker: gobreaker.NewCircuitBreaker[*V](gobreaker.Settings{
			Name:        fmt.Sprintf("rws circuit breaker for resource %s", resource),
			MaxRequests: parameters.MaxRequests,
			Interval:    parameters.Interval,
			Timeout:     parameters.Timeout,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= consecutiveFailures
			},
			// a caller giving up is not a failure of the service
			IsSuccessful: func(err error) bool {
				return err == nil || errors.Is(err, context.Canceled)
			},
		}),
	}
}

// Breaker rejections are not worth retrying
func IsRejected(err error) bool {
	return errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests)
}
