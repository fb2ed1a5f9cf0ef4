package repositories

import (
	"errors"
	"time"

	"ems-project/backend/logging"

	"github.com/sony/gobreaker"
	"go.mongodb.org/mongo-driver/mongo"
)

// NewReadBreaker trips after repeated store failures so that read endpoints
// fail fast while the database is unreachable. A missing document is a
// successful call as far as the breaker is concerned.
func NewReadBreaker(name string) *gobreaker.CircuitBreaker {
	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        name,
		MaxRequests: 1,
		Timeout:     5 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures > 3
		},
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, mongo.ErrNoDocuments) || errors.Is(err, ErrNotFound)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logging.Logger.Warnf("Event ID: CIRCUIT_BREAKER_STATE_CHANGE, Description: Circuit Breaker '%s' changed from '%s' to '%s'", name, from.String(), to.String())
		},
	})
}

func guarded[T any](cb *gobreaker.CircuitBreaker, fn func() (T, error)) (T, error) {
	if cb == nil {
		return fn()
	}
	res, err := cb.Execute(func() (interface{}, error) {
		return fn()
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return res.(T), nil
}
