package api

import (
	"errors"
	"time"

	"github.com/rs/zerolog"
	gobreaker "github.com/sony/gobreaker/v2"
)

const (
	breakerTrips   = 5
	breakerTimeout = 20 * time.Second
)

func newBreaker(log zerolog.Logger) *gobreaker.CircuitBreaker[exchange] {
	return gobreaker.NewCircuitBreaker[exchange](gobreaker.Settings{
		Name:        "inline-api",
		MaxRequests: 1,
		Timeout:     breakerTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= breakerTrips
		},
		IsSuccessful: func(err error) bool {
			if err == nil {
				return true
			}
			var apiErr *Error
			if errors.As(err, &apiErr) {
				return apiErr.Status < 500
			}
			return false
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn().Str("breaker", name).Str("from", from.String()).Str("to", to.String()).Msg("circuit state changed")
		},
	})
}
