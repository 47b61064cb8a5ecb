package client

import (
	"time"

	"github.com/rs/zerolog"
	cb "github.com/sony/gobreaker"
)

// newBreaker trips after three consecutive failures so a dead service stops
// being called for the rest of the batch.
func newBreaker(name string, log zerolog.Logger) *cb.CircuitBreaker {
	st := cb.Settings{Name: name}
	st.Interval = 60 * time.Second
	st.Timeout = 60 * time.Second
	st.ReadyToTrip = func(counts cb.Counts) bool {
		return counts.ConsecutiveFailures >= 3
	}
	st.OnStateChange = func(name string, from, to cb.State) {
		log.Warn().Str("breaker", name).Str("from", from.String()).Str("to", to.String()).Msg("circuit breaker state changed")
	}
	return cb.NewCircuitBreaker(st)
}
