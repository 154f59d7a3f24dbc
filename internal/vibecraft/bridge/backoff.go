package bridge

import (
	"math/rand"
	"time"
)

// backoff computes the reconnect delay for attempt n (0-based):
// exponential with base 1s, capped at 30s, plus 0-25% jitter.
func backoff(attempt int) time.Duration {
	const (
		base = time.Second
		cap  = 30 * time.Second
	)

	d := base << attempt // exponential
	if d <= 0 || d > cap {
		d = cap
	}

	jitter := time.Duration(rand.Int63n(int64(d) / 4))
	return d + jitter
}
