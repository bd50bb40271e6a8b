package watch

import (
	"math/rand"
	"time"
)

// MaxRetries is how many times a failed reload is retried before the
// watcher waits for the next change.
const MaxRetries = 3

// Backoff returns the delay before retry attempt n (0-indexed): base
// doubled per attempt, capped at 30 times base, plus up to 50% jitter.
func Backoff(base time.Duration, attempt int) time.Duration {
	if base <= 0 {
		base = DefaultDebounce
	}
	d := base << uint(attempt)
	if limit := 30 * base; d > limit || d <= 0 {
		d = limit
	}
	return d + time.Duration(rand.Int63n(int64(d)/2+1))
}
