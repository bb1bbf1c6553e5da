package engine

import (
	"context"

	"golang.org/x/time/rate"
)

// newBWLimiter caps aggregate throughput at bytesPerSec. The burst is 1 MB
// so natural chunk slices pass without artificial stalls on small chunks.
func newBWLimiter(bytesPerSec int64) *rate.Limiter {
	burst := 1 << 20
	if bytesPerSec < int64(burst) {
		burst = int(bytesPerSec)
	}
	return rate.NewLimiter(rate.Limit(bytesPerSec), burst)
}

// waitBW charges n bytes against the limiter in burst-sized steps, since
// WaitN rejects requests larger than the burst.
func waitBW(ctx context.Context, l *rate.Limiter, n int) error {
	for n > 0 {
		step := min(n, l.Burst())
		if err := l.WaitN(ctx, step); err != nil {
			return err
		}
		n -= step
	}
	return nil
}
