package middleware

import (
	"math"
	"sync"
	"time"
)

// idleBucketTTL is how long a full bucket is kept after its last request
const idleBucketTTL = 30 * time.Minute

type bucket struct {
	tokens float64
	seen   time.Time
}

// RateLimiter is a per-client token bucket. Each bucket holds up to burst
// tokens and regains one continuously over each interval.
type RateLimiter struct {
	mu       sync.Mutex
	burst    float64
	interval time.Duration
	buckets  map[string]*bucket
	now      func() time.Time
	done     chan struct{}
	stopOnce sync.Once
}

// NewRateLimiter initializes a limiter allowing perMinute requests a minute
// per client, and starts the eviction of idle clients.
func NewRateLimiter(perMinute int) *RateLimiter {
	rl := &RateLimiter{
		burst:   float64(perMinute),
		buckets: make(map[string]*bucket),
		now:     time.Now,
		done:    make(chan struct{}),
	}
	if perMinute > 0 {
		rl.interval = time.Minute / time.Duration(perMinute)
	}
	go rl.evictLoop(idleBucketTTL / 2)
	return rl
}

// Allow takes one token from the client's bucket. When the bucket is empty
// it reports how long until the next token is available.
func (rl *RateLimiter) Allow(client string) (bool, time.Duration) {
	if rl.interval <= 0 {
		return false, time.Minute
	}

	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	b, ok := rl.buckets[client]
	if !ok {
		b = &bucket{tokens: rl.burst, seen: now}
		rl.buckets[client] = b
	}

	regained := float64(now.Sub(b.seen)) / float64(rl.interval)
	b.tokens = math.Min(rl.burst, b.tokens+regained)
	b.seen = now

	if b.tokens < 1 {
		wait := time.Duration((1 - b.tokens) * float64(rl.interval))
		if rem := wait % time.Second; rem != 0 {
			wait += time.Second - rem
		}
		return false, wait
	}
	b.tokens--
	return true, 0
}

// Stop ends the eviction loop
func (rl *RateLimiter) Stop() {
	rl.stopOnce.Do(func() { close(rl.done) })
}

func (rl *RateLimiter) evictLoop(every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			rl.evictIdle()
		case <-rl.done:
			return
		}
	}
}

// evictIdle drops buckets that have been refilled completely
func (rl *RateLimiter) evictIdle() {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	for client, b := range rl.buckets {
		if now.Sub(b.seen) > idleBucketTTL {
			delete(rl.buckets, client)
		}
	}
}
