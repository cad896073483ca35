package ratelimit

import (
	"context"
	"io"
	"sync"
	"time"
)

// minBucketSize keeps bursts large enough for smooth copies at low limits
const minBucketSize = 65536

// Limiter throttles data transfer to a fixed number of bytes per second
// using a token bucket. A nil *Limiter means no limiting.
type Limiter struct {
	rate       int64 // bytes per second
	bucketSize int64 // maximum tokens (burst size)

	mu     sync.Mutex
	tokens int64
	last   time.Time
}

// NewLimiter creates a limiter for the given bytes-per-second rate.
// Returns nil for a non-positive rate (no limiting).
func NewLimiter(bytesPerSecond int64) *Limiter {
	if bytesPerSecond <= 0 {
		return nil
	}

	bucketSize := bytesPerSecond
	if bucketSize < minBucketSize {
		bucketSize = minBucketSize
	}

	return &Limiter{
		rate:       bytesPerSecond,
		bucketSize: bucketSize,
		tokens:     bucketSize,
		last:       time.Now(),
	}
}

// Reader wraps an io.Reader with bandwidth limiting
type Reader struct {
	reader  io.Reader
	limiter *Limiter
	ctx     context.Context
}

// NewReader wraps a reader with rate limiting. With a nil limiter the
// original reader is returned unchanged.
func NewReader(ctx context.Context, reader io.Reader, limiter *Limiter) io.Reader {
	if limiter == nil {
		return reader
	}
	return &Reader{
		reader:  reader,
		limiter: limiter,
		ctx:     ctx,
	}
}

// Read implements io.Reader, blocking until the bucket holds enough tokens
func (r *Reader) Read(p []byte) (int, error) {
	select {
	case <-r.ctx.Done():
		return 0, r.ctx.Err()
	default:
	}

	want := int64(len(p))
	if want > r.limiter.bucketSize {
		want = r.limiter.bucketSize
	}

	r.limiter.wait(want)

	n, err := r.reader.Read(p[:want])
	if n > 0 {
		r.limiter.consume(int64(n))
	}

	return n, err
}

// wait blocks until at least needed tokens are available
func (l *Limiter) wait(needed int64) {
	for {
		l.mu.Lock()
		l.refill()

		if l.tokens >= needed {
			l.mu.Unlock()
			return
		}

		deficit := needed - l.tokens
		sleep := time.Duration(float64(deficit) / float64(l.rate) * float64(time.Second))
		if sleep < time.Millisecond {
			sleep = time.Millisecond
		}
		l.mu.Unlock()

		time.Sleep(sleep)
	}
}

// refill adds tokens for the elapsed time; caller holds the lock
func (l *Limiter) refill() {
	now := time.Now()
	elapsed := now.Sub(l.last)

	add := int64(float64(elapsed) / float64(time.Second) * float64(l.rate))
	if add > 0 {
		l.tokens += add
		if l.tokens > l.bucketSize {
			l.tokens = l.bucketSize
		}
		l.last = now
	}
}

// consume removes tokens after a read
func (l *Limiter) consume(n int64) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.tokens -= n
	if l.tokens < 0 {
		l.tokens = 0
	}
}
