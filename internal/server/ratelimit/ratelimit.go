// Package ratelimit provides per-client token bucket rate limiting for the HTTP API.
package ratelimit

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Info contains information about rate limit status.
type Info struct {
	Allowed    bool
	Limit      int
	Remaining  int
	ResetTime  time.Time
	RetryAfter time.Duration
}

type bucket struct {
	limiter  *rate.Limiter
	burst    int
	lastSeen time.Time
}

// Limiter manages one token bucket per client and endpoint.
type Limiter struct {
	config  *Config
	mu      sync.Mutex
	buckets map[string]*bucket
	now     func() time.Time

	stopOnce sync.Once
	stop     chan struct{}
}

// NewLimiter creates a new rate limiter with the given configuration.
// A nil config disables limiting.
func NewLimiter(cfg *Config) *Limiter {
	if cfg == nil {
		cfg = &Config{Enabled: false}
	}
	if cfg.IdleTimeout <= 0 {
		cfg.IdleTimeout = DefaultIdleTimeout
	}

	l := &Limiter{
		config:  cfg,
		buckets: make(map[string]*bucket),
		now:     time.Now,
		stop:    make(chan struct{}),
	}

	if cfg.Enabled && cfg.CleanupInterval > 0 {
		go l.cleanupLoop(cfg.CleanupInterval)
	}
	return l
}

// Allow checks if a request from the given client is allowed for the specified endpoint.
func (l *Limiter) Allow(clientID, path, method string) (bool, Info) {
	if !l.config.Enabled {
		return true, Info{Allowed: true}
	}

	key := clientID + ":default"
	endpoint := MatchEndpoint(path, method, l.config.EndpointConfigs)
	if endpoint == nil {
		endpoint = &EndpointConfig{
			Limit:  l.config.DefaultLimit,
			Window: l.config.DefaultWindow,
			Burst:  l.config.DefaultBurst,
		}
	} else {
		key = clientID + ":" + endpoint.Method + ":" + endpoint.Path
	}

	if endpoint.Limit <= 0 || endpoint.Window <= 0 {
		return true, Info{Allowed: true}
	}

	now := l.now()
	b := l.getBucket(key, endpoint, now)

	allowed := b.limiter.AllowN(now, 1)
	tokens := b.limiter.TokensAt(now)

	info := Info{
		Allowed:   allowed,
		Limit:     endpoint.Limit,
		Remaining: max(int(tokens), 0),
		ResetTime: now.Add(refillTime(float64(b.burst)-tokens, b.limiter.Limit())),
	}
	if !allowed {
		info.RetryAfter = refillTime(1-tokens, b.limiter.Limit())
	}
	return allowed, info
}

func (l *Limiter) getBucket(key string, endpoint *EndpointConfig, now time.Time) *bucket {
	l.mu.Lock()
	defer l.mu.Unlock()

	if b, ok := l.buckets[key]; ok {
		b.lastSeen = now
		return b
	}

	burst := endpoint.Burst
	if burst <= 0 {
		burst = endpoint.Limit
	}
	every := rate.Every(endpoint.Window / time.Duration(endpoint.Limit))
	b := &bucket{
		limiter:  rate.NewLimiter(every, burst),
		burst:    burst,
		lastSeen: now,
	}
	l.buckets[key] = b
	return b
}

// refillTime is how long the bucket needs to gain the given number of tokens.
func refillTime(tokens float64, r rate.Limit) time.Duration {
	if tokens <= 0 || r <= 0 {
		return 0
	}
	return time.Duration(tokens / float64(r) * float64(time.Second))
}

func (l *Limiter) cleanupLoop(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			l.cleanup()
		case <-l.stop:
			return
		}
	}
}

// cleanup drops buckets that have been idle longer than IdleTimeout.
func (l *Limiter) cleanup() {
	cutoff := l.now().Add(-l.config.IdleTimeout)

	l.mu.Lock()
	defer l.mu.Unlock()
	for key, b := range l.buckets {
		if b.lastSeen.Before(cutoff) {
			delete(l.buckets, key)
		}
	}
}

// Len returns the number of tracked buckets.
func (l *Limiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.buckets)
}

// Stop stops the cleanup goroutine. It is safe to call more than once.
func (l *Limiter) Stop() {
	l.stopOnce.Do(func() { close(l.stop) })
}
