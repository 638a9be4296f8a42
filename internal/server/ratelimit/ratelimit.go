// Package ratelimit provides token bucket rate limiting keyed by client
// and route.
package ratelimit

import (
	"strings"
	"sync"
	"time"
)

// bucket is a single token bucket. Tokens refill continuously at
// refillRate per second up to capacity.
type bucket struct {
	mu         sync.Mutex
	capacity   float64
	refillRate float64
	tokens     float64
	last       time.Time
}

func newBucket(capacity int, refillRate float64, now time.Time) *bucket {
	return &bucket{
		capacity:   float64(capacity),
		refillRate: refillRate,
		tokens:     float64(capacity),
		last:       now,
	}
}

// take refills the bucket up to now, then consumes one token if available.
func (b *bucket) take(now time.Time) (allowed bool, remaining int, reset time.Time) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.tokens = min(b.capacity, b.tokens+now.Sub(b.last).Seconds()*b.refillRate)
	b.last = now

	if b.tokens >= 1.0 {
		b.tokens -= 1.0
		allowed = true
	}

	remaining = int(b.tokens)
	if b.tokens < b.capacity {
		secondsUntilFull := (b.capacity - b.tokens) / b.refillRate
		reset = now.Add(time.Duration(secondsUntilFull * float64(time.Second)))
	} else {
		reset = now
	}
	return allowed, remaining, reset
}

// Rule is the rate limit for one group of routes. A Prefix ending in "/"
// matches any path beneath it; otherwise the path must match exactly.
// Limit <= 0 means unlimited.
type Rule struct {
	Method string
	Prefix string
	Limit  int
	Window time.Duration
	Burst  int
}

// Config holds limiter configuration.
type Config struct {
	Enabled         bool
	DefaultLimit    int
	DefaultWindow   time.Duration
	CleanupInterval time.Duration
	Exempt          map[string]bool
	Rules           []Rule
}

// DefaultConfig returns the standard route tiers: match generation is
// expensive and strictly limited, writes are moderate, reads fall through
// to the default, and health checks are unlimited.
func DefaultConfig() *Config {
	return &Config{
		Enabled:         true,
		DefaultLimit:    600,
		DefaultWindow:   time.Minute,
		CleanupInterval: 5 * time.Minute,
		Exempt:          make(map[string]bool),
		Rules: []Rule{
			{Method: "GET", Prefix: "/health", Limit: 0},
			{Method: "POST", Prefix: "/requirements/", Limit: 20, Window: time.Hour, Burst: 5},
			{Method: "POST", Prefix: "/requirements", Limit: 100, Window: time.Minute, Burst: 10},
			{Method: "POST", Prefix: "/talents", Limit: 100, Window: time.Minute, Burst: 10},
			{Method: "PATCH", Prefix: "/matches/", Limit: 120, Window: time.Minute, Burst: 20},
		},
	}
}

// match returns the first rule covering the given method and path, or nil.
func (c *Config) match(method, path string) *Rule {
	for i := range c.Rules {
		r := &c.Rules[i]
		if r.Method != method {
			continue
		}
		if strings.HasSuffix(r.Prefix, "/") {
			if strings.HasPrefix(path, r.Prefix) {
				return r
			}
		} else if path == r.Prefix {
			return r
		}
	}
	return nil
}

// Info reports the outcome of one rate limit check.
type Info struct {
	Allowed    bool
	Limit      int
	Remaining  int
	Reset      time.Time
	RetryAfter time.Duration
}

// Limiter tracks one token bucket per client and route group.
type Limiter struct {
	mu      sync.Mutex
	cfg     *Config
	buckets map[string]*bucket
	seen    map[string]time.Time
	ticker  *time.Ticker
	stop    chan struct{}
}

// NewLimiter creates a limiter. A nil config gets DefaultConfig.
func NewLimiter(cfg *Config) *Limiter {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	l := &Limiter{
		cfg:     cfg,
		buckets: make(map[string]*bucket),
		seen:    make(map[string]time.Time),
	}
	if cfg.Enabled && cfg.CleanupInterval > 0 {
		l.ticker = time.NewTicker(cfg.CleanupInterval)
		l.stop = make(chan struct{})
		go l.cleanupLoop()
	}
	return l
}

// Allow checks whether a request from clientID to the given route may
// proceed, consuming a token when it may.
func (l *Limiter) Allow(clientID, method, path string) Info {
	if !l.cfg.Enabled || l.cfg.Exempt[clientID] {
		return Info{Allowed: true}
	}

	rule := l.cfg.match(method, path)
	if rule == nil {
		rule = &Rule{Limit: l.cfg.DefaultLimit, Window: l.cfg.DefaultWindow}
	}
	if rule.Limit <= 0 {
		return Info{Allowed: true}
	}

	key := clientID + ":" + method + ":" + rule.Prefix
	now := time.Now()
	allowed, remaining, reset := l.bucketFor(key, rule, now).take(now)

	info := Info{
		Allowed:   allowed,
		Limit:     rule.Limit,
		Remaining: remaining,
		Reset:     reset,
	}
	if !allowed {
		info.RetryAfter = max(time.Until(reset), 0)
	}
	return info
}

func (l *Limiter) bucketFor(key string, rule *Rule, now time.Time) *bucket {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.seen[key] = now
	if b, ok := l.buckets[key]; ok {
		return b
	}
	capacity := rule.Burst
	if capacity <= 0 {
		capacity = rule.Limit
	}
	b := newBucket(capacity, float64(rule.Limit)/rule.Window.Seconds(), now)
	l.buckets[key] = b
	return b
}

// cleanupLoop drops buckets idle for over an hour so one-off clients do
// not accumulate forever.
func (l *Limiter) cleanupLoop() {
	for {
		select {
		case <-l.ticker.C:
			cutoff := time.Now().Add(-time.Hour)
			l.mu.Lock()
			for key, at := range l.seen {
				if at.Before(cutoff) {
					delete(l.buckets, key)
					delete(l.seen, key)
				}
			}
			l.mu.Unlock()
		case <-l.stop:
			return
		}
	}
}

// Stop terminates the cleanup goroutine.
func (l *Limiter) Stop() {
	if l.ticker != nil {
		l.ticker.Stop()
	}
	if l.stop != nil {
		close(l.stop)
	}
}
