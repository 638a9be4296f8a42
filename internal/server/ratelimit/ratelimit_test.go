package ratelimit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBucket_BurstThenDenied(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	b := newBucket(3, 1.0/3600, now) // 1 token per hour refill

	for i := 0; i < 3; i++ {
		allowed, _, _ := b.take(now)
		assert.True(t, allowed, "request %d within burst", i)
	}
	allowed, remaining, reset := b.take(now)
	assert.False(t, allowed)
	assert.Equal(t, 0, remaining)
	assert.True(t, reset.After(now))
}

func TestBucket_RefillsOverTime(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	b := newBucket(1, 1.0/60, now) // 1 token per minute

	allowed, _, _ := b.take(now)
	require.True(t, allowed)
	allowed, _, _ = b.take(now.Add(time.Second))
	assert.False(t, allowed, "no token one second later")
	allowed, _, _ = b.take(now.Add(61 * time.Second))
	assert.True(t, allowed, "token back after the window")
}

func TestBucket_NeverExceedsCapacity(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	b := newBucket(2, 1.0, now)

	// A long idle period must not bank more than the burst capacity.
	later := now.Add(time.Hour)
	for i := 0; i < 2; i++ {
		allowed, _, _ := b.take(later)
		assert.True(t, allowed)
	}
	allowed, _, _ := b.take(later)
	assert.False(t, allowed)
}

func TestConfig_MatchRules(t *testing.T) {
	cfg := DefaultConfig()

	tests := []struct {
		method string
		path   string
		limit  int
		found  bool
	}{
		{"GET", "/health", 0, true},
		{"POST", "/requirements/abc/matches", 20, true},
		{"POST", "/requirements", 100, true},
		{"PATCH", "/matches/abc/status", 120, true},
		{"GET", "/requirements/abc/matches", 0, false},
		{"DELETE", "/requirements", 0, false},
	}
	for _, tt := range tests {
		rule := cfg.match(tt.method, tt.path)
		if !tt.found {
			assert.Nil(t, rule, "%s %s", tt.method, tt.path)
			continue
		}
		require.NotNil(t, rule, "%s %s", tt.method, tt.path)
		assert.Equal(t, tt.limit, rule.Limit, "%s %s", tt.method, tt.path)
	}
}

func TestLimiter_GenerationBurst(t *testing.T) {
	l := NewLimiter(&Config{
		Enabled: true,
		Rules: []Rule{
			{Method: "POST", Prefix: "/requirements/", Limit: 10, Window: time.Hour, Burst: 2},
		},
		DefaultLimit:  1000,
		DefaultWindow: time.Minute,
	})
	defer l.Stop()

	path := "/requirements/abc/matches"
	for i := 0; i < 2; i++ {
		info := l.Allow("1.2.3.4", "POST", path)
		assert.True(t, info.Allowed, "request %d within burst", i)
		assert.Equal(t, 10, info.Limit)
	}
	info := l.Allow("1.2.3.4", "POST", path)
	assert.False(t, info.Allowed)
	assert.Greater(t, info.RetryAfter, time.Duration(0))
}

func TestLimiter_ClientsAreIndependent(t *testing.T) {
	l := NewLimiter(&Config{
		Enabled: true,
		Rules: []Rule{
			{Method: "POST", Prefix: "/requirements/", Limit: 10, Window: time.Hour, Burst: 1},
		},
	})
	defer l.Stop()

	path := "/requirements/abc/matches"
	require.True(t, l.Allow("1.1.1.1", "POST", path).Allowed)
	assert.False(t, l.Allow("1.1.1.1", "POST", path).Allowed)
	assert.True(t, l.Allow("2.2.2.2", "POST", path).Allowed, "second client has its own bucket")
}

func TestLimiter_DisabledAllowsEverything(t *testing.T) {
	l := NewLimiter(&Config{Enabled: false})
	defer l.Stop()

	for i := 0; i < 100; i++ {
		assert.True(t, l.Allow("1.1.1.1", "POST", "/requirements/abc/matches").Allowed)
	}
}

func TestLimiter_ExemptClient(t *testing.T) {
	l := NewLimiter(&Config{
		Enabled: true,
		Exempt:  map[string]bool{"10.0.0.1": true},
		Rules: []Rule{
			{Method: "POST", Prefix: "/requirements/", Limit: 1, Window: time.Hour, Burst: 1},
		},
	})
	defer l.Stop()

	for i := 0; i < 10; i++ {
		assert.True(t, l.Allow("10.0.0.1", "POST", "/requirements/abc/matches").Allowed)
	}
}

func TestLimiter_HealthUnlimited(t *testing.T) {
	l := NewLimiter(DefaultConfig())
	defer l.Stop()

	for i := 0; i < 50; i++ {
		info := l.Allow("1.1.1.1", "GET", "/health")
		assert.True(t, info.Allowed)
		assert.Zero(t, info.Limit)
	}
}
