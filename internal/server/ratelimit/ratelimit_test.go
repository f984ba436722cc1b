package ratelimit

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *Config {
	return &Config{Enabled: true, RPS: 1, Burst: 3}
}

func TestLimiter_Allow(t *testing.T) {
	l := NewLimiter(testConfig())
	defer l.Stop()

	for i := 0; i < 3; i++ {
		allowed, info := l.Allow("10.0.0.1", "/profile", "GET")
		require.True(t, allowed, "request %d", i+1)
		assert.Equal(t, 3, info.Limit)
		assert.Equal(t, 2-i, info.Remaining)
	}

	allowed, info := l.Allow("10.0.0.1", "/profile", "GET")
	assert.False(t, allowed)
	assert.Equal(t, 0, info.Remaining)
	assert.Greater(t, info.RetryAfter, time.Duration(0))
	assert.LessOrEqual(t, info.RetryAfter, time.Second)
	assert.True(t, info.ResetTime.After(time.Now()))

	// Other clients have their own bucket
	allowed, _ = l.Allow("10.0.0.2", "/profile", "GET")
	assert.True(t, allowed)
}

func TestLimiter_WhitelistAndBlacklist(t *testing.T) {
	cfg := testConfig()
	cfg.Burst = 1
	cfg.Whitelist = []string{"127.0.0.1"}
	cfg.Blacklist = []string{"192.0.2.1"}
	l := NewLimiter(cfg)
	defer l.Stop()

	for i := 0; i < 5; i++ {
		allowed, _ := l.Allow("127.0.0.1", "/profile", "GET")
		assert.True(t, allowed)
	}

	allowed, _ := l.Allow("192.0.2.1", "/profile", "GET")
	assert.False(t, allowed)
}

func TestLimiter_Disabled(t *testing.T) {
	l := NewLimiter(&Config{Enabled: false, RPS: 1, Burst: 1})
	defer l.Stop()

	for i := 0; i < 5; i++ {
		allowed, info := l.Allow("10.0.0.1", "/profile", "GET")
		assert.True(t, allowed)
		assert.Zero(t, info.Limit)
	}
	assert.Zero(t, l.Len())
}

func TestLimiter_EndpointSpecific(t *testing.T) {
	cfg := testConfig()
	cfg.Burst = 100
	cfg.EndpointConfigs = DefaultEndpointConfigs()
	l := NewLimiter(cfg)
	defer l.Stop()

	// POST /recommendations allows a burst of two
	for i := 0; i < 2; i++ {
		allowed, _ := l.Allow("10.0.0.1", "/recommendations", "POST")
		assert.True(t, allowed)
	}
	allowed, info := l.Allow("10.0.0.1", "/recommendations", "POST")
	assert.False(t, allowed)
	assert.Equal(t, 2, info.Limit)

	// Prefix match covers every auth route
	allowed, info = l.Allow("10.0.0.1", "/auth/signin", "POST")
	assert.True(t, allowed)
	assert.Equal(t, 5, info.Limit)

	// Reads use the default
	allowed, info = l.Allow("10.0.0.1", "/chat", "GET")
	assert.True(t, allowed)
	assert.Equal(t, 100, info.Limit)
}

func TestLimiter_HealthAndMetricsUnlimited(t *testing.T) {
	cfg := testConfig()
	cfg.Burst = 1
	l := NewLimiter(cfg)
	defer l.Stop()

	for i := 0; i < 10; i++ {
		allowed, _ := l.Allow("10.0.0.1", "/health", "GET")
		assert.True(t, allowed)
		allowed, _ = l.Allow("10.0.0.1", "/metrics", "GET")
		assert.True(t, allowed)
	}
}

func TestLimiter_Concurrent(t *testing.T) {
	cfg := testConfig()
	cfg.RPS = 0.001
	cfg.Burst = 50
	l := NewLimiter(cfg)
	defer l.Stop()

	var allowedCount atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < 200; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if ok, _ := l.Allow("10.0.0.1", "/chat", "GET"); ok {
				allowedCount.Add(1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(50), allowedCount.Load())
}

func TestLimiter_CleanupIdleBuckets(t *testing.T) {
	cfg := testConfig()
	cfg.IdleTTL = time.Minute
	l := NewLimiter(cfg)
	defer l.Stop()

	l.Allow("10.0.0.1", "/profile", "GET")
	l.Allow("10.0.0.2", "/profile", "GET")
	require.Equal(t, 2, l.Len())

	l.cleanupBuckets(time.Now())
	assert.Equal(t, 2, l.Len())

	l.cleanupBuckets(time.Now().Add(2 * time.Minute))
	assert.Equal(t, 0, l.Len())
}

func TestLimiter_StopTwice(t *testing.T) {
	l := NewLimiter(&Config{Enabled: true, RPS: 1, Burst: 1, CleanupInterval: time.Millisecond})
	l.Stop()
	assert.NotPanics(t, l.Stop)
}

func TestNewLimiter_NilConfig(t *testing.T) {
	l := NewLimiter(nil)
	defer l.Stop()

	allowed, info := l.Allow("10.0.0.1", "/profile", "GET")
	assert.True(t, allowed)
	assert.Equal(t, 10, info.Limit)
}

func TestLoadConfig(t *testing.T) {
	t.Setenv("RATE_LIMIT_WHITELIST", "127.0.0.1, ::1")
	t.Setenv("RATE_LIMIT_IDLE_TTL", "30m")

	cfg, err := LoadConfig(2, 4)
	require.NoError(t, err)
	assert.True(t, cfg.Enabled)
	assert.Equal(t, 2.0, cfg.RPS)
	assert.Equal(t, 4, cfg.Burst)
	assert.Equal(t, 30*time.Minute, cfg.IdleTTL)
	assert.Equal(t, 5*time.Minute, cfg.CleanupInterval)
	assert.Len(t, cfg.Whitelist, 2)
	assert.Equal(t, DefaultEndpointConfigs(), cfg.EndpointConfigs)

	t.Setenv("RATE_LIMIT_ENABLED", "false")
	cfg, err = LoadConfig(2, 4)
	require.NoError(t, err)
	assert.False(t, cfg.Enabled)
}

func TestMatchEndpoint(t *testing.T) {
	configs := DefaultEndpointConfigs()

	tests := []struct {
		name      string
		path      string
		method    string
		wantBurst int
		wantNil   bool
	}{
		{"exact", "/chat", "POST", 5, false},
		{"prefix", "/auth/signup", "POST", 5, false},
		{"method mismatch", "/chat", "DELETE", 0, true},
		{"no match", "/profile", "PUT", 0, true},
		{"health", "/health", "GET", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MatchEndpoint(tt.path, tt.method, configs)
			if tt.wantNil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, tt.wantBurst, got.Burst)
		})
	}
}
