package redis

import (
	"testing"
	"time"
)

func TestNewRedisUsesConfiguredHoldTTL(t *testing.T) {
	r := NewRedis(nil, 45*time.Second)
	if r.holdTTL != 45*time.Second {
		t.Errorf("Expected hold TTL 45s, got %v", r.holdTTL)
	}
}

func TestNewRedisDefaultsHoldTTL(t *testing.T) {
	for _, ttl := range []time.Duration{0, -time.Second} {
		r := NewRedis(nil, ttl)
		if r.holdTTL != 30*time.Second {
			t.Errorf("Expected default hold TTL 30s for input %v, got %v", ttl, r.holdTTL)
		}
	}
}
