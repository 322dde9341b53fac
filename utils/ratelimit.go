package utils

import (
	"sync"
	"time"
)

// RateLimiter allows a fixed number of actions per user and action within a window.
type RateLimiter struct {
	limits map[string]*userLimit
	mu     sync.Mutex
	max    int
	window time.Duration
	now    func() time.Time
}

type userLimit struct {
	windowStart time.Time
	count       int
}

// NewRateLimiter creates a limiter allowing max actions per window.
func NewRateLimiter(max int, window time.Duration) *RateLimiter {
	if max <= 0 {
		max = 15
	}
	if window <= 0 {
		window = time.Minute
	}
	return &RateLimiter{
		limits: make(map[string]*userLimit),
		max:    max,
		window: window,
		now:    time.Now,
	}
}

// Allow checks if a user may perform action now and records the attempt.
func (rl *RateLimiter) Allow(userID, action string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	key := userID + ":" + action
	now := rl.now()

	limit, exists := rl.limits[key]
	if !exists || now.Sub(limit.windowStart) >= rl.window {
		rl.limits[key] = &userLimit{windowStart: now, count: 1}
		return true
	}

	if limit.count >= rl.max {
		return false
	}
	limit.count++
	return true
}

// RetryAfter returns how long until the user's window resets.
func (rl *RateLimiter) RetryAfter(userID, action string) time.Duration {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	limit, exists := rl.limits[userID+":"+action]
	if !exists {
		return 0
	}
	elapsed := rl.now().Sub(limit.windowStart)
	if elapsed >= rl.window {
		return 0
	}
	return rl.window - elapsed
}

// Sweep drops windows that have already expired.
func (rl *RateLimiter) Sweep() {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	for key, limit := range rl.limits {
		if now.Sub(limit.windowStart) >= rl.window {
			delete(rl.limits, key)
		}
	}
}
