package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// LoginLimiter throttles repeated failed logins per email.
// Key format: login_fail:<email>, a counter expiring after the window.
//
// The limiter fails open: if Redis is unreachable, logins proceed so an
// infrastructure outage cannot lock every account out.
type LoginLimiter struct {
	client *redis.Client
	max    int64
	window time.Duration
	log    zerolog.Logger
}

// NewLoginLimiter creates a limiter allowing max failed attempts per window.
func NewLoginLimiter(client *redis.Client, max int, window time.Duration, log zerolog.Logger) *LoginLimiter {
	return &LoginLimiter{client: client, max: int64(max), window: window, log: log}
}

// Allow reports whether a login attempt for this email may proceed.
func (l *LoginLimiter) Allow(ctx context.Context, email string) bool {
	n, err := l.client.Get(ctx, l.key(email)).Int64()
	if err == redis.Nil {
		return true
	}
	if err != nil {
		l.log.Warn().Err(err).Msg("login limiter check failed, allowing attempt")
		return true
	}
	return n < l.max
}

// Fail records one failed attempt. The window starts at the first failure.
func (l *LoginLimiter) Fail(ctx context.Context, email string) {
	key := l.key(email)
	n, err := l.client.Incr(ctx, key).Result()
	if err != nil {
		l.log.Warn().Err(err).Msg("login limiter incr failed")
		return
	}
	if n == 1 {
		if err := l.client.Expire(ctx, key, l.window).Err(); err != nil {
			l.log.Warn().Err(err).Msg("login limiter expire failed")
		}
	}
}

// Reset clears the counter after a successful login.
func (l *LoginLimiter) Reset(ctx context.Context, email string) {
	if err := l.client.Del(ctx, l.key(email)).Err(); err != nil {
		l.log.Warn().Err(err).Msg("login limiter reset failed")
	}
}

func (l *LoginLimiter) key(email string) string {
	return fmt.Sprintf("login_fail:%s", email)
}
