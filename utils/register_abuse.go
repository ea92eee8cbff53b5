package utils

import (
	"context"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/zerofake/zerofake/config"
)

// Registration anti-abuse counters. All state lives in Redis with TTL
// eviction so limits hold across instances and restarts; every check
// fails open when Redis is unreachable.

func regKey(parts ...string) string {
	return "reg:" + strings.Join(parts, ":")
}

// RegistrationCooldownTry enforces a short cooldown between attempts per IP.
func RegistrationCooldownTry(ip string) bool {
	cfg := config.Get()
	sec := cfg.RegisterAttemptCooldownSec
	if sec <= 0 {
		return true
	}
	cli := GetRedis()
	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()
	ok, err := cli.SetNX(ctx, regKey("cooldown", ip), "1", time.Duration(sec)*time.Second).Result()
	if err != nil {
		return true
	}
	return ok
}

// RegistrationDailyLimitCheck allows up to N successful registrations per day per IP.
func RegistrationDailyLimitCheck(ip string) bool {
	cfg := config.Get()
	limit := cfg.RegisterMaxPerIPPerDay
	if limit <= 0 {
		return true
	}
	cli := GetRedis()
	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()
	n, err := cli.Get(ctx, regKey("succday", ip, time.Now().Format("20060102"))).Int()
	if err == redis.Nil {
		n = 0
	} else if err != nil {
		return true
	}
	return n < limit
}

// RegistrationBanCheck reports whether the IP is temporarily banned from
// registering after repeated failed attempts.
func RegistrationBanCheck(ip string) bool {
	cli := GetRedis()
	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()
	n, err := cli.Exists(ctx, regKey("ban", ip)).Result()
	if err != nil {
		return false
	}
	return n > 0
}

// RegistrationFailureRecord counts a failed attempt (bad captcha, taken
// username). Crossing the threshold bans the IP for a day.
func RegistrationFailureRecord(ip string) {
	const failThreshold = 10
	cli := GetRedis()
	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()
	key := regKey("fail", ip, time.Now().Format("20060102"))
	n, err := cli.Incr(ctx, key).Result()
	if err != nil {
		return
	}
	_ = cli.Expire(ctx, key, 24*time.Hour).Err()
	if n >= failThreshold {
		_ = cli.Set(ctx, regKey("ban", ip), "1", 24*time.Hour).Err()
	}
}

// RegistrationDailyIncrement increments the success counter for today.
func RegistrationDailyIncrement(ip string) {
	cli := GetRedis()
	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()
	key := regKey("succday", ip, time.Now().Format("20060102"))
	if err := cli.Incr(ctx, key).Err(); err == nil {
		// counter dies at end of day
		_ = cli.Expire(ctx, key, 24*time.Hour).Err()
	}
}
