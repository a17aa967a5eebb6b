package ratelimiter

import (
	"context"
	"errors"
	"fmt"
	"time"
)

var ErrRateLimitExceeded = errors.New("rate limit exceeded")

type Interval struct {
	prefix   string
	duration time.Duration
}

var (
	Minute = Interval{prefix: "m", duration: time.Minute}
	Hour   = Interval{prefix: "h", duration: time.Hour}
)

func (i Interval) Duration() time.Duration {
	return i.duration
}

// Bucket names the fixed window the given instant falls into.
func (i Interval) Bucket(now time.Time) string {
	switch i {
	case Hour:
		return fmt.Sprintf("%s%d", i.prefix, now.Hour())
	case Minute:
		return fmt.Sprintf("%s%d", i.prefix, now.Minute())
	default:
		panic(fmt.Sprintf("invalid rate limiting interval: %v", i))
	}
}

type Limit struct {
	Value    uint16
	Interval Interval
}

type Result struct {
	IsAllowed bool
}

func Allowed() Result {
	return Result{IsAllowed: true}
}

func NotAllowed() Result {
	return Result{IsAllowed: false}
}

func Key(scope string, subject string) string {
	return scope + "::" + subject
}

type RateLimiter interface {
	CheckLimit(ctx context.Context, key string, limit Limit) Result
}
