// Package ratelimit bounds inbound requests per caller with a fixed-window
// counter: at most Max hits per aligned Window, counted per key.
package ratelimit

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shandysiswandi/contactrelay/internal/pkg/clock"
)

const (
	// DriverMemory keeps counters in process memory.
	DriverMemory = "memory"
	// DriverRedis keeps counters in Redis so replicas share one budget.
	DriverRedis = "redis"
)

var (
	// ErrUnknownDriver indicates an unsupported limiter driver.
	ErrUnknownDriver = errors.New("ratelimit: unknown driver")
	// ErrRedisRequired indicates the redis driver was selected without a client.
	ErrRedisRequired = errors.New("ratelimit: redis client is required")
)

// Result describes the outcome of one hit.
type Result struct {
	Allowed   bool
	Limit     int
	Remaining int
	ResetAt   time.Time
}

// Limiter counts a hit for key and reports whether it is within budget.
type Limiter interface {
	Allow(ctx context.Context, key string) (Result, error)
}

// Options configures a Limiter.
type Options struct {
	// Window is the counting window.
	Window time.Duration
	// Max is the number of hits allowed per key per window.
	Max int
	// Clock defaults to the system clock.
	Clock clock.Clocker
	// Redis is required for DriverRedis.
	Redis *redis.Client
}

func (o Options) normalized() Options {
	if o.Window <= 0 {
		o.Window = 15 * time.Minute
	}
	if o.Max <= 0 {
		o.Max = 100
	}
	if o.Clock == nil {
		o.Clock = clock.New()
	}
	return o
}

// NewFromDriver constructs a Limiter by driver name.
func NewFromDriver(driver string, opts Options) (Limiter, error) {
	switch strings.ToLower(strings.TrimSpace(driver)) {
	case DriverMemory, "":
		return NewMemory(opts), nil
	case DriverRedis:
		if opts.Redis == nil {
			return nil, ErrRedisRequired
		}
		return NewRedis(opts.Redis, opts), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownDriver, driver)
	}
}

func result(count int64, max int, windowEnd time.Time) Result {
	remaining := int64(max) - count
	if remaining < 0 {
		remaining = 0
	}
	return Result{
		Allowed:   count <= int64(max),
		Limit:     max,
		Remaining: int(remaining),
		ResetAt:   windowEnd,
	}
}
