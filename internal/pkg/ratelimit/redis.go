package ratelimit

import (
	"context"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shandysiswandi/contactrelay/internal/pkg/clock"
)

// Redis is a fixed-window limiter shared by every process using the same Redis.
type Redis struct {
	client *redis.Client
	prefix string
	window time.Duration
	max    int
	clock  clock.Clocker
}

// NewRedis constructs a Redis limiter.
func NewRedis(client *redis.Client, opts Options) *Redis {
	opts = opts.normalized()
	return &Redis{
		client: client,
		prefix: "ratelimit:",
		window: opts.Window,
		max:    opts.Max,
		clock:  opts.Clock,
	}
}

// Allow counts one hit for key in the current window bucket.
func (r *Redis) Allow(ctx context.Context, key string) (Result, error) {
	current := r.clock.Now().Truncate(r.window)
	fk := r.prefix + key + ":" + strconv.FormatInt(current.Unix(), 10)

	var incr *redis.IntCmd
	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		incr = pipe.Incr(ctx, fk)
		pipe.Expire(ctx, fk, r.window)
		return nil
	})
	if err != nil {
		return Result{}, err
	}

	return result(incr.Val(), r.max, current.Add(r.window)), nil
}
