package store

import (
	"context"
	"errors"

	"github.com/2beens/groove/internal/telemetry/tracing"

	"github.com/go-redis/redis/v8"
	"go.opentelemetry.io/otel/attribute"
)

var _ Store = (*Redis)(nil)

type Redis struct {
	redisClient *redis.Client
	keyPrefix   string
}

func NewRedis(redisClient *redis.Client, keyPrefix string) *Redis {
	return &Redis{
		redisClient: redisClient,
		keyPrefix:   keyPrefix,
	}
}

func (r *Redis) Get(ctx context.Context, key string) (_ []byte, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "store.redis.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("key", key))

	cmd := r.redisClient.Get(ctx, r.keyPrefix+key)
	if err := cmd.Err(); err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return cmd.Bytes()
}

func (r *Redis) Set(ctx context.Context, key string, value []byte) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "store.redis.set")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("key", key))

	return r.redisClient.Set(ctx, r.keyPrefix+key, string(value), 0).Err()
}

func (r *Redis) Close() error {
	return r.redisClient.Close()
}
