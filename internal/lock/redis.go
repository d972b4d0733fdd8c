package lock

import (
	"context"
	"fmt"
	"sync"
	"time"

	"thrift-store-be/internal/logger"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// releaseScript deletes the key only while it still holds our token.
const releaseScript = `
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0`

// RedisLocker implements Locker with SET NX PX so the lock spans processes.
type RedisLocker struct {
	client redis.Cmdable
	prefix string
}

func NewRedisLocker(client redis.Cmdable, prefix string) *RedisLocker {
	return &RedisLocker{client: client, prefix: prefix}
}

func (l *RedisLocker) Acquire(ctx context.Context, key string, ttl time.Duration) (func(), error) {
	fullKey := l.prefix + key
	token := uuid.NewString()

	ok, err := l.client.SetNX(ctx, fullKey, token, ttl).Result()
	if err != nil {
		return nil, fmt.Errorf("acquire lock %s: %w", fullKey, err)
	}
	if !ok {
		return nil, ErrNotAcquired
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			// the request context may already be cancelled
			rctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 2*time.Second)
			defer cancel()
			if err := l.client.Eval(rctx, releaseScript, []string{fullKey}, token).Err(); err != nil {
				logger.FromCtx(ctx).Warn("failed to release lock",
					zap.String("key", fullKey),
					zap.Error(err),
				)
			}
		})
	}, nil
}
