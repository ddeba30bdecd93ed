// README: Redis-backed mirror of the online-driver set.
package driver

import (
	"context"

	"github.com/redis/go-redis/v9"

	"omaga/internal/types"
)

const onlineKey = "drivers:online"

type RedisOnlineSet struct {
	redis *redis.Client
}

func NewRedisOnlineSet(client *redis.Client) *RedisOnlineSet {
	return &RedisOnlineSet{redis: client}
}

func (s *RedisOnlineSet) Add(ctx context.Context, id types.ID) error {
	return s.redis.SAdd(ctx, onlineKey, string(id)).Err()
}

func (s *RedisOnlineSet) Remove(ctx context.Context, id types.ID) error {
	return s.redis.SRem(ctx, onlineKey, string(id)).Err()
}

func (s *RedisOnlineSet) Contains(ctx context.Context, id types.ID) (bool, error) {
	return s.redis.SIsMember(ctx, onlineKey, string(id)).Result()
}
