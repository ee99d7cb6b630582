package redis

import (
	"checkout-service/internal/app/contracts"
	"checkout-service/internal/pkg/exceptions"
	"context"
	"time"

	"github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"
)

// deleteIfValueScript returns -1 for a missing key, 0 when the stored value
// differs and 1 once the key is deleted.
var deleteIfValueScript = redis.NewScript(`
local current = redis.call("GET", KEYS[1])
if not current then
	return -1
end
if current ~= ARGV[1] then
	return 0
end
return redis.call("DEL", KEYS[1])
`)

type redisRepository struct {
	client *redis.Client
}

func NewRedisRepository(client *redis.Client) contracts.RedisRepository {
	return &redisRepository{client: client}
}

// Values are stored JSON encoded so that TrySetNX and DeleteIfValue agree on
// the representation.
func (r *redisRepository) TrySetNX(ctx context.Context, key string, value interface{}, exp time.Duration) (bool, error) {
	jsonValue, err := json.Marshal(value)
	if err != nil {
		return false, exceptions.ErrCannotMarshalJSON(err)
	}

	acquired, err := r.client.SetNX(ctx, key, jsonValue, exp).Result()
	if err != nil {
		return false, exceptions.ErrRedisSet(err)
	}
	return acquired, nil
}

func (r *redisRepository) DeleteIfValue(ctx context.Context, key string, value interface{}) (bool, bool, error) {
	jsonValue, err := json.Marshal(value)
	if err != nil {
		return false, false, exceptions.ErrCannotMarshalJSON(err)
	}

	result, err := deleteIfValueScript.Run(ctx, r.client, []string{key}, string(jsonValue)).Int64()
	if err != nil {
		return false, false, exceptions.ErrRedisDelete(err)
	}
	return result >= 0, result == 1, nil
}
