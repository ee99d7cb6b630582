package contracts

import (
	"context"
	"time"
)

type RedisRepository interface {
	TrySetNX(ctx context.Context, key string, value interface{}, exp time.Duration) (bool, error)
	// DeleteIfValue removes key only while it still holds value. found is
	// false when the key no longer exists.
	DeleteIfValue(ctx context.Context, key string, value interface{}) (found, deleted bool, err error)
}
