package repositories

import (
	"context"
	"time"
)

// CacheRepositoryInterface - кеш с TTL. Используется для сводок
// дашборда и счетчика неудачных попыток входа.
type CacheRepositoryInterface interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value any, expiration time.Duration) error
	Del(ctx context.Context, keys ...string) error
	Incr(ctx context.Context, key string) (int64, error)
}
