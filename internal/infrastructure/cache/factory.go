package cache

import (
	"github.com/bayup/backend/internal/domain/shared"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// NewIdempotencyStore returns a Redis store when a client is available and
// the in-memory store otherwise
func NewIdempotencyStore(client *redis.Client, logger *zap.Logger) shared.IdempotencyStore {
	if client != nil {
		logger.Info("using redis idempotency store")
		return NewRedisIdempotencyStore(client, "")
	}
	logger.Warn("redis disabled, using in-memory idempotency store; keys are not shared across instances")
	return NewInMemoryIdempotencyStore()
}
