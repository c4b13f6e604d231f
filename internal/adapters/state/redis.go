package state

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"x-growth-bot/internal/domain"
	"x-growth-bot/internal/infra/metrics"
)

// RedisStore хранит состояние одним JSON-значением под фиксированным ключом.
type RedisStore struct {
	client *redis.Client
	key    string
}

var _ domain.StateStore = (*RedisStore)(nil)

// NewRedisStore создаёт хранилище по указанному ключу.
func NewRedisStore(client *redis.Client, key string) *RedisStore {
	if key == "" {
		key = "bot_state"
	}
	return &RedisStore{client: client, key: key}
}

// Load читает состояние. Отсутствующий ключ — пустое состояние.
func (s *RedisStore) Load(ctx context.Context) (domain.BotState, error) {
	start := time.Now()
	raw, err := s.client.Get(ctx, s.key).Bytes()
	if errors.Is(err, redis.Nil) {
		metrics.ObserveNetworkRequest("redis", "state_load", s.key, start, nil)
		return domain.NewBotState(), nil
	}
	metrics.ObserveNetworkRequest("redis", "state_load", s.key, start, err)
	if err != nil {
		return domain.BotState{}, fmt.Errorf("%w: чтение %s: %v", domain.ErrPersistence, s.key, err)
	}
	return decodeState(raw)
}

// Save перезаписывает значение ключа целиком, без TTL.
func (s *RedisStore) Save(ctx context.Context, st domain.BotState) error {
	data, err := json.Marshal(st)
	if err != nil {
		return fmt.Errorf("%w: marshal состояния: %v", domain.ErrPersistence, err)
	}
	start := time.Now()
	err = s.client.Set(ctx, s.key, data, 0).Err()
	metrics.ObserveNetworkRequest("redis", "state_save", s.key, start, err)
	if err != nil {
		return fmt.Errorf("%w: запись %s: %v", domain.ErrPersistence, s.key, err)
	}
	return nil
}
