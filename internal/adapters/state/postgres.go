package state

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"x-growth-bot/internal/domain"
	"x-growth-bot/internal/infra/metrics"
)

// PostgresStore держит состояние одной JSONB-строкой.
// Схема той же формы, что и файловый документ: весь агрегат целиком.
type PostgresStore struct {
	pool *pgxpool.Pool
}

var _ domain.StateStore = (*PostgresStore)(nil)

const stateKey = "bot"

// NewPostgresStore создаёт адаптер и таблицу, если её ещё нет.
func NewPostgresStore(ctx context.Context, pool *pgxpool.Pool) (*PostgresStore, error) {
	ctx, cancel := connCtx(ctx)
	defer cancel()
	_, err := pool.Exec(ctx, `
CREATE TABLE IF NOT EXISTS bot_state (
    key        TEXT PRIMARY KEY,
    state      JSONB NOT NULL,
    updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`)
	if err != nil {
		return nil, fmt.Errorf("%w: создание таблицы bot_state: %v", domain.ErrPersistence, err)
	}
	return &PostgresStore{pool: pool}, nil
}

// Load читает состояние. Отсутствующая строка — пустое состояние.
func (s *PostgresStore) Load(ctx context.Context) (domain.BotState, error) {
	ctx, cancel := connCtx(ctx)
	defer cancel()
	var raw []byte
	start := time.Now()
	err := s.pool.QueryRow(ctx, `SELECT state FROM bot_state WHERE key = $1`, stateKey).Scan(&raw)
	metrics.ObserveNetworkRequest("postgres", "state_load", "bot_state", start, err)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.NewBotState(), nil
	}
	if err != nil {
		return domain.BotState{}, fmt.Errorf("%w: чтение bot_state: %v", domain.ErrPersistence, err)
	}
	return decodeState(raw)
}

// Save перезаписывает строку состояния целиком.
func (s *PostgresStore) Save(ctx context.Context, st domain.BotState) error {
	data, err := json.Marshal(st)
	if err != nil {
		return fmt.Errorf("%w: marshal состояния: %v", domain.ErrPersistence, err)
	}
	ctx, cancel := connCtx(ctx)
	defer cancel()
	start := time.Now()
	_, err = s.pool.Exec(ctx, `
INSERT INTO bot_state (key, state, updated_at) VALUES ($1, $2, now())
ON CONFLICT (key) DO UPDATE SET state = EXCLUDED.state, updated_at = now()
`, stateKey, data)
	metrics.ObserveNetworkRequest("postgres", "state_save", "bot_state", start, err)
	if err != nil {
		return fmt.Errorf("%w: запись bot_state: %v", domain.ErrPersistence, err)
	}
	return nil
}

func connCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	if ctx == nil {
		ctx = context.Background()
	}
	if _, ok := ctx.Deadline(); ok {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, 5*time.Second)
}
