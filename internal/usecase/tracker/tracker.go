package tracker

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"x-growth-bot/internal/domain"
	"x-growth-bot/internal/infra/metrics"
)

// Tracker держит авторитетную копию состояния в памяти и пишет её
// в хранилище целиком после каждой мутации. Ошибка сохранения логируется
// и не останавливает работу: теряется максимум одна запись при падении.
type Tracker struct {
	mu    sync.RWMutex
	state domain.BotState
	store domain.StateStore
	log   zerolog.Logger
}

// New создаёт трекер поверх хранилища.
func New(store domain.StateStore, logger zerolog.Logger) *Tracker {
	return &Tracker{state: domain.NewBotState(), store: store, log: logger}
}

// Load загружает состояние из хранилища. Вызывается один раз на старте.
func (t *Tracker) Load(ctx context.Context) error {
	state, err := t.store.Load(ctx)
	if err != nil {
		return err
	}
	t.mu.Lock()
	t.state = state
	t.mu.Unlock()
	t.log.Info().Int("posts", len(state.PostHistory)).Int("engagements", len(state.EngagementHistory)).
		Msg("состояние бота загружено")
	return nil
}

// RecordPost дописывает запись о публикации и сохраняет состояние.
func (t *Tracker) RecordPost(ctx context.Context, rec domain.PostRecord) {
	t.mu.Lock()
	t.state.PostHistory = append(t.state.PostHistory, rec)
	snapshot := t.snapshotLocked()
	t.mu.Unlock()
	t.save(ctx, snapshot)
}

// RecordEngagement фиксирует реакцию на твит и сохраняет состояние.
func (t *Tracker) RecordEngagement(ctx context.Context, tweetID string, rec domain.EngagementRecord) {
	t.mu.Lock()
	t.state.EngagementHistory[tweetID] = rec
	snapshot := t.snapshotLocked()
	t.mu.Unlock()
	t.save(ctx, snapshot)
}

// Engaged сообщает, была ли уже реакция на твит.
func (t *Tracker) Engaged(tweetID string) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.state.Engaged(tweetID)
}

// Counts возвращает размеры историй для health-эндпоинта.
func (t *Tracker) Counts() (posts, engagements int) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.state.PostHistory), len(t.state.EngagementHistory)
}

func (t *Tracker) save(ctx context.Context, snapshot domain.BotState) {
	if err := t.store.Save(ctx, snapshot); err != nil {
		metrics.StateSaveErrors.Inc()
		t.log.Error().Err(err).Msg("не удалось сохранить состояние, память остаётся авторитетной")
	}
}

// snapshotLocked копирует состояние под уже взятым мьютексом, чтобы
// сохранение шло без гонки с последующими мутациями.
func (t *Tracker) snapshotLocked() domain.BotState {
	snapshot := domain.BotState{
		EngagementHistory: make(map[string]domain.EngagementRecord, len(t.state.EngagementHistory)),
		PostHistory:       append([]domain.PostRecord(nil), t.state.PostHistory...),
	}
	for k, v := range t.state.EngagementHistory {
		snapshot.EngagementHistory[k] = v
	}
	return snapshot
}
