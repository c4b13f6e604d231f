package tracker

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"x-growth-bot/internal/domain"
)

type flakyStore struct {
	state   domain.BotState
	saveErr error
	saves   int
}

func (f *flakyStore) Load(context.Context) (domain.BotState, error) {
	if f.state.EngagementHistory == nil {
		return domain.NewBotState(), nil
	}
	return f.state, nil
}

func (f *flakyStore) Save(_ context.Context, st domain.BotState) error {
	f.saves++
	f.state = st
	return f.saveErr
}

func TestTrackerWriteThrough(t *testing.T) {
	store := &flakyStore{}
	tr := New(store, zerolog.Nop())
	if err := tr.Load(context.Background()); err != nil {
		t.Fatalf("не ожидали ошибку: %v", err)
	}

	tr.RecordPost(context.Background(), domain.PostRecord{ID: "1", Content: "a", Timestamp: "t"})
	tr.RecordEngagement(context.Background(), "99", domain.EngagementRecord{Kind: domain.EngagementKindLikeRetweet, Timestamp: "t"})

	if store.saves != 2 {
		t.Fatalf("каждая мутация должна сохраняться, было %d", store.saves)
	}
	posts, engagements := tr.Counts()
	if posts != 1 || engagements != 1 {
		t.Fatalf("неожиданные счётчики: %d/%d", posts, engagements)
	}
	if !tr.Engaged("99") {
		t.Fatalf("реакция потерялась")
	}
	if len(store.state.PostHistory) != 1 || store.state.PostHistory[0].ID != "1" {
		t.Fatalf("в хранилище ушло не то: %+v", store.state)
	}
}

func TestTrackerSaveFailureKeepsMemoryAuthoritative(t *testing.T) {
	store := &flakyStore{saveErr: errors.New("диск переполнен")}
	tr := New(store, zerolog.Nop())
	if err := tr.Load(context.Background()); err != nil {
		t.Fatalf("не ожидали ошибку: %v", err)
	}

	tr.RecordEngagement(context.Background(), "5", domain.EngagementRecord{Kind: domain.EngagementKindLikeRetweet, Timestamp: "t"})
	if !tr.Engaged("5") {
		t.Fatalf("память должна оставаться авторитетной при ошибке сохранения")
	}
}

func TestTrackerLoadPropagatesError(t *testing.T) {
	tr := New(&errStore{}, zerolog.Nop())
	if err := tr.Load(context.Background()); err == nil {
		t.Fatalf("ошибка загрузки должна подниматься наверх")
	}
}

type errStore struct{}

func (e *errStore) Load(context.Context) (domain.BotState, error) {
	return domain.BotState{}, domain.ErrPersistence
}
func (e *errStore) Save(context.Context, domain.BotState) error { return nil }
