package engager

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"x-growth-bot/internal/domain"
	"x-growth-bot/internal/usecase/tracker"
)

type eventLog struct {
	events []string
}

func (l *eventLog) add(e string) { l.events = append(l.events, e) }

type recordingStore struct {
	log   *eventLog
	state domain.BotState
	saves int
}

func (r *recordingStore) Load(context.Context) (domain.BotState, error) {
	if r.state.EngagementHistory == nil {
		r.state = domain.NewBotState()
	}
	return r.state, nil
}

func (r *recordingStore) Save(_ context.Context, st domain.BotState) error {
	r.saves++
	r.state = st
	r.log.add("save")
	return nil
}

type searchPublisher struct {
	log       *eventLog
	tweets    []domain.Tweet
	searchErr error

	queries  []string
	likes    []string
	retweets []string
}

func (p *searchPublisher) CreateTweet(context.Context, string) (string, error) { return "", nil }

func (p *searchPublisher) Like(_ context.Context, id string) error {
	p.likes = append(p.likes, id)
	p.log.add("like")
	return nil
}

func (p *searchPublisher) Retweet(_ context.Context, id string) error {
	p.retweets = append(p.retweets, id)
	p.log.add("retweet")
	return nil
}

func (p *searchPublisher) SearchRecent(_ context.Context, query string, maxResults int) ([]domain.Tweet, error) {
	p.queries = append(p.queries, query)
	if p.searchErr != nil {
		return nil, p.searchErr
	}
	return p.tweets, nil
}

func fixedNow() time.Time {
	return time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
}

func newEngager(t *testing.T, pub *searchPublisher, store *recordingStore, log *eventLog, minLikes int) *Service {
	t.Helper()
	history := tracker.New(store, zerolog.Nop())
	if err := history.Load(context.Background()); err != nil {
		t.Fatalf("загрузка состояния: %v", err)
	}
	sleep := func(time.Duration) { log.add("sleep") }
	return NewService(pub, history, minLikes, 2, zerolog.Nop()).
		WithTopics([]string{"go"}).
		WithClock(fixedNow, sleep)
}

func TestEngageOnceRecordsAndPersistsBeforePause(t *testing.T) {
	log := &eventLog{}
	store := &recordingStore{log: log}
	pub := &searchPublisher{log: log, tweets: []domain.Tweet{
		{ID: "1901", Metrics: domain.PublicMetrics{LikeCount: 150}},
	}}
	svc := newEngager(t, pub, store, log, 100)

	if err := svc.EngageOnce(context.Background()); err != nil {
		t.Fatalf("не ожидали ошибку: %v", err)
	}
	want := []string{"like", "retweet", "save", "sleep"}
	if !reflect.DeepEqual(log.events, want) {
		t.Fatalf("неверный порядок действий: %v, ожидали %v", log.events, want)
	}
	rec, ok := store.state.EngagementHistory["1901"]
	if !ok {
		t.Fatalf("реакция не записана")
	}
	if rec.Kind != domain.EngagementKindLikeRetweet {
		t.Fatalf("неожиданный вид реакции: %q", rec.Kind)
	}
	if rec.Timestamp != fixedNow().Format(time.RFC3339) {
		t.Fatalf("неожиданный timestamp: %q", rec.Timestamp)
	}
}

func TestEngageOnceSkipsBelowThreshold(t *testing.T) {
	log := &eventLog{}
	store := &recordingStore{log: log}
	pub := &searchPublisher{log: log, tweets: []domain.Tweet{
		{ID: "1901", Metrics: domain.PublicMetrics{LikeCount: 50}},
	}}
	svc := newEngager(t, pub, store, log, 100)

	if err := svc.EngageOnce(context.Background()); err != nil {
		t.Fatalf("не ожидали ошибку: %v", err)
	}
	if len(pub.likes) != 0 || len(pub.retweets) != 0 {
		t.Fatalf("твит ниже порога не должен получать реакцию")
	}
	if len(store.state.EngagementHistory) != 0 {
		t.Fatalf("история не должна пополняться: %+v", store.state.EngagementHistory)
	}
}

func TestEngageOnceThresholdIsStrict(t *testing.T) {
	log := &eventLog{}
	store := &recordingStore{log: log}
	pub := &searchPublisher{log: log, tweets: []domain.Tweet{
		{ID: "1901", Metrics: domain.PublicMetrics{LikeCount: 100}},
	}}
	svc := newEngager(t, pub, store, log, 100)

	if err := svc.EngageOnce(context.Background()); err != nil {
		t.Fatalf("не ожидали ошибку: %v", err)
	}
	if len(pub.likes) != 0 {
		t.Fatalf("ровно пороговое значение не должно проходить фильтр")
	}
}

func TestEngageOnceIdempotent(t *testing.T) {
	log := &eventLog{}
	store := &recordingStore{log: log, state: domain.BotState{
		EngagementHistory: map[string]domain.EngagementRecord{
			"1901": {Kind: domain.EngagementKindLikeRetweet, Timestamp: "2025-03-09T12:00:00Z"},
		},
		PostHistory: []domain.PostRecord{},
	}}
	pub := &searchPublisher{log: log, tweets: []domain.Tweet{
		{ID: "1901", Metrics: domain.PublicMetrics{LikeCount: 500}},
	}}
	svc := newEngager(t, pub, store, log, 100)

	if err := svc.EngageOnce(context.Background()); err != nil {
		t.Fatalf("не ожидали ошибку: %v", err)
	}
	if len(pub.likes) != 0 || len(pub.retweets) != 0 {
		t.Fatalf("повторная реакция на тот же твит запрещена")
	}
	if store.state.EngagementHistory["1901"].Timestamp != "2025-03-09T12:00:00Z" {
		t.Fatalf("существующая запись не должна мутировать")
	}
	if store.saves != 0 {
		t.Fatalf("без новых реакций не должно быть сохранений")
	}
}

func TestEngageOnceEngagesEachNewTweetOnce(t *testing.T) {
	log := &eventLog{}
	store := &recordingStore{log: log}
	pub := &searchPublisher{log: log, tweets: []domain.Tweet{
		{ID: "1", Metrics: domain.PublicMetrics{LikeCount: 150}},
		{ID: "2", Metrics: domain.PublicMetrics{LikeCount: 90}},
		{ID: "3", Metrics: domain.PublicMetrics{LikeCount: 300}},
	}}
	svc := newEngager(t, pub, store, log, 100)

	if err := svc.EngageOnce(context.Background()); err != nil {
		t.Fatalf("не ожидали ошибку: %v", err)
	}
	if !reflect.DeepEqual(pub.likes, []string{"1", "3"}) {
		t.Fatalf("неожиданные лайки: %v", pub.likes)
	}
	if store.saves != 2 {
		t.Fatalf("ожидали сохранение после каждой реакции, было %d", store.saves)
	}

	// Повторный проход по тем же результатам ничего не добавляет.
	if err := svc.EngageOnce(context.Background()); err != nil {
		t.Fatalf("не ожидали ошибку: %v", err)
	}
	if len(pub.likes) != 2 {
		t.Fatalf("повторный проход не должен реагировать заново: %v", pub.likes)
	}
}

func TestEngageOnceSearchErrorEndsRunEarly(t *testing.T) {
	log := &eventLog{}
	store := &recordingStore{log: log}
	pub := &searchPublisher{log: log, searchErr: errors.New("rate limit")}
	svc := newEngager(t, pub, store, log, 100)

	if err := svc.EngageOnce(context.Background()); err == nil {
		t.Fatalf("ожидали ошибку поиска")
	}
	if len(pub.queries) != 1 {
		t.Fatalf("после ошибки обход должен прекратиться: %v", pub.queries)
	}
}

func TestEngageOnceQueryShape(t *testing.T) {
	log := &eventLog{}
	store := &recordingStore{log: log}
	pub := &searchPublisher{log: log}
	svc := newEngager(t, pub, store, log, 100)

	if err := svc.EngageOnce(context.Background()); err != nil {
		t.Fatalf("не ожидали ошибку: %v", err)
	}
	if pub.queries[0] != "go -is:retweet -is:reply lang:en" {
		t.Fatalf("неожиданный запрос: %q", pub.queries[0])
	}
}
