package poster

import (
	"context"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/rs/zerolog"

	"x-growth-bot/internal/domain"
	"x-growth-bot/internal/infra/metrics"
	"x-growth-bot/internal/usecase/content"
	"x-growth-bot/internal/usecase/tracker"
)

const defaultRetryDelay = 5 * time.Second

// Service публикует один твит по конвейеру generate → format → submit → record.
type Service struct {
	gen     domain.Generator
	pub     domain.Publisher
	history *tracker.Tracker
	log     zerolog.Logger

	maxRetries  int
	tweetLength int
	retryDelay  time.Duration
	now         func() time.Time
}

// NewService создаёт постер.
func NewService(gen domain.Generator, pub domain.Publisher, history *tracker.Tracker, maxRetries, tweetLength int, logger zerolog.Logger) *Service {
	return &Service{
		gen:         gen,
		pub:         pub,
		history:     history,
		log:         logger,
		maxRetries:  maxRetries,
		tweetLength: tweetLength,
		retryDelay:  defaultRetryDelay,
		now:         time.Now,
	}
}

// WithRetryDelay меняет паузу между попытками.
func (s *Service) WithRetryDelay(d time.Duration) *Service {
	s.retryDelay = d
	return s
}

// WithClock подменяет источник времени.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// PostOnce делает не более maxRetries попыток опубликовать твит.
// Успех завершает цикл сразу; исчерпание попыток — отказ без ретраев
// на стороне планировщика.
func (s *Service) PostOnce(ctx context.Context) bool {
	attempt := 0
	op := func() error {
		attempt++
		metrics.PostAttemptsTotal.Inc()
		if err := s.attempt(ctx); err != nil {
			s.log.Error().Err(err).Int("attempt", attempt).Msg("попытка публикации не удалась")
			return err
		}
		return nil
	}

	// Постоянная пауза между попытками; WithMaxRetries считает повторы
	// после первой попытки, поэтому maxRetries-1.
	policy := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewConstantBackOff(s.retryDelay), uint64(s.maxRetries-1)),
		ctx,
	)
	if err := backoff.Retry(op, policy); err != nil {
		metrics.PostsTotal.WithLabelValues("failure").Inc()
		s.log.Error().Int("attempts", attempt).Msg("публикация не удалась, попытки исчерпаны")
		return false
	}
	metrics.PostsTotal.WithLabelValues("success").Inc()
	return true
}

func (s *Service) attempt(ctx context.Context) error {
	generated, err := s.gen.Generate(ctx)
	if err != nil {
		return fmt.Errorf("генерация контента: %w", err)
	}

	formatted := content.Format(generated.Text, s.tweetLength)
	tweetID, err := s.pub.CreateTweet(ctx, formatted)
	if err != nil {
		return fmt.Errorf("отправка твита: %w", err)
	}

	s.history.RecordPost(ctx, domain.PostRecord{
		ID:        tweetID,
		Content:   formatted,
		Timestamp: s.now().Format(time.RFC3339),
	})
	s.log.Info().Str("tweet_id", tweetID).Str("source", string(generated.Source)).
		Msg("твит опубликован")
	return nil
}
