package engager

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"x-growth-bot/internal/domain"
	"x-growth-bot/internal/infra/metrics"
	"x-growth-bot/internal/usecase/tracker"
)

const searchMaxResults = 10

// Service обходит темы и реагирует на подходящие твиты: лайк + ретвит,
// не больше одного раза на твит за всю жизнь состояния.
type Service struct {
	pub     domain.Publisher
	history *tracker.Tracker
	log     zerolog.Logger

	minLikes        int
	engagementCount int
	topics          []string
	now             func() time.Time
	sleep           func(time.Duration)
}

// NewService создаёт энгейджер. engagementCount валидируется конфигом (>= 1).
func NewService(pub domain.Publisher, history *tracker.Tracker, minLikes, engagementCount int, logger zerolog.Logger) *Service {
	return &Service{
		pub:             pub,
		history:         history,
		log:             logger,
		minLikes:        minLikes,
		engagementCount: engagementCount,
		topics:          domain.Topics,
		now:             time.Now,
		sleep:           time.Sleep,
	}
}

// WithTopics ограничивает список тем.
func (s *Service) WithTopics(topics []string) *Service {
	s.topics = topics
	return s
}

// WithClock подменяет источники времени и паузы.
func (s *Service) WithClock(now func() time.Time, sleep func(time.Duration)) *Service {
	s.now = now
	s.sleep = sleep
	return s
}

// EngageOnce выполняет один проход по темам. Любая ошибка завершает проход
// досрочно; уже сохранённый прогресс переживает выход.
func (s *Service) EngageOnce(ctx context.Context) error {
	for _, topic := range s.topics {
		query := fmt.Sprintf("%s -is:retweet -is:reply lang:en", topic)
		tweets, err := s.pub.SearchRecent(ctx, query, searchMaxResults)
		if err != nil {
			return fmt.Errorf("поиск по теме %q: %w", topic, err)
		}
		for _, tweet := range tweets {
			if s.history.Engaged(tweet.ID) {
				metrics.EngagementSkipsTotal.WithLabelValues("seen").Inc()
				continue
			}
			if tweet.Metrics.LikeCount <= s.minLikes {
				metrics.EngagementSkipsTotal.WithLabelValues("below_threshold").Inc()
				continue
			}
			if err := s.engage(ctx, tweet); err != nil {
				return err
			}
		}
	}
	return nil
}

// engage реагирует на один твит, фиксирует запись до паузы и выдерживает
// собственный рейт-лимит 60/engagementCount секунд.
func (s *Service) engage(ctx context.Context, tweet domain.Tweet) error {
	if err := s.pub.Like(ctx, tweet.ID); err != nil {
		return fmt.Errorf("лайк твита %s: %w", tweet.ID, err)
	}
	if err := s.pub.Retweet(ctx, tweet.ID); err != nil {
		return fmt.Errorf("ретвит твита %s: %w", tweet.ID, err)
	}

	s.history.RecordEngagement(ctx, tweet.ID, domain.EngagementRecord{
		Kind:      domain.EngagementKindLikeRetweet,
		Timestamp: s.now().Format(time.RFC3339),
	})
	metrics.EngagementsTotal.Inc()
	s.log.Info().Str("tweet_id", tweet.ID).Int("likes", tweet.Metrics.LikeCount).
		Msg("реакция на твит выполнена")

	s.sleep(time.Duration(float64(time.Minute) / float64(s.engagementCount)))
	return nil
}
