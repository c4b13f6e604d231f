package main

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	zlog "github.com/rs/zerolog/log"

	"x-growth-bot/internal/adapters/generator"
	statestore "x-growth-bot/internal/adapters/state"
	"x-growth-bot/internal/domain"
	"x-growth-bot/internal/infra/config"
	"x-growth-bot/internal/infra/db"
	httpinfra "x-growth-bot/internal/infra/http"
	"x-growth-bot/internal/infra/log"
	"x-growth-bot/internal/infra/metrics"
	"x-growth-bot/internal/infra/openai"
	"x-growth-bot/internal/infra/twitter"
	"x-growth-bot/internal/usecase/content"
	"x-growth-bot/internal/usecase/engager"
	"x-growth-bot/internal/usecase/poster"
	"x-growth-bot/internal/usecase/schedule"
	"x-growth-bot/internal/usecase/tracker"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		zlog.Fatal().Err(err).Msg("не удалось загрузить конфиг")
	}
	logger := log.NewLogger(cfg.AppEnv)

	loc, err := time.LoadLocation(cfg.TZ)
	if err != nil {
		logger.Warn().Err(err).Str("tz", cfg.TZ).Msg("часовой пояс не распознан, используем UTC")
		loc = time.UTC
	}

	metrics.MustRegister(prometheus.DefaultRegisterer)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, closeStore, err := buildStateStore(ctx, cfg)
	if err != nil {
		logger.Fatal().Err(err).Str("backend", cfg.State.Backend).Msg("не удалось создать хранилище состояния")
	}
	defer closeStore()

	history := tracker.New(store, logger)
	if err := history.Load(ctx); err != nil {
		logger.Fatal().Err(err).Msg("не удалось загрузить состояние бота")
	}

	publisher := twitter.NewClient(cfg.Twitter.AccessToken, cfg.Twitter.BaseURL, 30*time.Second)

	var llm content.LLMGenerator
	if cfg.OpenAI.APIKey != "" {
		client := openai.NewClient(cfg.OpenAI.APIKey, cfg.OpenAI.BaseURL, 30*time.Second)
		llm = generator.NewOpenAI(client, cfg.OpenAI.Model, cfg.Bot.ContentTemperature, cfg.Bot.MaxHashtags, cfg.Bot.TweetLength, 30*time.Second)
	} else {
		logger.Warn().Msg("OPENAI_API_KEY не задан, посты пойдут только из шаблонов")
	}
	contentService := content.NewService(llm, generator.NewTemplate(), logger)

	posterService := poster.NewService(contentService, publisher, history, cfg.Bot.MaxRetries, cfg.Bot.TweetLength, logger)
	engagerService := engager.NewService(publisher, history, cfg.Bot.MinEngagementLikes, cfg.Bot.EngagementCount, logger)

	server := httpinfra.NewServer(logger, history.Counts)
	server.Start(fmt.Sprintf(":%d", cfg.Port))

	scheduler := schedule.NewService(logger)
	postTimes, err := cfg.ParsePostTimes()
	if err != nil {
		logger.Fatal().Err(err).Msg("не удалось разобрать POST_TIMES")
	}
	now := time.Now()
	for _, pt := range postTimes {
		rule := schedule.DailyAt(pt.Hour, pt.Minute, loc)
		name := fmt.Sprintf("post@%02d:%02d", pt.Hour, pt.Minute)
		scheduler.Add(schedule.NewJob(name, func(ctx context.Context) error {
			if !posterService.PostOnce(ctx) {
				return errors.New("публикация не удалась")
			}
			return nil
		}, rule(now), rule))
	}
	interval := time.Duration(cfg.Bot.EngagementInterval) * time.Hour
	scheduler.Add(schedule.NewJob("engage", engagerService.EngageOnce, now.Add(interval), schedule.Every(interval)))

	logger.Info().Int("post_jobs", len(postTimes)).Dur("engage_interval", interval).
		Str("state_backend", cfg.State.Backend).Msg("бот запущен")
	scheduler.Run(ctx)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("HTTP сервер завершился с ошибкой")
	}
	logger.Info().Msg("бот остановлен")
}

// buildStateStore выбирает backend состояния по конфигу.
func buildStateStore(ctx context.Context, cfg config.AppConfig) (domain.StateStore, func(), error) {
	switch cfg.State.Backend {
	case config.StateBackendPostgres:
		pool, err := db.Connect(cfg.PGDSN)
		if err != nil {
			return nil, nil, fmt.Errorf("подключение к Postgres: %w", err)
		}
		store, err := statestore.NewPostgresStore(ctx, pool)
		if err != nil {
			pool.Close()
			return nil, nil, err
		}
		return store, pool.Close, nil
	case config.StateBackendRedis:
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		return statestore.NewRedisStore(client, "bot_state"), func() { _ = client.Close() }, nil
	default:
		return statestore.NewFileStore(cfg.State.File), func() {}, nil
	}
}
