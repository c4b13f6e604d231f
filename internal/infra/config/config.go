package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"

	"x-growth-bot/internal/domain"
)

// AppConfig описывает конфигурацию бота.
type AppConfig struct {
	AppEnv string `envconfig:"APP_ENV" default:"dev"`
	TZ     string `envconfig:"TZ" default:"UTC"`
	Port   int    `envconfig:"PORT" default:"8080"`

	Twitter struct {
		AccessToken string `envconfig:"TWITTER_ACCESS_TOKEN"`
		BaseURL     string `envconfig:"TWITTER_BASE_URL"`
	} `envconfig:""`

	OpenAI struct {
		APIKey  string `envconfig:"OPENAI_API_KEY"`
		BaseURL string `envconfig:"OPENAI_BASE_URL"`
		Model   string `envconfig:"OPENAI_MODEL" default:"gpt-4.1-mini"`
	} `envconfig:""`

	State struct {
		Backend string `envconfig:"STATE_BACKEND" default:"file"`
		File    string `envconfig:"STATE_FILE" default:"bot_state.json"`
	} `envconfig:""`

	PGDSN string `envconfig:"PG_DSN"`

	RedisAddr string `envconfig:"REDIS_ADDR"`

	Bot struct {
		DailyPostCount     int     `envconfig:"DAILY_POST_COUNT" default:"3"`
		EngagementCount    int     `envconfig:"ENGAGEMENT_COUNT" default:"2"`
		EngagementRatio    float64 `envconfig:"ENGAGEMENT_RATIO" default:"0.6"`
		MaxHashtags        int     `envconfig:"MAX_HASHTAGS" default:"3"`
		ContentTemperature float64 `envconfig:"CONTENT_TEMPERATURE" default:"0.7"`
		MinEngagementLikes int     `envconfig:"MIN_ENGAGEMENT_LIKES" default:"100"`
		MaxRetries         int     `envconfig:"MAX_RETRIES" default:"3"`
		TweetLength        int     `envconfig:"TWEET_LENGTH" default:"240"`
		PostTimes          string  `envconfig:"POST_TIMES" default:"09:00,13:00,17:00"`
		EngagementInterval int     `envconfig:"ENGAGEMENT_INTERVAL_HOURS" default:"4"`
	} `envconfig:""`
}

// Backend'ы хранения состояния.
const (
	StateBackendFile     = "file"
	StateBackendPostgres = "postgres"
	StateBackendRedis    = "redis"
)

// Load загружает конфиг из окружения и валидирует его.
func Load() (AppConfig, error) {
	var cfg AppConfig
	if err := envconfig.Process("", &cfg); err != nil {
		return AppConfig{}, fmt.Errorf("чтение окружения: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return AppConfig{}, err
	}
	return cfg, nil
}

// Validate проверяет значения, деление на которые или итерация по которым
// иначе упали бы уже в работе. Нулевой ENGAGEMENT_COUNT отклоняется здесь,
// а не ограничивается молча.
func (c AppConfig) Validate() error {
	if c.Bot.EngagementCount < 1 {
		return fmt.Errorf("%w: ENGAGEMENT_COUNT должен быть >= 1, получен %d", domain.ErrConfig, c.Bot.EngagementCount)
	}
	if c.Bot.MaxRetries < 1 {
		return fmt.Errorf("%w: MAX_RETRIES должен быть >= 1, получен %d", domain.ErrConfig, c.Bot.MaxRetries)
	}
	if c.Bot.TweetLength <= 3 {
		return fmt.Errorf("%w: TWEET_LENGTH должен быть > 3, получен %d", domain.ErrConfig, c.Bot.TweetLength)
	}
	if c.Bot.EngagementInterval < 1 {
		return fmt.Errorf("%w: ENGAGEMENT_INTERVAL_HOURS должен быть >= 1, получен %d", domain.ErrConfig, c.Bot.EngagementInterval)
	}
	if _, err := c.ParsePostTimes(); err != nil {
		return err
	}
	switch c.State.Backend {
	case StateBackendFile, StateBackendPostgres, StateBackendRedis:
	default:
		return fmt.Errorf("%w: неизвестный STATE_BACKEND %q", domain.ErrConfig, c.State.Backend)
	}
	return nil
}

// PostTime — время публикации в пределах суток.
type PostTime struct {
	Hour   int
	Minute int
}

// ParsePostTimes разбирает POST_TIMES вида "09:00,13:00,17:00".
func (c AppConfig) ParsePostTimes() ([]PostTime, error) {
	raw := strings.Split(c.Bot.PostTimes, ",")
	times := make([]PostTime, 0, len(raw))
	for _, chunk := range raw {
		chunk = strings.TrimSpace(chunk)
		if chunk == "" {
			continue
		}
		parsed, err := time.Parse("15:04", chunk)
		if err != nil {
			return nil, fmt.Errorf("%w: POST_TIMES содержит %q: %v", domain.ErrConfig, chunk, err)
		}
		times = append(times, PostTime{Hour: parsed.Hour(), Minute: parsed.Minute()})
	}
	if len(times) == 0 {
		return nil, fmt.Errorf("%w: POST_TIMES пуст", domain.ErrConfig)
	}
	return times, nil
}
