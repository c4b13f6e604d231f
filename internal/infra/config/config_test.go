package config

import (
	"errors"
	"testing"

	"x-growth-bot/internal/domain"
)

func validConfig() AppConfig {
	var cfg AppConfig
	cfg.Bot.EngagementCount = 2
	cfg.Bot.MaxRetries = 3
	cfg.Bot.TweetLength = 240
	cfg.Bot.EngagementInterval = 4
	cfg.Bot.PostTimes = "09:00,13:00,17:00"
	cfg.State.Backend = StateBackendFile
	return cfg
}

func TestValidateAcceptsDefaults(t *testing.T) {
	if err := validConfig().Validate(); err != nil {
		t.Fatalf("не ожидали ошибку: %v", err)
	}
}

func TestValidateRejectsZeroEngagementCount(t *testing.T) {
	cfg := validConfig()
	cfg.Bot.EngagementCount = 0
	err := cfg.Validate()
	if err == nil {
		t.Fatalf("нулевой ENGAGEMENT_COUNT должен отклоняться")
	}
	if !errors.Is(err, domain.ErrConfig) {
		t.Fatalf("ожидали ErrConfig, получили %v", err)
	}
}

func TestValidateRejectsZeroRetries(t *testing.T) {
	cfg := validConfig()
	cfg.Bot.MaxRetries = 0
	if err := cfg.Validate(); !errors.Is(err, domain.ErrConfig) {
		t.Fatalf("нулевой MAX_RETRIES должен отклоняться: %v", err)
	}
}

func TestValidateRejectsTinyTweetLength(t *testing.T) {
	cfg := validConfig()
	cfg.Bot.TweetLength = 3
	if err := cfg.Validate(); !errors.Is(err, domain.ErrConfig) {
		t.Fatalf("TWEET_LENGTH <= 3 должен отклоняться: %v", err)
	}
}

func TestValidateRejectsUnknownBackend(t *testing.T) {
	cfg := validConfig()
	cfg.State.Backend = "sqlite"
	if err := cfg.Validate(); !errors.Is(err, domain.ErrConfig) {
		t.Fatalf("неизвестный backend должен отклоняться: %v", err)
	}
}

func TestParsePostTimes(t *testing.T) {
	cfg := validConfig()
	times, err := cfg.ParsePostTimes()
	if err != nil {
		t.Fatalf("не ожидали ошибку: %v", err)
	}
	want := []PostTime{{9, 0}, {13, 0}, {17, 0}}
	if len(times) != len(want) {
		t.Fatalf("ожидали %d времени, получили %d", len(want), len(times))
	}
	for i, pt := range want {
		if times[i] != pt {
			t.Fatalf("позиция %d: ожидали %+v, получили %+v", i, pt, times[i])
		}
	}
}

func TestParsePostTimesRejectsGarbage(t *testing.T) {
	cfg := validConfig()
	cfg.Bot.PostTimes = "09:00,25:99"
	if _, err := cfg.ParsePostTimes(); !errors.Is(err, domain.ErrConfig) {
		t.Fatalf("мусор в POST_TIMES должен отклоняться: %v", err)
	}
}

func TestLoadReadsOverridesAndDefaults(t *testing.T) {
	t.Setenv("ENGAGEMENT_COUNT", "5")
	t.Setenv("MIN_ENGAGEMENT_LIKES", "250")
	t.Setenv("STATE_BACKEND", "file")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("не ожидали ошибку: %v", err)
	}
	if cfg.Bot.EngagementCount != 5 {
		t.Fatalf("переопределение не прочиталось: %d", cfg.Bot.EngagementCount)
	}
	if cfg.Bot.MinEngagementLikes != 250 {
		t.Fatalf("неожиданный порог: %d", cfg.Bot.MinEngagementLikes)
	}
	if cfg.Bot.MaxRetries != 3 || cfg.Bot.TweetLength != 240 {
		t.Fatalf("дефолты не применились: %+v", cfg.Bot)
	}
	if cfg.Bot.EngagementRatio != 0.6 {
		t.Fatalf("неожиданный engagement ratio: %v", cfg.Bot.EngagementRatio)
	}
}

func TestLoadRejectsZeroEngagementCount(t *testing.T) {
	t.Setenv("ENGAGEMENT_COUNT", "0")
	if _, err := Load(); !errors.Is(err, domain.ErrConfig) {
		t.Fatalf("Load обязан валидировать конфиг: %v", err)
	}
}
