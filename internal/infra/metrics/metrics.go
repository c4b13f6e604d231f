package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	PostsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "bot_posts_total",
		Help: "Публикации твитов по статусу",
	}, []string{"status"})

	PostAttemptsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "bot_post_attempts_total",
		Help: "Попытки публикации, включая ретраи",
	})

	EngagementsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "bot_engagements_total",
		Help: "Выполненные реакции (лайк + ретвит)",
	})

	EngagementSkipsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "bot_engagement_skips_total",
		Help: "Пропущенные кандидаты по причинам",
	}, []string{"reason"})

	GenerationFallbacksTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "bot_generation_fallbacks_total",
		Help: "Переключения генерации на локальные шаблоны",
	})

	StateSaveErrors = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "bot_state_save_errors_total",
		Help: "Ошибки сохранения состояния",
	})

	NetworkRequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "network_request_duration_seconds",
		Help:    "Длительность сетевых запросов",
		Buckets: prometheus.DefBuckets,
	}, []string{"component", "operation", "target", "status"})

	NetworkRequestTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "network_request_total",
		Help: "Количество сетевых запросов",
	}, []string{"component", "operation", "target", "status"})

	LLMGenerationDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "llm_generation_duration_seconds",
		Help:    "Длительность генерации ответа LLM",
		Buckets: prometheus.DefBuckets,
	}, []string{"model"})

	LLMTokensTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "llm_tokens_total",
		Help: "Количество токенов, использованных LLM",
	}, []string{"model", "type"})
)

// MustRegister регистрирует метрики.
func MustRegister(registerer prometheus.Registerer) {
	registerer.MustRegister(
		PostsTotal,
		PostAttemptsTotal,
		EngagementsTotal,
		EngagementSkipsTotal,
		GenerationFallbacksTotal,
		StateSaveErrors,
		NetworkRequestDuration,
		NetworkRequestTotal,
		LLMGenerationDuration,
		LLMTokensTotal,
	)
}

// ObserveNetworkRequest записывает длительность и статус сетевого запроса.
func ObserveNetworkRequest(component, operation, target string, start time.Time, err error) {
	if component == "" {
		component = "unknown"
	}
	if operation == "" {
		operation = "unknown"
	}
	if target == "" {
		target = "unknown"
	}
	status := "success"
	if err != nil {
		status = "error"
	}
	duration := time.Since(start).Seconds()
	NetworkRequestDuration.WithLabelValues(component, operation, target, status).Observe(duration)
	NetworkRequestTotal.WithLabelValues(component, operation, target, status).Inc()
}

// ObserveLLMGeneration записывает длительность и токены генерации LLM.
func ObserveLLMGeneration(model string, duration time.Duration, promptTokens, completionTokens, totalTokens int) {
	if model == "" {
		model = "unknown"
	}
	LLMGenerationDuration.WithLabelValues(model).Observe(duration.Seconds())
	if promptTokens > 0 {
		LLMTokensTotal.WithLabelValues(model, "prompt").Add(float64(promptTokens))
	}
	if completionTokens > 0 {
		LLMTokensTotal.WithLabelValues(model, "completion").Add(float64(completionTokens))
	}
	if totalTokens <= 0 {
		totalTokens = promptTokens + completionTokens
	}
	if totalTokens > 0 {
		LLMTokensTotal.WithLabelValues(model, "total").Add(float64(totalTokens))
	}
}
