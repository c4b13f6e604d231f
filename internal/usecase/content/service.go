package content

import (
	"context"
	"math/rand"
	"time"

	"github.com/rs/zerolog"

	"x-growth-bot/internal/domain"
	"x-growth-bot/internal/infra/metrics"
)

// LLMGenerator — основной путь генерации.
type LLMGenerator interface {
	Generate(ctx context.Context, topic, contentType string) (string, error)
}

// TemplateGenerator — локальный запасной путь, не может упасть.
type TemplateGenerator interface {
	Generate(topic, contentType string) string
}

// Service выбирает тему и вид поста и получает текст: сперва у LLM,
// при любой ошибке — из шаблонов. Источник помечается явно.
type Service struct {
	llm  LLMGenerator
	tmpl TemplateGenerator
	rng  *rand.Rand
	log  zerolog.Logger
}

var _ domain.Generator = (*Service)(nil)

// NewService создаёт генератор контента.
func NewService(llm LLMGenerator, tmpl TemplateGenerator, logger zerolog.Logger) *Service {
	return &Service{
		llm:  llm,
		tmpl: tmpl,
		rng:  rand.New(rand.NewSource(time.Now().UnixNano())),
		log:  logger,
	}
}

// NewServiceWithRand создаёт сервис с фиксированным источником случайности.
func NewServiceWithRand(llm LLMGenerator, tmpl TemplateGenerator, rng *rand.Rand, logger zerolog.Logger) *Service {
	return &Service{llm: llm, tmpl: tmpl, rng: rng, log: logger}
}

// Generate реализует domain.Generator.
func (s *Service) Generate(ctx context.Context) (domain.GeneratedContent, error) {
	contentType := domain.ContentTypes[s.rng.Intn(len(domain.ContentTypes))]
	topic := domain.Topics[s.rng.Intn(len(domain.Topics))]

	if s.llm != nil {
		text, err := s.llm.Generate(ctx, topic, contentType)
		if err == nil {
			return domain.GeneratedContent{Text: text, Source: domain.SourceLLM}, nil
		}
		s.log.Warn().Err(err).Str("topic", topic).Str("content_type", contentType).
			Msg("LLM недоступна, переходим на шаблоны")
		metrics.GenerationFallbacksTotal.Inc()
	}

	text := s.tmpl.Generate(topic, contentType)
	return domain.GeneratedContent{Text: text, Source: domain.SourceTemplate}, nil
}
