package generator

import (
	"context"
	"fmt"
	"strings"
	"time"

	openai "x-growth-bot/internal/infra/openai"
)

type chatClient interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// OpenAI генерирует текст поста через Chat Completions.
type OpenAI struct {
	client      chatClient
	model       string
	temperature float64
	maxHashtags int
	maxLength   int
	timeout     time.Duration
}

// NewOpenAI создаёт LLM-генератор.
func NewOpenAI(client chatClient, model string, temperature float64, maxHashtags, maxLength int, timeout time.Duration) *OpenAI {
	if model == "" {
		model = "gpt-4.1-mini"
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &OpenAI{
		client:      client,
		model:       model,
		temperature: temperature,
		maxHashtags: maxHashtags,
		maxLength:   maxLength,
		timeout:     timeout,
	}
}

// Generate строит промпт из темы и вида поста и возвращает первый
// вариант ответа модели без окружающих пробелов.
func (g *OpenAI) Generate(ctx context.Context, topic, contentType string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	prompt := fmt.Sprintf(`Generate a Twitter post (%s) about %s.
Make it engaging, informative, and conversational.
Include relevant hashtags (max %d).
Keep it under %d characters.
Focus on providing value to tech-savvy audience.`, contentType, topic, g.maxHashtags, g.maxLength)

	req := openai.ChatCompletionRequest{
		Model:       g.model,
		Temperature: g.temperature,
		MaxTokens:   100,
		Messages: []openai.ChatMessage{
			{Role: openai.RoleUser, Content: prompt},
		},
	}
	resp, err := g.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", fmt.Errorf("генерация поста: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("генерация поста: пустой ответ модели")
	}
	text := strings.TrimSpace(resp.Choices[0].Message.Content)
	if text == "" {
		return "", fmt.Errorf("генерация поста: модель вернула пустой текст")
	}
	return text, nil
}
