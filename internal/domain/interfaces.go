package domain

import "context"

// StateStore загружает и сохраняет состояние бота целиком.
// Отсутствие данных при загрузке — не ошибка, а пустое состояние.
type StateStore interface {
	Load(ctx context.Context) (BotState, error)
	Save(ctx context.Context, state BotState) error
}

// Publisher — удалённая платформа: публикация, реакции, поиск.
type Publisher interface {
	CreateTweet(ctx context.Context, text string) (string, error)
	Like(ctx context.Context, tweetID string) error
	Retweet(ctx context.Context, tweetID string) error
	SearchRecent(ctx context.Context, query string, maxResults int) ([]Tweet, error)
}

// Generator производит текст поста.
type Generator interface {
	Generate(ctx context.Context) (GeneratedContent, error)
}
