package domain

// PostRecord описывает один опубликованный твит.
// Записи только добавляются и сохраняются как есть.
type PostRecord struct {
	ID        string `json:"id"`
	Content   string `json:"content"`
	Timestamp string `json:"timestamp"`
}

// EngagementKindLikeRetweet — единственный вид реакции: лайк + ретвит.
const EngagementKindLikeRetweet = "like_retweet"

// EngagementRecord фиксирует реакцию на чужой твит.
type EngagementRecord struct {
	Kind      string `json:"type"`
	Timestamp string `json:"timestamp"`
}

// BotState — агрегат всей персистентной истории бота.
// Ключ engagement-истории — ID целевого твита: одна реакция на твит навсегда.
type BotState struct {
	EngagementHistory map[string]EngagementRecord `json:"engagement_history"`
	PostHistory       []PostRecord                `json:"post_history"`
}

// NewBotState возвращает пустое состояние.
func NewBotState() BotState {
	return BotState{
		EngagementHistory: make(map[string]EngagementRecord),
		PostHistory:       []PostRecord{},
	}
}

// Engaged сообщает, была ли уже реакция на твит.
func (s BotState) Engaged(tweetID string) bool {
	_, ok := s.EngagementHistory[tweetID]
	return ok
}

// ContentSource указывает, каким путём получен текст поста.
type ContentSource string

const (
	// SourceLLM — текст сгенерирован языковой моделью.
	SourceLLM ContentSource = "llm"
	// SourceTemplate — текст собран из локального шаблона.
	SourceTemplate ContentSource = "template"
)

// GeneratedContent — результат генерации с явной пометкой источника.
type GeneratedContent struct {
	Text   string
	Source ContentSource
}

// PublicMetrics — публичные счётчики твита из поиска.
type PublicMetrics struct {
	LikeCount    int `json:"like_count"`
	RetweetCount int `json:"retweet_count"`
	ReplyCount   int `json:"reply_count"`
}

// Tweet — найденный твит другого автора.
type Tweet struct {
	ID       string        `json:"id"`
	AuthorID string        `json:"author_id"`
	Text     string        `json:"text"`
	Metrics  PublicMetrics `json:"public_metrics"`
}
