package twitter

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"x-growth-bot/internal/domain"
	"x-growth-bot/internal/infra/metrics"
)

const defaultBaseURL = "https://api.x.com"

// Client выполняет запросы к X API v2.
type Client struct {
	http    *http.Client
	baseURL string
	token   string

	mu     sync.Mutex
	userID string
}

var _ domain.Publisher = (*Client)(nil)

// NewClient создаёт клиента платформы. Токен — OAuth2 user access token.
func NewClient(token, baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	baseURL = strings.TrimRight(baseURL, "/")
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		http:    &http.Client{Timeout: timeout},
		baseURL: baseURL,
		token:   token,
	}
}

// CreateTweet публикует твит и возвращает его ID.
func (c *Client) CreateTweet(ctx context.Context, text string) (string, error) {
	var resp struct {
		Data struct {
			ID string `json:"id"`
		} `json:"data"`
	}
	body := map[string]string{"text": text}
	if err := c.do(ctx, http.MethodPost, "/2/tweets", "create_tweet", body, &resp); err != nil {
		return "", err
	}
	if resp.Data.ID == "" {
		return "", fmt.Errorf("%w: платформа не вернула id твита", domain.ErrNetwork)
	}
	return resp.Data.ID, nil
}

// Like ставит лайк твиту от имени владельца токена.
func (c *Client) Like(ctx context.Context, tweetID string) error {
	userID, err := c.me(ctx)
	if err != nil {
		return err
	}
	body := map[string]string{"tweet_id": tweetID}
	return c.do(ctx, http.MethodPost, "/2/users/"+userID+"/likes", "like", body, nil)
}

// Retweet ретвитит твит от имени владельца токена.
func (c *Client) Retweet(ctx context.Context, tweetID string) error {
	userID, err := c.me(ctx)
	if err != nil {
		return err
	}
	body := map[string]string{"tweet_id": tweetID}
	return c.do(ctx, http.MethodPost, "/2/users/"+userID+"/retweets", "retweet", body, nil)
}

// SearchRecent ищет свежие твиты по запросу.
func (c *Client) SearchRecent(ctx context.Context, query string, maxResults int) ([]domain.Tweet, error) {
	if maxResults <= 0 {
		maxResults = 10
	}
	params := url.Values{}
	params.Set("query", query)
	params.Set("max_results", strconv.Itoa(maxResults))
	params.Set("tweet.fields", "author_id,public_metrics")
	var resp struct {
		Data []domain.Tweet `json:"data"`
	}
	path := "/2/tweets/search/recent?" + params.Encode()
	if err := c.do(ctx, http.MethodGet, path, "search_recent", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

// me возвращает ID владельца токена; результат кэшируется на весь процесс.
func (c *Client) me(ctx context.Context) (string, error) {
	c.mu.Lock()
	cached := c.userID
	c.mu.Unlock()
	if cached != "" {
		return cached, nil
	}
	var resp struct {
		Data struct {
			ID string `json:"id"`
		} `json:"data"`
	}
	if err := c.do(ctx, http.MethodGet, "/2/users/me", "users_me", nil, &resp); err != nil {
		return "", err
	}
	if resp.Data.ID == "" {
		return "", fmt.Errorf("%w: /2/users/me не вернул id", domain.ErrNetwork)
	}
	c.mu.Lock()
	c.userID = resp.Data.ID
	c.mu.Unlock()
	return resp.Data.ID, nil
}

func (c *Client) do(ctx context.Context, method, path, operation string, body, out any) error {
	if c.token == "" {
		return fmt.Errorf("%w: пустой access token, проверьте TWITTER_ACCESS_TOKEN", domain.ErrUnauthorized)
	}
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("twitter: marshal request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("twitter: build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Authorization", "Bearer "+c.token)

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		metrics.ObserveNetworkRequest("twitter", operation, path, start, err)
		return fmt.Errorf("%w: twitter %s: %v", domain.ErrNetwork, operation, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		metrics.ObserveNetworkRequest("twitter", operation, path, start, err)
		return fmt.Errorf("%w: twitter %s: чтение ответа: %v", domain.ErrNetwork, operation, err)
	}
	if resp.StatusCode >= 400 {
		err = classifyStatus(resp.StatusCode, respBody, operation)
		metrics.ObserveNetworkRequest("twitter", operation, path, start, err)
		return err
	}
	metrics.ObserveNetworkRequest("twitter", operation, path, start, nil)
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("%w: twitter %s: decode response: %v", domain.ErrNetwork, operation, err)
	}
	return nil
}

// classifyStatus переводит HTTP-статус в ошибку закрытой таксономии.
func classifyStatus(status int, body []byte, operation string) error {
	detail := apiDetail(body)
	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return fmt.Errorf("%w: twitter %s: статус %d (%s) — проверьте права токена и уровень доступа API", domain.ErrUnauthorized, operation, status, detail)
	case status == http.StatusTooManyRequests:
		return fmt.Errorf("%w: twitter %s: статус 429 (%s)", domain.ErrRateLimited, operation, detail)
	default:
		return fmt.Errorf("%w: twitter %s: неожиданный статус %d (%s)", domain.ErrNetwork, operation, status, detail)
	}
}

func apiDetail(body []byte) string {
	var parsed struct {
		Title  string `json:"title"`
		Detail string `json:"detail"`
		Errors []struct {
			Message string `json:"message"`
		} `json:"errors"`
	}
	if err := json.Unmarshal(body, &parsed); err == nil {
		if parsed.Detail != "" {
			return parsed.Detail
		}
		if parsed.Title != "" {
			return parsed.Title
		}
		if len(parsed.Errors) > 0 && parsed.Errors[0].Message != "" {
			return parsed.Errors[0].Message
		}
	}
	trimmed := strings.TrimSpace(string(body))
	if len(trimmed) > 200 {
		trimmed = trimmed[:200]
	}
	if trimmed == "" {
		return "без тела ответа"
	}
	return trimmed
}
