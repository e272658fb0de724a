package clients

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"sync"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"

	"github.com/bibek1414/youtube-comment-analyzer/internal/models"
)

const (
	REDDIT_AUTH_URL = "https://www.reddit.com/api/v1/access_token"
	REDDIT_API_URL  = "https://oauth.reddit.com"
)

var (
	redditClientInstance *RedditClient
	redditClientOnce     sync.Once
	redditRateLimitMutex sync.Mutex
)

// RedditClient pulls recent subreddit comments; the dataset fetcher
// VADER-labels them into extra training rows.
type RedditClient struct {
	Config *clientcredentials.Config
	Client *http.Client
	mu     sync.Mutex
}

func GetRedditClient() *RedditClient {
	redditClientOnce.Do(func() {
		oauthConf := &clientcredentials.Config{
			ClientID:     os.Getenv("REDDIT_CLIENT_ID"),
			ClientSecret: os.Getenv("REDDIT_CLIENT_SECRET"),
			TokenURL:     REDDIT_AUTH_URL,
			AuthStyle:    oauth2.AuthStyleInHeader,
		}

		redditClientInstance = &RedditClient{
			Config: oauthConf,
			Client: oauthConf.Client(context.Background()),
		}
	})

	return redditClientInstance
}

func (rc *RedditClient) RefreshClient() {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	rc.Client = rc.Config.Client(context.Background())
}

// FetchSubredditComments reads the newest comments from a subreddit's
// comment listing.
func (rc *RedditClient) FetchSubredditComments(subreddit string, limit int) ([]models.RedditComment, error) {
	parsedURL, err := url.Parse(fmt.Sprintf("%s/r/%s/comments", REDDIT_API_URL, subreddit))
	if err != nil {
		return nil, fmt.Errorf("[RedditClient] Failed to parse URL: %w", err)
	}
	queryParams := parsedURL.Query()
	queryParams.Add("limit", strconv.Itoa(limit))
	parsedURL.RawQuery = queryParams.Encode()

	// crude client-side rate limit shared across goroutines
	redditRateLimitMutex.Lock()
	time.Sleep(INITIAL_BACKOFF)
	redditRateLimitMutex.Unlock()

	body, err := rc.get(parsedURL.String(), 0)
	if err != nil {
		return nil, err
	}

	var listing models.RedditAPIResponse
	if err := json.Unmarshal(body, &listing); err != nil {
		return nil, fmt.Errorf("[RedditClient] Failed to unmarshal listing: %w", err)
	}

	comments := make([]models.RedditComment, 0, len(listing.Data.Children))
	for _, child := range listing.Data.Children {
		if child.Data.Body == "" {
			continue
		}
		comments = append(comments, child.Data)
	}

	slog.Info("[RedditClient] Fetched subreddit comments",
		slog.String("subreddit", subreddit),
		slog.Int("count", len(comments)))
	return comments, nil
}

func (rc *RedditClient) get(rawURL string, attempt int) ([]byte, error) {
	req, err := http.NewRequest(http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", USER_AGENT)

	resp, err := rc.Client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		return io.ReadAll(resp.Body)
	case http.StatusUnauthorized:
		if attempt >= MAX_RETRIES {
			return nil, fmt.Errorf("[RedditClient] still unauthorized after refresh")
		}
		slog.Warn("[RedditClient] Token expired - Refreshing and Retrying...")
		rc.RefreshClient()
		return rc.get(rawURL, attempt+1)
	case http.StatusTooManyRequests:
		if attempt >= MAX_RETRIES {
			return nil, fmt.Errorf("[RedditClient] rate limited after %d retries", attempt)
		}
		backoff := INITIAL_BACKOFF << attempt
		if backoff > MAX_BACKOFF {
			backoff = MAX_BACKOFF
		}
		slog.Warn("[RedditClient] 429 Too Many Requests - Retrying with backoff",
			slog.Int("attempt", attempt+1),
			slog.Duration("backoff", backoff))
		time.Sleep(backoff)
		return rc.get(rawURL, attempt+1)
	default:
		return nil, fmt.Errorf("[RedditClient] unexpected status %d", resp.StatusCode)
	}
}
