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

	"github.com/bibek1414/youtube-comment-analyzer/internal/models"
)

const (
	youtubeCommentThreadsURL = "https://www.googleapis.com/youtube/v3/commentThreads"

	DefaultMaxComments = 100
)

var (
	youtubeInstance *YouTubeClient
	youtubeOnce     sync.Once
)

// UpstreamError preserves the YouTube API's status and message so
// callers can surface fetch failures without masking them. Rate limits
// and bad video ids are the caller's problem, not something to retry.
type UpstreamError struct {
	StatusCode int
	Message    string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("youtube api: %d: %s", e.StatusCode, e.Message)
}

type YouTubeClient struct {
	Client *http.Client
	apiKey string

	// initialBackoff overrides INITIAL_BACKOFF when positive; tests
	// shrink it so retry exhaustion does not take seconds
	initialBackoff time.Duration
}

func GetYouTubeClient() (*YouTubeClient, error) {
	apiKey := os.Getenv("YOUTUBE_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("[YouTubeClient] YOUTUBE_API_KEY is not configured")
	}

	youtubeOnce.Do(func() {
		slog.Info("[YouTubeClient] Initializing client")
		youtubeInstance = &YouTubeClient{
			Client: &http.Client{Timeout: 15 * time.Second},
			apiKey: apiKey,
		}
	})
	return youtubeInstance, nil
}

// FetchComments pulls up to maxComments top-level comments for a video
// via commentThreads.list. 5xx responses are retried with backoff; 4xx
// responses come back as UpstreamError with the API's own message.
func (yc *YouTubeClient) FetchComments(ctx context.Context, videoID string, maxComments int) ([]models.Comment, error) {
	if maxComments <= 0 {
		maxComments = DefaultMaxComments
	}

	parsedURL, err := url.Parse(youtubeCommentThreadsURL)
	if err != nil {
		return nil, fmt.Errorf("[YouTubeClient] Failed to parse URL: %w", err)
	}
	queryParams := parsedURL.Query()
	queryParams.Add("part", "snippet")
	queryParams.Add("videoId", videoID)
	queryParams.Add("maxResults", strconv.Itoa(maxComments))
	queryParams.Add("textFormat", "plainText")
	queryParams.Add("key", yc.apiKey)
	parsedURL.RawQuery = queryParams.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, parsedURL.String(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", USER_AGENT)

	resp, err := yc.doWithRetry(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("[YouTubeClient] Failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, upstreamError(resp.StatusCode, body)
	}

	var threads models.YouTubeCommentThreadsResponse
	if err := json.Unmarshal(body, &threads); err != nil {
		return nil, fmt.Errorf("[YouTubeClient] Failed to unmarshal response: %w", err)
	}

	comments := make([]models.Comment, 0, len(threads.Items))
	for _, item := range threads.Items {
		snippet := item.Snippet.TopLevelComment.Snippet
		comments = append(comments, models.Comment{
			Text:        snippet.TextDisplay,
			Author:      snippet.AuthorDisplayName,
			LikeCount:   snippet.LikeCount,
			PublishedAt: snippet.PublishedAt,
		})
	}

	slog.Info("[YouTubeClient] Fetched comments",
		slog.String("video_id", videoID),
		slog.Int("count", len(comments)))
	return comments, nil
}

// doWithRetry retries 5xx responses and transport errors with backoff.
// When retries run out on a 5xx, the API's status and message are
// captured as an UpstreamError before the body is closed, so the
// upstream failure is never masked by a dead response.
func (yc *YouTubeClient) doWithRetry(req *http.Request) (*http.Response, error) {
	var lastErr error
	backoff := yc.initialBackoff
	if backoff <= 0 {
		backoff = INITIAL_BACKOFF
	}

	for attempt := 0; attempt < MAX_RETRIES; attempt++ {
		resp, err := yc.Client.Do(req)
		if err == nil && resp.StatusCode < 500 {
			return resp, nil
		}

		if err != nil {
			lastErr = err
		} else {
			body, _ := io.ReadAll(resp.Body)
			resp.Body.Close()
			lastErr = upstreamError(resp.StatusCode, body)
		}

		slog.Warn("[YouTubeClient] Request failed, will retry",
			slog.Int("attempt", attempt+1),
			slog.String("error", lastErr.Error()))

		if attempt < MAX_RETRIES-1 {
			time.Sleep(backoff)
			backoff *= 2
			if backoff > MAX_BACKOFF {
				backoff = MAX_BACKOFF
			}
		}
	}

	return nil, fmt.Errorf("[YouTubeClient] request failed after retries: %w", lastErr)
}

func upstreamError(status int, body []byte) error {
	var apiErr models.YouTubeErrorResponse
	if err := json.Unmarshal(body, &apiErr); err == nil && apiErr.Error.Message != "" {
		return &UpstreamError{StatusCode: status, Message: apiErr.Error.Message}
	}
	return &UpstreamError{StatusCode: status, Message: http.StatusText(status)}
}
