package clients

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"sync"
	"time"

	openai "github.com/sashabaranov/go-openai"
)

const openAIRequestTimeout = 60 * time.Second

var (
	openAIClientInstance *OpenAIClient
	openAIOnce           sync.Once
)

type OpenAIClient struct {
	Client *openai.Client
}

// GetOpenAIClient returns the shared OpenAI client, or an error when no
// API key is configured; the insights feature is optional and the
// server degrades gracefully without it.
func GetOpenAIClient() (*OpenAIClient, error) {
	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("[OpenAIClient] Missing OPENAI_API_KEY in environment variables")
	}
	openAIOnce.Do(func() {
		cfg := openai.DefaultConfig(apiKey)
		cfg.HTTPClient = &http.Client{Timeout: openAIRequestTimeout}

		openAIClientInstance = &OpenAIClient{
			Client: openai.NewClientWithConfig(cfg),
		}
		slog.Info("[OpenAIClient] OpenAI client initialized",
			slog.Duration("timeout", openAIRequestTimeout))
	})
	return openAIClientInstance, nil
}
